package upstream

import (
	"context"
	"net/http"

	"metalmarket-storefront/internal/domain"
)

// LoginResult is the token and identity issued by the upstream.
type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		Token string `json:"token"`
		User  struct {
			ID    wireID `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
			Phone string `json:"phone"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &out); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{
		Token: out.Token,
		User: domain.User{
			ID:    string(out.User.ID),
			Name:  out.User.Name,
			Email: out.User.Email,
			Phone: out.User.Phone,
			Role:  out.User.Role,
		},
	}, nil
}

// RegisterInput mirrors the upstream account creation payload.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", in, nil)
}
