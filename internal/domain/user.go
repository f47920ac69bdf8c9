package domain

// User is the identity returned by the upstream auth endpoint.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Session binds a bearer token to the user it was issued for. The zero value
// is a logged-out session.
type Session struct {
	Token string `json:"token,omitempty"`
	User  *User  `json:"user,omitempty"`
}

// LoggedIn reports whether the session carries a usable identity.
func (s Session) LoggedIn() bool {
	return s.Token != "" && s.User != nil
}
