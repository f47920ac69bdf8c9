package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metalmarket-storefront/internal/upstream"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	result, err := h.deps.Upstream.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		renderError(c, h.logger, err)
		return
	}

	sess, err := h.deps.Sessions.SignIn(c.Request.Context(), ownerID(c), result.Token, result.User)
	if err != nil {
		renderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": sess.User})
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

func (h *handlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	err := h.deps.Upstream.Register(c.Request.Context(), upstream.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		renderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registered"})
}

func (h *handlers) logout(c *gin.Context) {
	if err := h.deps.Sessions.SignOut(c.Request.Context(), ownerID(c)); err != nil {
		renderError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *handlers) me(c *gin.Context) {
	sess, err := h.deps.Sessions.Current(c.Request.Context(), ownerID(c))
	if err != nil {
		renderError(c, h.logger, err)
		return
	}
	if !sess.LoggedIn() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sess.User})
}
