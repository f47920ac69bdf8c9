package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metalmarket-storefront/internal/domain"
	"metalmarket-storefront/internal/service/checkout"
)

type checkoutRequest struct {
	OrderType string `json:"orderType" binding:"required"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
}

func (h *handlers) submitCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderType is required"})
		return
	}

	ctx := c.Request.Context()
	owner := ownerID(c)
	sess, err := h.deps.Sessions.Current(ctx, owner)
	if err != nil {
		renderError(c, h.logger, err)
		return
	}
	if !sess.LoggedIn() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required to place an order"})
		return
	}

	result, err := h.deps.Checkout.Submit(ctx, checkout.Input{
		OwnerID:   owner,
		UserID:    sess.User.ID,
		Token:     sess.Token,
		OrderType: domain.OrderType(req.OrderType),
		Name:      req.Name,
		Phone:     req.Phone,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		Pincode:   req.Pincode,
	})
	if err != nil {
		renderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "order placed",
		"orderType":  string(result.OrderType),
		"total":      domain.RupeesFromPaise(result.TotalPaise),
		"totalPaise": result.TotalPaise,
		"address":    result.Address,
	})
}
