package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metalmarket-storefront/internal/domain"
)

func (h *handlers) myOrders(c *gin.Context) {
	ctx := c.Request.Context()
	sess, err := h.deps.Sessions.Current(ctx, ownerID(c))
	if err != nil {
		renderError(c, h.logger, err)
		return
	}
	if !sess.LoggedIn() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}

	orders, err := h.deps.Upstream.ListUserOrders(ctx, sess.Token, sess.User.ID)
	if err != nil {
		h.logger.Printf("list user orders: %v", err)
		c.JSON(http.StatusOK, gin.H{"orders": []orderView{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": toOrderViews(orders)})
}

func (h *handlers) adminOrders(c *gin.Context) {
	ctx := c.Request.Context()
	token := h.deps.Sessions.Token(ctx, ownerID(c))
	orders, err := h.deps.Upstream.ListOrders(ctx, token)
	if err != nil {
		renderError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": toOrderViews(orders)})
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *handlers) updateOrderStatus(c *gin.Context) {
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	ctx := c.Request.Context()
	token := h.deps.Sessions.Token(ctx, ownerID(c))
	if err := h.deps.Upstream.UpdateOrderStatus(ctx, token, c.Param("id"), domain.OrderStatus(req.Status)); err != nil {
		renderError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order status updated"})
}

func (h *handlers) cancelOrder(c *gin.Context) {
	ctx := c.Request.Context()
	token := h.deps.Sessions.Token(ctx, ownerID(c))
	if err := h.deps.Upstream.CancelOrder(ctx, token, c.Param("id")); err != nil {
		renderError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order cancelled"})
}
