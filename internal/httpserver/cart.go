package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) getCart(c *gin.Context) {
	cart, err := h.deps.Cart.Get(c.Request.Context(), ownerID(c))
	if err != nil {
		renderError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	// Quantity omitted means a quick add of one unit.
	Quantity int `json:"quantity"`
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return
	}

	ctx := c.Request.Context()
	token := h.deps.Sessions.Token(ctx, ownerID(c))
	product, err := h.deps.Upstream.GetProduct(ctx, token, req.ProductID)
	if err != nil {
		renderError(c, h.logger, err)
		return
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	cart, err := h.deps.Cart.Add(ctx, ownerID(c), product, quantity)
	if err != nil {
		renderError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}

	cart, err := h.deps.Cart.UpdateQuantity(c.Request.Context(), ownerID(c), c.Param("productId"), req.Quantity)
	if err != nil {
		renderError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	cart, err := h.deps.Cart.Remove(c.Request.Context(), ownerID(c), c.Param("productId"))
	if err != nil {
		renderError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

func (h *handlers) clearCart(c *gin.Context) {
	cart, err := h.deps.Cart.Clear(c.Request.Context(), ownerID(c))
	if err != nil {
		renderError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}
