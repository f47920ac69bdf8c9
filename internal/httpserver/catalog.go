package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metalmarket-storefront/internal/upstream"
)

// listProducts degrades to an empty catalog rather than failing the page:
// a storefront with nothing to show still renders.
func (h *handlers) listProducts(c *gin.Context) {
	ctx := c.Request.Context()
	token := h.deps.Sessions.Token(ctx, ownerID(c))
	products, err := h.deps.Upstream.ListProducts(ctx, token)
	if err != nil {
		h.logger.Printf("list products: %v", err)
		c.JSON(http.StatusOK, gin.H{"products": []productView{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toProductViews(products)})
}

func (h *handlers) getProduct(c *gin.Context) {
	ctx := c.Request.Context()
	token := h.deps.Sessions.Token(ctx, ownerID(c))
	product, err := h.deps.Upstream.GetProduct(ctx, token, c.Param("id"))
	if err != nil {
		renderError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProductView(product))
}

type productRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

func (p productRequest) toInput() upstream.ProductInput {
	return upstream.ProductInput{
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}

func (h *handlers) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	ctx := c.Request.Context()
	token := h.deps.Sessions.Token(ctx, ownerID(c))
	if err := h.deps.Upstream.CreateProduct(ctx, token, req.toInput()); err != nil {
		renderError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "product created"})
}

func (h *handlers) updateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	ctx := c.Request.Context()
	token := h.deps.Sessions.Token(ctx, ownerID(c))
	if err := h.deps.Upstream.UpdateProduct(ctx, token, c.Param("id"), req.toInput()); err != nil {
		renderError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product updated"})
}

func (h *handlers) deleteProduct(c *gin.Context) {
	ctx := c.Request.Context()
	token := h.deps.Sessions.Token(ctx, ownerID(c))
	if err := h.deps.Upstream.DeleteProduct(ctx, token, c.Param("id")); err != nil {
		renderError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
