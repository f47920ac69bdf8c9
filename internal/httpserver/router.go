package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"metalmarket-storefront/internal/domain"
	"metalmarket-storefront/internal/service/checkout"
	"metalmarket-storefront/internal/upstream"
)

// CartStore is the cart surface the handlers mutate.
type CartStore interface {
	Get(ctx context.Context, ownerID string) (domain.Cart, error)
	Add(ctx context.Context, ownerID string, product domain.Product, quantity int) (domain.Cart, error)
	UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) (domain.Cart, error)
	Remove(ctx context.Context, ownerID, productID string) (domain.Cart, error)
	Clear(ctx context.Context, ownerID string) (domain.Cart, error)
}

// SessionStore exposes the current identity and credential per owner.
type SessionStore interface {
	Current(ctx context.Context, ownerID string) (domain.Session, error)
	Token(ctx context.Context, ownerID string) string
	SignIn(ctx context.Context, ownerID, token string, user domain.User) (domain.Session, error)
	SignOut(ctx context.Context, ownerID string) error
}

// CheckoutService is the order submission boundary.
type CheckoutService interface {
	Submit(ctx context.Context, in checkout.Input) (checkout.Result, error)
}

// UpstreamAPI is the slice of the upstream client the handlers consume.
type UpstreamAPI interface {
	Login(ctx context.Context, email, password string) (upstream.LoginResult, error)
	Register(ctx context.Context, in upstream.RegisterInput) error
	ListProducts(ctx context.Context, token string) ([]domain.Product, error)
	GetProduct(ctx context.Context, token, id string) (domain.Product, error)
	CreateProduct(ctx context.Context, token string, in upstream.ProductInput) error
	UpdateProduct(ctx context.Context, token, id string, in upstream.ProductInput) error
	DeleteProduct(ctx context.Context, token, id string) error
	ListOrders(ctx context.Context, token string) ([]domain.Order, error)
	ListUserOrders(ctx context.Context, token, userID string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, token, id string, status domain.OrderStatus) error
	CancelOrder(ctx context.Context, token, id string) error
}

// Deps carries the services the routes are wired to.
type Deps struct {
	Cart     CartStore
	Sessions SessionStore
	Checkout CheckoutService
	Upstream UpstreamAPI
}

const ownerKey = "ownerID"

// ownerHeader identifies the browsing client across requests, the moral
// equivalent of a browser storage scope. Front ends echo it back once minted.
const ownerHeader = "X-Anonymous-Id"

// buildRouter wires the storefront routes.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(corsMiddleware(corsOrigins))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}

	api := router.Group("/api")
	api.Use(ownerMiddleware())
	{
		api.POST("/auth/login", h.login)
		api.POST("/auth/register", h.register)
		api.POST("/auth/logout", h.logout)
		api.GET("/auth/me", h.me)

		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)
		api.POST("/products", h.createProduct)
		api.PUT("/products/:id", h.updateProduct)
		api.DELETE("/products/:id", h.deleteProduct)

		api.GET("/cart", h.getCart)
		api.POST("/cart/items", h.addCartItem)
		api.PUT("/cart/items/:productId", h.updateCartItem)
		api.DELETE("/cart/items/:productId", h.removeCartItem)
		api.DELETE("/cart", h.clearCart)

		api.POST("/checkout", h.submitCheckout)

		api.GET("/orders/my", h.myOrders)
		api.GET("/admin/orders", h.adminOrders)
		api.PUT("/admin/orders/:id/status", h.updateOrderStatus)
		api.PUT("/admin/orders/:id/cancel", h.cancelOrder)
		api.GET("/admin/dashboard", h.dashboard)
	}

	return router
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", ownerHeader)
	cfg.ExposeHeaders = append(cfg.ExposeHeaders, ownerHeader)
	return cors.New(cfg)
}

// ownerMiddleware resolves the client identity for cart and session scoping,
// minting one for first-time visitors and echoing it back in every response.
func ownerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.GetHeader(ownerHeader)
		if owner == "" {
			owner = uuid.NewString()
		}
		c.Set(ownerKey, owner)
		c.Header(ownerHeader, owner)
		c.Next()
	}
}

func ownerID(c *gin.Context) string {
	return c.GetString(ownerKey)
}
