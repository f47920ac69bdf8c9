package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"metalmarket-storefront/internal/domain"
	"metalmarket-storefront/internal/service/checkout"
	"metalmarket-storefront/internal/upstream"
)

type stubCart struct {
	cart    domain.Cart
	err     error
	added   []string
	removed []string
	cleared int
}

func (s *stubCart) Get(ctx context.Context, ownerID string) (domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCart) Add(ctx context.Context, ownerID string, product domain.Product, quantity int) (domain.Cart, error) {
	if s.err != nil {
		return domain.Cart{}, s.err
	}
	s.added = append(s.added, product.ID)
	s.cart.Lines = append(s.cart.Lines, domain.CartLine{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPricePaise: product.PricePaise,
		StockLimit:     product.Stock,
		Quantity:       quantity,
	})
	return s.cart, nil
}

func (s *stubCart) UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) (domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCart) Remove(ctx context.Context, ownerID, productID string) (domain.Cart, error) {
	s.removed = append(s.removed, productID)
	return s.cart, s.err
}

func (s *stubCart) Clear(ctx context.Context, ownerID string) (domain.Cart, error) {
	s.cleared++
	return domain.Cart{}, s.err
}

type stubSessions struct {
	sess domain.Session
	err  error
}

func (s *stubSessions) Current(ctx context.Context, ownerID string) (domain.Session, error) {
	return s.sess, s.err
}

func (s *stubSessions) Token(ctx context.Context, ownerID string) string {
	return s.sess.Token
}

func (s *stubSessions) SignIn(ctx context.Context, ownerID, token string, user domain.User) (domain.Session, error) {
	if s.err != nil {
		return domain.Session{}, s.err
	}
	s.sess = domain.Session{Token: token, User: &user}
	return s.sess, nil
}

func (s *stubSessions) SignOut(ctx context.Context, ownerID string) error {
	s.sess = domain.Session{}
	return s.err
}

type stubCheckout struct {
	result checkout.Result
	err    error
	inputs []checkout.Input
}

func (s *stubCheckout) Submit(ctx context.Context, in checkout.Input) (checkout.Result, error) {
	s.inputs = append(s.inputs, in)
	return s.result, s.err
}

type stubUpstream struct {
	products    []domain.Product
	product     domain.Product
	productErr  error
	orders      []domain.Order
	ordersErr   error
	loginResult upstream.LoginResult
	loginErr    error
}

func (s *stubUpstream) Login(ctx context.Context, email, password string) (upstream.LoginResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubUpstream) Register(ctx context.Context, in upstream.RegisterInput) error { return nil }

func (s *stubUpstream) ListProducts(ctx context.Context, token string) ([]domain.Product, error) {
	return s.products, s.productErr
}

func (s *stubUpstream) GetProduct(ctx context.Context, token, id string) (domain.Product, error) {
	return s.product, s.productErr
}

func (s *stubUpstream) CreateProduct(ctx context.Context, token string, in upstream.ProductInput) error {
	return s.productErr
}

func (s *stubUpstream) UpdateProduct(ctx context.Context, token, id string, in upstream.ProductInput) error {
	return s.productErr
}

func (s *stubUpstream) DeleteProduct(ctx context.Context, token, id string) error {
	return s.productErr
}

func (s *stubUpstream) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	return s.orders, s.ordersErr
}

func (s *stubUpstream) ListUserOrders(ctx context.Context, token, userID string) ([]domain.Order, error) {
	return s.orders, s.ordersErr
}

func (s *stubUpstream) UpdateOrderStatus(ctx context.Context, token, id string, status domain.OrderStatus) error {
	return s.ordersErr
}

func (s *stubUpstream) CancelOrder(ctx context.Context, token, id string) error {
	return s.ordersErr
}

func testRouter(deps Deps) http.Handler {
	logger := log.New(io.Discard, "", 0)
	return buildRouter(logger, nil, deps, nil)
}

func defaultDeps() (Deps, *stubCart, *stubSessions, *stubCheckout, *stubUpstream) {
	cart := &stubCart{}
	sessions := &stubSessions{}
	co := &stubCheckout{}
	up := &stubUpstream{}
	return Deps{Cart: cart, Sessions: sessions, Checkout: co, Upstream: up}, cart, sessions, co, up
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOwnerHeaderMintedWhenMissing(t *testing.T) {
	deps, _, _, _, _ := defaultDeps()
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodGet, "/api/cart", nil, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Anonymous-Id") == "" {
		t.Fatal("expected a minted owner id in the response header")
	}
}

func TestOwnerHeaderEchoed(t *testing.T) {
	deps, _, _, _, _ := defaultDeps()
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodGet, "/api/cart", nil, map[string]string{"X-Anonymous-Id": "owner-7"})

	if got := rec.Header().Get("X-Anonymous-Id"); got != "owner-7" {
		t.Fatalf("expected owner id echoed back, got %q", got)
	}
}

func TestGetCartRendersTotals(t *testing.T) {
	deps, cart, _, _, _ := defaultDeps()
	cart.cart = domain.Cart{Lines: []domain.CartLine{
		{ProductID: "p1", Name: "Copper Sheet", UnitPricePaise: 10000, StockLimit: 5, Quantity: 3},
	}}
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodGet, "/api/cart", nil, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var view cartView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.SubtotalPaise != 30000 {
		t.Fatalf("expected subtotal 30000 paise, got %d", view.SubtotalPaise)
	}
	if view.CODTotalPaise != 35000 {
		t.Fatalf("expected COD total 35000 paise, got %d", view.CODTotalPaise)
	}
	if view.PickupTotalPaise != 30000 {
		t.Fatalf("expected pickup total 30000 paise, got %d", view.PickupTotalPaise)
	}
	if len(view.Items) != 1 || view.Items[0].LineTotalPaise != 30000 {
		t.Fatalf("unexpected items: %+v", view.Items)
	}
}

func TestAddCartItemFetchesProduct(t *testing.T) {
	deps, cart, _, _, up := defaultDeps()
	up.product = domain.Product{ID: "p9", Name: "Zinc Ingot", PricePaise: 4200, Stock: 10}
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodPost, "/api/cart/items", map[string]any{"productId": "p9"}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(cart.added) != 1 || cart.added[0] != "p9" {
		t.Fatalf("expected product p9 added, got %v", cart.added)
	}
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	deps, _, _, _, up := defaultDeps()
	up.productErr = domain.ErrNotFound
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodPost, "/api/cart/items", map[string]any{"productId": "missing"}, nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAddCartItemOutOfStock(t *testing.T) {
	deps, cart, _, _, up := defaultDeps()
	up.product = domain.Product{ID: "p1", Name: "Lead Sheet", Stock: 0}
	cart.err = domain.ErrOutOfStock
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodPost, "/api/cart/items", map[string]any{"productId": "p1"}, nil)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestListProductsDegradesToEmpty(t *testing.T) {
	deps, _, _, _, up := defaultDeps()
	up.productErr = errors.New("upstream down")
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodGet, "/api/products", nil, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Products []productView `json:"products"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Products) != 0 {
		t.Fatalf("expected empty catalog, got %d products", len(body.Products))
	}
}

func TestCheckoutRequiresLogin(t *testing.T) {
	deps, _, _, co, _ := defaultDeps()
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodPost, "/api/checkout", map[string]any{"orderType": "COD"}, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(co.inputs) != 0 {
		t.Fatal("checkout should not be reached without a session")
	}
}

func TestCheckoutSubmitsWithSession(t *testing.T) {
	deps, _, sessions, co, _ := defaultDeps()
	sessions.sess = domain.Session{Token: "tok-1", User: &domain.User{ID: "u1", Name: "Asha"}}
	co.result = checkout.Result{OrderType: domain.OrderTypeCOD, TotalPaise: 55000, Address: "Asha, 9876543210, 42 Foundry Lane, Pune, MH - 411001"}
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodPost, "/api/checkout", map[string]any{
		"orderType": "COD",
		"name":      "Asha",
		"phone":     "9876543210",
		"street":    "42 Foundry Lane",
		"city":      "Pune",
		"state":     "MH",
		"pincode":   "411001",
	}, map[string]string{"X-Anonymous-Id": "owner-1"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(co.inputs) != 1 {
		t.Fatalf("expected one submission, got %d", len(co.inputs))
	}
	in := co.inputs[0]
	if in.OwnerID != "owner-1" || in.UserID != "u1" || in.Token != "tok-1" {
		t.Fatalf("unexpected checkout input: %+v", in)
	}
	var body struct {
		TotalPaise int64   `json:"totalPaise"`
		Total      float64 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.TotalPaise != 55000 || body.Total != 550 {
		t.Fatalf("expected total 55000 paise / 550 rupees, got %+v", body)
	}
}

func TestCheckoutValidationErrorIs400(t *testing.T) {
	deps, _, sessions, co, _ := defaultDeps()
	sessions.sess = domain.Session{Token: "tok-1", User: &domain.User{ID: "u1"}}
	co.err = &checkout.ValidationError{}
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodPost, "/api/checkout", map[string]any{"orderType": "COD"}, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCheckoutInFlightIs409(t *testing.T) {
	deps, _, sessions, co, _ := defaultDeps()
	sessions.sess = domain.Session{Token: "tok-1", User: &domain.User{ID: "u1"}}
	co.err = checkout.ErrSubmissionInFlight
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodPost, "/api/checkout", map[string]any{"orderType": "PICKUP", "name": "A", "phone": "9876543210"}, nil)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestMyOrdersRequiresLogin(t *testing.T) {
	deps, _, _, _, _ := defaultDeps()
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodGet, "/api/orders/my", nil, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUpstreamAPIErrorPassesThrough(t *testing.T) {
	deps, _, _, _, up := defaultDeps()
	up.ordersErr = &upstream.APIError{StatusCode: http.StatusForbidden, Message: "admin only"}
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodGet, "/api/admin/orders", nil, nil)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestDashboardAggregates(t *testing.T) {
	deps, _, _, _, up := defaultDeps()
	now := time.Now()
	up.orders = []domain.Order{
		{ID: "1", Status: domain.OrderStatusDelivered, OrderType: domain.OrderTypePickup, CreatedAt: now,
			Items: []domain.OrderItem{{ProductName: "Copper Sheet", Quantity: 2, PricePaise: 10000}}},
		{ID: "2", Status: domain.OrderStatusPending, OrderType: domain.OrderTypeCOD, CreatedAt: now,
			Items: []domain.OrderItem{{ProductName: "Zinc Ingot", Quantity: 1, PricePaise: 15000}}},
		{ID: "3", Status: domain.OrderStatusCancelled, OrderType: domain.OrderTypePickup, CreatedAt: now},
	}
	up.products = []domain.Product{
		{ID: "p1", Category: "Copper"},
		{ID: "p2", Category: "Copper"},
		{ID: "p3"},
	}
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodGet, "/api/admin/dashboard", nil, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var view dashboardView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.DeliveredOrders != 1 || view.PendingOrders != 1 || view.CancelledOrders != 1 {
		t.Fatalf("unexpected status counts: %+v", view)
	}
	if view.TotalRevenue != 200 {
		t.Fatalf("expected total revenue 200 rupees, got %v", view.TotalRevenue)
	}
	if view.RevenueToday != 200 {
		t.Fatalf("expected today's revenue 200 rupees, got %v", view.RevenueToday)
	}
	if len(view.RevenueByDate) != 1 {
		t.Fatalf("expected one revenue point, got %d", len(view.RevenueByDate))
	}
	if len(view.ProductsPerCategory) != 2 {
		t.Fatalf("expected two category buckets, got %+v", view.ProductsPerCategory)
	}
	if view.ProductsPerCategory[0].Category != "Copper" || view.ProductsPerCategory[0].Count != 2 {
		t.Fatalf("unexpected first bucket: %+v", view.ProductsPerCategory[0])
	}
	if view.ProductsPerCategory[1].Category != "Uncategorized" || view.ProductsPerCategory[1].Count != 1 {
		t.Fatalf("unexpected second bucket: %+v", view.ProductsPerCategory[1])
	}
}

func TestDashboardDegradesOnUpstreamFailure(t *testing.T) {
	deps, _, _, _, up := defaultDeps()
	up.ordersErr = errors.New("upstream down")
	up.productErr = errors.New("upstream down")
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodGet, "/api/admin/dashboard", nil, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var view dashboardView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.TotalRevenue != 0 || view.DeliveredOrders != 0 {
		t.Fatalf("expected a zeroed dashboard, got %+v", view)
	}
}

func TestLoginStoresSession(t *testing.T) {
	deps, _, sessions, _, up := defaultDeps()
	up.loginResult = upstream.LoginResult{Token: "tok-9", User: domain.User{ID: "u9", Name: "Ravi", Role: "ADMIN"}}
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{"email": "ravi@example.com", "password": "secret"}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if sessions.sess.Token != "tok-9" || sessions.sess.User == nil || sessions.sess.User.ID != "u9" {
		t.Fatalf("expected session stored, got %+v", sessions.sess)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	deps, _, _, _, up := defaultDeps()
	up.loginErr = &upstream.APIError{StatusCode: http.StatusUnauthorized, Message: "invalid credentials"}
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{"email": "x@example.com", "password": "bad"}, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	deps, _, _, _, _ := defaultDeps()
	router := testRouter(deps)

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
