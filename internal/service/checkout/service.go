package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"

	"metalmarket-storefront/internal/domain"
	"metalmarket-storefront/internal/service/pricing"
	"metalmarket-storefront/internal/upstream"
)

var (
	// ErrEmptyCart rejects submissions with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSubmissionInFlight rejects a second submission for the same owner
	// while one is still pending, so a double click cannot double-submit.
	ErrSubmissionInFlight = errors.New("order submission already in progress")
)

// ValidationError marks user-fixable input problems so the HTTP layer can
// render them as 400s.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErr(msg string) error { return &ValidationError{msg: msg} }

var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

type cartStore interface {
	Get(ctx context.Context, ownerID string) (domain.Cart, error)
	Clear(ctx context.Context, ownerID string) (domain.Cart, error)
}

type orderPlacer interface {
	PlaceOrder(ctx context.Context, token string, in upstream.PlaceOrderInput) error
}

// Service is the submission boundary between the cart and the upstream order
// API. It validates before submitting, keeps at most one submission in
// flight per owner, and clears the cart only after the upstream accepts.
type Service struct {
	carts  cartStore
	orders orderPlacer
	logger *log.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

func New(carts cartStore, orders orderPlacer, logger *log.Logger) *Service {
	return &Service{
		carts:    carts,
		orders:   orders,
		logger:   logger,
		inFlight: make(map[string]bool),
	}
}

// Input is one checkout submission. The address fields apply to COD;
// pickup needs the contact fields only.
type Input struct {
	OwnerID   string
	UserID    string
	Token     string
	OrderType domain.OrderType
	Name      string
	Phone     string
	Street    string
	City      string
	State     string
	Pincode   string
}

// Result reports what was submitted.
type Result struct {
	OrderType  domain.OrderType
	TotalPaise int64
	Address    string
}

// Submit validates and places the order. The cart is left untouched on any
// failure; on success it is cleared.
func (s *Service) Submit(ctx context.Context, in Input) (Result, error) {
	if !s.begin(in.OwnerID) {
		return Result{}, ErrSubmissionInFlight
	}
	defer s.end(in.OwnerID)

	cart, err := s.carts.Get(ctx, in.OwnerID)
	if err != nil {
		return Result{}, fmt.Errorf("read cart: %w", err)
	}
	if cart.IsEmpty() {
		return Result{}, ErrEmptyCart
	}

	address, err := validate(in)
	if err != nil {
		return Result{}, err
	}

	total, err := pricing.PayableTotal(cart, in.OrderType)
	if err != nil {
		return Result{}, err
	}

	items := make([]upstream.OrderLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, upstream.OrderLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	err = s.orders.PlaceOrder(ctx, in.Token, upstream.PlaceOrderInput{
		UserID:    in.UserID,
		OrderType: in.OrderType,
		Items:     items,
		Address:   address,
	})
	if err != nil {
		return Result{}, err
	}

	// The order is accepted; a failed cart clear must not fail the checkout.
	if _, err := s.carts.Clear(ctx, in.OwnerID); err != nil {
		s.logger.Printf("clear cart for %s after checkout: %v", in.OwnerID, err)
	}

	return Result{OrderType: in.OrderType, TotalPaise: total, Address: address}, nil
}

// validate enforces the pre-submission rules and renders the COD address
// line. It returns the address ("" for pickup) or a user-visible error.
func validate(in Input) (string, error) {
	switch in.OrderType {
	case domain.OrderTypeCOD:
		for _, field := range []string{in.Name, in.Phone, in.Street, in.City, in.State, in.Pincode} {
			if strings.TrimSpace(field) == "" {
				return "", validationErr("please fill all delivery address fields")
			}
		}
		if !phonePattern.MatchString(strings.TrimSpace(in.Phone)) {
			return "", validationErr("please enter a valid 10-digit phone number")
		}
		return fmt.Sprintf("%s, %s, %s, %s, %s - %s",
			strings.TrimSpace(in.Name), strings.TrimSpace(in.Phone), strings.TrimSpace(in.Street),
			strings.TrimSpace(in.City), strings.TrimSpace(in.State), strings.TrimSpace(in.Pincode)), nil
	case domain.OrderTypePickup:
		if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Phone) == "" {
			return "", validationErr("please provide contact name and phone number")
		}
		if !phonePattern.MatchString(strings.TrimSpace(in.Phone)) {
			return "", validationErr("please enter a valid 10-digit phone number")
		}
		return "", nil
	case domain.OrderTypeUPI:
		return "", pricing.ErrOrderTypeUnavailable
	default:
		return "", validationErr(fmt.Sprintf("unsupported order type %q", in.OrderType))
	}
}

func (s *Service) begin(ownerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[ownerID] {
		return false
	}
	s.inFlight[ownerID] = true
	return true
}

func (s *Service) end(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, ownerID)
}
