package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"metalmarket-storefront/internal/domain"
)

// SlotName is the storage slot carts are persisted under.
const SlotName = "cart"

type slotRepo interface {
	Read(ctx context.Context, ownerID, name string) ([]byte, error)
	Write(ctx context.Context, ownerID, name string, payload []byte) error
}

// Service owns cart state per owner. Every mutation rewrites the whole cart
// to storage before it becomes visible and then notifies subscribers, so
// readers only ever observe completed, persisted mutations; a failed write
// leaves the previous cart in place.
//
// Misuse never errors: removing an absent line is a no-op, quantities past
// stock are clamped. Only storage failures and adding a zero-stock product
// are surfaced.
type Service struct {
	slots  slotRepo
	logger *log.Logger

	mu      sync.Mutex
	carts   map[string][]domain.CartLine
	subs    map[int]func(domain.Cart)
	nextSub int
}

func New(slots slotRepo, logger *log.Logger) *Service {
	return &Service{
		slots:  slots,
		logger: logger,
		carts:  make(map[string][]domain.CartLine),
		subs:   make(map[int]func(domain.Cart)),
	}
}

// Subscribe registers fn to run after every completed mutation. The returned
// func unregisters it. fn runs outside the service lock, so it may call back
// into the service.
func (s *Service) Subscribe(fn func(domain.Cart)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Get returns the current cart for ownerID, restoring it from storage on
// first access.
func (s *Service) Get(ctx context.Context, ownerID string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines, err := s.load(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.snapshot(ownerID, lines), nil
}

// Add puts quantity units of product into the cart. An existing line for the
// same product is merged by adding, clamped to the stock limit copied at the
// original add. quantity below 1 is the quick-add case and counts as 1.
func (s *Service) Add(ctx context.Context, ownerID string, product domain.Product, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	lines, err := s.load(ctx, ownerID)
	if err != nil {
		s.mu.Unlock()
		return domain.Cart{}, err
	}

	next := cloneLines(lines)
	merged := false
	for i, l := range next {
		if l.ProductID != product.ID {
			continue
		}
		next[i].Quantity = clamp(l.Quantity+quantity, l.StockLimit)
		merged = true
		break
	}
	if !merged {
		if product.Stock <= 0 {
			cart := s.snapshot(ownerID, lines)
			s.mu.Unlock()
			return cart, domain.ErrOutOfStock
		}
		next = append(next, domain.CartLine{
			ProductID:      product.ID,
			Name:           product.Name,
			ImageURL:       product.ImageURL,
			Description:    product.Description,
			Category:       product.Category,
			UnitPricePaise: product.PricePaise,
			StockLimit:     product.Stock,
			Quantity:       clamp(quantity, product.Stock),
		})
	}

	return s.commitAndNotify(ctx, ownerID, next)
}

// UpdateQuantity sets the quantity of an existing line. Zero or negative
// removes the line; anything past the stock limit is clamped back to it.
// An unknown productID is a no-op: nothing is persisted, nobody notified.
func (s *Service) UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) (domain.Cart, error) {
	s.mu.Lock()
	lines, err := s.load(ctx, ownerID)
	if err != nil {
		s.mu.Unlock()
		return domain.Cart{}, err
	}

	if quantity <= 0 {
		next, removed := withoutLine(lines, productID)
		if !removed {
			cart := s.snapshot(ownerID, lines)
			s.mu.Unlock()
			return cart, nil
		}
		return s.commitAndNotify(ctx, ownerID, next)
	}

	next := cloneLines(lines)
	matched := false
	for i, l := range next {
		if l.ProductID == productID {
			next[i].Quantity = clamp(quantity, l.StockLimit)
			matched = true
			break
		}
	}
	if !matched {
		cart := s.snapshot(ownerID, lines)
		s.mu.Unlock()
		return cart, nil
	}
	return s.commitAndNotify(ctx, ownerID, next)
}

// Remove deletes the line for productID. Absent lines are a no-op.
func (s *Service) Remove(ctx context.Context, ownerID, productID string) (domain.Cart, error) {
	s.mu.Lock()
	lines, err := s.load(ctx, ownerID)
	if err != nil {
		s.mu.Unlock()
		return domain.Cart{}, err
	}
	next, removed := withoutLine(lines, productID)
	if !removed {
		cart := s.snapshot(ownerID, lines)
		s.mu.Unlock()
		return cart, nil
	}
	return s.commitAndNotify(ctx, ownerID, next)
}

// Clear empties the cart unconditionally.
func (s *Service) Clear(ctx context.Context, ownerID string) (domain.Cart, error) {
	s.mu.Lock()
	return s.commitAndNotify(ctx, ownerID, nil)
}

// load returns the in-memory lines for ownerID, reading the storage slot on
// first access. A corrupt payload degrades to an empty cart. The caller must
// hold s.mu; the returned slice is the cached one and must not be mutated.
func (s *Service) load(ctx context.Context, ownerID string) ([]domain.CartLine, error) {
	if lines, ok := s.carts[ownerID]; ok {
		return lines, nil
	}
	payload, err := s.slots.Read(ctx, ownerID, SlotName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.carts[ownerID] = nil
			return nil, nil
		}
		return nil, err
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(payload, &lines); err != nil {
		s.logger.Printf("cart slot for %s is unreadable, starting empty: %v", ownerID, err)
		lines = nil
	}
	s.carts[ownerID] = lines
	return lines, nil
}

// commitAndNotify persists lines and only then installs them as the current
// cart, so a failed write keeps the previous cart visible. The caller must
// hold s.mu; it is released here and subscribers run unlocked.
func (s *Service) commitAndNotify(ctx context.Context, ownerID string, lines []domain.CartLine) (domain.Cart, error) {
	cart := s.snapshot(ownerID, lines)

	payload, err := json.Marshal(cart.Lines)
	if err != nil {
		s.mu.Unlock()
		return domain.Cart{}, err
	}
	if err := s.slots.Write(ctx, ownerID, SlotName, payload); err != nil {
		s.mu.Unlock()
		return domain.Cart{}, err
	}
	s.carts[ownerID] = lines

	subs := make([]func(domain.Cart), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(cart)
	}
	return cart, nil
}

func (s *Service) snapshot(ownerID string, lines []domain.CartLine) domain.Cart {
	return domain.Cart{OwnerID: ownerID, Lines: cloneLines(lines)}
}

func cloneLines(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out
}

// withoutLine returns a copy without productID's line and whether anything
// was removed.
func withoutLine(lines []domain.CartLine, productID string) ([]domain.CartLine, bool) {
	out := make([]domain.CartLine, 0, len(lines))
	removed := false
	for _, l := range lines {
		if l.ProductID == productID {
			removed = true
			continue
		}
		out = append(out, l)
	}
	return out, removed
}

func clamp(quantity, stockLimit int) int {
	if quantity > stockLimit {
		return stockLimit
	}
	if quantity < 1 {
		return 1
	}
	return quantity
}
