// Package pricing derives display and checkout totals from a cart. All
// functions are pure and total over carts the store can produce.
package pricing

import (
	"errors"
	"fmt"

	"metalmarket-storefront/internal/domain"
)

// ErrOrderTypeUnavailable rejects UPI submissions until the payment
// integration ships.
var ErrOrderTypeUnavailable = errors.New("UPI payments coming soon")

// LineTotal is the price of one cart line.
func LineTotal(line domain.CartLine) int64 {
	return line.UnitPricePaise * int64(line.Quantity)
}

// CartSubtotal sums line totals over the cart.
func CartSubtotal(cart domain.Cart) int64 {
	var sum int64
	for _, line := range cart.Lines {
		sum += LineTotal(line)
	}
	return sum
}

// PayableTotal is the amount due at submission for the selected order type.
// COD adds the fixed surcharge; pickup pays the subtotal as-is. UPI is
// rejected here as a backstop, the checkout boundary refuses it earlier.
func PayableTotal(cart domain.Cart, orderType domain.OrderType) (int64, error) {
	switch orderType {
	case domain.OrderTypeCOD:
		return CartSubtotal(cart) + domain.CODSurchargePaise, nil
	case domain.OrderTypePickup:
		return CartSubtotal(cart), nil
	case domain.OrderTypeUPI:
		return 0, ErrOrderTypeUnavailable
	default:
		return 0, fmt.Errorf("unsupported order type %q", orderType)
	}
}
