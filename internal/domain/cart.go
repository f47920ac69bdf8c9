package domain

// CartLine is one product entry in a cart. Display metadata and the price and
// stock bounds are copied from the catalog product at add time and are not
// refreshed if the catalog changes afterwards.
type CartLine struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	ImageURL       string `json:"imageUrl,omitempty"`
	Description    string `json:"description,omitempty"`
	Category       string `json:"category,omitempty"`
	UnitPricePaise int64  `json:"unitPricePaise"`
	StockLimit     int    `json:"stockLimit"`
	Quantity       int    `json:"quantity"`
}

// Cart holds lines in insertion order. A cart never contains more than one
// line per product id, and every line satisfies 1 <= Quantity <= StockLimit.
type Cart struct {
	OwnerID string     `json:"-"`
	Lines   []CartLine `json:"lines"`
}

// Line returns the line for productID, if present.
func (c Cart) Line(productID string) (CartLine, bool) {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
