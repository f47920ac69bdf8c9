package domain

// Product mirrors a catalog entry served by the upstream API. Stock is the
// purchasable upper bound copied into cart lines at add time.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	PricePaise  int64  `json:"pricePaise"`
	Stock       int    `json:"stock"`
}
