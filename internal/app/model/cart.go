package model

// Variant identifies a purchasable variation of a product. Informational
// fields are snapshots taken when the line was added.
type Variant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CartItem is one line of the cart. Name, price and image are snapshots
// taken at add time and are not re-fetched from the backend.
type CartItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Quantity int      `json:"quantity"`
	Image    string   `json:"image,omitempty"`
	Variant  *Variant `json:"variant,omitempty"`
}

// VariantID returns the variant part of the line identity, empty when the
// line has no variant.
func (i CartItem) VariantID() string {
	if i.Variant == nil {
		return ""
	}
	return i.Variant.ID
}

// Subtotal returns price times quantity for this line.
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
