package model

// Money is an amount in a backend-defined currency.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// ProductVariant is a purchasable variation as listed on a product detail.
type ProductVariant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price *Money `json:"price,omitempty"`
}

// Product is a catalog entry as the backend returns it for listing and
// detail views. Description carries the raw rich-text payload untouched.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description,omitempty"`
	Thumbnail   string           `json:"thumbnail,omitempty"`
	Price       *Money           `json:"price,omitempty"`
	Category    *Category        `json:"category,omitempty"`
	Variants    []ProductVariant `json:"variants,omitempty"`
}

// Category is a catalog grouping.
type Category struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
}
