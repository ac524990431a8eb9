package domain

import "time"

// Product is a catalog entry. Carts and orders reference it by id and copy
// the fields they need; they never mutate it.
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Slug           string            `json:"slug"`
	Description    string            `json:"description,omitempty"`
	Price          int64             `json:"price"`
	Category       string            `json:"category,omitempty"`
	Images         []string          `json:"images,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Thumbnail returns the product's primary image, or "" if it has none.
func (p *Product) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
