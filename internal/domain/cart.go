package domain

import (
	"fmt"
	"time"
)

// CartOwner identifies who a cart is filed under: an authenticated user or an
// anonymous browser session. Exactly one of the two fields is set.
type CartOwner struct {
	UserID string
	CartID string
}

// OwnerForUser builds the owner key for an authenticated user.
func OwnerForUser(userID string) CartOwner {
	return CartOwner{UserID: userID}
}

// OwnerForGuest builds the owner key for an anonymous session cart.
func OwnerForGuest(cartID string) CartOwner {
	return CartOwner{CartID: cartID}
}

// IsZero reports whether no identity is set.
func (o CartOwner) IsZero() bool {
	return o.UserID == "" && o.CartID == ""
}

// Anonymous reports whether the owner is an anonymous session.
func (o CartOwner) Anonymous() bool {
	return o.UserID == "" && o.CartID != ""
}

// Key returns the storage key for the owner. User and guest namespaces are
// disjoint, so an anonymous cart can never shadow a user cart.
func (o CartOwner) Key() string {
	if o.UserID != "" {
		return fmt.Sprintf("user:%s", o.UserID)
	}
	return fmt.Sprintf("guest:%s", o.CartID)
}

// Cart holds the line items a shopper has picked out. At most one cart exists
// per owner; it is created lazily on first add and deleted on clear.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id,omitempty"`
	CartID    string     `json:"cart_id,omitempty"`
	Items     []CartItem `json:"cart_items"`
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// CartItem is one product line in a cart. Product data is denormalized at add
// time; the catalog entry is referenced, never owned.
type CartItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Owner reconstructs the cart's owner identity.
func (c *Cart) Owner() CartOwner {
	if c.UserID != "" {
		return OwnerForUser(c.UserID)
	}
	return OwnerForGuest(c.CartID)
}

// TotalPrice sums price times quantity over all lines, in cents.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItem returns the index of the line for the given product, or -1.
// Lines are unique by product id.
func (c *Cart) FindItem(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
