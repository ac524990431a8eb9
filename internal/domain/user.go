package domain

import "time"

// Role constants. The role set is closed; updates outside it are rejected.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// IsValidRole checks whether the given string is an allowed user role.
func IsValidRole(role string) bool {
	return role == RoleCustomer || role == RoleAdmin
}

// User is a registered storefront account.
type User struct {
	ID           string    `json:"id"`
	Fullname     string    `json:"fullname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthPayload is what a successful sign-in returns. UserID is for internal
// follow-up work (cart merge); it is not part of the client payload.
type AuthPayload struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID string `json:"-"`
}
