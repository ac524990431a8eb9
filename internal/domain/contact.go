package domain

import "time"

// ContactMessage is a message submitted through the storefront contact form.
// CreatedBy is set when the sender was signed in.
type ContactMessage struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
