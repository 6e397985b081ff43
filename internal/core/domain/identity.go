package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleMerchant = "merchant"
)

// Identity models an authenticated account holder.
type Identity struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// IsAdmin reports whether the identity may use the admin console.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
