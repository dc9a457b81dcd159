package models

import "time"

// Roles recognised by the platform.
const (
	RoleClient       = "CLIENT"
	RoleProfessional = "PROFESSIONAL"
	RoleAdmin        = "ADMIN"
)

// User represents a platform account. Clients and professionals each reference
// exactly one User for identity and login.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
