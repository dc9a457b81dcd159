package models

import "time"

// Professional is the practitioner-side record. Availability windows live in
// their own collection, keyed by the professional id.
type Professional struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Specialty string    `bson:"specialty" json:"specialty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
