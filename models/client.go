package models

import "time"

// Client is the patient-side record. History holds the ids of reservations the
// client has made, including cancelled ones until they are deleted.
type Client struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	History   []string  `bson:"history" json:"history"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
