package models

// AvailabilityWindow is one block of open time for one professional on one
// calendar day. Windows are never mutated in place; changes are delete + re-add.
type AvailabilityWindow struct {
	ID             string `bson:"id" json:"id"`
	ProfessionalID string `bson:"professional_id" json:"professional_id"`
	Date           string `bson:"date" json:"date"`             // "2006-01-02"
	StartTime      string `bson:"start_time" json:"start_time"` // "HH:MM", strictly before EndTime
	EndTime        string `bson:"end_time" json:"end_time"`
}

// WindowInput is the payload shape for registering availability. Entries with
// any missing field are skipped rather than failing the whole batch.
type WindowInput struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// DaySlots pairs a calendar day with its bookable slot start times. Slots may
// be empty: a day with published windows but no free slots still appears, which
// is how callers tell "fully booked" from "nothing published".
type DaySlots struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}
