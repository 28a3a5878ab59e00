package models

import (
	"time"
)

// Complaint represents a single reported urban/environmental infraction
// (a "denúncia"). The numeric ID is assigned by the database and is the
// authoritative internal identifier; ExternalID is the human-facing
// "NNNN/YYYY" number derived from it at creation time. Both are immutable
// once the row exists, as is CreatedAt.
//
// Rows are hard-deleted: removing a complaint must really remove it and
// its recurrences, so no soft-delete column is used.
type Complaint struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ExternalID   string    `gorm:"uniqueIndex;not null" json:"external_id"`
	CreatedAt    time.Time `json:"created_at"`
	Origin       string    `gorm:"not null" json:"origin"`
	Category     string    `gorm:"not null" json:"category"`
	Street       string    `json:"street"`
	HouseNumber  string    `json:"house_number"`
	Neighborhood string    `json:"neighborhood"`
	Zone         string    `json:"zone"`
	Latitude     string    `json:"latitude"`  // free-text coordinate, never parsed
	Longitude    string    `json:"longitude"` // free-text coordinate, never parsed
	Description  string    `gorm:"type:text" json:"description"`
	ReceivedBy   string    `json:"received_by"`
	Status       string    `gorm:"not null;default:'Pendente'" json:"status"`
	NightAction  bool      `gorm:"not null;default:false" json:"night_action"`
	UpdatedAt    time.Time `json:"updated_at"`

	// RecurrenceCount is filled by the listing query from a correlated
	// subquery; it is never stored.
	RecurrenceCount int64 `gorm:"->;-:migration" json:"recurrence_count"`

	Recurrences []Recurrence `gorm:"foreignKey:ComplaintID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for the Complaint model
func (Complaint) TableName() string {
	return "complaints"
}

// Recurrence is a follow-up note recording that the same issue was reported
// again ("reincidência"). Recurrences are exclusively owned by their parent
// complaint, append-only, and ordered by creation time.
type Recurrence struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ComplaintID uint      `gorm:"not null;index" json:"complaint_id"`
	CreatedAt   time.Time `json:"created_at"`
	Source      string    `json:"source"`
	Description string    `gorm:"type:text" json:"description"`
}

// TableName specifies the table name for the Recurrence model
func (Recurrence) TableName() string {
	return "recurrences"
}
