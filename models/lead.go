package models

import (
	"time"
)

// Lead status lifecycle. The set is closed; anything else is rejected.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// Lead represents a customer inquiry submitted through the storefront.
// PreferredCar is free text, never a foreign key.
type Lead struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	FirstName         string    `gorm:"column:firstName;not null" json:"firstName"`
	LastName          string    `gorm:"column:lastName" json:"lastName"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	ContactPreference string    `gorm:"column:contactPreference" json:"contactPreference"`
	PreferredCar      string    `gorm:"column:preferredCar" json:"preferredCar"`
	Notes             string    `gorm:"type:text" json:"notes"`
	Status            string    `gorm:"index:idx_leads_status" json:"status"`
	CreatedAt         time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

// TableName specifies the table name for the Lead model
func (Lead) TableName() string {
	return "leads"
}

// LeadStatuses returns the closed set of valid lead statuses.
func LeadStatuses() []string {
	return []string{LeadStatusNew, LeadStatusContacted, LeadStatusConverted, LeadStatusLost}
}

// IsValidLeadStatus reports whether status is in the closed set.
func IsValidLeadStatus(status string) bool {
	switch status {
	case LeadStatusNew, LeadStatusContacted, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}
