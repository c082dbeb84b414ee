package models

import "gorm.io/gorm"

// Institution scopes housing and roommate records and gates account
// registration by email domain. Rows are seeded externally and treated
// as read-only by the application.
type Institution struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	EmailDomain string `json:"emailDomain" gorm:"uniqueIndex;not null"` // e.g. "stateu.edu"
}
