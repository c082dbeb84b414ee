package models

import "gorm.io/gorm"

type Roommate struct {
	gorm.Model
	FirstName string `json:"firstName" gorm:"not null"`
	LastName  string `json:"lastName" gorm:"not null"`
	// Same duplicate guard as Housing: normalized "first last" unique per
	// institution, partial so soft-deleted rows release their name.
	NameNormalized string      `json:"-" gorm:"not null;uniqueIndex:idx_roommate_institution_name,where:deleted_at IS NULL"`
	InstitutionID  uint        `json:"institutionID" gorm:"not null;index;uniqueIndex:idx_roommate_institution_name"`
	Institution    Institution `json:"-" gorm:"foreignKey:InstitutionID"`
	CreatorID      uint        `json:"creatorID" gorm:"index"`
	Reviews        []Review    `json:"reviews,omitempty" gorm:"foreignKey:RoommateID"`
}

// FullName is the display name search results are grouped under.
func (r Roommate) FullName() string {
	return r.FirstName + " " + r.LastName
}
