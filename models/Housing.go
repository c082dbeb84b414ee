package models

import "gorm.io/gorm"

type Housing struct {
	gorm.Model
	Name string `json:"name" gorm:"not null"` // trimmed, original capitalization preserved
	// NameNormalized holds the trimmed + lowercased name. The composite unique
	// index is the authoritative duplicate guard: two concurrent creates can both
	// pass the handler's pre-check, but only one insert commits. The index is
	// partial so soft-deleted rows release their name.
	NameNormalized string      `json:"-" gorm:"not null;uniqueIndex:idx_housing_institution_name,where:deleted_at IS NULL"`
	InstitutionID  uint        `json:"institutionID" gorm:"not null;index;uniqueIndex:idx_housing_institution_name"`
	Institution    Institution `json:"-" gorm:"foreignKey:InstitutionID"`
	Verified       bool        `json:"verified" gorm:"default:false"` // managed externally
	CreatorID      uint        `json:"creatorID" gorm:"index"`
}
