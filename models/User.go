package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	Email         string         `json:"email" gorm:"uniqueIndex"` // stored lowercase
	Password      string         `json:"-"`
	InstitutionID uint           `json:"institutionID" gorm:"not null;index"`
	Institution   Institution    `json:"institution,omitempty" gorm:"foreignKey:InstitutionID"`
	SavedHousings datatypes.JSON `json:"savedHousings"`
	Role          string         `json:"role" gorm:"type:varchar(20);default:user;index"` // user, admin
}

// Custom JSON marshaling so the JSON column renders as a plain ID array.
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		SavedHousings []uint `json:"savedHousings"`
		*Alias
	}{
		SavedHousings: []uint{},
		Alias:         (*Alias)(u),
	}

	if u.SavedHousings != nil {
		var saved []uint
		if err := json.Unmarshal(u.SavedHousings, &saved); err == nil {
			aux.SavedHousings = saved
		}
	}

	return json.Marshal(aux)
}
