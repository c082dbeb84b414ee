package models

import "gorm.io/gorm"

// Categorical review fields use fixed enumerations; handlers validate them
// before any row is written.
const (
	SleepEarlyBird = "early_bird"
	SleepNightOwl  = "night_owl"
	SleepIrregular = "irregular"

	GuestsNever     = "never"
	GuestsRarely    = "rarely"
	GuestsSometimes = "sometimes"
	GuestsOften     = "often"

	StudyQuiet    = "quiet"
	StudyModerate = "moderate"
	StudySocial   = "social"
)

type Review struct {
	gorm.Model
	RoommateID uint     `json:"roommateID" gorm:"not null;index"`
	Roommate   Roommate `json:"-" gorm:"foreignKey:RoommateID"`
	// Housing + unit suffix identify where the reviewer lived with the subject.
	HousingID  uint    `json:"housingID" gorm:"not null;index"`
	Housing    Housing `json:"housing,omitempty" gorm:"foreignKey:HousingID"`
	UnitSuffix string  `json:"unitSuffix" gorm:"size:32"`
	AuthorID   uint    `json:"authorID" gorm:"not null;index"`
	Author     User    `json:"author,omitempty" gorm:"foreignKey:AuthorID"`

	OverallRating        int `json:"overallRating" gorm:"not null;check:overall_rating >= 1 AND overall_rating <= 5"`
	NoiseRating          int `json:"noiseRating" gorm:"not null;check:noise_rating >= 1 AND noise_rating <= 5"`
	CleanlinessRating    int `json:"cleanlinessRating" gorm:"not null;check:cleanliness_rating >= 1 AND cleanliness_rating <= 5"`
	CommunicationRating  int `json:"communicationRating" gorm:"not null;check:communication_rating >= 1 AND communication_rating <= 5"`
	ResponsibilityRating int `json:"responsibilityRating" gorm:"not null;check:responsibility_rating >= 1 AND responsibility_rating <= 5"`

	SleepPattern       string `json:"sleepPattern" gorm:"size:32;not null"`
	GuestFrequency     string `json:"guestFrequency" gorm:"size:32;not null"`
	StudyCompatibility string `json:"studyCompatibility" gorm:"size:32;not null"`

	HasPets        *bool  `json:"hasPets"`
	PetDetails     string `json:"petDetails" gorm:"size:256"`
	WouldRecommend bool   `json:"wouldRecommend"`
	Comment        string `json:"comment" gorm:"type:text"`
}
