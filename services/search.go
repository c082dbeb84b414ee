package services

// RoommateSearchRow is one row of the pre-joined roommate search view:
// one entry per (subject, housing, unit) pairing with its review aggregates.
// A subject that has never been reviewed still yields a single row with a
// zero ReviewCount and no housing.
type RoommateSearchRow struct {
	RoommateID               uint    `json:"roommateID"`
	FullName                 string  `json:"fullName"`
	HousingID                *uint   `json:"housingID"`
	HousingName              string  `json:"housingName"`
	UnitSuffix               string  `json:"unitSuffix"`
	AvgRating                float64 `json:"avgRating"`
	RecommendationPercentage float64 `json:"recommendationPercentage"`
	ReviewCount              int     `json:"reviewCount"`
	ReviewYear               int     `json:"reviewYear"` // year of most recent review, 0 if none
}

// RoommateGroup is a presentational bucket of rows sharing an exact display
// name. It does not imply the underlying rows belong to the same person.
type RoommateGroup struct {
	FullName string              `json:"fullName"`
	Profiles []RoommateSearchRow `json:"profiles"`
	// Reviewless is set when the group is a single profile with no reviews,
	// so the UI can show "no reviews yet" from group shape alone.
	Reviewless bool `json:"reviewless"`
}

// GroupRoommateRows buckets rows by exact full name. Keys are byte-equal
// strings, deliberately not normalized: "Jane Doe" and "jane doe" form two
// groups. Groups appear in first-appearance order of their name and rows keep
// their incoming order, so concatenating all groups yields a permutation-free
// regrouping of the input.
func GroupRoommateRows(rows []RoommateSearchRow) []RoommateGroup {
	index := make(map[string]int, len(rows))
	groups := make([]RoommateGroup, 0, len(rows))

	for _, row := range rows {
		i, ok := index[row.FullName]
		if !ok {
			groups = append(groups, RoommateGroup{FullName: row.FullName})
			i = len(groups) - 1
			index[row.FullName] = i
		}
		groups[i].Profiles = append(groups[i].Profiles, row)
	}

	for i := range groups {
		groups[i].Reviewless = len(groups[i].Profiles) == 1 && groups[i].Profiles[0].ReviewCount == 0
	}

	return groups
}
