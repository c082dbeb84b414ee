package routes

import (
	"strconv"

	"rate-my-roommate-server/models"
	"rate-my-roommate-server/services"
	"rate-my-roommate-server/storage"
	"rate-my-roommate-server/utils"

	"github.com/kataras/iris/v12"
)

// roommateAggRow mirrors the pre-joined roommate search view: one row per
// (roommate, housing, unit) with review aggregates. LastReviewedAt is scanned
// as text so the same query works on postgres and the sqlite test driver.
type roommateAggRow struct {
	RoommateID               uint
	FirstName                string
	LastName                 string
	HousingID                *uint
	HousingName              *string
	UnitSuffix               *string
	AvgRating                *float64
	RecommendationPercentage *float64
	ReviewCount              int
	LastReviewedAt           *string
}

// Search dispatches on type: housing returns a flat filtered list, roommate
// returns grouped aggregate rows, anything else an empty result set.
func Search(ctx iris.Context) {
	institutionID := contextInstitutionID(ctx)

	searchType := ctx.URLParamDefault("type", "")
	nameFilter := ctx.URLParamDefault("roommateName", "")
	locationFilter := ctx.URLParamDefault("location", "")

	switch searchType {
	case "housing":
		searchHousing(ctx, institutionID, locationFilter)
	case "roommate":
		searchRoommates(ctx, institutionID, nameFilter, locationFilter)
	default:
		// Lenient contract: unsupported types are an empty result, not an error.
		ctx.JSON([]iris.Map{})
	}
}

func searchHousing(ctx iris.Context, institutionID uint, locationFilter string) {
	q := storage.DB.Model(&models.Housing{}).Where("institution_id = ?", institutionID)
	if locationFilter != "" {
		q = q.Where("lower(name) LIKE lower(?)", "%"+locationFilter+"%")
	}

	var housings []models.Housing
	if err := q.Order("name ASC").Find(&housings).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Search Failed", "Search failed.", ctx)
		return
	}

	ctx.JSON(housings)
}

func searchRoommates(ctx iris.Context, institutionID uint, nameFilter, locationFilter string) {
	q := storage.DB.Table("roommates").
		Select(`roommates.id AS roommate_id,
			roommates.first_name,
			roommates.last_name,
			housings.id AS housing_id,
			housings.name AS housing_name,
			reviews.unit_suffix,
			AVG(reviews.overall_rating) AS avg_rating,
			AVG(CASE WHEN reviews.would_recommend THEN 100.0 ELSE 0.0 END) AS recommendation_percentage,
			COUNT(reviews.id) AS review_count,
			MAX(reviews.created_at) AS last_reviewed_at`).
		Joins("LEFT JOIN reviews ON reviews.roommate_id = roommates.id AND reviews.deleted_at IS NULL").
		Joins("LEFT JOIN housings ON housings.id = reviews.housing_id AND housings.deleted_at IS NULL").
		Where("roommates.institution_id = ? AND roommates.deleted_at IS NULL", institutionID).
		Group("roommates.id, roommates.first_name, roommates.last_name, housings.id, housings.name, reviews.unit_suffix").
		Order("roommates.id ASC, last_reviewed_at DESC")

	if nameFilter != "" {
		q = q.Where("lower(roommates.first_name || ' ' || roommates.last_name) LIKE lower(?)", "%"+nameFilter+"%")
	}
	if locationFilter != "" {
		q = q.Where("lower(housings.name) LIKE lower(?)", "%"+locationFilter+"%")
	}

	var aggRows []roommateAggRow
	if err := q.Scan(&aggRows).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Search Failed", "Search failed.", ctx)
		return
	}

	rows := make([]services.RoommateSearchRow, 0, len(aggRows))
	for _, agg := range aggRows {
		row := services.RoommateSearchRow{
			RoommateID:  agg.RoommateID,
			FullName:    agg.FirstName + " " + agg.LastName,
			HousingID:   agg.HousingID,
			ReviewCount: agg.ReviewCount,
		}
		if agg.HousingName != nil {
			row.HousingName = *agg.HousingName
		}
		if agg.UnitSuffix != nil {
			row.UnitSuffix = *agg.UnitSuffix
		}
		if agg.AvgRating != nil {
			row.AvgRating = *agg.AvgRating
		}
		if agg.RecommendationPercentage != nil {
			row.RecommendationPercentage = *agg.RecommendationPercentage
		}
		if agg.ReviewCount > 0 && agg.LastReviewedAt != nil {
			row.ReviewYear = yearOf(*agg.LastReviewedAt)
		}
		rows = append(rows, row)
	}

	ctx.JSON(services.GroupRoommateRows(rows))
}

// yearOf extracts the year from a "YYYY-MM-DD..." timestamp string.
func yearOf(timestamp string) int {
	if len(timestamp) < 4 {
		return 0
	}
	year, err := strconv.Atoi(timestamp[:4])
	if err != nil {
		return 0
	}
	return year
}
