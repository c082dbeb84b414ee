package routes

import (
	"rate-my-roommate-server/models"
	"rate-my-roommate-server/storage"
	"rate-my-roommate-server/utils"

	"github.com/kataras/iris/v12"
)

type CreateReviewInput struct {
	HousingID  uint   `json:"housingId" validate:"required"`
	UnitSuffix string `json:"unitSuffix" validate:"max=32"`

	OverallRating        int `json:"overallRating" validate:"required,min=1,max=5"`
	NoiseRating          int `json:"noiseRating" validate:"required,min=1,max=5"`
	CleanlinessRating    int `json:"cleanlinessRating" validate:"required,min=1,max=5"`
	CommunicationRating  int `json:"communicationRating" validate:"required,min=1,max=5"`
	ResponsibilityRating int `json:"responsibilityRating" validate:"required,min=1,max=5"`

	SleepPattern       string `json:"sleepPattern" validate:"required,oneof=early_bird night_owl irregular"`
	GuestFrequency     string `json:"guestFrequency" validate:"required,oneof=never rarely sometimes often"`
	StudyCompatibility string `json:"studyCompatibility" validate:"required,oneof=quiet moderate social"`

	HasPets        *bool  `json:"hasPets"`
	PetDetails     string `json:"petDetails" validate:"max=256"`
	WouldRecommend *bool  `json:"wouldRecommend" validate:"required"`
	Comment        string `json:"comment" validate:"max=2000"`
}

type ReviewSummary struct {
	AverageRating            float64 `json:"averageRating"`
	RecommendationPercentage float64 `json:"recommendationPercentage"`
	ReviewCount              int     `json:"reviewCount"`
}

// CreateRoommateReview records a review of a roommate at a housing+unit.
// All field validation runs before any business logic or write.
func CreateRoommateReview(ctx iris.Context) {
	userID := contextUserID(ctx)
	institutionID := contextInstitutionID(ctx)

	roommateID := ctx.Params().GetUintDefault("id", 0)
	if roommateID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid roommate ID.", ctx)
		return
	}

	var input CreateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var roommate models.Roommate
	if err := storage.DB.Where("institution_id = ?", institutionID).First(&roommate, roommateID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Roommate not found.", ctx)
		return
	}

	var housing models.Housing
	if err := storage.DB.Where("institution_id = ?", institutionID).First(&housing, input.HousingID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Housing not found.", ctx)
		return
	}

	review := models.Review{
		RoommateID:           roommate.ID,
		HousingID:            housing.ID,
		UnitSuffix:           input.UnitSuffix,
		AuthorID:             userID,
		OverallRating:        input.OverallRating,
		NoiseRating:          input.NoiseRating,
		CleanlinessRating:    input.CleanlinessRating,
		CommunicationRating:  input.CommunicationRating,
		ResponsibilityRating: input.ResponsibilityRating,
		SleepPattern:         input.SleepPattern,
		GuestFrequency:       input.GuestFrequency,
		StudyCompatibility:   input.StudyCompatibility,
		HasPets:              input.HasPets,
		PetDetails:           input.PetDetails,
		WouldRecommend:       *input.WouldRecommend,
		Comment:              input.Comment,
	}

	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "review", review.ID, review)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": review})
}

// ListRoommateReviews returns non-deleted reviews for a roommate, newest
// first, with summary statistics.
func ListRoommateReviews(ctx iris.Context) {
	institutionID := contextInstitutionID(ctx)

	roommateID := ctx.Params().GetUintDefault("id", 0)
	if roommateID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid roommate ID.", ctx)
		return
	}

	var roommate models.Roommate
	if err := storage.DB.Where("institution_id = ?", institutionID).First(&roommate, roommateID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Roommate not found.", ctx)
		return
	}

	var reviews []models.Review
	if err := storage.DB.Preload("Housing").
		Where("roommate_id = ?", roommateID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	summary := summarizeReviews(reviews)

	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			"reviews":                  reviews,
			"averageRating":            summary.AverageRating,
			"recommendationPercentage": summary.RecommendationPercentage,
			"reviewCount":              summary.ReviewCount,
		},
	})
}

// DeleteReview soft-deletes a review. Author or admin only.
func DeleteReview(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	userID := contextUserID(ctx)
	role := contextRole(ctx)

	var review models.Review
	if err := storage.DB.First(&review, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if review.AuthorID != userID && role != "admin" {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "only the author or an admin can delete"})
		return
	}

	if err := storage.DB.Delete(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "soft_delete", "review", review.ID, nil)

	ctx.StatusCode(iris.StatusNoContent)
}

func summarizeReviews(reviews []models.Review) ReviewSummary {
	if len(reviews) == 0 {
		return ReviewSummary{}
	}

	var totalStars, recommended float64
	for _, r := range reviews {
		totalStars += float64(r.OverallRating)
		if r.WouldRecommend {
			recommended++
		}
	}

	count := float64(len(reviews))
	return ReviewSummary{
		AverageRating:            totalStars / count,
		RecommendationPercentage: recommended / count * 100,
		ReviewCount:              len(reviews),
	}
}
