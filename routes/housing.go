package routes

import (
	"errors"
	"strings"

	"rate-my-roommate-server/models"
	"rate-my-roommate-server/storage"
	"rate-my-roommate-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type CreateHousingInput struct {
	Name     string `json:"name" validate:"required,max=256"`
	CallerID uint   `json:"callerId" validate:"required"`
}

// CreateHousing inserts a housing record for the caller's institution unless
// an existing record has the same normalized name. The insert stores the
// trimmed input with its original capitalization; only the comparison is
// case-folded. The composite unique index on (institution, normalized name)
// backstops the pre-check, so a racing duplicate insert also surfaces as 409.
func CreateHousing(ctx iris.Context) {
	var input CreateHousingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	trimmed := strings.TrimSpace(input.Name)
	if trimmed == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Housing name is required.", ctx)
		return
	}

	caller, institutionID := resolveCallerInstitution(input.CallerID, ctx)
	if caller == nil {
		return
	}

	normalized := utils.NormalizeName(input.Name)

	var existing []models.Housing
	if err := storage.DB.Where("institution_id = ?", institutionID).Find(&existing).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	for _, h := range existing {
		if utils.NormalizeName(h.Name) == normalized {
			utils.CreateDuplicate(h.Name, normalized, ctx)
			return
		}
	}

	housing := models.Housing{
		Name:           trimmed,
		NameNormalized: normalized,
		InstitutionID:  institutionID,
		CreatorID:      caller.ID,
	}

	if err := storage.DB.Create(&housing).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the check-then-act race; report the committed row.
			duplicateName := normalized
			var winner models.Housing
			if storage.DB.Where("institution_id = ? AND name_normalized = ?", institutionID, normalized).
				First(&winner).Error == nil {
				duplicateName = winner.Name
			}
			utils.CreateDuplicate(duplicateName, normalized, ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "housing", housing.ID, housing)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(housing)
}

// ListHousing returns the caller's institution-scoped non-deleted housing.
func ListHousing(ctx iris.Context) {
	institutionID := contextInstitutionID(ctx)

	var housings []models.Housing
	if err := storage.DB.Where("institution_id = ?", institutionID).
		Order("name ASC").Find(&housings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(housings)
}

func GetHousing(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	institutionID := contextInstitutionID(ctx)

	var housing models.Housing
	if err := storage.DB.Where("institution_id = ?", institutionID).First(&housing, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(housing)
}

// DeleteHousing soft-deletes a record. Creator or admin only.
func DeleteHousing(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	userID := contextUserID(ctx)
	role := contextRole(ctx)

	var housing models.Housing
	if err := storage.DB.First(&housing, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if housing.CreatorID != userID && role != "admin" {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "only the creator or an admin can delete"})
		return
	}

	if err := storage.DB.Delete(&housing).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "soft_delete", "housing", housing.ID, nil)

	ctx.StatusCode(iris.StatusNoContent)
}

// resolveCallerInstitution looks up the caller and their institution. Writes
// a 404 and returns nil when either is missing, per the creation contract.
func resolveCallerInstitution(callerID uint, ctx iris.Context) (*models.User, uint) {
	var caller models.User
	if err := storage.DB.First(&caller, callerID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Institution not found for caller.", ctx)
		return nil, 0
	}

	if caller.InstitutionID == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Institution not found for caller.", ctx)
		return nil, 0
	}

	return &caller, caller.InstitutionID
}
