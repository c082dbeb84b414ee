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

type CreateRoommateInput struct {
	FirstName string `json:"firstName" validate:"required,max=256"`
	LastName  string `json:"lastName" validate:"required,max=256"`
	CallerID  uint   `json:"callerId" validate:"required"`
}

// CreateRoommate applies the same duplicate policy as housing creation: the
// normalized "first last" display name must be unique within the institution.
func CreateRoommate(ctx iris.Context) {
	var input CreateRoommateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "First and last name are required.", ctx)
		return
	}

	caller, institutionID := resolveCallerInstitution(input.CallerID, ctx)
	if caller == nil {
		return
	}

	normalized := utils.NormalizeName(firstName + " " + lastName)

	var existing []models.Roommate
	if err := storage.DB.Where("institution_id = ?", institutionID).Find(&existing).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	for _, r := range existing {
		if utils.NormalizeName(r.FullName()) == normalized {
			utils.CreateDuplicate(r.FullName(), normalized, ctx)
			return
		}
	}

	roommate := models.Roommate{
		FirstName:      firstName,
		LastName:       lastName,
		NameNormalized: normalized,
		InstitutionID:  institutionID,
		CreatorID:      caller.ID,
	}

	if err := storage.DB.Create(&roommate).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			duplicateName := normalized
			var winner models.Roommate
			if storage.DB.Where("institution_id = ? AND name_normalized = ?", institutionID, normalized).
				First(&winner).Error == nil {
				duplicateName = winner.FullName()
			}
			utils.CreateDuplicate(duplicateName, normalized, ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "roommate", roommate.ID, roommate)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(roommate)
}

func GetRoommate(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	institutionID := contextInstitutionID(ctx)

	var roommate models.Roommate
	if err := storage.DB.Where("institution_id = ?", institutionID).First(&roommate, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(roommate)
}

// DeleteRoommate soft-deletes a record. Creator or admin only.
func DeleteRoommate(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	userID := contextUserID(ctx)
	role := contextRole(ctx)

	var roommate models.Roommate
	if err := storage.DB.First(&roommate, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if roommate.CreatorID != userID && role != "admin" {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "only the creator or an admin can delete"})
		return
	}

	if err := storage.DB.Delete(&roommate).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "soft_delete", "roommate", roommate.ID, nil)

	ctx.StatusCode(iris.StatusNoContent)
}
