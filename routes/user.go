package routes

import (
	"encoding/json"
	"errors"
	"strings"

	"rate-my-roommate-server/models"
	"rate-my-roommate-server/storage"
	"rate-my-roommate-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Register creates an account gated by email-domain verification: the email's
// domain must match a known institution, which becomes the account's scope.
func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	email := strings.ToLower(strings.TrimSpace(userInput.Email))

	institution, institutionErr := institutionForEmail(email)
	if institutionErr != nil {
		if errors.Is(institutionErr, gorm.ErrRecordNotFound) {
			utils.CreateError(iris.StatusNotFound, "Not Found", "No institution matches your email domain.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&newUser, email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	newUser = models.User{
		FirstName:     userInput.FirstName,
		LastName:      userInput.LastName,
		Email:         email,
		Password:      hashedPassword,
		InstitutionID: institution.ID,
	}

	if err := storage.DB.Create(&newUser).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	returnUser(newUser, ctx)
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	errorMsg := "Invalid email or password."
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnUser(existingUser, ctx)
}

// GetCurrentUser returns the authenticated user with institution preloaded.
func GetCurrentUser(ctx iris.Context) {
	userID := contextUserID(ctx)

	var user models.User
	if err := storage.DB.Preload("Institution").First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"user": &user})
}

func GetUserSavedHousings(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	user := getUserByID(id, ctx)
	if user == nil {
		return
	}

	var savedIDs []uint
	if user.SavedHousings != nil {
		if err := json.Unmarshal(user.SavedHousings, &savedIDs); err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	var housings []models.Housing
	if len(savedIDs) > 0 {
		if err := storage.DB.Where("id IN ?", savedIDs).Find(&housings).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	ctx.JSON(housings)
}

func AlterUserSavedHousings(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	user := getUserByID(id, ctx)
	if user == nil {
		return
	}

	var req AlterSavedHousingsInput
	err := ctx.ReadJSON(&req)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var housing models.Housing
	if err := storage.DB.First(&housing, req.HousingID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var saved []uint
	if user.SavedHousings != nil {
		if err := json.Unmarshal(user.SavedHousings, &saved); err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	var updated []uint
	if req.Op == "add" {
		updated = saved
		if !slices.Contains(saved, req.HousingID) {
			updated = append(saved, req.HousingID)
		}
	} else { // remove
		for _, housingID := range saved {
			if housingID != req.HousingID {
				updated = append(updated, housingID)
			}
		}
	}

	marshalled, marshalErr := json.Marshal(updated)
	if marshalErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	user.SavedHousings = marshalled
	if err := storage.DB.Model(user).Update("saved_housings", user.SavedHousings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

// institutionForEmail resolves the institution whose email domain matches the
// part after "@". Comparison is on the lowercased domain.
func institutionForEmail(email string) (*models.Institution, error) {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return nil, gorm.ErrRecordNotFound
	}
	domain := strings.ToLower(email[at+1:])

	var institution models.Institution
	if err := storage.DB.Where("email_domain = ?", domain).First(&institution).Error; err != nil {
		return nil, err
	}
	return &institution, nil
}

func getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(user)

	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}

	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

func getUserByID(id string, ctx iris.Context) *models.User {
	var user models.User
	userExists := storage.DB.Where("id = ?", id).Limit(1).Find(&user)

	if userExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return nil
	}

	if userExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return nil
	}

	return &user
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":            user.ID,
		"firstName":     user.FirstName,
		"lastName":      user.LastName,
		"email":         user.Email,
		"institutionID": user.InstitutionID,
		"savedHousings": user.SavedHousings,
		"accessToken":   string(tokenPair.AccessToken),
		"refreshToken":  string(tokenPair.RefreshToken),
	})
}

type RegisterUserInput struct {
	FirstName string `json:"firstName" validate:"required,max=256"`
	LastName  string `json:"lastName" validate:"required,max=256"`
	Email     string `json:"email" validate:"required,max=256,email"`
	Password  string `json:"password" validate:"required,min=8,max=256"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AlterSavedHousingsInput struct {
	HousingID uint   `json:"housingId" validate:"required"`
	Op        string `json:"op" validate:"required,oneof=add remove"`
}
