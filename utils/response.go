package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

func CreateError(statusCode int, title string, detail string, ctx iris.Context) {
	ctx.StatusCode(statusCode)
	ctx.JSON(iris.Map{"error": title, "message": detail})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred.", ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "Not Found", "Resource not found.", ctx)
}

func CreateEmailAlreadyRegistered(ctx iris.Context) {
	CreateError(iris.StatusConflict, "Conflict", "Email already registered.", ctx)
}

// CreateDuplicate is the 409 shape for normalized-name collisions. It carries
// both the stored original name and the normalized input so the UI can render
// "X already exists" without re-deriving normalization.
func CreateDuplicate(duplicateName, normalizedInput string, ctx iris.Context) {
	ctx.StatusCode(iris.StatusConflict)
	ctx.JSON(iris.Map{
		"error":           "Duplicate",
		"message":         duplicateName + " already exists.",
		"isExisting":      true,
		"duplicateName":   duplicateName,
		"normalizedInput": normalizedInput,
	})
}

type validationErrorResponse struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// HandleValidationErrors turns a ctx.ReadJSON failure into a 400. Validator
// violations list the offending fields; anything else is a malformed body.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]validationErrorResponse, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, validationErrorResponse{
				Field: e.Field(),
				Tag:   e.Tag(),
				Value: e.Param(),
			})
		}

		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"error": "Validation Error", "message": "Invalid input.", "fields": fields})
		return
	}

	CreateError(iris.StatusBadRequest, "Bad Request", "Invalid request body.", ctx)
}
