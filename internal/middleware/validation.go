package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/edunet/edunet/internal/app/models/dto"
)

// BindJSON binds the request body into obj and writes a 400 with a
// human-readable message on failure. Returns false when binding failed.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewError(bindErrorMessage(err)))
		return false
	}
	return true
}

// bindErrorMessage turns validator errors into per-field messages;
// anything else falls back to a generic message.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return formatValidationError(verrs[0])
	}
	return "Invalid request body"
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return e.Field() + " must be a valid email address"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
