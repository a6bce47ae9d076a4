// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

// respondServiceError maps service errors to responses. CustomError
// carries its own message and maps to 400/404 by cause; anything else
// becomes a 500 with serverMessage and the underlying error string.
func respondServiceError(ctx *gin.Context, err error, serverMessage string) {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		status := http.StatusBadRequest
		if errors.Is(custom.Err, apperrors.ErrResourceNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.NewError(custom.Message))
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.NewErrorWithCause(serverMessage, err))
}
