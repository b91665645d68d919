// Package common holds the response helpers shared by every controller.
package common

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/hilthontt/roomly/domain/apperror"
	"github.com/hilthontt/roomly/presentation/middlewares"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteError renders err with the status of its kind. Internal errors are
// attached to the gin context so the request logger records them.
func WriteError(ctx *gin.Context, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		_ = ctx.Error(err)
	}
	ctx.AbortWithStatusJSON(apperror.HTTPStatus(kind), ErrorResponse{
		Error:   string(kind),
		Message: apperror.MessageOf(err),
	})
}

// WriteBindError renders a request binding failure as a validation error.
func WriteBindError(ctx *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	message := err.Error()
	if errors.As(err, &validationErrs) {
		if translated := middlewares.TranslateValidationErrors(validationErrs); len(translated) > 0 {
			message = strings.Join(translated, "; ")
		}
	}
	WriteError(ctx, apperror.Validation(message))
}

// UserID returns the id stored by the auth middleware.
func UserID(ctx *gin.Context) string {
	return ctx.GetString(middlewares.UserIDKey)
}
