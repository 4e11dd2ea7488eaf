package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-mirror/internal/api/shared/errors"
	"github.com/feral-file/ff-marketplace-mirror/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: errors.NewBadRequestError(message, details...)})
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, errors.ErrorResponse{Error: errors.NewNotFoundError(message, details...)})
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: errors.NewValidationError(message)})
}

// respondInternalError logs the error and responds with an internal server error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.ErrorCtx(c.Request.Context(), err, fields...)
	c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Error: errors.NewInternalError(message)})
}

// respondError maps a classified error to its status code
func respondError(c *gin.Context, err error, fields ...zap.Field) {
	status, apiErr := errors.FromDomainError(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err, fields...)
	}
	c.JSON(status, errors.ErrorResponse{Error: apiErr})
}
