package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/api/dto"
)

// respondError maps a domain error onto the wire format. Validation and
// insufficient-balance errors keep their message; everything else is hidden
// behind a generic one.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case domainerr.IsValidationError(err):
		status = http.StatusBadRequest
		message = err.Error()
	case domainerr.IsInsufficientBalanceError(err):
		status = http.StatusPaymentRequired
		message = err.Error()
	case domainerr.IsNotFoundError(err):
		status = http.StatusNotFound
		message = err.Error()
	case domainerr.IsUserLockedError(err):
		status = http.StatusConflict
		message = "Resource is locked by another operation, retry"
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}
