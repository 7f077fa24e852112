package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "invest-desk.backend/internal/domain/errors"
	"invest-desk.backend/pkg/utils"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Paginated sends list data together with pagination metadata.
func Paginated(c *gin.Context, data interface{}, meta utils.PaginationMeta) {
	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"meta": meta,
	})
}

// Error sends an error response. Validation failures map to 422 with the
// per-field message map; AppErrors carry their own status; anything else is
// a 500.
func Error(c *gin.Context, err error) {
	if ve, ok := domainerrors.AsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "validation failed",
			"errors":  ve.Fields,
		})
		return
	}

	var appErr *domainerrors.AppError
	switch {
	case errors.As(err, &appErr):
	case errors.Is(err, domainerrors.ErrNotFound):
		appErr = domainerrors.NotFound("resource not found")
	case errors.Is(err, domainerrors.ErrConflict):
		appErr = domainerrors.NewAppError(http.StatusConflict, "conflicting concurrent update", err)
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		appErr = domainerrors.NewAppError(http.StatusConflict, "resource already exists", err)
	default:
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, gin.H{
		"message": appErr.Message,
	})
}

// ErrorWithStatus sends an error response with an explicit status and message
func ErrorWithStatus(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"message": message,
	})
}
