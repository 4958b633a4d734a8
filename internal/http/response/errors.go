package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/puzlabu/puzlabu-backend/internal/domain"
)

// RespondDomainError maps the activation error taxonomy onto HTTP statuses.
// Anything unrecognized is reported as a 500 so it shows up in request logs.
func RespondDomainError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	var limitErr *domain.DeviceLimitError
	switch {
	case errors.As(err, &vErr):
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, domain.ErrCodeNotFound):
		RespondError(c, http.StatusNotFound, "code_not_found", err)
	case errors.As(err, &limitErr):
		RespondError(c, http.StatusConflict, "device_limit_reached", err)
	case errors.Is(err, domain.ErrStoreUnavailable):
		RespondError(c, http.StatusServiceUnavailable, "store_unavailable", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
