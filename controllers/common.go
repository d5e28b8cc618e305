package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rebeauty-backend/services"
	"rebeauty-backend/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Resource absence (404) is kept distinct from authorization failures
// (401/403).
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrUnauthenticated):
		utils.RespondWithError(c, http.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, http.StatusForbidden, "Bootstrap code mismatch")
	case errors.Is(err, services.ErrMisconfigured):
		utils.RespondWithError(c, http.StatusInternalServerError, "STAFF_BOOTSTRAP_CODE is not configured")
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrUnsupportedMailType):
		utils.RespondWithError(c, http.StatusBadRequest, "Unsupported mail type")
	case errors.Is(err, services.ErrInvalidInput):
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return 0, false
	}
	return uint(id), true
}
