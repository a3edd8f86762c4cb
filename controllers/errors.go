package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/heshan2021/ai-pms-saas-backend/services"
	"github.com/heshan2021/ai-pms-saas-backend/utils"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads the :id path parameter. Responds 400 itself on garbage.
func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid id in URL: "+raw)
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps a service error to an HTTP status. Classification
// is by error kind, never by message text.
func respondServiceError(c *gin.Context, err error) {
	var missingErr *services.MissingFieldError
	var validationErr *services.ValidationError
	var conflictErr *services.RoomConflictError

	switch {
	case errors.As(err, &missingErr),
		errors.As(err, &validationErr),
		errors.Is(err, services.ErrInvalidDateFormat),
		errors.Is(err, services.ErrInvalidDateRange):
		utils.JSONError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())

	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"status":              "error",
			"message":             conflictErr.Error(),
			"conflict_booking_id": conflictErr.ConflictBookingID,
		})

	case errors.Is(err, services.ErrDuplicateRoomName),
		errors.Is(err, services.ErrRoomHasBookings),
		errors.Is(err, services.ErrNotCancellable):
		utils.JSONError(c, http.StatusConflict, err.Error())

	default:
		log.Printf("unexpected service error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
	}
}
