package handlers

import (
	"errors"
	"net/http"

	"bookwise/services/booking"
	"bookwise/services/user"
	"bookwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		verr *booking.ValidationError
		terr *booking.TransientError
		uerr *user.UserError
	)
	switch {
	case errors.As(err, &verr):
		utils.JSONError(c, http.StatusBadRequest, verr.Message, verr.Field)
	case errors.Is(err, booking.ErrOverlapConflict):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
	case errors.Is(err, booking.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
	case errors.As(err, &terr):
		getLogger(c).Error("Repository unavailable", zap.String("op", terr.Op), zap.Error(terr.Err))
		utils.JSONError(c, http.StatusServiceUnavailable, "Service temporarily unavailable, please retry", "")
	case errors.As(err, &uerr):
		utils.JSONError(c, userErrorStatus(uerr), uerr.Message, "")
	default:
		getLogger(c).Error("Unhandled error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func userErrorStatus(err *user.UserError) int {
	switch {
	case errors.Is(err, user.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, user.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
}
