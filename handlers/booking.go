package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bookwise/middleware"
	"bookwise/models"
	"bookwise/services/booking"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	BookingService booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{BookingService: svc}
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (h *BookingHandler) Create(c *gin.Context) {
	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.BookingService.CreateBooking(c.Request.Context(), input, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) List(c *gin.Context) {
	page, ok1 := queryInt(c, "page", 1)
	limit, ok2 := queryInt(c, "limit", 10)
	if !ok1 || !ok2 {
		badRequest(c, errInvalidNumber)
		return
	}
	res, err := h.BookingService.ListAll(c.Request.Context(), middleware.CurrentUserID(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *BookingHandler) Upcoming(c *gin.Context) {
	h.listWithLimit(c, h.BookingService.ListUpcoming)
}

func (h *BookingHandler) Past(c *gin.Context) {
	h.listWithLimit(c, h.BookingService.ListPast)
}

func (h *BookingHandler) listWithLimit(c *gin.Context, list func(ctx context.Context, ownerID string, limit int) ([]models.Booking, error)) {
	limit, ok := queryInt(c, "limit", 10)
	if !ok {
		badRequest(c, errInvalidNumber)
		return
	}
	res, err := list(c.Request.Context(), middleware.CurrentUserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *BookingHandler) Range(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		badRequest(c, err)
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.BookingService.ListByDateRange(c.Request.Context(), middleware.CurrentUserID(c), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.BookingService.GetBooking(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Update(c *gin.Context) {
	var patch models.UpdateBookingInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.BookingService.UpdateBooking(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var body models.UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.BookingService.UpdateStatus(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), body.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.BookingService.DeleteBooking(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
