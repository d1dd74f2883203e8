package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"teesheet/internal/api"
	"teesheet/internal/auth"
	"teesheet/internal/logger"
	"teesheet/internal/teesheet"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// respondError maps service errors onto status codes. Anything unrecognised
// is logged and reported as a server error.
func respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, ErrMissingFields):
		c.JSON(http.StatusBadRequest, api.Error("teeDate and teeTime are required."))
	case errors.Is(err, teesheet.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, api.Error("Date must be YYYY-MM-DD."))
	case errors.Is(err, ErrInvalidPlayers):
		c.JSON(http.StatusBadRequest, api.Error("Players must be between 1 and the course's group size."))
	case errors.Is(err, ErrOffGrid):
		c.JSON(http.StatusBadRequest, api.Error("That tee time is not on the course's tee sheet."))
	case errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, api.Error("Invalid status."))
	case errors.Is(err, ErrDuplicate):
		c.JSON(http.StatusBadRequest, api.Error("You already have a booking at that time."))
	case errors.Is(err, ErrSlotFull):
		c.JSON(http.StatusConflict, api.Error("That tee time is full."))
	case errors.Is(err, ErrBookingNotFound):
		c.JSON(http.StatusNotFound, api.Error("Booking not found."))
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, api.Error("Not authorized to cancel this booking."))
	default:
		logger.Error(op+" failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("Server error"))
	}
}

func bookingID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, api.Error("Invalid booking ID."))
		return 0, false
	}
	return id, true
}

// Create godoc
// @Summary      Book a tee time
// @Description  Books players onto a tee time. Course defaults to the club's main course and players to 1.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingRequest  true  "Tee time to book"
// @Success      201      {object}  BookingResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) Create(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Error("Not authorized"))
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, "teeDate and teeTime are required.", err)
		return
	}

	booking, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, "create booking", err)
		return
	}

	c.JSON(http.StatusCreated, BookingResponse{Msg: "Booking created.", Booking: booking})
}

// Mine godoc
// @Summary      List my bookings
// @Description  Returns every booking of the current user ordered by tee date and time.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  BookingsResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /bookings/mine [get]
func (h *Handler) Mine(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Error("Not authorized"))
		return
	}

	bookings, err := h.service.Mine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "list user bookings", err)
		return
	}

	c.JSON(http.StatusOK, BookingsResponse{Bookings: bookings})
}

// Day godoc
// @Summary      List a day's bookings
// @Description  Returns the non-cancelled bookings for a date, optionally for one course.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        date    query     string  true   "Tee date (YYYY-MM-DD)"
// @Param        course  query     string  false  "Course name"
// @Success      200     {object}  DayBookingsResponse
// @Failure      400     {object}  api.ErrorResponse
// @Failure      500     {object}  api.ErrorResponse
// @Router       /bookings/day [get]
func (h *Handler) Day(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, api.Error("date query param is required."))
		return
	}

	bookings, err := h.service.Day(c.Request.Context(), date, c.Query("course"))
	if err != nil {
		respondError(c, "list day bookings", err)
		return
	}

	c.JSON(http.StatusOK, DayBookingsResponse{Bookings: bookings})
}

// Cancel godoc
// @Summary      Cancel booking
// @Description  Cancels one of the current user's bookings.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Booking ID"
// @Success      200  {object}  BookingResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /bookings/{id} [delete]
func (h *Handler) Cancel(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Error("Not authorized"))
		return
	}
	id, ok := bookingID(c)
	if !ok {
		return
	}

	booking, err := h.service.Cancel(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, "cancel booking", err)
		return
	}

	c.JSON(http.StatusOK, BookingResponse{Msg: "Booking cancelled.", Booking: booking})
}

// Slots godoc
// @Summary      Tee sheet
// @Description  Returns every tee time of the day for a course with occupancy, availability and prices.
// @Tags         bookings
// @Produce      json
// @Param        date    query     string  true   "Tee date (YYYY-MM-DD)"
// @Param        course  query     string  false  "Course name"
// @Success      200     {object}  teesheet.TeeSheet
// @Failure      400     {object}  api.ErrorResponse
// @Failure      500     {object}  api.ErrorResponse
// @Router       /bookings/slots [get]
func (h *Handler) Slots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, api.Error("date query param is required."))
		return
	}

	sheet, err := h.service.TeeSheet(c.Request.Context(), date, c.Query("course"))
	if err != nil {
		respondError(c, "compute tee sheet", err)
		return
	}

	c.JSON(http.StatusOK, sheet)
}

// Courses godoc
// @Summary      List courses
// @Description  Returns the configured courses, default first.
// @Tags         bookings
// @Produce      json
// @Success      200  {object}  CoursesResponse
// @Router       /courses [get]
func (h *Handler) Courses(c *gin.Context) {
	c.JSON(http.StatusOK, CoursesResponse{Courses: h.service.Courses()})
}

// AdminList godoc
// @Summary      List all bookings
// @Description  Admin view of bookings, filterable by date and status.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        date    query     string  false  "Tee date (YYYY-MM-DD)"
// @Param        status  query     string  false  "pending, approved or cancelled"
// @Success      200     {object}  DayBookingsResponse
// @Failure      400     {object}  api.ErrorResponse
// @Failure      403     {object}  api.ErrorResponse
// @Failure      500     {object}  api.ErrorResponse
// @Router       /admin/bookings [get]
func (h *Handler) AdminList(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context(), Filter{
		Date:   c.Query("date"),
		Status: c.Query("status"),
	})
	if err != nil {
		respondError(c, "list bookings", err)
		return
	}

	c.JSON(http.StatusOK, DayBookingsResponse{Bookings: bookings})
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AdminBookingResponse struct {
	Msg     string           `json:"msg"`
	Booking *BookingWithUser `json:"booking"`
}

// UpdateStatus godoc
// @Summary      Set booking status
// @Description  Admin override of a booking's status. Cancelling notifies the golfer.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Booking ID"
// @Param        request  body      UpdateStatusRequest  true  "New status"
// @Success      200      {object}  AdminBookingResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/bookings/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("Invalid status."))
		return
	}

	booking, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, "update booking status", err)
		return
	}

	c.JSON(http.StatusOK, AdminBookingResponse{Msg: "Booking status updated.", Booking: booking})
}
