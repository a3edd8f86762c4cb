package controllers

import (
	"log"
	"net/http"

	"github.com/heshan2021/ai-pms-saas-backend/services"
	"github.com/heshan2021/ai-pms-saas-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// CreateBookingRequest mirrors the wire payload. Required-field checks live
// in the service so a missing field is reported by name.
type CreateBookingRequest struct {
	GuestName    string `json:"guest_name"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	RoomID       uint   `json:"room_id"`

	NumAdults   *int `json:"num_adults"`
	NumChildren *int `json:"num_children"`

	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`

	TotalAmount   *float64 `json:"total_amount"`
	AmountPaid    *float64 `json:"amount_paid"`
	PaymentMethod string   `json:"payment_method"`

	ExtraGuests []map[string]interface{} `json:"extra_guests"`
}

// POST /api/bookings
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("CreateBooking: bad payload: %v", err)
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	booking, err := ctrl.BookingSvc.CreateBooking(services.CreateBookingInput{
		GuestName:     req.GuestName,
		CheckInDate:   req.CheckInDate,
		CheckOutDate:  req.CheckOutDate,
		RoomID:        req.RoomID,
		NumAdults:     req.NumAdults,
		NumChildren:   req.NumChildren,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		TotalAmount:   req.TotalAmount,
		AmountPaid:    req.AmountPaid,
		PaymentMethod: req.PaymentMethod,
		ExtraGuests:   req.ExtraGuests,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Booking created successfully",
		"booking_id": booking.ID,
	})
}

// GET /api/bookings
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GET /api/bookings/:id
func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings/:id/cancel
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.BookingSvc.Cancel(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}
