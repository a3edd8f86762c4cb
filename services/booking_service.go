package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/heshan2021/ai-pms-saas-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService wraps *gorm.DB for booking creation, listing and cancellation.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// CreateBookingInput carries the raw request values. Dates arrive as strings
// so the service owns parsing and can report format errors itself.
type CreateBookingInput struct {
	GuestName    string
	CheckInDate  string
	CheckOutDate string
	RoomID       uint

	NumAdults   *int
	NumChildren *int

	PhoneNumber string
	Email       string

	TotalAmount   *float64
	AmountPaid    *float64
	PaymentMethod string

	ExtraGuests []map[string]interface{}
}

// BookingView is a booking row joined with its room's name for display.
// Dates are rendered back in the same YYYY-MM-DD form they arrived in.
type BookingView struct {
	ID            uint                 `json:"id"`
	GuestName     string               `json:"guest_name"`
	CheckInDate   string               `json:"check_in_date"`
	CheckOutDate  string               `json:"check_out_date"`
	NumAdults     int                  `json:"num_adults"`
	NumChildren   int                  `json:"num_children"`
	PhoneNumber   string               `json:"phone_number,omitempty"`
	Email         string               `json:"email,omitempty"`
	BookingStatus models.BookingStatus `json:"booking_status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	TotalAmount   *float64             `json:"total_amount,omitempty"`
	AmountPaid    float64              `json:"amount_paid"`
	PaymentMethod string               `json:"payment_method,omitempty"`
	ExtraGuests   json.RawMessage      `json:"extra_guests,omitempty"`
	RoomID        uint                 `json:"room_id"`
	RoomName      string               `json:"room_name"`
}

// datesOverlap reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one day.
func datesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// normalizeExtraGuests keeps only the fields we store per accompanying guest.
func normalizeExtraGuests(guests []map[string]interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(guests))
	for _, g := range guests {
		name := ""
		for _, k := range []string{"name", "fullName", "full_name"} {
			if v, ok := g[k]; ok && v != nil {
				if s, ok2 := v.(string); ok2 {
					name = strings.TrimSpace(s)
					break
				}
			}
		}
		if name == "" {
			continue
		}
		out = append(out, map[string]interface{}{"name": name})
	}
	return out
}

// parseDate parses in the local zone because the MySQL driver renders
// time.Time args in the DSN's loc (Local) before writing. Parsing as UTC
// would shift midnight to the previous day on hosts west of UTC and store
// the wrong date.
func parseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(models.DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", value, ErrInvalidDateFormat)
	}
	return t, nil
}

// CreateBooking validates the request and, inside one transaction, verifies
// the room exists and has no overlapping confirmed booking before inserting.
// The room row is locked FOR UPDATE so two concurrent requests for the same
// room serialize; the loser of the race sees the winner's booking and fails
// with a conflict instead of silently double-booking.
func (s *BookingService) CreateBooking(input CreateBookingInput) (models.Booking, error) {
	input.GuestName = strings.TrimSpace(input.GuestName)

	switch {
	case input.GuestName == "":
		return models.Booking{}, &MissingFieldError{Field: "guest_name"}
	case strings.TrimSpace(input.CheckInDate) == "":
		return models.Booking{}, &MissingFieldError{Field: "check_in_date"}
	case strings.TrimSpace(input.CheckOutDate) == "":
		return models.Booking{}, &MissingFieldError{Field: "check_out_date"}
	case input.RoomID == 0:
		return models.Booking{}, &MissingFieldError{Field: "room_id"}
	}

	checkIn, err := parseDate(strings.TrimSpace(input.CheckInDate))
	if err != nil {
		return models.Booking{}, err
	}
	checkOut, err := parseDate(strings.TrimSpace(input.CheckOutDate))
	if err != nil {
		return models.Booking{}, err
	}
	if !checkIn.Before(checkOut) {
		return models.Booking{}, fmt.Errorf("%s to %s: %w", input.CheckInDate, input.CheckOutDate, ErrInvalidDateRange)
	}

	numAdults := 1
	if input.NumAdults != nil {
		numAdults = *input.NumAdults
	}
	numChildren := 0
	if input.NumChildren != nil {
		numChildren = *input.NumChildren
	}
	if numAdults < 0 {
		return models.Booking{}, &ValidationError{Field: "num_adults", Reason: "must not be negative"}
	}
	if numChildren < 0 {
		return models.Booking{}, &ValidationError{Field: "num_children", Reason: "must not be negative"}
	}

	amountPaid := 0.0
	if input.AmountPaid != nil {
		amountPaid = *input.AmountPaid
	}
	if amountPaid < 0 {
		return models.Booking{}, &ValidationError{Field: "amount_paid", Reason: "must not be negative"}
	}
	if input.TotalAmount != nil {
		if *input.TotalAmount < 0 {
			return models.Booking{}, &ValidationError{Field: "total_amount", Reason: "must not be negative"}
		}
		if amountPaid > *input.TotalAmount {
			return models.Booking{}, &ValidationError{Field: "amount_paid", Reason: "must not exceed total_amount"}
		}
	}

	var extraGuests datatypes.JSON
	if len(input.ExtraGuests) > 0 {
		raw, mErr := json.Marshal(normalizeExtraGuests(input.ExtraGuests))
		if mErr != nil {
			return models.Booking{}, fmt.Errorf("failed to encode extra guests: %w", mErr)
		}
		extraGuests = datatypes.JSON(raw)
	}

	booking := models.Booking{
		GuestName:     input.GuestName,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		NumAdults:     numAdults,
		NumChildren:   numChildren,
		PhoneNumber:   strings.TrimSpace(input.PhoneNumber),
		Email:         strings.TrimSpace(input.Email),
		BookingStatus: models.BookingConfirmed,
		PaymentStatus: models.PaymentUnpaid,
		TotalAmount:   input.TotalAmount,
		AmountPaid:    amountPaid,
		PaymentMethod: strings.TrimSpace(input.PaymentMethod),
		ExtraGuests:   extraGuests,
		RoomID:        input.RoomID,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, input.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("room %d: %w", input.RoomID, ErrRoomNotFound)
			}
			return fmt.Errorf("failed to load room %d: %w", input.RoomID, err)
		}

		var existing []models.Booking
		if err := tx.
			Where("room_id = ? AND booking_status = ?", input.RoomID, models.BookingConfirmed).
			Order("id ASC").
			Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to load bookings for room %d: %w", input.RoomID, err)
		}
		for _, b := range existing {
			if datesOverlap(checkIn, checkOut, b.CheckInDate, b.CheckOutDate) {
				return &RoomConflictError{RoomID: input.RoomID, ConflictBookingID: b.ID}
			}
		}

		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return models.Booking{}, txErr
	}

	return booking, nil
}

func viewFromBooking(b models.Booking, roomName string) BookingView {
	return BookingView{
		ID:            b.ID,
		GuestName:     b.GuestName,
		CheckInDate:   b.CheckInDate.Format(models.DateLayout),
		CheckOutDate:  b.CheckOutDate.Format(models.DateLayout),
		NumAdults:     b.NumAdults,
		NumChildren:   b.NumChildren,
		PhoneNumber:   b.PhoneNumber,
		Email:         b.Email,
		BookingStatus: b.BookingStatus,
		PaymentStatus: b.PaymentStatus,
		TotalAmount:   b.TotalAmount,
		AmountPaid:    b.AmountPaid,
		PaymentMethod: b.PaymentMethod,
		ExtraGuests:   json.RawMessage(b.ExtraGuests),
		RoomID:        b.RoomID,
		RoomName:      roomName,
	}
}

// GetAll lists bookings ordered by check-in date, each stitched with its
// room's name in a second query. Unscoped so names of rooms deleted after
// their bookings were cancelled still resolve.
func (s *BookingService) GetAll() ([]BookingView, error) {
	var bookings []models.Booking
	if err := s.DB.Order("check_in_date ASC, id ASC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	names, err := s.roomNames(bookings)
	if err != nil {
		return nil, err
	}

	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, viewFromBooking(b, names[b.RoomID]))
	}
	return views, nil
}

func (s *BookingService) roomNames(bookings []models.Booking) (map[uint]string, error) {
	ids := make([]uint, 0, len(bookings))
	seen := make(map[uint]bool, len(bookings))
	for _, b := range bookings {
		if !seen[b.RoomID] {
			seen[b.RoomID] = true
			ids = append(ids, b.RoomID)
		}
	}
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rooms []models.Room
	if err := s.DB.Unscoped().Where("id IN ?", ids).Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms for bookings: %w", err)
	}
	for _, r := range rooms {
		names[r.ID] = r.Name
	}
	return names, nil
}

func (s *BookingService) GetByID(id uint) (BookingView, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BookingView{}, ErrBookingNotFound
		}
		return BookingView{}, fmt.Errorf("failed to load booking %d: %w", id, err)
	}

	names, err := s.roomNames([]models.Booking{booking})
	if err != nil {
		return BookingView{}, err
	}
	return viewFromBooking(booking, names[booking.RoomID]), nil
}

// Cancel moves a confirmed booking to Cancelled. Cancelled is terminal:
// already-cancelled, checked-in and checked-out bookings are rejected.
func (s *BookingService) Cancel(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to load booking %d: %w", id, err)
		}

		if booking.BookingStatus != models.BookingConfirmed {
			return fmt.Errorf("booking %d is %s: %w", id, booking.BookingStatus, ErrNotCancellable)
		}

		if err := tx.Model(&booking).
			Update("booking_status", models.BookingCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel booking %d: %w", id, err)
		}
		return nil
	})
}
