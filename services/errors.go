package services

import (
	"errors"
	"fmt"
)

// Domain errors returned by the services. Controllers translate these to
// HTTP statuses with errors.Is / errors.As instead of matching message text.
var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrDuplicateRoomName = errors.New("room name already exists")
	ErrRoomHasBookings   = errors.New("room still has bookings")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidDateRange  = errors.New("check-out date must be after check-in date")
	ErrNotCancellable    = errors.New("booking is not in a cancellable state")
)

// ValidationError reports a field whose value is outside the allowed set.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MissingFieldError names the first required field absent from a request.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// RoomConflictError rejects a booking whose dates overlap an existing
// confirmed booking on the same room.
type RoomConflictError struct {
	RoomID            uint
	ConflictBookingID uint
}

func (e *RoomConflictError) Error() string {
	return fmt.Sprintf("room %d is unavailable for the requested dates (conflicts with booking %d)",
		e.RoomID, e.ConflictBookingID)
}
