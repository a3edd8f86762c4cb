package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking holds a half-open stay interval [CheckInDate, CheckOutDate):
// the guest sleeps the night of check-in but not the night of check-out,
// so back-to-back bookings sharing a boundary date do not conflict.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	GuestName    string    `gorm:"column:guest_name;type:varchar(100)" json:"guest_name"`
	CheckInDate  time.Time `gorm:"column:check_in_date;type:date;index" json:"-"`
	CheckOutDate time.Time `gorm:"column:check_out_date;type:date" json:"-"`

	NumAdults   int `gorm:"column:num_adults;default:1" json:"num_adults"`
	NumChildren int `gorm:"column:num_children;default:0" json:"num_children"`

	PhoneNumber string `gorm:"column:phone_number;type:varchar(20)" json:"phone_number,omitempty"`
	Email       string `gorm:"column:email;type:varchar(100)" json:"email,omitempty"`

	BookingStatus BookingStatus `gorm:"column:booking_status;type:varchar(20);default:Confirmed" json:"booking_status"`
	PaymentStatus PaymentStatus `gorm:"column:payment_status;type:varchar(20);default:Unpaid" json:"payment_status"`

	TotalAmount   *float64 `gorm:"column:total_amount" json:"total_amount,omitempty"`
	AmountPaid    float64  `gorm:"column:amount_paid;default:0" json:"amount_paid"`
	PaymentMethod string   `gorm:"column:payment_method;type:varchar(20)" json:"payment_method,omitempty"`

	// Names of accompanying guests beyond the primary one, kept as a
	// free-form JSON draft the same way check-in drafts are stored.
	ExtraGuests datatypes.JSON `gorm:"column:extra_guests" json:"extra_guests,omitempty"`

	RoomID uint `gorm:"column:room_id;index" json:"room_id"`
	Room   Room `gorm:"foreignKey:RoomID;references:ID" json:"-"`
}

const DateLayout = "2006-01-02"
