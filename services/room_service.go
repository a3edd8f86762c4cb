package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/heshan2021/ai-pms-saas-backend/models"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// RoomService wraps *gorm.DB for everything room related.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// isDuplicateKey detects a unique-index violation. MySQL reports error 1062;
// the string checks cover drivers that don't expose a typed error.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

func (s *RoomService) Create(name string, status models.RoomStatus) (models.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Room{}, &MissingFieldError{Field: "name"}
	}
	if status == "" {
		status = models.RoomAvailable
	}
	if !status.Valid() {
		return models.Room{}, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown room status %q", status)}
	}

	room := models.Room{Name: name, Status: status}
	if err := s.DB.Create(&room).Error; err != nil {
		if isDuplicateKey(err) {
			return models.Room{}, fmt.Errorf("room %q: %w", name, ErrDuplicateRoomName)
		}
		return models.Room{}, fmt.Errorf("failed to create room: %w", err)
	}
	return room, nil
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) GetByID(id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, fmt.Errorf("failed to load room %d: %w", id, err)
	}
	return room, nil
}

// Update applies a partial update: nil fields keep their previous value.
func (s *RoomService) Update(id uint, name *string, status *models.RoomStatus) (models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return models.Room{}, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return models.Room{}, &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		room.Name = trimmed
	}
	if status != nil {
		if !status.Valid() {
			return models.Room{}, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown room status %q", *status)}
		}
		room.Status = *status
	}

	if err := s.DB.Save(&room).Error; err != nil {
		if isDuplicateKey(err) {
			return models.Room{}, fmt.Errorf("room %q: %w", room.Name, ErrDuplicateRoomName)
		}
		return models.Room{}, fmt.Errorf("failed to update room %d: %w", id, err)
	}
	return room, nil
}

// Delete refuses to remove a room that still has non-cancelled bookings.
// Cancelled bookings don't block deletion; they keep their room_id for history.
func (s *RoomService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	var count int64
	if err := s.DB.Model(&models.Booking{}).
		Where("room_id = ? AND booking_status <> ?", id, models.BookingCancelled).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count bookings for room %d: %w", id, err)
	}
	if count > 0 {
		return fmt.Errorf("room %d: %w", id, ErrRoomHasBookings)
	}

	if err := s.DB.Delete(&models.Room{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete room %d: %w", id, err)
	}
	return nil
}
