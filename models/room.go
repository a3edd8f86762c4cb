package models

import (
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	// Name is what the front desk calls the room ("101", "Penthouse").
	// Unique index so two rooms can never share a label.
	Name   string     `json:"name" gorm:"column:name;uniqueIndex;type:varchar(50)"`
	Status RoomStatus `json:"status" gorm:"column:status;type:varchar(20);default:Available"`
}
