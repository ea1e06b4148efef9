package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	Title     string         `gorm:"size:150;not null" json:"title"`
	Body      string         `gorm:"size:1000" json:"body"`
	Payload   datatypes.JSON `json:"payload,omitempty"`
	IsRead    bool           `gorm:"default:false" json:"is_read"`
	IsDeleted bool           `gorm:"default:false"`
}
