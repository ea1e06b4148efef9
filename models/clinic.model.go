package models

import "gorm.io/gorm"

type Clinic struct {
	gorm.Model
	Name      string `gorm:"size:150;not null" json:"name"`
	Address   string `gorm:"size:255" json:"address"`
	City      string `gorm:"size:100;index" json:"city"`
	Phone     string `gorm:"size:15" json:"phone"`
	IsDeleted bool   `gorm:"default:false"`
}
