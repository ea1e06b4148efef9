package services

import (
	"bookmydoctor/models"
	"encoding/json"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PushNotification stores an in-app notification row. A failure is logged
// only; notifications never fail the operation that produced them.
func PushNotification(db *gorm.DB, userID uint, title, body string, payload interface{}) {
	notification := models.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
	}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			log.Printf("Error marshalling notification payload: %v", err)
		} else {
			notification.Payload = datatypes.JSON(raw)
		}
	}

	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Error saving notification for user %d: %v", userID, err)
	}
}
