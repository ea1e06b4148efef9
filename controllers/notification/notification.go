package notificationController

import (
	"bookmydoctor/database"
	"bookmydoctor/middleware"
	"bookmydoctor/models"

	"github.com/gofiber/fiber/v2"
)

// ListMine lists the calling user's notifications, unread first.
func ListMine(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	query := db.Where("user_id = ? AND is_deleted = ?", userId, false)
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("is_read ASC, created_at DESC").Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification list.", notifications)
}

// MarkRead flags one notification of the calling user as read.
func MarkRead(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	notificationId, err := c.ParamsInt("id")
	if err != nil || notificationId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification id!", nil)
	}

	db := database.Database.Db

	res := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", notificationId, userId, false).
		Update("is_read", true)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read.", nil)
}
