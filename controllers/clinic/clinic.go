package clinicController

import (
	"bookmydoctor/database"
	"bookmydoctor/middleware"
	"bookmydoctor/models"
	"log"

	"github.com/gofiber/fiber/v2"
)

func CreateClinic(c *fiber.Ctx) error {
	reqData := new(models.Clinic)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	clinic := models.Clinic{
		Name:    reqData.Name,
		Address: reqData.Address,
		City:    reqData.City,
		Phone:   reqData.Phone,
	}

	if err := db.Create(&clinic).Error; err != nil {
		log.Printf("Error creating clinic: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create clinic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Clinic created successfully.", clinic)
}

func UpdateClinic(c *fiber.Ctx) error {
	clinicId, err := c.ParamsInt("id")
	if err != nil || clinicId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid clinic id!", nil)
	}

	reqData := new(models.Clinic)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var clinic models.Clinic
	if err := db.Where("id = ? AND is_deleted = ?", clinicId, false).First(&clinic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Clinic not found!", nil)
	}

	clinic.Name = reqData.Name
	clinic.Address = reqData.Address
	clinic.City = reqData.City
	clinic.Phone = reqData.Phone

	if err := db.Save(&clinic).Error; err != nil {
		log.Printf("Error updating clinic: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update clinic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Clinic updated successfully.", clinic)
}

func ListClinics(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("is_deleted = ?", false)
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	var clinics []models.Clinic
	if err := query.Order("name").Find(&clinics).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch clinics!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Clinic list.", clinics)
}

func DeleteClinic(c *fiber.Ctx) error {
	clinicId, err := c.ParamsInt("id")
	if err != nil || clinicId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid clinic id!", nil)
	}

	db := database.Database.Db

	var clinic models.Clinic
	if err := db.Where("id = ? AND is_deleted = ?", clinicId, false).First(&clinic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Clinic not found!", nil)
	}

	clinic.IsDeleted = true
	if err := db.Save(&clinic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete clinic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Clinic deleted successfully.", nil)
}
