package main

import (
	"bookmydoctor/config"
	"bookmydoctor/database"
	appointmentRoutes "bookmydoctor/routers/appointmentRoutes"
	authRoutes "bookmydoctor/routers/authRoutes"
	clinicRoutes "bookmydoctor/routers/clinicRoutes"
	dashboardRoutes "bookmydoctor/routers/dashboardRoutes"
	doctorRoutes "bookmydoctor/routers/doctorRoutes"
	notificationRoutes "bookmydoctor/routers/notificationRoutes"
	paymentRoutes "bookmydoctor/routers/paymentRoutes"
	"bookmydoctor/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve the single-page client from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	clinicRoutes.SetupClinicRoutes(app)
	doctorRoutes.SetupDoctorRoutes(app)
	appointmentRoutes.SetupAppointmentRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)
	dashboardRoutes.SetupDashboardRoutes(app)

	scheduler := utils.StartAppointmentScheduler()
	defer scheduler.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
