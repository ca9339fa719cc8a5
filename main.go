package main

import (
	"log"

	"mathcms/config"
	problemController "mathcms/controllers/problem"
	"mathcms/database"
	authRoutes "mathcms/routers/authRoutes"
	problemRoutes "mathcms/routers/problemRoutes"
	programRoutes "mathcms/routers/programRoutes"
	studentRoutes "mathcms/routers/studentRoutes"
	"mathcms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Seed categories for a fresh environment
	if err := problemController.EnsureDefaultCategories(database.Database.Db); err != nil {
		log.Printf("Error seeding default categories: %v", err)
	}

	utils.InitializeLinkReconciler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	problemRoutes.SetupAdminProblemRoutes(app)
	programRoutes.SetupProgramRoutes(app)
	studentRoutes.SetupStudentRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
