package main

import (
	"log"
	"os"

	"github.com/Vedang260/EvoFest-Backend/config"
	"github.com/Vedang260/EvoFest-Backend/handlers"
	"github.com/Vedang260/EvoFest-Backend/models"
	"github.com/Vedang260/EvoFest-Backend/realtime"
	"github.com/Vedang260/EvoFest-Backend/routes"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	config.LoadEnv()

	config.ConnectDatabase()
	config.InitMidtrans()
	config.InitMailer()
	config.InitRedis()
	realtime.Init()

	if err := migrateDatabase(config.DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if err := handlers.DefaultAdminSetup(); err != nil {
		log.Fatal("Failed to setup default admin:", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(logger.New())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	routes.SetupRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	port = ":" + port

	log.Println("Server running on port", port)
	log.Fatal(app.Listen(port))
}

func migrateDatabase(db *gorm.DB) error {
	db.Exec("SET FOREIGN_KEY_CHECKS = 0")

	for _, model := range []interface{}{
		&models.User{},
		&models.Event{},
		&models.EventSchedule{},
		&models.DailyTicketTypeEntry{},
		&models.Payment{},
		&models.Booking{},
		&models.Guest{},
		&models.CheckIn{},
	} {
		if err := db.AutoMigrate(model); err != nil {
			return err
		}
	}

	db.Exec("SET FOREIGN_KEY_CHECKS = 1")

	log.Println("Database migrated successfully")
	return nil
}
