package routes

import (
	"time"

	"github.com/Vedang260/EvoFest-Backend/handlers"
	"github.com/Vedang260/EvoFest-Backend/middleware"
	"github.com/Vedang260/EvoFest-Backend/models"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App) {
	// Auth routes
	auth := app.Group("/api/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	// User routes
	user := app.Group("/api/users", middleware.AuthMiddleware)
	user.Get("/profile", handlers.GetProfile)

	// Event routes (browse is public)
	app.Get("/api/events", handlers.GetEvents)
	app.Get("/api/events/:id", handlers.GetEvent)
	app.Get("/api/events/:id/schedules", handlers.GetSchedules)
	app.Get("/api/schedules/:id/tickets", handlers.GetTicketTypeEntries)

	event := app.Group("/api/events", middleware.AuthMiddleware)
	event.Post("/", middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin), handlers.CreateEvent)
	event.Get("/mine/list", middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin), handlers.GetMyEvents)
	event.Put("/:id", middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin), handlers.UpdateEvent)
	event.Delete("/:id", middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin), handlers.DeleteEvent)
	event.Post("/:id/schedules", middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin), handlers.CreateSchedule)

	schedule := app.Group("/api/schedules", middleware.AuthMiddleware)
	schedule.Post("/:id/tickets", middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin), handlers.CreateTicketTypeEntry)
	schedule.Delete("/:id", middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin), handlers.DeleteSchedule)

	// Checkout and payment routes
	app.Post("/api/checkout",
		middleware.AuthMiddleware,
		middleware.RequireRoles(models.RoleAttendee),
		middleware.RateLimit("checkout", 10, time.Minute),
		handlers.Checkout)
	app.Get("/api/bookings", middleware.AuthMiddleware, handlers.GetMyBookings)
	app.Get("/api/payments", middleware.AuthMiddleware, handlers.GetMyPayments)

	// The payment gateway calls this; authentication is the notification
	// signature itself.
	app.Post("/api/payments/notification", handlers.PaymentNotificationHandler)

	// Check-in routes
	checkin := app.Group("/api/checkins", middleware.AuthMiddleware,
		middleware.RequireRoles(models.RoleStaff, models.RoleOrganizer, models.RoleAdmin))
	checkin.Post("/", middleware.RateLimit("checkin", 60, time.Minute), handlers.CreateCheckIn)
	checkin.Get("/event/:id", handlers.GetEventCheckIns)

	// Dashboard routes
	dashboard := app.Group("/api/dashboard", middleware.AuthMiddleware,
		middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin))
	dashboard.Get("/:eventId/bookings-per-day", handlers.GetBookingsPerDay)
	dashboard.Get("/:eventId/revenue-by-type", handlers.GetRevenueByType)
	dashboard.Get("/:eventId/checkins-per-hour", handlers.GetCheckInsPerHour)
	dashboard.Get("/:eventId/demographics", handlers.GetDemographics)
	dashboard.Get("/:eventId/summary", handlers.GetDashboardSummary)
}
