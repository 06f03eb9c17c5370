package handlers

import (
	"time"

	"github.com/Vedang260/EvoFest-Backend/config"
	"github.com/Vedang260/EvoFest-Backend/models"
	"github.com/Vedang260/EvoFest-Backend/utils"
	"github.com/gofiber/fiber/v2"
)

type CreateTicketTypeRequest struct {
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	Quantity uint    `json:"quantity"`
}

func CreateTicketTypeEntry(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	scheduleID := c.Params("id")

	var schedule models.EventSchedule
	if err := config.DB.Preload("Event").First(&schedule, "schedule_id = ?", scheduleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Schedule not found",
		})
	}

	if schedule.Event.OrganizerID != user.UserID && user.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to manage this event",
		})
	}

	var req CreateTicketTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request",
		})
	}

	if req.Type == "" || req.Price < 0 || req.Quantity == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing or invalid fields: type, price, quantity",
		})
	}

	if req.Quantity > schedule.Capacity {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Ticket quantity exceeds schedule capacity",
		})
	}

	entry := models.DailyTicketTypeEntry{
		EntryID:    utils.GenerateTicketTypeEntryID(),
		ScheduleID: schedule.ScheduleID,
		Type:       req.Type,
		Price:      req.Price,
		Quantity:   req.Quantity,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := config.DB.Create(&entry).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Failed to create ticket type (duplicate type for this schedule?)",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Ticket type created successfully",
		"entry":   entry,
	})
}

func GetTicketTypeEntries(c *fiber.Ctx) error {
	scheduleID := c.Params("id")

	var entries []models.DailyTicketTypeEntry
	if err := config.DB.Where("schedule_id = ?", scheduleID).Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch ticket types",
		})
	}

	return c.JSON(fiber.Map{"entries": entries})
}

// GetMyBookings lists the attendee's bookings with guests, newest first.
func GetMyBookings(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var bookings []models.Booking
	if err := config.DB.Preload("Guests").
		Preload("TicketTypeEntry").
		Preload("TicketTypeEntry.Schedule").
		Preload("TicketTypeEntry.Schedule.Event").
		Where("attendee_id = ?", user.UserID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch bookings",
		})
	}

	return c.JSON(fiber.Map{"bookings": bookings})
}

func GetMyPayments(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var payments []models.Payment
	if err := config.DB.Preload("Bookings").
		Where("attendee_id = ?", user.UserID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch payments",
		})
	}

	return c.JSON(fiber.Map{"payments": payments})
}
