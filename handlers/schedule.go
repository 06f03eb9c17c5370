package handlers

import (
	"time"

	"github.com/Vedang260/EvoFest-Backend/config"
	"github.com/Vedang260/EvoFest-Backend/models"
	"github.com/Vedang260/EvoFest-Backend/utils"
	"github.com/gofiber/fiber/v2"
)

type CreateScheduleRequest struct {
	Date      string `json:"date"` // YYYY-MM-DD
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Capacity  uint   `json:"capacity"`
}

func CreateSchedule(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	eventID := c.Params("id")

	var event models.Event
	if err := config.DB.First(&event, "event_id = ?", eventID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Event not found",
		})
	}

	if event.OrganizerID != user.UserID && user.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to manage this event",
		})
	}

	var req CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request",
		})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format. Use YYYY-MM-DD",
		})
	}

	if req.Capacity == 0 || req.Capacity > event.Capacity {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Schedule capacity must be between 1 and the event capacity",
		})
	}

	schedule := models.EventSchedule{
		ScheduleID: utils.GenerateScheduleID(),
		EventID:    event.EventID,
		Date:       date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Capacity:   req.Capacity,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := config.DB.Create(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create schedule",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Schedule created successfully",
		"schedule": schedule,
	})
}

func GetSchedules(c *fiber.Ctx) error {
	eventID := c.Params("id")

	var schedules []models.EventSchedule
	if err := config.DB.Preload("TicketTypeEntries").
		Where("event_id = ?", eventID).
		Order("date ASC").
		Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch schedules",
		})
	}

	return c.JSON(fiber.Map{"schedules": schedules})
}

func DeleteSchedule(c *fiber.Ctx) error {
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

	if err := config.DB.Delete(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete schedule",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Schedule deleted successfully",
	})
}
