package handlers

import (
	"time"

	"github.com/Vedang260/EvoFest-Backend/config"
	"github.com/Vedang260/EvoFest-Backend/models"
	"github.com/Vedang260/EvoFest-Backend/utils"
	"github.com/gofiber/fiber/v2"
)

type CreateEventRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	Capacity    uint   `json:"capacity"`
	Thumbnail   string `json:"thumbnail"`
	MediaURLs   string `json:"media_urls"`
	DateStart   string `json:"date_start"` // RFC3339
	DateEnd     string `json:"date_end"`
}

func CreateEvent(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var req CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request",
		})
	}

	if req.Title == "" || req.Venue == "" || req.DateStart == "" || req.DateEnd == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields: title, venue, date_start, date_end",
		})
	}

	dateStart, err := time.Parse(time.RFC3339, req.DateStart)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date_start format. Use RFC3339 format (e.g., 2026-07-01T18:00:00Z)",
		})
	}

	dateEnd, err := time.Parse(time.RFC3339, req.DateEnd)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date_end format. Use RFC3339 format (e.g., 2026-07-03T23:00:00Z)",
		})
	}

	if dateEnd.Before(dateStart) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date_end must be after date_start",
		})
	}

	event := models.Event{
		EventID:     utils.GenerateEventID(),
		Title:       req.Title,
		OrganizerID: user.UserID,
		Category:    req.Category,
		Description: req.Description,
		Venue:       req.Venue,
		Capacity:    req.Capacity,
		Thumbnail:   req.Thumbnail,
		MediaURLs:   req.MediaURLs,
		DateStart:   dateStart,
		DateEnd:     dateEnd,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := config.DB.Create(&event).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create event",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Event created successfully",
		"event":   event,
	})
}

func GetEvents(c *fiber.Ctx) error {
	query := config.DB.Preload("Organizer").Preload("Schedules")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var events []models.Event
	if err := query.Order("date_start ASC").Find(&events).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch events",
		})
	}

	return c.JSON(fiber.Map{"events": events})
}

func GetEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")

	var event models.Event
	if err := config.DB.Preload("Organizer").
		Preload("Schedules").
		Preload("Schedules.TicketTypeEntries").
		First(&event, "event_id = ?", eventID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Event not found",
		})
	}

	return c.JSON(fiber.Map{"event": event})
}

func GetMyEvents(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var events []models.Event
	if err := config.DB.Preload("Schedules").
		Where("organizer_id = ?", user.UserID).
		Order("date_start ASC").
		Find(&events).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch events",
		})
	}

	return c.JSON(fiber.Map{"events": events})
}

func UpdateEvent(c *fiber.Ctx) error {
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
			"error": "Not authorized to update this event",
		})
	}

	var req CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request",
		})
	}

	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Category != "" {
		event.Category = req.Category
	}
	if req.Description != "" {
		event.Description = req.Description
	}
	if req.Venue != "" {
		event.Venue = req.Venue
	}
	if req.Capacity > 0 {
		event.Capacity = req.Capacity
	}
	if req.Thumbnail != "" {
		event.Thumbnail = req.Thumbnail
	}
	if req.MediaURLs != "" {
		event.MediaURLs = req.MediaURLs
	}
	if req.DateStart != "" {
		dateStart, err := time.Parse(time.RFC3339, req.DateStart)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date_start format",
			})
		}
		event.DateStart = dateStart
	}
	if req.DateEnd != "" {
		dateEnd, err := time.Parse(time.RFC3339, req.DateEnd)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date_end format",
			})
		}
		event.DateEnd = dateEnd
	}
	event.UpdatedAt = time.Now()

	if err := config.DB.Save(&event).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update event",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Event updated successfully",
		"event":   event,
	})
}

func DeleteEvent(c *fiber.Ctx) error {
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
			"error": "Not authorized to delete this event",
		})
	}

	if err := config.DB.Delete(&event).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete event",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Event deleted successfully",
	})
}
