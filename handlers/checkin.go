package handlers

import (
	"time"

	"github.com/Vedang260/EvoFest-Backend/config"
	"github.com/Vedang260/EvoFest-Backend/models"
	"github.com/Vedang260/EvoFest-Backend/monitoring"
	"github.com/Vedang260/EvoFest-Backend/utils"
	"github.com/gofiber/fiber/v2"
)

type CheckInRequest struct {
	EventID string `json:"event_id"`
	GuestID string `json:"guest_id"`
	// QRPayload is the raw scanned string; used when guest_id is empty.
	QRPayload string `json:"qr_payload"`
}

func CreateCheckIn(c *fiber.Ctx) error {
	var req CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request",
		})
	}

	guestID := req.GuestID
	if guestID == "" && req.QRPayload != "" {
		parsed, _, err := utils.ParseQRPayload(req.QRPayload)
		if err != nil {
			monitoring.CheckIns.WithLabelValues("bad_qr").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid QR code",
			})
		}
		guestID = parsed
	}

	if req.EventID == "" || guestID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields: event_id and guest_id or qr_payload",
		})
	}

	var guest models.Guest
	if err := config.DB.First(&guest, "guest_id = ?", guestID).Error; err != nil {
		monitoring.CheckIns.WithLabelValues("not_found").Inc()
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Guest not found",
		})
	}

	var existing models.CheckIn
	if err := config.DB.First(&existing, "guest_id = ?", guestID).Error; err == nil {
		monitoring.CheckIns.WithLabelValues("duplicate").Inc()
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":         "Guest already checked in",
			"checked_in_at": existing.CheckedInAt,
		})
	}

	checkIn := models.CheckIn{
		CheckInID:   utils.GenerateCheckInID(),
		GuestID:     guestID,
		EventID:     req.EventID,
		CheckedInAt: time.Now(),
	}

	// unique index on guest_id backstops a concurrent double scan
	if err := config.DB.Create(&checkIn).Error; err != nil {
		monitoring.CheckIns.WithLabelValues("duplicate").Inc()
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Guest already checked in",
		})
	}

	monitoring.CheckIns.WithLabelValues("ok").Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Guest checked in successfully",
		"check_in": fiber.Map{
			"check_in_id":   checkIn.CheckInID,
			"guest_id":      checkIn.GuestID,
			"guest_name":    guest.Name,
			"event_id":      checkIn.EventID,
			"checked_in_at": checkIn.CheckedInAt,
		},
	})
}

func GetEventCheckIns(c *fiber.Ctx) error {
	eventID := c.Params("id")

	var checkIns []models.CheckIn
	if err := config.DB.Preload("Guest").
		Where("event_id = ?", eventID).
		Order("checked_in_at DESC").
		Find(&checkIns).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch check-ins",
		})
	}

	return c.JSON(fiber.Map{"check_ins": checkIns})
}
