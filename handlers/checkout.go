package handlers

import (
	"time"

	"github.com/Vedang260/EvoFest-Backend/config"
	"github.com/Vedang260/EvoFest-Backend/models"
	"github.com/Vedang260/EvoFest-Backend/monitoring"
	"github.com/Vedang260/EvoFest-Backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type CheckoutTicketLine struct {
	Type     string `json:"type"`
	Quantity uint   `json:"quantity"`
	// UnitPrice is accepted for frontend compatibility but never trusted;
	// totals are re-derived from the stored ticket type entries.
	UnitPrice float64 `json:"unit_price,omitempty"`
}

type CheckoutGuest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Age        uint   `json:"age"`
	Gender     string `json:"gender"`
	TicketType string `json:"ticket_type"`
}

type CheckoutRequest struct {
	ScheduleID string               `json:"schedule_id"`
	Tickets    []CheckoutTicketLine `json:"tickets"`
	Guests     []CheckoutGuest      `json:"guests"`
}

// CheckoutMetadata travels to the payment gateway on the snap session and is
// echoed back on the notification webhook; fulfillment is keyed off it.
type CheckoutMetadata struct {
	PaymentID  string               `json:"payment_id"`
	ScheduleID string               `json:"schedule_id"`
	EventID    string               `json:"event_id"`
	EventTitle string               `json:"event_title"`
	Tickets    []MetadataTicketLine `json:"tickets"`
	Guests     []CheckoutGuest      `json:"guests"`
}

type MetadataTicketLine struct {
	EntryID   string  `json:"entry_id"`
	Type      string  `json:"type"`
	Quantity  uint    `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// createSnapTransaction is a seam over the gateway client so fulfillment
// validation can be exercised without network access.
var createSnapTransaction = func(req *snap.Request) (*snap.Response, *midtrans.Error) {
	return config.SnapClient.CreateTransaction(req)
}

func Checkout(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request",
		})
	}

	if req.ScheduleID == "" || len(req.Tickets) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields: schedule_id, tickets",
		})
	}

	var schedule models.EventSchedule
	if err := config.DB.Preload("Event").Preload("TicketTypeEntries").
		First(&schedule, "schedule_id = ?", req.ScheduleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Schedule not found",
		})
	}

	entriesByType := make(map[string]models.DailyTicketTypeEntry, len(schedule.TicketTypeEntries))
	for _, entry := range schedule.TicketTypeEntries {
		entriesByType[entry.Type] = entry
	}

	// Re-derive every price from the stored entries; client prices are ignored.
	var gross int64
	metaLines := make([]MetadataTicketLine, 0, len(req.Tickets))
	lineTypes := make(map[string]bool, len(req.Tickets))
	for _, line := range req.Tickets {
		if line.Quantity == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Ticket quantity must be at least 1",
			})
		}
		entry, ok := entriesByType[line.Type]
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No ticket type '" + line.Type + "' for this schedule",
			})
		}
		if entry.Sold+line.Quantity > entry.Quantity {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Not enough '" + line.Type + "' tickets available",
			})
		}
		if lineTypes[line.Type] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Duplicate ticket type '" + line.Type + "' in request",
			})
		}
		lineTypes[line.Type] = true

		gross += int64(entry.Price) * int64(line.Quantity)
		metaLines = append(metaLines, MetadataTicketLine{
			EntryID:   entry.EntryID,
			Type:      entry.Type,
			Quantity:  line.Quantity,
			UnitPrice: entry.Price,
		})
	}

	for _, guest := range req.Guests {
		if !lineTypes[guest.TicketType] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Guest '" + guest.Name + "' references ticket type '" + guest.TicketType + "' not in this order",
			})
		}
	}

	orderID := utils.GenerateOrderID()
	payment := models.Payment{
		PaymentID:     utils.GeneratePaymentID(),
		AttendeeID:    user.UserID,
		Amount:        float64(gross),
		Status:        models.PaymentPending,
		TransactionID: orderID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := config.DB.Create(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create payment",
		})
	}

	items := make([]midtrans.ItemDetails, 0, len(metaLines))
	for _, line := range metaLines {
		items = append(items, midtrans.ItemDetails{
			ID:       line.EntryID,
			Name:     schedule.Event.Title + " - " + line.Type,
			Price:    int64(line.UnitPrice),
			Qty:      int32(line.Quantity),
			Category: "Event Ticket",
		})
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.Name,
			Email: user.Email,
		},
		Items: &items,
		Metadata: CheckoutMetadata{
			PaymentID:  payment.PaymentID,
			ScheduleID: schedule.ScheduleID,
			EventID:    schedule.EventID,
			EventTitle: schedule.Event.Title,
			Tickets:    metaLines,
			Guests:     req.Guests,
		},
	}

	resp, snapErr := createSnapTransaction(snapReq)
	if snapErr != nil {
		monitoring.CheckoutSessions.WithLabelValues("error").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open checkout session with payment gateway",
		})
	}

	monitoring.CheckoutSessions.WithLabelValues("opened").Inc()

	return c.JSON(fiber.Map{
		"message":      "Checkout session created",
		"payment_id":   payment.PaymentID,
		"order_id":     orderID,
		"amount":       gross,
		"token":        resp.Token,
		"redirect_url": resp.RedirectURL,
	})
}
