package handlers

import (
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Vedang260/EvoFest-Backend/config"
	"github.com/Vedang260/EvoFest-Backend/models"
	"github.com/Vedang260/EvoFest-Backend/monitoring"
	"github.com/Vedang260/EvoFest-Backend/realtime"
	"github.com/Vedang260/EvoFest-Backend/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PaymentNotification is the gateway's HTTP notification body. Metadata is the
// checkout selection we attached to the snap session, echoed back verbatim.
type PaymentNotification struct {
	OrderID           string          `json:"order_id"`
	StatusCode        string          `json:"status_code"`
	GrossAmount       string          `json:"gross_amount"`
	SignatureKey      string          `json:"signature_key"`
	TransactionStatus string          `json:"transaction_status"`
	FraudStatus       string          `json:"fraud_status"`
	TransactionTime   string          `json:"transaction_time"`
	Metadata          json.RawMessage `json:"metadata"`
}

// VerifyNotificationSignature checks Midtrans' signature_key:
// sha512(order_id + status_code + gross_amount + server_key), hex encoded.
// The scheme is the gateway's contract and must not be altered.
func VerifyNotificationSignature(n *PaymentNotification, serverKey string) bool {
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + serverKey))
	return hex.EncodeToString(sum[:]) == n.SignatureKey
}

func PaymentNotificationHandler(c *fiber.Ctx) error {
	var notif PaymentNotification
	if err := c.BodyParser(&notif); err != nil {
		monitoring.WebhookNotifications.WithLabelValues("bad_payload").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid notification payload"})
	}

	if !VerifyNotificationSignature(&notif, config.MidtransServerKey()) {
		monitoring.WebhookNotifications.WithLabelValues("bad_signature").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid signature"})
	}

	switch notif.TransactionStatus {
	case "settlement", "capture":
		if notif.FraudStatus == "challenge" || notif.FraudStatus == "deny" {
			monitoring.WebhookNotifications.WithLabelValues("fraud_hold").Inc()
			return c.JSON(fiber.Map{"message": "Notification acknowledged, payment held"})
		}

		var meta CheckoutMetadata
		if err := json.Unmarshal(notif.Metadata, &meta); err != nil {
			monitoring.WebhookNotifications.WithLabelValues("bad_metadata").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session metadata"})
		}

		fulfilled, err := fulfillPayment(&notif, &meta)
		if err != nil {
			log.Printf("fulfillment failed for order %s: %v", notif.OrderID, err)
			monitoring.WebhookNotifications.WithLabelValues("fulfillment_error").Inc()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fulfill payment"})
		}
		if !fulfilled {
			// replayed notification for an already completed payment
			monitoring.WebhookNotifications.WithLabelValues("replay").Inc()
			return c.JSON(fiber.Map{"message": "Notification already processed", "order_id": notif.OrderID})
		}

		monitoring.WebhookNotifications.WithLabelValues("fulfilled").Inc()

		// Side effects run outside the transaction: QR + email per guest,
		// then one occupancy push. Failures here are logged and swallowed;
		// the bookings are already durable.
		deliverGuestTickets(&meta)
		publishOccupancy(meta.EventID)

		return c.JSON(fiber.Map{
			"message":  "Notification processed",
			"order_id": notif.OrderID,
			"status":   notif.TransactionStatus,
		})

	case "deny", "cancel", "expire":
		if err := config.DB.Model(&models.Payment{}).
			Where("transaction_id = ? AND status = ?", notif.OrderID, models.PaymentPending).
			Updates(map[string]interface{}{"status": models.PaymentFailed, "updated_at": time.Now()}).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment status"})
		}
		monitoring.WebhookNotifications.WithLabelValues("failed_payment").Inc()
		return c.JSON(fiber.Map{
			"message":  "Notification processed",
			"order_id": notif.OrderID,
			"status":   notif.TransactionStatus,
		})

	case "pending":
		monitoring.WebhookNotifications.WithLabelValues("pending").Inc()
		return c.JSON(fiber.Map{"message": "Notification acknowledged", "order_id": notif.OrderID})

	default:
		monitoring.WebhookNotifications.WithLabelValues("unknown_status").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown transaction status"})
	}
}

// fulfillPayment marks the payment completed and creates bookings and guests
// in one all-or-nothing transaction. Returns false without error when the
// payment was already completed, so a replayed notification is a no-op.
func fulfillPayment(notif *PaymentNotification, meta *CheckoutMetadata) (bool, error) {
	start := time.Now()
	defer func() {
		monitoring.FulfillmentDuration.Observe(time.Since(start).Seconds())
	}()

	fulfilled := false
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, "transaction_id = ?", notif.OrderID).Error; err != nil {
			return fmt.Errorf("payment for order %s not found: %w", notif.OrderID, err)
		}

		paidAt, _ := time.Parse("2006-01-02 15:04:05", notif.TransactionTime)

		// Guarded update is the idempotency key: a replay finds zero
		// PENDING rows and leaves the transaction without writing.
		res := tx.Model(&models.Payment{}).
			Where("payment_id = ? AND status = ?", payment.PaymentID, models.PaymentPending).
			Updates(map[string]interface{}{
				"status":     models.PaymentCompleted,
				"paid_at":    paidAt,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		bookingByType := make(map[string]string, len(meta.Tickets))
		for _, line := range meta.Tickets {
			booking := models.Booking{
				BookingID:         utils.GenerateBookingID(),
				PaymentID:         payment.PaymentID,
				TicketTypeEntryID: line.EntryID,
				AttendeeID:        payment.AttendeeID,
				Quantity:          line.Quantity,
				UnitPrice:         line.UnitPrice,
				Subtotal:          line.UnitPrice * float64(line.Quantity),
				CreatedAt:         time.Now(),
				UpdatedAt:         time.Now(),
			}
			if err := tx.Create(&booking).Error; err != nil {
				return fmt.Errorf("create booking for type %s: %w", line.Type, err)
			}
			bookingByType[line.Type] = booking.BookingID

			if err := tx.Model(&models.DailyTicketTypeEntry{}).
				Where("entry_id = ?", line.EntryID).
				UpdateColumn("sold", gorm.Expr("sold + ?", line.Quantity)).Error; err != nil {
				return fmt.Errorf("update sold count for entry %s: %w", line.EntryID, err)
			}
		}

		for _, g := range meta.Guests {
			bookingID, ok := bookingByType[g.TicketType]
			if !ok {
				// rolls back the whole fulfillment, bookings included
				return fmt.Errorf("guest %s references ticket type %q with no booking", g.Name, g.TicketType)
			}
			guestID := utils.GenerateGuestID()
			guest := models.Guest{
				GuestID:   guestID,
				BookingID: bookingID,
				Name:      g.Name,
				Email:     g.Email,
				Phone:     g.Phone,
				Age:       g.Age,
				Gender:    g.Gender,
				QRPayload: utils.BuildQRPayload(guestID, g.Email),
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}
			if err := tx.Create(&guest).Error; err != nil {
				return fmt.Errorf("create guest %s: %w", g.Name, err)
			}
		}

		fulfilled = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if fulfilled {
		monitoring.BookingsCreated.Add(float64(len(meta.Tickets)))
	}
	return fulfilled, nil
}

// deliverGuestTickets generates and emails a QR ticket per guest. Each guest
// is handled independently; one failure never blocks the others.
func deliverGuestTickets(meta *CheckoutMetadata) {
	var guests []models.Guest
	if err := config.DB.Select("guests.*").
		Joins("JOIN bookings ON bookings.booking_id = guests.booking_id").
		Where("bookings.payment_id = ?", meta.PaymentID).
		Find(&guests).Error; err != nil {
		log.Printf("fetch guests for payment %s: %v", meta.PaymentID, err)
		return
	}

	for _, guest := range guests {
		qrImage, err := utils.GenerateQRImage(guest.QRPayload)
		if err != nil {
			log.Printf("generate QR for guest %s: %v", guest.GuestID, err)
			continue
		}

		if err := config.DB.Model(&models.Guest{}).
			Where("guest_id = ?", guest.GuestID).
			Updates(map[string]interface{}{"qr_image": qrImage, "updated_at": time.Now()}).Error; err != nil {
			log.Printf("persist QR for guest %s: %v", guest.GuestID, err)
		}

		if err := config.SendTicketEmail(guest.Email, guest.Name, meta.EventTitle, qrImage); err != nil {
			// logged and swallowed: the guest can still check in with the QR
			// from their booking page
			log.Printf("email ticket to guest %s (%s): %v", guest.GuestID, guest.Email, err)
			monitoring.TicketEmails.WithLabelValues("error").Inc()
			continue
		}

		config.DB.Model(&models.Guest{}).
			Where("guest_id = ?", guest.GuestID).
			UpdateColumn("emailed", true)
		monitoring.TicketEmails.WithLabelValues("sent").Inc()
	}
}

// publishOccupancy recomputes event-wide guest totals and pushes one
// remaining-capacity message on the realtime channel.
func publishOccupancy(eventID string) {
	var event models.Event
	if err := config.DB.First(&event, "event_id = ?", eventID).Error; err != nil {
		log.Printf("fetch event %s for occupancy update: %v", eventID, err)
		return
	}

	var guestCount int64
	if err := config.DB.Model(&models.Guest{}).
		Joins("JOIN bookings ON bookings.booking_id = guests.booking_id").
		Joins("JOIN daily_ticket_type_entries ON daily_ticket_type_entries.entry_id = bookings.ticket_type_entry_id").
		Joins("JOIN event_schedules ON event_schedules.schedule_id = daily_ticket_type_entries.schedule_id").
		Where("event_schedules.event_id = ?", eventID).
		Count(&guestCount).Error; err != nil {
		log.Printf("count guests for event %s: %v", eventID, err)
		return
	}

	remaining := int(event.Capacity) - int(guestCount)
	if remaining < 0 {
		remaining = 0
	}

	if err := realtime.PublishOccupancy(eventID, remaining); err != nil {
		log.Printf("publish occupancy for event %s: %v", eventID, err)
	}
}
