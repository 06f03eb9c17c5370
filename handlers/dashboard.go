package handlers

import (
	"fmt"

	"github.com/Vedang260/EvoFest-Backend/config"
	"github.com/Vedang260/EvoFest-Backend/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Dashboard queries recompute aggregates over the full event dataset on every
// request. Bookings only ever exist for completed payments (fulfillment
// creates them inside the payment transaction), so no status filter is
// needed on the joins.

type DayStats struct {
	Day      string  `json:"day"`
	Bookings int     `json:"bookings"`
	Tickets  int     `json:"tickets"`
	Revenue  float64 `json:"revenue"`
}

type TypeStats struct {
	Type    string  `json:"type"`
	Tickets int     `json:"tickets"`
	Revenue float64 `json:"revenue"`
}

type HourStats struct {
	Hour     string `json:"hour"`
	CheckIns int    `json:"check_ins"`
}

type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// loadOwnedEvent enforces the organizer-owns-it (or admin) rule shared by all
// dashboard endpoints. On failure the response is already written and ok is
// false.
func loadOwnedEvent(c *fiber.Ctx) (event models.Event, ok bool) {
	user := c.Locals("user").(models.User)
	eventID := c.Params("eventId")

	if err := config.DB.First(&event, "event_id = ?", eventID).Error; err != nil {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Event not found",
		})
		return event, false
	}

	if event.OrganizerID != user.UserID && user.Role != models.RoleAdmin {
		_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to view this dashboard",
		})
		return event, false
	}

	return event, true
}

func eventBookingsQuery(eventID string) *gorm.DB {
	return config.DB.Model(&models.Booking{}).
		Joins("JOIN daily_ticket_type_entries ON daily_ticket_type_entries.entry_id = bookings.ticket_type_entry_id").
		Joins("JOIN event_schedules ON event_schedules.schedule_id = daily_ticket_type_entries.schedule_id").
		Where("event_schedules.event_id = ?", eventID)
}

func GetBookingsPerDay(c *fiber.Ctx) error {
	event, ok := loadOwnedEvent(c)
	if !ok {
		return nil
	}

	var rows []DayStats
	if err := eventBookingsQuery(event.EventID).
		Select("DATE(bookings.created_at) AS day, COUNT(*) AS bookings, SUM(bookings.quantity) AS tickets, SUM(bookings.subtotal) AS revenue").
		Group("DATE(bookings.created_at)").
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute bookings per day",
		})
	}

	return c.JSON(fiber.Map{"bookings_per_day": rows})
}

func GetRevenueByType(c *fiber.Ctx) error {
	event, ok := loadOwnedEvent(c)
	if !ok {
		return nil
	}

	var rows []TypeStats
	if err := eventBookingsQuery(event.EventID).
		Select("daily_ticket_type_entries.type AS type, SUM(bookings.quantity) AS tickets, SUM(bookings.subtotal) AS revenue").
		Group("daily_ticket_type_entries.type").
		Order("revenue DESC").
		Scan(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute revenue by ticket type",
		})
	}

	return c.JSON(fiber.Map{"revenue_by_type": rows})
}

func GetCheckInsPerHour(c *fiber.Ctx) error {
	event, ok := loadOwnedEvent(c)
	if !ok {
		return nil
	}

	var checkIns []models.CheckIn
	if err := config.DB.Where("event_id = ?", event.EventID).Find(&checkIns).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch check-ins",
		})
	}

	byHour := make(map[string]int)
	for _, ci := range checkIns {
		byHour[ci.CheckedInAt.Format("15:00")]++
	}

	rows := make([]HourStats, 0, 24)
	for h := 0; h < 24; h++ {
		hour := fmt.Sprintf("%02d:00", h)
		if count, ok := byHour[hour]; ok {
			rows = append(rows, HourStats{Hour: hour, CheckIns: count})
		}
	}

	return c.JSON(fiber.Map{"checkins_per_hour": rows})
}

var ageBrackets = []struct {
	Label string
	Min   uint
	Max   uint
}{
	{"0-12", 0, 12},
	{"13-17", 13, 17},
	{"18-24", 18, 24},
	{"25-34", 25, 34},
	{"35-44", 35, 44},
	{"45-59", 45, 59},
	{"60+", 60, 200},
}

func GetDemographics(c *fiber.Ctx) error {
	event, ok := loadOwnedEvent(c)
	if !ok {
		return nil
	}

	var guests []models.Guest
	if err := config.DB.Select("guests.*").
		Joins("JOIN bookings ON bookings.booking_id = guests.booking_id").
		Joins("JOIN daily_ticket_type_entries ON daily_ticket_type_entries.entry_id = bookings.ticket_type_entry_id").
		Joins("JOIN event_schedules ON event_schedules.schedule_id = daily_ticket_type_entries.schedule_id").
		Where("event_schedules.event_id = ?", event.EventID).
		Find(&guests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch guests",
		})
	}

	byBracket := make(map[string]int)
	byGender := make(map[string]int)
	for _, guest := range guests {
		for _, b := range ageBrackets {
			if guest.Age >= b.Min && guest.Age <= b.Max {
				byBracket[b.Label]++
				break
			}
		}
		gender := guest.Gender
		if gender == "" {
			gender = "UNSPECIFIED"
		}
		byGender[gender]++
	}

	ageData := make([]NameValue, 0, len(ageBrackets))
	for _, b := range ageBrackets {
		if count, ok := byBracket[b.Label]; ok {
			ageData = append(ageData, NameValue{Name: b.Label, Value: count})
		}
	}

	genderData := make([]NameValue, 0, len(byGender))
	for gender, count := range byGender {
		genderData = append(genderData, NameValue{Name: gender, Value: count})
	}

	return c.JSON(fiber.Map{
		"age_data":    ageData,
		"gender_data": genderData,
	})
}

func GetDashboardSummary(c *fiber.Ctx) error {
	event, ok := loadOwnedEvent(c)
	if !ok {
		return nil
	}

	var ticketsSold int64
	var revenue float64
	row := eventBookingsQuery(event.EventID).
		Select("COALESCE(SUM(bookings.quantity), 0), COALESCE(SUM(bookings.subtotal), 0)").
		Row()
	if err := row.Scan(&ticketsSold, &revenue); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute sales totals",
		})
	}

	var guestCount int64
	config.DB.Model(&models.Guest{}).
		Joins("JOIN bookings ON bookings.booking_id = guests.booking_id").
		Joins("JOIN daily_ticket_type_entries ON daily_ticket_type_entries.entry_id = bookings.ticket_type_entry_id").
		Joins("JOIN event_schedules ON event_schedules.schedule_id = daily_ticket_type_entries.schedule_id").
		Where("event_schedules.event_id = ?", event.EventID).
		Count(&guestCount)

	var checkInCount int64
	config.DB.Model(&models.CheckIn{}).Where("event_id = ?", event.EventID).Count(&checkInCount)

	remaining := int(event.Capacity) - int(guestCount)
	if remaining < 0 {
		remaining = 0
	}

	return c.JSON(fiber.Map{
		"summary": fiber.Map{
			"tickets_sold":       ticketsSold,
			"total_revenue":      revenue,
			"total_guests":       guestCount,
			"total_check_ins":    checkInCount,
			"remaining_capacity": remaining,
		},
	})
}
