package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/Vedang260/EvoFest-Backend/config"
	"github.com/Vedang260/EvoFest-Backend/middleware"
	"github.com/Vedang260/EvoFest-Backend/models"
	"github.com/Vedang260/EvoFest-Backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardApp() *fiber.App {
	app := newTestApp()
	dash := app.Group("/api/dashboard", middleware.AuthMiddleware,
		middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin))
	dash.Get("/:eventId/revenue-by-type", GetRevenueByType)
	dash.Get("/:eventId/checkins-per-hour", GetCheckInsPerHour)
	dash.Get("/:eventId/demographics", GetDemographics)
	dash.Get("/:eventId/summary", GetDashboardSummary)
	return app
}

// seedSoldOuting creates a completed payment with two bookings and three
// guests against the standard fixture, plus one check-in.
func seedSoldOuting(t *testing.T, event models.Event, entries map[string]models.DailyTicketTypeEntry) {
	t.Helper()

	attendee := createTestUser(t, models.RoleAttendee)
	payment := models.Payment{
		PaymentID:     utils.GeneratePaymentID(),
		AttendeeID:    attendee.UserID,
		Amount:        2500,
		Status:        models.PaymentCompleted,
		TransactionID: utils.GenerateOrderID(),
		PaidAt:        time.Now(),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, config.DB.Create(&payment).Error)

	type guestSpec struct {
		Name   string
		Age    uint
		Gender string
	}
	lines := []struct {
		Entry    models.DailyTicketTypeEntry
		Quantity uint
		Guests   []guestSpec
	}{
		{entries["GENERAL"], 2, []guestSpec{{"Jane", 28, "FEMALE"}, {"John", 65, "MALE"}}},
		{entries["VIP"], 1, []guestSpec{{"Vera", 16, "FEMALE"}}},
	}

	var firstGuestID string
	for _, line := range lines {
		booking := models.Booking{
			BookingID:         utils.GenerateBookingID(),
			PaymentID:         payment.PaymentID,
			TicketTypeEntryID: line.Entry.EntryID,
			AttendeeID:        attendee.UserID,
			Quantity:          line.Quantity,
			UnitPrice:         line.Entry.Price,
			Subtotal:          line.Entry.Price * float64(line.Quantity),
			CreatedAt:         time.Now(),
			UpdatedAt:         time.Now(),
		}
		require.NoError(t, config.DB.Create(&booking).Error)

		for _, gs := range line.Guests {
			guestID := utils.GenerateGuestID()
			if firstGuestID == "" {
				firstGuestID = guestID
			}
			guest := models.Guest{
				GuestID:   guestID,
				BookingID: booking.BookingID,
				Name:      gs.Name,
				Email:     gs.Name + "@example.com",
				Age:       gs.Age,
				Gender:    gs.Gender,
				QRPayload: utils.BuildQRPayload(guestID, gs.Name+"@example.com"),
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}
			require.NoError(t, config.DB.Create(&guest).Error)
		}
	}

	checkIn := models.CheckIn{
		CheckInID:   utils.GenerateCheckInID(),
		GuestID:     firstGuestID,
		EventID:     event.EventID,
		CheckedInAt: time.Date(2026, 7, 1, 18, 25, 0, 0, time.UTC),
	}
	require.NoError(t, config.DB.Create(&checkIn).Error)
}

func organizerGet(t *testing.T, app *fiber.App, organizerID, path string) *http.Response {
	t.Helper()

	var organizer models.User
	require.NoError(t, config.DB.First(&organizer, "user_id = ?", organizerID).Error)

	req := jsonRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, organizer))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRevenueByType(t *testing.T) {
	setupTestDB(t)
	event, _, entries := seedScheduledEvent(t)
	seedSoldOuting(t, event, entries)

	app := dashboardApp()
	resp := organizerGet(t, app, event.OrganizerID, "/api/dashboard/"+event.EventID+"/revenue-by-type")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	rows := body["revenue_by_type"].([]interface{})
	require.Len(t, rows, 2)

	// ordered by revenue desc: VIP 1500 vs GENERAL 1000
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "VIP", first["type"])
	assert.Equal(t, float64(1500), first["revenue"])
	second := rows[1].(map[string]interface{})
	assert.Equal(t, "GENERAL", second["type"])
	assert.Equal(t, float64(2), second["tickets"])
	assert.Equal(t, float64(1000), second["revenue"])
}

func TestCheckInsPerHour(t *testing.T) {
	setupTestDB(t)
	event, _, entries := seedScheduledEvent(t)
	seedSoldOuting(t, event, entries)

	app := dashboardApp()
	resp := organizerGet(t, app, event.OrganizerID, "/api/dashboard/"+event.EventID+"/checkins-per-hour")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	rows := body["checkins_per_hour"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, "18:00", row["hour"])
	assert.Equal(t, float64(1), row["check_ins"])
}

func TestDemographics(t *testing.T) {
	setupTestDB(t)
	event, _, entries := seedScheduledEvent(t)
	seedSoldOuting(t, event, entries)

	app := dashboardApp()
	resp := organizerGet(t, app, event.OrganizerID, "/api/dashboard/"+event.EventID+"/demographics")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)

	ageData := body["age_data"].([]interface{})
	brackets := map[string]float64{}
	for _, raw := range ageData {
		row := raw.(map[string]interface{})
		brackets[row["name"].(string)] = row["value"].(float64)
	}
	assert.Equal(t, float64(1), brackets["13-17"]) // Vera, 16
	assert.Equal(t, float64(1), brackets["25-34"]) // Jane, 28
	assert.Equal(t, float64(1), brackets["60+"])   // John, 65

	genderData := body["gender_data"].([]interface{})
	genders := map[string]float64{}
	for _, raw := range genderData {
		row := raw.(map[string]interface{})
		genders[row["name"].(string)] = row["value"].(float64)
	}
	assert.Equal(t, float64(2), genders["FEMALE"])
	assert.Equal(t, float64(1), genders["MALE"])
}

func TestDashboardSummary(t *testing.T) {
	setupTestDB(t)
	event, _, entries := seedScheduledEvent(t)
	seedSoldOuting(t, event, entries)

	app := dashboardApp()
	resp := organizerGet(t, app, event.OrganizerID, "/api/dashboard/"+event.EventID+"/summary")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, float64(3), summary["tickets_sold"])
	assert.Equal(t, float64(2500), summary["total_revenue"])
	assert.Equal(t, float64(3), summary["total_guests"])
	assert.Equal(t, float64(1), summary["total_check_ins"])
	assert.Equal(t, float64(197), summary["remaining_capacity"])
}

func TestDashboardDeniedForOtherOrganizer(t *testing.T) {
	setupTestDB(t)
	event, _, _ := seedScheduledEvent(t)
	other := createTestUser(t, models.RoleOrganizer)

	app := dashboardApp()

	req := jsonRequest(http.MethodGet, "/api/dashboard/"+event.EventID+"/summary", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, other))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
