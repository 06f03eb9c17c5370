package handlers

import (
	"net/http"
	"testing"

	"github.com/Vedang260/EvoFest-Backend/config"
	"github.com/Vedang260/EvoFest-Backend/middleware"
	"github.com/Vedang260/EvoFest-Backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSnap captures the request instead of calling the gateway.
func stubSnap(t *testing.T) *[]*snap.Request {
	t.Helper()

	captured := []*snap.Request{}
	orig := createSnapTransaction
	createSnapTransaction = func(req *snap.Request) (*snap.Response, *midtrans.Error) {
		captured = append(captured, req)
		return &snap.Response{Token: "stub-token", RedirectURL: "https://pay.example/stub"}, nil
	}
	t.Cleanup(func() { createSnapTransaction = orig })
	return &captured
}

func checkoutApp() *fiber.App {
	app := newTestApp()
	app.Post("/api/checkout", middleware.AuthMiddleware, middleware.RequireRoles(models.RoleAttendee), Checkout)
	return app
}

func authedCheckoutRequest(t *testing.T, attendee models.User, body interface{}) *http.Request {
	req := jsonRequest(http.MethodPost, "/api/checkout", body)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, attendee))
	return req
}

func TestCheckoutDerivesPricesFromStoredEntries(t *testing.T) {
	setupTestDB(t)
	_, schedule, _ := seedScheduledEvent(t)
	attendee := createTestUser(t, models.RoleAttendee)
	captured := stubSnap(t)

	app := checkoutApp()

	// client claims everything costs 1: must be ignored
	resp, err := app.Test(authedCheckoutRequest(t, attendee, CheckoutRequest{
		ScheduleID: schedule.ScheduleID,
		Tickets: []CheckoutTicketLine{
			{Type: "GENERAL", Quantity: 2, UnitPrice: 1},
			{Type: "VIP", Quantity: 1, UnitPrice: 1},
		},
		Guests: []CheckoutGuest{
			{Name: "Jane", Email: "jane@example.com", TicketType: "GENERAL"},
		},
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(2*500+1500), body["amount"])
	assert.Equal(t, "stub-token", body["token"])

	// pending payment row carries the server-derived total
	var payment models.Payment
	require.NoError(t, config.DB.First(&payment, "payment_id = ?", body["payment_id"]).Error)
	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.Equal(t, float64(2500), payment.Amount)

	// gateway session gets the same derived amounts
	require.Len(t, *captured, 1)
	sent := (*captured)[0]
	assert.Equal(t, int64(2500), sent.TransactionDetails.GrossAmt)
	assert.Equal(t, payment.TransactionID, sent.TransactionDetails.OrderID)

	meta, ok := sent.Metadata.(CheckoutMetadata)
	require.True(t, ok)
	assert.Equal(t, payment.PaymentID, meta.PaymentID)
	require.Len(t, meta.Tickets, 2)
	assert.Equal(t, float64(500), meta.Tickets[0].UnitPrice)
}

func TestCheckoutRejectsUnknownTicketType(t *testing.T) {
	setupTestDB(t)
	_, schedule, _ := seedScheduledEvent(t)
	attendee := createTestUser(t, models.RoleAttendee)
	stubSnap(t)

	app := checkoutApp()

	resp, err := app.Test(authedCheckoutRequest(t, attendee, CheckoutRequest{
		ScheduleID: schedule.ScheduleID,
		Tickets:    []CheckoutTicketLine{{Type: "PLATINUM", Quantity: 1}},
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	config.DB.Model(&models.Payment{}).Count(&count)
	assert.Zero(t, count)
}

func TestCheckoutRejectsOversoldQuantity(t *testing.T) {
	setupTestDB(t)
	_, schedule, _ := seedScheduledEvent(t)
	attendee := createTestUser(t, models.RoleAttendee)
	stubSnap(t)

	app := checkoutApp()

	// VIP tier only has 20
	resp, err := app.Test(authedCheckoutRequest(t, attendee, CheckoutRequest{
		ScheduleID: schedule.ScheduleID,
		Tickets:    []CheckoutTicketLine{{Type: "VIP", Quantity: 21}},
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutRejectsGuestWithUnorderedType(t *testing.T) {
	setupTestDB(t)
	_, schedule, _ := seedScheduledEvent(t)
	attendee := createTestUser(t, models.RoleAttendee)
	stubSnap(t)

	app := checkoutApp()

	resp, err := app.Test(authedCheckoutRequest(t, attendee, CheckoutRequest{
		ScheduleID: schedule.ScheduleID,
		Tickets:    []CheckoutTicketLine{{Type: "GENERAL", Quantity: 1}},
		Guests:     []CheckoutGuest{{Name: "Jane", Email: "jane@example.com", TicketType: "VIP"}},
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutRejectsUnknownSchedule(t *testing.T) {
	setupTestDB(t)
	seedScheduledEvent(t)
	attendee := createTestUser(t, models.RoleAttendee)
	stubSnap(t)

	app := checkoutApp()

	resp, err := app.Test(authedCheckoutRequest(t, attendee, CheckoutRequest{
		ScheduleID: "sched-missing",
		Tickets:    []CheckoutTicketLine{{Type: "GENERAL", Quantity: 1}},
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
