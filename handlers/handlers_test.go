package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Vedang260/EvoFest-Backend/config"
	"github.com/Vedang260/EvoFest-Backend/models"
	"github.com/Vedang260/EvoFest-Backend/utils"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB points config.DB at a fresh in-memory sqlite database. Each test
// gets its own named shared-cache db so pooled connections see the same data.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventSchedule{},
		&models.DailyTicketTypeEntry{},
		&models.Payment{},
		&models.Booking{},
		&models.Guest{},
		&models.CheckIn{},
	))

	config.DB = db
	return db
}

func createTestUser(t *testing.T, role string) models.User {
	t.Helper()

	user := models.User{
		UserID:    utils.GenerateUserID(),
		Username:  utils.GeneratePrefixedUUID("u"),
		Name:      "Test " + role,
		Email:     utils.GeneratePrefixedUUID("mail") + "@example.com",
		Password:  "not-a-real-hash",
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = user.UserID
	claims["role"] = user.Role
	claims["exp"] = time.Now().Add(time.Hour).Unix()

	signed, err := token.SignedString(config.JWTSecret())
	require.NoError(t, err)
	return signed
}

// seedScheduledEvent creates organizer -> event -> one schedule with GENERAL
// and VIP tiers, the fixture every fulfillment and dashboard test starts from.
func seedScheduledEvent(t *testing.T) (models.Event, models.EventSchedule, map[string]models.DailyTicketTypeEntry) {
	t.Helper()

	organizer := createTestUser(t, models.RoleOrganizer)

	event := models.Event{
		EventID:     utils.GenerateEventID(),
		Title:       "EvoFest Summer Jam",
		OrganizerID: organizer.UserID,
		Category:    "MUSIC",
		Venue:       "Riverside Arena",
		Capacity:    200,
		DateStart:   time.Now().Add(24 * time.Hour),
		DateEnd:     time.Now().Add(72 * time.Hour),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, config.DB.Create(&event).Error)

	schedule := models.EventSchedule{
		ScheduleID: utils.GenerateScheduleID(),
		EventID:    event.EventID,
		Date:       time.Now().Add(24 * time.Hour),
		StartTime:  "18:00",
		EndTime:    "23:00",
		Capacity:   150,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, config.DB.Create(&schedule).Error)

	entries := map[string]models.DailyTicketTypeEntry{}
	for _, tier := range []struct {
		Type     string
		Price    float64
		Quantity uint
	}{
		{"GENERAL", 500, 100},
		{"VIP", 1500, 20},
	} {
		entry := models.DailyTicketTypeEntry{
			EntryID:    utils.GenerateTicketTypeEntryID(),
			ScheduleID: schedule.ScheduleID,
			Type:       tier.Type,
			Price:      tier.Price,
			Quantity:   tier.Quantity,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		require.NoError(t, config.DB.Create(&entry).Error)
		entries[tier.Type] = entry
	}

	return event, schedule, entries
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func newTestApp() *fiber.App {
	return fiber.New()
}
