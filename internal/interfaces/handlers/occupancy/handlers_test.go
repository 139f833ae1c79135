package occupancy

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	occsvc "portfolio-backend/internal/application/occupancy"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOccupancyTest(t *testing.T) (*fiber.App, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	orgID := uuid.New()
	p := &domain.Property{OrgID: orgID, Name: "Quay House", PropertyType: "Office", Location: "Leeds", OccupancyRate: 0.9}
	require.NoError(t, db.Create(p).Error)

	h := &Handlers{Service: &occsvc.Service{DB: db}}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{"user_id": uuid.New().String(), "role": "manager", "org_id": orgID.String()})
		return c.Next()
	})
	app.Post("/create-reading", h.CreateReading)
	app.Get("/get-readings", h.GetReadings)
	return app, p.PropertyID
}

func postReading(t *testing.T, app *fiber.App, body map[string]interface{}) (int, map[string]interface{}) {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/create-reading", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestCreateReading_DefaultsVacantArea(t *testing.T) {
	app, pid := setupOccupancyTest(t)

	code, out := postReading(t, app, map[string]interface{}{
		"property_id":   pid.String(),
		"total_area":    1000,
		"occupied_area": 800,
		"common_area":   100,
		"recorded_at":   "2026-01-10",
	})
	require.Equal(t, 201, code)
	assert.Equal(t, float64(200), out["data"].(map[string]interface{})["vacant_area"])
}

func TestCreateReading_Invalid(t *testing.T) {
	app, pid := setupOccupancyTest(t)

	code, out := postReading(t, app, map[string]interface{}{
		"property_id": pid.String(),
		"total_area":  100,
		"common_area": 200,
	})
	assert.Equal(t, 400, code)
	assert.Equal(t, "Invalid occupancy reading: common_area exceeds total_area", out["error"].(map[string]interface{})["message"])

	code, _ = postReading(t, app, map[string]interface{}{"property_id": "bad"})
	assert.Equal(t, 400, code)
}

func TestGetReadings(t *testing.T) {
	app, pid := setupOccupancyTest(t)
	postReading(t, app, map[string]interface{}{"property_id": pid.String(), "total_area": 500, "occupied_area": 450})

	resp, err := app.Test(httptest.NewRequest("GET", "/get-readings?property_id="+pid.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out["data"], 1)
}
