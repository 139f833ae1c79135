package occupancy

import (
	"fmt"

	occsvc "portfolio-backend/internal/application/occupancy"
	propsvc "portfolio-backend/internal/application/properties"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/pkg/response"
	"portfolio-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *occsvc.Service
}

var statuses = response.StatusMap{
	propsvc.ErrOrgRequired:      fiber.StatusForbidden,
	propsvc.ErrPropertyNotFound: fiber.StatusNotFound,
	occsvc.ErrInvalidReading:    fiber.StatusBadRequest,
	validation.ErrInvalidDate:   fiber.StatusBadRequest,
}

type readingBody struct {
	PropertyID      string   `json:"property_id"`
	TotalArea       float64  `json:"total_area"`
	OccupiedArea    float64  `json:"occupied_area"`
	VacantArea      *float64 `json:"vacant_area"`
	CommonArea      float64  `json:"common_area"`
	TotalParking    int      `json:"total_parking"`
	OccupiedParking int      `json:"occupied_parking"`
	RecordedAt      string   `json:"recorded_at"`
}

// POST /api/v1/occupancy/create-reading
func (h *Handlers) CreateReading(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	var body readingBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	propertyID, err := uuid.Parse(body.PropertyID)
	if err != nil {
		return response.Error(c, "Invalid property_id format", fiber.StatusBadRequest, nil)
	}
	in := occsvc.CreateReadingInput{
		PropertyID:      propertyID,
		TotalArea:       body.TotalArea,
		OccupiedArea:    body.OccupiedArea,
		VacantArea:      body.VacantArea,
		CommonArea:      body.CommonArea,
		TotalParking:    body.TotalParking,
		OccupiedParking: body.OccupiedParking,
	}
	if in.RecordedAt, err = validation.ParseDate(body.RecordedAt); err != nil {
		return response.FromError(c, fmt.Errorf("recorded_at: %w", err), statuses)
	}

	r, err := h.Service.CreateReading(c.UserContext(), orgID, in)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return response.SuccessCreated(c, "Occupancy reading recorded successfully", r, nil)
}

// GET /api/v1/occupancy/get-readings?property_id=
func (h *Handlers) GetReadings(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	var propertyID *uuid.UUID
	if s := c.Query("property_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return response.Error(c, "Invalid property_id format", fiber.StatusBadRequest, nil)
		}
		propertyID = &id
	}
	readings, err := h.Service.ListReadings(c.UserContext(), orgID, propertyID)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return response.Success(c, "Occupancy readings fetched successfully", readings, fiber.Map{"count": len(readings)})
}
