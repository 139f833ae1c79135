package properties

import (
	"fmt"

	propsvc "portfolio-backend/internal/application/properties"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/pkg/response"
	"portfolio-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *propsvc.Service
}

var statuses = response.StatusMap{
	propsvc.ErrOrgRequired:      fiber.StatusForbidden,
	propsvc.ErrPropertyNotFound: fiber.StatusNotFound,
	propsvc.ErrInvalidProperty:  fiber.StatusBadRequest,
	propsvc.ErrEmptyBatch:       fiber.StatusBadRequest,
	validation.ErrInvalidDate:   fiber.StatusBadRequest,
}

// propertyBody carries dates as text so clients may send plain dates.
type propertyBody struct {
	Name             string   `json:"name"`
	PropertyType     string   `json:"property_type"`
	Location         string   `json:"location"`
	PurchasePrice    float64  `json:"purchase_price"`
	CurrentValue     float64  `json:"current_value"`
	NOI              float64  `json:"noi"`
	OccupancyRate    float64  `json:"occupancy_rate"`
	PurchaseDate     string   `json:"purchase_date"`
	LeaseExpiryDate  string   `json:"lease_expiry_date"`
	EPCRating        *string  `json:"epc_rating"`
	MaintenanceScore *float64 `json:"maintenance_score"`
}

func (b propertyBody) input() (propsvc.PropertyInput, error) {
	in := propsvc.PropertyInput{
		Name:             b.Name,
		PropertyType:     b.PropertyType,
		Location:         b.Location,
		PurchasePrice:    b.PurchasePrice,
		CurrentValue:     b.CurrentValue,
		NOI:              b.NOI,
		OccupancyRate:    b.OccupancyRate,
		EPCRating:        b.EPCRating,
		MaintenanceScore: b.MaintenanceScore,
	}
	var err error
	if in.PurchaseDate, err = validation.ParseDate(b.PurchaseDate); err != nil {
		return in, fmt.Errorf("purchase_date: %w", err)
	}
	if in.LeaseExpiryDate, err = validation.ParseDate(b.LeaseExpiryDate); err != nil {
		return in, fmt.Errorf("lease_expiry_date: %w", err)
	}
	return in, nil
}

func propertyID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("property_id"))
	return id, err == nil
}

// POST /api/v1/properties/create-property
func (h *Handlers) CreateProperty(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	var body propertyBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	in, err := body.input()
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	p, err := h.Service.CreateProperty(c.UserContext(), orgID, in)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return response.SuccessCreated(c, "Property created successfully", p, nil)
}

// POST /api/v1/properties/bulk
func (h *Handlers) BulkCreate(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	var body struct {
		Properties []propertyBody `json:"properties"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	inputs := make([]propsvc.PropertyInput, 0, len(body.Properties))
	for i, b := range body.Properties {
		in, err := b.input()
		if err != nil {
			return response.FromError(c, fmt.Errorf("row %d: %w", i+1, err), statuses)
		}
		inputs = append(inputs, in)
	}
	rows, err := h.Service.BulkCreate(c.UserContext(), orgID, inputs)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return response.SuccessCreated(c, "Properties imported successfully", rows, fiber.Map{"count": len(rows)})
}

// GET /api/v1/properties/get-properties?property_type=&location=
func (h *Handlers) GetProperties(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	props, err := h.Service.ListProperties(c.UserContext(), orgID, propsvc.ListFilter{
		PropertyType: c.Query("property_type"),
		Location:     c.Query("location"),
	})
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return response.Success(c, "Properties fetched successfully", props, fiber.Map{"count": len(props)})
}

// GET /api/v1/properties/:property_id
func (h *Handlers) GetProperty(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	id, ok := propertyID(c)
	if !ok {
		return response.Error(c, "Invalid property_id format", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.GetProperty(c.UserContext(), orgID, id)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return response.Success(c, "Property fetched successfully", p, nil)
}

// PUT /api/v1/properties/:property_id
func (h *Handlers) UpdateProperty(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	id, ok := propertyID(c)
	if !ok {
		return response.Error(c, "Invalid property_id format", fiber.StatusBadRequest, nil)
	}
	var body propertyBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	in, err := body.input()
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	p, err := h.Service.UpdateProperty(c.UserContext(), orgID, id, in)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return response.Success(c, "Property updated successfully", p, nil)
}

// DELETE /api/v1/properties/:property_id
func (h *Handlers) DeleteProperty(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	id, ok := propertyID(c)
	if !ok {
		return response.Error(c, "Invalid property_id format", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteProperty(c.UserContext(), orgID, id); err != nil {
		return response.FromError(c, err, statuses)
	}
	return response.Success(c, "Property deleted successfully", fiber.Map{"property_id": id}, nil)
}
