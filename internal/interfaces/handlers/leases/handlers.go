package leases

import (
	"fmt"

	leasesvc "portfolio-backend/internal/application/leases"
	propsvc "portfolio-backend/internal/application/properties"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/pkg/response"
	"portfolio-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *leasesvc.Service
}

var statuses = response.StatusMap{
	propsvc.ErrOrgRequired:      fiber.StatusForbidden,
	propsvc.ErrPropertyNotFound: fiber.StatusNotFound,
	leasesvc.ErrLeaseNotFound:   fiber.StatusNotFound,
	leasesvc.ErrInvalidLease:    fiber.StatusBadRequest,
	validation.ErrInvalidDate:   fiber.StatusBadRequest,
}

type leaseBody struct {
	PropertyID     string  `json:"property_id"`
	TenantName     string  `json:"tenant_name"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	MonthlyRent    float64 `json:"monthly_rent"`
	EscalationRate float64 `json:"escalation_rate"`
	RenewalOption  bool    `json:"renewal_option"`
	BreakClause    bool    `json:"break_clause"`
	Status         string  `json:"status"`
}

// POST /api/v1/leases/create-lease
func (h *Handlers) CreateLease(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	var body leaseBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	propertyID, err := uuid.Parse(body.PropertyID)
	if err != nil {
		return response.Error(c, "Invalid property_id format", fiber.StatusBadRequest, nil)
	}
	in := leasesvc.CreateLeaseInput{
		PropertyID:     propertyID,
		TenantName:     body.TenantName,
		MonthlyRent:    body.MonthlyRent,
		EscalationRate: body.EscalationRate,
		RenewalOption:  body.RenewalOption,
		BreakClause:    body.BreakClause,
		Status:         body.Status,
	}
	if in.StartDate, err = validation.ParseDate(body.StartDate); err != nil {
		return response.FromError(c, fmt.Errorf("start_date: %w", err), statuses)
	}
	if in.EndDate, err = validation.ParseDate(body.EndDate); err != nil {
		return response.FromError(c, fmt.Errorf("end_date: %w", err), statuses)
	}

	lease, err := h.Service.CreateLease(c.UserContext(), orgID, in)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return response.SuccessCreated(c, "Lease created successfully", lease, nil)
}

// GET /api/v1/leases/get-leases?property_id=
func (h *Handlers) GetLeases(c *fiber.Ctx) error {
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
	leases, err := h.Service.ListLeases(c.UserContext(), orgID, propertyID)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return response.Success(c, "Leases fetched successfully", leases, fiber.Map{"count": len(leases)})
}

// DELETE /api/v1/leases/:lease_id
func (h *Handlers) DeleteLease(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	id, err := uuid.Parse(c.Params("lease_id"))
	if err != nil {
		return response.Error(c, "Invalid lease_id format", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteLease(c.UserContext(), orgID, id); err != nil {
		return response.FromError(c, err, statuses)
	}
	return response.Success(c, "Lease deleted successfully", fiber.Map{"lease_id": id}, nil)
}
