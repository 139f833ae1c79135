package transactions

import (
	"fmt"

	propsvc "portfolio-backend/internal/application/properties"
	txsvc "portfolio-backend/internal/application/transactions"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/pkg/response"
	"portfolio-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *txsvc.Service
}

var statuses = response.StatusMap{
	propsvc.ErrOrgRequired:      fiber.StatusForbidden,
	propsvc.ErrPropertyNotFound: fiber.StatusNotFound,
	txsvc.ErrInvalidTransaction: fiber.StatusBadRequest,
	validation.ErrInvalidDate:   fiber.StatusBadRequest,
}

type transactionBody struct {
	PropertyID     string   `json:"property_id"`
	TenantName     string   `json:"tenant_name"`
	Type           string   `json:"type"`
	Amount         float64  `json:"amount"`
	ExpectedAmount *float64 `json:"expected_amount"`
	DueDate        string   `json:"due_date"`
	OccurredAt     string   `json:"occurred_at"`
	Status         string   `json:"status"`
}

// POST /api/v1/transactions/create-transaction
func (h *Handlers) CreateTransaction(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	var body transactionBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	propertyID, err := uuid.Parse(body.PropertyID)
	if err != nil {
		return response.Error(c, "Invalid property_id format", fiber.StatusBadRequest, nil)
	}
	in := txsvc.CreateTransactionInput{
		PropertyID:     propertyID,
		TenantName:     body.TenantName,
		Type:           body.Type,
		Amount:         body.Amount,
		ExpectedAmount: body.ExpectedAmount,
		Status:         body.Status,
	}
	if in.DueDate, err = validation.ParseDate(body.DueDate); err != nil {
		return response.FromError(c, fmt.Errorf("due_date: %w", err), statuses)
	}
	if in.OccurredAt, err = validation.ParseDate(body.OccurredAt); err != nil {
		return response.FromError(c, fmt.Errorf("occurred_at: %w", err), statuses)
	}

	tx, err := h.Service.CreateTransaction(c.UserContext(), orgID, in)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return response.SuccessCreated(c, "Transaction recorded successfully", tx, nil)
}

// ParseListFilter reads property_id, from and to query parameters.
func ParseListFilter(c *fiber.Ctx) (txsvc.ListFilter, error) {
	var f txsvc.ListFilter
	if s := c.Query("property_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, fmt.Errorf("Invalid property_id format")
		}
		f.PropertyID = &id
	}
	var err error
	if f.From, err = validation.ParseDate(c.Query("from")); err != nil {
		return f, fmt.Errorf("from: %w", err)
	}
	if f.To, err = validation.ParseDate(c.Query("to")); err != nil {
		return f, fmt.Errorf("to: %w", err)
	}
	if f.From != nil && f.To != nil && !f.To.After(*f.From) {
		return f, fmt.Errorf("to must be after from")
	}
	return f, nil
}

// GET /api/v1/transactions/get-transactions?property_id=&from=&to=
func (h *Handlers) GetTransactions(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	f, err := ParseListFilter(c)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	txs, err := h.Service.ListTransactions(c.UserContext(), orgID, f)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	var total float64
	for _, tx := range txs {
		total += tx.Amount
	}
	return response.Success(c, "Transactions fetched successfully", txs, fiber.Map{
		"count": len(txs),
		"total": total,
	})
}
