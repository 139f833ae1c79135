package transactions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio-backend/internal/application/properties"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidTransaction = errors.New("Invalid transaction")

type Service struct {
	DB *gorm.DB
}

type CreateTransactionInput struct {
	PropertyID     uuid.UUID  `json:"property_id"`
	TenantName     string     `json:"tenant_name"`
	Type           string     `json:"type"`
	Amount         float64    `json:"amount"`
	ExpectedAmount *float64   `json:"expected_amount"`
	DueDate        *time.Time `json:"due_date"`
	OccurredAt     *time.Time `json:"occurred_at"`
	Status         string     `json:"status"`
}

func (s *Service) CreateTransaction(ctx context.Context, orgID uuid.UUID, in CreateTransactionInput) (*domain.Transaction, error) {
	if orgID == uuid.Nil {
		return nil, properties.ErrOrgRequired
	}
	in.TenantName = strings.TrimSpace(in.TenantName)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	switch {
	case in.PropertyID == uuid.Nil:
		return nil, fmt.Errorf("%w: property_id is required", ErrInvalidTransaction)
	case in.TenantName == "":
		return nil, fmt.Errorf("%w: tenant_name is required", ErrInvalidTransaction)
	case !validation.IsValidTransactionType(in.Type):
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, in.Type)
	case in.ExpectedAmount != nil && *in.ExpectedAmount < 0:
		return nil, fmt.Errorf("%w: expected_amount must not be negative", ErrInvalidTransaction)
	}
	if err := properties.EnsureOwned(ctx, s.DB, orgID, in.PropertyID); err != nil {
		return nil, err
	}

	occurred := time.Now().UTC()
	if in.OccurredAt != nil {
		occurred = *in.OccurredAt
	}
	status := in.Status
	if status == "" {
		status = "completed"
	}
	tx := &domain.Transaction{
		OrgID:          orgID,
		PropertyID:     in.PropertyID,
		TenantName:     in.TenantName,
		Type:           in.Type,
		Amount:         in.Amount,
		ExpectedAmount: in.ExpectedAmount,
		DueDate:        in.DueDate,
		OccurredAt:     occurred,
		Status:         status,
	}
	if err := s.DB.WithContext(ctx).Create(tx).Error; err != nil {
		return nil, fmt.Errorf("Failed to create transaction: %w", err)
	}
	return tx, nil
}

// ListFilter narrows ListTransactions; zero values match everything.
type ListFilter struct {
	PropertyID *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// ListTransactions returns the org's transactions in the order they occurred.
func (s *Service) ListTransactions(ctx context.Context, orgID uuid.UUID, f ListFilter) ([]domain.Transaction, error) {
	if orgID == uuid.Nil {
		return nil, properties.ErrOrgRequired
	}
	q := s.DB.WithContext(ctx).Where("org_id = ?", orgID)
	if f.PropertyID != nil {
		q = q.Where("property_id = ?", *f.PropertyID)
	}
	if f.From != nil {
		q = q.Where("occurred_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("occurred_at < ?", *f.To)
	}
	var out []domain.Transaction
	if err := q.Order("occurred_at ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch transactions: %w", err)
	}
	return out, nil
}
