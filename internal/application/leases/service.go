package leases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio-backend/internal/application/properties"
	"portfolio-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrLeaseNotFound = errors.New("Lease not found")
	ErrInvalidLease  = errors.New("Invalid lease")
)

var leaseStatuses = map[string]bool{"active": true, "expired": true, "terminated": true, "pending": true}

type Service struct {
	DB *gorm.DB
}

type CreateLeaseInput struct {
	PropertyID     uuid.UUID  `json:"property_id"`
	TenantName     string     `json:"tenant_name"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	MonthlyRent    float64    `json:"monthly_rent"`
	EscalationRate float64    `json:"escalation_rate"`
	RenewalOption  bool       `json:"renewal_option"`
	BreakClause    bool       `json:"break_clause"`
	Status         string     `json:"status"`
}

func (in *CreateLeaseInput) validate() error {
	in.TenantName = strings.TrimSpace(in.TenantName)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if in.Status == "" {
		in.Status = "active"
	}
	switch {
	case in.PropertyID == uuid.Nil:
		return fmt.Errorf("%w: property_id is required", ErrInvalidLease)
	case in.TenantName == "":
		return fmt.Errorf("%w: tenant_name is required", ErrInvalidLease)
	case in.MonthlyRent < 0:
		return fmt.Errorf("%w: monthly_rent must not be negative", ErrInvalidLease)
	case in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate):
		return fmt.Errorf("%w: end_date is before start_date", ErrInvalidLease)
	case !leaseStatuses[in.Status]:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidLease, in.Status)
	}
	return nil
}

func (s *Service) CreateLease(ctx context.Context, orgID uuid.UUID, in CreateLeaseInput) (*domain.Lease, error) {
	if orgID == uuid.Nil {
		return nil, properties.ErrOrgRequired
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := properties.EnsureOwned(ctx, s.DB, orgID, in.PropertyID); err != nil {
		return nil, err
	}
	lease := &domain.Lease{
		OrgID:          orgID,
		PropertyID:     in.PropertyID,
		TenantName:     in.TenantName,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		MonthlyRent:    in.MonthlyRent,
		EscalationRate: in.EscalationRate,
		RenewalOption:  in.RenewalOption,
		BreakClause:    in.BreakClause,
		Status:         in.Status,
	}
	if err := s.DB.WithContext(ctx).Create(lease).Error; err != nil {
		return nil, fmt.Errorf("Failed to create lease: %w", err)
	}
	return lease, nil
}

// ListLeases returns the org's leases oldest first, optionally for one property.
// Reconciliation relies on this order to pick the first matching lease.
func (s *Service) ListLeases(ctx context.Context, orgID uuid.UUID, propertyID *uuid.UUID) ([]domain.Lease, error) {
	if orgID == uuid.Nil {
		return nil, properties.ErrOrgRequired
	}
	q := s.DB.WithContext(ctx).Where("org_id = ?", orgID)
	if propertyID != nil {
		q = q.Where("property_id = ?", *propertyID)
	}
	var out []domain.Lease
	if err := q.Order(`"createdAt" ASC`).Order("lease_id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch leases: %w", err)
	}
	return out, nil
}

func (s *Service) DeleteLease(ctx context.Context, orgID, leaseID uuid.UUID) error {
	if orgID == uuid.Nil {
		return properties.ErrOrgRequired
	}
	res := s.DB.WithContext(ctx).Where("lease_id = ? AND org_id = ?", leaseID, orgID).Delete(&domain.Lease{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLeaseNotFound
	}
	return nil
}
