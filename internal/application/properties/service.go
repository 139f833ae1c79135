package properties

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrOrgRequired      = errors.New("Organization not associated with user")
	ErrPropertyNotFound = errors.New("Property not found")
	ErrInvalidProperty  = errors.New("Invalid property")
	ErrEmptyBatch       = errors.New("No properties supplied")
)

// bulkBatchSize bounds the rows per INSERT when loading a batch.
const bulkBatchSize = 100

type Service struct {
	DB *gorm.DB
}

// PropertyInput is an already-parsed property record.
type PropertyInput struct {
	Name             string     `json:"name"`
	PropertyType     string     `json:"property_type"`
	Location         string     `json:"location"`
	PurchasePrice    float64    `json:"purchase_price"`
	CurrentValue     float64    `json:"current_value"`
	NOI              float64    `json:"noi"`
	OccupancyRate    float64    `json:"occupancy_rate"`
	PurchaseDate     *time.Time `json:"purchase_date"`
	LeaseExpiryDate  *time.Time `json:"lease_expiry_date"`
	EPCRating        *string    `json:"epc_rating"`
	MaintenanceScore *float64   `json:"maintenance_score"`
}

// Validate checks field ranges and canonicalizes type and EPC spelling.
func (in *PropertyInput) Validate() error {
	errs := validation.FieldErrors{}
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	if in.Name == "" {
		errs.Add("name", "is required")
	}
	if in.Location == "" {
		errs.Add("location", "is required")
	}
	if t, ok := validation.NormalizePropertyType(in.PropertyType); ok {
		in.PropertyType = t
	} else {
		errs.Add("property_type", "must be one of Office, Retail, Industrial, Residential")
	}
	if in.PurchasePrice < 0 {
		errs.Add("purchase_price", "must not be negative")
	}
	if in.CurrentValue < 0 {
		errs.Add("current_value", "must not be negative")
	}
	if !validation.IsValidOccupancyRate(in.OccupancyRate) {
		errs.Add("occupancy_rate", "must be between 0 and 1")
	}
	if in.EPCRating != nil {
		if !validation.IsValidEPC(*in.EPCRating) {
			errs.Add("epc_rating", "must be a letter A-G")
		} else {
			epc := strings.ToUpper(strings.TrimSpace(*in.EPCRating))
			in.EPCRating = &epc
		}
	}
	if in.MaintenanceScore != nil && !validation.IsValidMaintenanceScore(*in.MaintenanceScore) {
		errs.Add("maintenance_score", "must be between 1 and 10")
	}
	if !errs.Empty() {
		return fmt.Errorf("%w: %s", ErrInvalidProperty, errs.Error())
	}
	return nil
}

func (in PropertyInput) apply(p *domain.Property) {
	p.Name = in.Name
	p.PropertyType = in.PropertyType
	p.Location = in.Location
	p.PurchasePrice = in.PurchasePrice
	p.CurrentValue = in.CurrentValue
	p.NOI = in.NOI
	p.OccupancyRate = in.OccupancyRate
	p.PurchaseDate = in.PurchaseDate
	p.LeaseExpiryDate = in.LeaseExpiryDate
	p.EPCRating = in.EPCRating
	p.MaintenanceScore = in.MaintenanceScore
}

func (s *Service) CreateProperty(ctx context.Context, orgID uuid.UUID, in PropertyInput) (*domain.Property, error) {
	if orgID == uuid.Nil {
		return nil, ErrOrgRequired
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := &domain.Property{OrgID: orgID}
	in.apply(p)
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("Failed to create property: %w", err)
	}
	return p, nil
}

// BulkCreate inserts every record or none. Validation errors name the offending row.
func (s *Service) BulkCreate(ctx context.Context, orgID uuid.UUID, inputs []PropertyInput) ([]domain.Property, error) {
	if orgID == uuid.Nil {
		return nil, ErrOrgRequired
	}
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}
	rows := make([]domain.Property, len(inputs))
	for i := range inputs {
		if err := inputs[i].Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rows[i].OrgID = orgID
		inputs[i].apply(&rows[i])
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&rows, bulkBatchSize).Error
	})
	if err != nil {
		return nil, fmt.Errorf("Failed to import properties: %w", err)
	}
	return rows, nil
}

// ListFilter narrows ListProperties; empty fields match everything.
type ListFilter struct {
	PropertyType string
	Location     string
}

func (s *Service) ListProperties(ctx context.Context, orgID uuid.UUID, f ListFilter) ([]domain.Property, error) {
	if orgID == uuid.Nil {
		return nil, ErrOrgRequired
	}
	q := s.DB.WithContext(ctx).Where("org_id = ?", orgID)
	if f.PropertyType != "" {
		if t, ok := validation.NormalizePropertyType(f.PropertyType); ok {
			q = q.Where("property_type = ?", t)
		}
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) = ?", strings.ToLower(strings.TrimSpace(f.Location)))
	}
	var props []domain.Property
	if err := q.Order(`"createdAt" ASC`).Find(&props).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch properties: %w", err)
	}
	return props, nil
}

func (s *Service) GetProperty(ctx context.Context, orgID, propertyID uuid.UUID) (*domain.Property, error) {
	if orgID == uuid.Nil {
		return nil, ErrOrgRequired
	}
	var p domain.Property
	err := s.DB.WithContext(ctx).Where("property_id = ? AND org_id = ?", propertyID, orgID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProperty replaces every editable field.
func (s *Service) UpdateProperty(ctx context.Context, orgID, propertyID uuid.UUID, in PropertyInput) (*domain.Property, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, err := s.GetProperty(ctx, orgID, propertyID)
	if err != nil {
		return nil, err
	}
	in.apply(p)
	if err := s.DB.WithContext(ctx).Save(p).Error; err != nil {
		return nil, fmt.Errorf("Failed to update property: %w", err)
	}
	return p, nil
}

// DeleteProperty removes the property with its leases, transactions and readings.
func (s *Service) DeleteProperty(ctx context.Context, orgID, propertyID uuid.UUID) error {
	if _, err := s.GetProperty(ctx, orgID, propertyID); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&domain.Lease{}, &domain.Transaction{}, &domain.OccupancyReading{}} {
			if err := tx.Where("property_id = ? AND org_id = ?", propertyID, orgID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Where("property_id = ? AND org_id = ?", propertyID, orgID).Delete(&domain.Property{}).Error
	})
}

// EnsureOwned returns ErrPropertyNotFound unless propertyID belongs to orgID.
func EnsureOwned(ctx context.Context, db *gorm.DB, orgID, propertyID uuid.UUID) error {
	var n int64
	if err := db.WithContext(ctx).Model(&domain.Property{}).Where("property_id = ? AND org_id = ?", propertyID, orgID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrPropertyNotFound
	}
	return nil
}
