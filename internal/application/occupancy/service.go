package occupancy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-backend/internal/application/properties"
	"portfolio-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidReading = errors.New("Invalid occupancy reading")

type Service struct {
	DB *gorm.DB
}

type CreateReadingInput struct {
	PropertyID      uuid.UUID  `json:"property_id"`
	TotalArea       float64    `json:"total_area"`
	OccupiedArea    float64    `json:"occupied_area"`
	VacantArea      *float64   `json:"vacant_area"`
	CommonArea      float64    `json:"common_area"`
	TotalParking    int        `json:"total_parking"`
	OccupiedParking int        `json:"occupied_parking"`
	RecordedAt      *time.Time `json:"recorded_at"`
}

// CreateReading stores a survey. Occupied area may exceed total area; that is
// how overcrowding shows up. Vacant area defaults to total minus occupied.
func (s *Service) CreateReading(ctx context.Context, orgID uuid.UUID, in CreateReadingInput) (*domain.OccupancyReading, error) {
	if orgID == uuid.Nil {
		return nil, properties.ErrOrgRequired
	}
	switch {
	case in.PropertyID == uuid.Nil:
		return nil, fmt.Errorf("%w: property_id is required", ErrInvalidReading)
	case in.TotalArea < 0 || in.OccupiedArea < 0 || in.CommonArea < 0:
		return nil, fmt.Errorf("%w: areas must not be negative", ErrInvalidReading)
	case in.CommonArea > in.TotalArea:
		return nil, fmt.Errorf("%w: common_area exceeds total_area", ErrInvalidReading)
	case in.TotalParking < 0 || in.OccupiedParking < 0:
		return nil, fmt.Errorf("%w: parking counts must not be negative", ErrInvalidReading)
	}
	if err := properties.EnsureOwned(ctx, s.DB, orgID, in.PropertyID); err != nil {
		return nil, err
	}

	vacant := in.TotalArea - in.OccupiedArea
	if vacant < 0 {
		vacant = 0
	}
	if in.VacantArea != nil {
		vacant = *in.VacantArea
	}
	r := &domain.OccupancyReading{
		OrgID:           orgID,
		PropertyID:      in.PropertyID,
		TotalArea:       in.TotalArea,
		OccupiedArea:    in.OccupiedArea,
		VacantArea:      vacant,
		CommonArea:      in.CommonArea,
		TotalParking:    in.TotalParking,
		OccupiedParking: in.OccupiedParking,
	}
	if in.RecordedAt != nil {
		r.RecordedAt = *in.RecordedAt
	}
	if err := s.DB.WithContext(ctx).Create(r).Error; err != nil {
		return nil, fmt.Errorf("Failed to create occupancy reading: %w", err)
	}
	return r, nil
}

// ListReadings returns readings newest first, optionally for one property.
func (s *Service) ListReadings(ctx context.Context, orgID uuid.UUID, propertyID *uuid.UUID) ([]domain.OccupancyReading, error) {
	if orgID == uuid.Nil {
		return nil, properties.ErrOrgRequired
	}
	q := s.DB.WithContext(ctx).Where("org_id = ?", orgID)
	if propertyID != nil {
		q = q.Where("property_id = ?", *propertyID)
	}
	var out []domain.OccupancyReading
	if err := q.Order("recorded_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch occupancy readings: %w", err)
	}
	return out, nil
}

// LatestReadings keeps only the newest reading of each property.
func (s *Service) LatestReadings(ctx context.Context, orgID uuid.UUID) ([]domain.OccupancyReading, error) {
	all, err := s.ListReadings(ctx, orgID, nil)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(all))
	latest := make([]domain.OccupancyReading, 0, len(all))
	for _, r := range all {
		if seen[r.PropertyID] {
			continue
		}
		seen[r.PropertyID] = true
		latest = append(latest, r)
	}
	return latest, nil
}
