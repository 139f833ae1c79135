package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OccupancyReading is a point-in-time space survey of a property.
type OccupancyReading struct {
	ReadingID       uuid.UUID `gorm:"column:reading_id;type:uuid;primaryKey" json:"reading_id"`
	OrgID           uuid.UUID `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	PropertyID      uuid.UUID `gorm:"column:property_id;type:uuid;not null;index" json:"property_id"`
	TotalArea       float64   `gorm:"column:total_area;type:decimal(12,2);not null" json:"total_area"`
	OccupiedArea    float64   `gorm:"column:occupied_area;type:decimal(12,2);not null" json:"occupied_area"`
	VacantArea      float64   `gorm:"column:vacant_area;type:decimal(12,2);default:0" json:"vacant_area"`
	CommonArea      float64   `gorm:"column:common_area;type:decimal(12,2);default:0" json:"common_area"`
	TotalParking    int       `gorm:"column:total_parking;default:0" json:"total_parking"`
	OccupiedParking int       `gorm:"column:occupied_parking;default:0" json:"occupied_parking"`
	RecordedAt      time.Time `gorm:"column:recorded_at;not null" json:"recorded_at"`
	CreatedAt       time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (OccupancyReading) TableName() string {
	return "OccupancyReadings"
}

func (o *OccupancyReading) BeforeCreate(tx *gorm.DB) error {
	if o.ReadingID == uuid.Nil {
		o.ReadingID = uuid.New()
	}
	if o.RecordedAt.IsZero() {
		o.RecordedAt = time.Now().UTC()
	}
	return nil
}
