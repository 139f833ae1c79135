package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property is one asset in an organisation's portfolio.
type Property struct {
	PropertyID       uuid.UUID  `gorm:"column:property_id;type:uuid;primaryKey" json:"property_id"`
	OrgID            uuid.UUID  `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	Name             string     `gorm:"column:name;not null" json:"name"`
	PropertyType     string     `gorm:"column:property_type;type:varchar(20);not null" json:"property_type"`
	Location         string     `gorm:"column:location;not null" json:"location"`
	PurchasePrice    float64    `gorm:"column:purchase_price;type:decimal(18,2);not null" json:"purchase_price"`
	CurrentValue     float64    `gorm:"column:current_value;type:decimal(18,2);not null" json:"current_value"`
	NOI              float64    `gorm:"column:noi;type:decimal(18,2);not null" json:"noi"`
	OccupancyRate    float64    `gorm:"column:occupancy_rate;type:decimal(5,4);not null" json:"occupancy_rate"`
	PurchaseDate     *time.Time `gorm:"column:purchase_date" json:"purchase_date"`
	LeaseExpiryDate  *time.Time `gorm:"column:lease_expiry_date" json:"lease_expiry_date"`
	EPCRating        *string    `gorm:"column:epc_rating;type:varchar(1)" json:"epc_rating"`
	MaintenanceScore *float64   `gorm:"column:maintenance_score;type:decimal(4,2)" json:"maintenance_score"`
	CreatedAt        time.Time  `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt        time.Time  `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Property) TableName() string {
	return "Properties"
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.PropertyID == uuid.Nil {
		p.PropertyID = uuid.New()
	}
	return nil
}
