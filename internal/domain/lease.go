package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Lease struct {
	LeaseID        uuid.UUID  `gorm:"column:lease_id;type:uuid;primaryKey" json:"lease_id"`
	OrgID          uuid.UUID  `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	PropertyID     uuid.UUID  `gorm:"column:property_id;type:uuid;not null;index" json:"property_id"`
	TenantName     string     `gorm:"column:tenant_name;not null" json:"tenant_name"`
	StartDate      *time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate        *time.Time `gorm:"column:end_date" json:"end_date"`
	MonthlyRent    float64    `gorm:"column:monthly_rent;type:decimal(18,2);not null" json:"monthly_rent"`
	EscalationRate float64    `gorm:"column:escalation_rate;type:decimal(6,4);default:0" json:"escalation_rate"`
	RenewalOption  bool       `gorm:"column:renewal_option;default:false" json:"renewal_option"`
	BreakClause    bool       `gorm:"column:break_clause;default:false" json:"break_clause"`
	Status         string     `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
	CreatedAt      time.Time  `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Lease) TableName() string {
	return "Leases"
}

func (l *Lease) BeforeCreate(tx *gorm.DB) error {
	if l.LeaseID == uuid.Nil {
		l.LeaseID = uuid.New()
	}
	return nil
}
