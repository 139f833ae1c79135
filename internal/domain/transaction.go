package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction is a tenant payment recorded against a property.
type Transaction struct {
	TxID           uuid.UUID  `gorm:"column:tx_id;type:uuid;primaryKey" json:"tx_id"`
	OrgID          uuid.UUID  `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	PropertyID     uuid.UUID  `gorm:"column:property_id;type:uuid;not null;index" json:"property_id"`
	TenantName     string     `gorm:"column:tenant_name;not null" json:"tenant_name"`
	Type           string     `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Amount         float64    `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	ExpectedAmount *float64   `gorm:"column:expected_amount;type:decimal(18,2)" json:"expected_amount"`
	DueDate        *time.Time `gorm:"column:due_date" json:"due_date"`
	OccurredAt     time.Time  `gorm:"column:occurred_at;not null" json:"occurred_at"`
	Status         string     `gorm:"column:status;type:varchar(20);default:'completed'" json:"status"`
	CreatedAt      time.Time  `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Transaction) TableName() string {
	return "Transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.TxID == uuid.Nil {
		t.TxID = uuid.New()
	}
	return nil
}
