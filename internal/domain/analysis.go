package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Analysis kinds stored in AnalysisSummary.Kind.
const (
	AnalysisPortfolio = "portfolio"
	AnalysisReconcile = "reconcile"
	AnalysisForecast  = "forecast"
	AnalysisOccupancy = "occupancy"
	AnalysisLeaseRisk = "lease_risk"
)

// AnalysisSummary is an audit row for one engine run. Payload holds the full result.
type AnalysisSummary struct {
	AnalysisID  uuid.UUID      `gorm:"column:analysis_id;type:uuid;primaryKey" json:"analysis_id"`
	OrgID       uuid.UUID      `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	RequestedBy *uuid.UUID     `gorm:"column:requested_by;type:uuid" json:"requested_by"`
	Kind        string         `gorm:"column:kind;type:varchar(20);not null" json:"kind"`
	Strategy    *string        `gorm:"column:strategy;type:varchar(20)" json:"strategy"`
	Score       *float64       `gorm:"column:score;type:decimal(6,2)" json:"score"`
	Level       *string        `gorm:"column:level;type:varchar(20)" json:"level"`
	ItemCount   int            `gorm:"column:item_count;not null;default:0" json:"item_count"`
	Payload     datatypes.JSON `gorm:"column:payload;type:jsonb;not null" json:"payload"`
	CreatedAt   time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
}

func (AnalysisSummary) TableName() string {
	return "AnalysisSummaries"
}

func (a *AnalysisSummary) BeforeCreate(tx *gorm.DB) error {
	if a.AnalysisID == uuid.Nil {
		a.AnalysisID = uuid.New()
	}
	return nil
}
