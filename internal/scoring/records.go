package scoring

import (
	"strings"
	"time"
)

type PropertyType string

const (
	TypeOffice      PropertyType = "Office"
	TypeRetail      PropertyType = "Retail"
	TypeIndustrial  PropertyType = "Industrial"
	TypeResidential PropertyType = "Residential"
)

// Property is a single asset as the engine sees it. Optional inputs are pointers.
type Property struct {
	ID               string       `json:"id"`
	Name             string       `json:"name,omitempty"`
	Type             PropertyType `json:"type"`
	Location         string       `json:"location"`
	PurchasePrice    float64      `json:"purchase_price"`
	CurrentValue     float64      `json:"current_value"`
	NOI              float64      `json:"noi"`
	OccupancyRate    float64      `json:"occupancy_rate"`
	PurchaseDate     *time.Time   `json:"purchase_date,omitempty"`
	LeaseExpiryDate  *time.Time   `json:"lease_expiry_date,omitempty"`
	EPCRating        *string      `json:"epc_rating,omitempty"`
	MaintenanceScore *float64     `json:"maintenance_score,omitempty"`
}

type Transaction struct {
	ID             string     `json:"id"`
	PropertyID     string     `json:"property_id"`
	TenantName     string     `json:"tenant_name"`
	Type           string     `json:"type"`
	Amount         float64    `json:"amount"`
	ExpectedAmount *float64   `json:"expected_amount,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	OccurredAt     time.Time  `json:"occurred_at"`
	Status         string     `json:"status,omitempty"`
}

type Lease struct {
	ID             string     `json:"id"`
	PropertyID     string     `json:"property_id"`
	TenantName     string     `json:"tenant_name"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	MonthlyRent    float64    `json:"monthly_rent"`
	EscalationRate float64    `json:"escalation_rate"`
	RenewalOption  bool       `json:"renewal_option"`
	BreakClause    bool       `json:"break_clause"`
	Status         string     `json:"status,omitempty"`
}

type OccupancyReading struct {
	PropertyID      string  `json:"property_id"`
	TotalArea       float64 `json:"total_area"`
	OccupiedArea    float64 `json:"occupied_area"`
	VacantArea      float64 `json:"vacant_area"`
	CommonArea      float64 `json:"common_area"`
	TotalParking    int     `json:"total_parking"`
	OccupiedParking int     `json:"occupied_parking"`
}

// Names recorded in DefaultsApplied when an optional input is missing or unusable.
const (
	DefaultedEPCRating        = "epc_rating"
	DefaultedMaintenanceScore = "maintenance_score"
	DefaultedLeaseExpiryDate  = "lease_expiry_date"
	DefaultedPurchaseDate     = "purchase_date"
	DefaultedOccupancyRate    = "occupancy_rate"
)

// resolvedProperty is a Property with every optional input settled.
type resolvedProperty struct {
	Property
	epc         string
	maintenance float64
	defaults    []string
}

// resolveProperty is the one place neutral defaults are substituted. A missing
// or unknown EPC becomes the configured default, a missing maintenance score
// becomes the configured default, and occupancy is clamped into [0,1]. Missing
// dates stay nil and are scored neutrally by the sub-score that needs them.
func (e *Engine) resolveProperty(p Property) resolvedProperty {
	r := resolvedProperty{Property: p}
	cfg := e.cfg.Property

	r.epc = cfg.DefaultEPC
	if p.EPCRating != nil {
		epc := strings.ToUpper(strings.TrimSpace(*p.EPCRating))
		if _, ok := cfg.EPCScores[epc]; ok {
			r.epc = epc
		} else {
			r.defaults = append(r.defaults, DefaultedEPCRating)
		}
	} else {
		r.defaults = append(r.defaults, DefaultedEPCRating)
	}

	r.maintenance = cfg.DefaultMaintenance
	if p.MaintenanceScore != nil {
		r.maintenance = *p.MaintenanceScore
	} else {
		r.defaults = append(r.defaults, DefaultedMaintenanceScore)
	}

	if p.LeaseExpiryDate == nil {
		r.defaults = append(r.defaults, DefaultedLeaseExpiryDate)
	}
	if p.PurchaseDate == nil {
		r.defaults = append(r.defaults, DefaultedPurchaseDate)
	}
	if p.OccupancyRate < 0 || p.OccupancyRate > 1 {
		r.OccupancyRate = clamp(p.OccupancyRate, 0, 1)
		r.defaults = append(r.defaults, DefaultedOccupancyRate)
	}
	return r
}
