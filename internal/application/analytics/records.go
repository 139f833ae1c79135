package analytics

import (
	"errors"
	"fmt"
	"strings"

	"portfolio-backend/internal/pkg/validation"
	"portfolio-backend/internal/scoring"
)

var ErrInvalidRecord = errors.New("Invalid record")

// PropertyRecord is a property as uploaded by clients and the CLI, with dates as text.
type PropertyRecord struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Location         string   `json:"location"`
	PurchasePrice    float64  `json:"purchase_price"`
	CurrentValue     float64  `json:"current_value"`
	NOI              float64  `json:"noi"`
	OccupancyRate    float64  `json:"occupancy_rate"`
	PurchaseDate     string   `json:"purchase_date"`
	LeaseExpiryDate  string   `json:"lease_expiry_date"`
	EPCRating        *string  `json:"epc_rating"`
	MaintenanceScore *float64 `json:"maintenance_score"`
}

func (r PropertyRecord) ToEngine() (scoring.Property, error) {
	p := scoring.Property{
		ID:               r.ID,
		Name:             r.Name,
		Type:             scoring.PropertyType(strings.TrimSpace(r.Type)),
		Location:         r.Location,
		PurchasePrice:    r.PurchasePrice,
		CurrentValue:     r.CurrentValue,
		NOI:              r.NOI,
		OccupancyRate:    r.OccupancyRate,
		EPCRating:        r.EPCRating,
		MaintenanceScore: r.MaintenanceScore,
	}
	if t, ok := validation.NormalizePropertyType(r.Type); ok {
		p.Type = scoring.PropertyType(t)
	}
	var err error
	if p.PurchaseDate, err = validation.ParseDate(r.PurchaseDate); err != nil {
		return p, fmt.Errorf("%w: purchase_date: %v", ErrInvalidRecord, err)
	}
	if p.LeaseExpiryDate, err = validation.ParseDate(r.LeaseExpiryDate); err != nil {
		return p, fmt.Errorf("%w: lease_expiry_date: %v", ErrInvalidRecord, err)
	}
	return p, nil
}

type LeaseRecord struct {
	ID             string  `json:"id"`
	PropertyID     string  `json:"property_id"`
	TenantName     string  `json:"tenant_name"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	MonthlyRent    float64 `json:"monthly_rent"`
	EscalationRate float64 `json:"escalation_rate"`
	RenewalOption  bool    `json:"renewal_option"`
	BreakClause    bool    `json:"break_clause"`
	Status         string  `json:"status"`
}

func (r LeaseRecord) ToEngine() (scoring.Lease, error) {
	l := scoring.Lease{
		ID:             r.ID,
		PropertyID:     r.PropertyID,
		TenantName:     r.TenantName,
		MonthlyRent:    r.MonthlyRent,
		EscalationRate: r.EscalationRate,
		RenewalOption:  r.RenewalOption,
		BreakClause:    r.BreakClause,
		Status:         r.Status,
	}
	var err error
	if l.StartDate, err = validation.ParseDate(r.StartDate); err != nil {
		return l, fmt.Errorf("%w: start_date: %v", ErrInvalidRecord, err)
	}
	if l.EndDate, err = validation.ParseDate(r.EndDate); err != nil {
		return l, fmt.Errorf("%w: end_date: %v", ErrInvalidRecord, err)
	}
	return l, nil
}

type TransactionRecord struct {
	ID             string   `json:"id"`
	PropertyID     string   `json:"property_id"`
	TenantName     string   `json:"tenant_name"`
	Type           string   `json:"type"`
	Amount         float64  `json:"amount"`
	ExpectedAmount *float64 `json:"expected_amount"`
	DueDate        string   `json:"due_date"`
	OccurredAt     string   `json:"occurred_at"`
	Status         string   `json:"status"`
}

func (r TransactionRecord) ToEngine() (scoring.Transaction, error) {
	t := scoring.Transaction{
		ID:             r.ID,
		PropertyID:     r.PropertyID,
		TenantName:     r.TenantName,
		Type:           r.Type,
		Amount:         r.Amount,
		ExpectedAmount: r.ExpectedAmount,
		Status:         r.Status,
	}
	var err error
	if t.DueDate, err = validation.ParseDate(r.DueDate); err != nil {
		return t, fmt.Errorf("%w: due_date: %v", ErrInvalidRecord, err)
	}
	occurred, err := validation.ParseDate(r.OccurredAt)
	if err != nil {
		return t, fmt.Errorf("%w: occurred_at: %v", ErrInvalidRecord, err)
	}
	if occurred != nil {
		t.OccurredAt = *occurred
	}
	return t, nil
}

// PortfolioRequest is the body of a stateless portfolio analysis.
type PortfolioRequest struct {
	Strategy      string             `json:"strategy"`
	Enhanced      bool               `json:"enhanced"`
	CustomWeights map[string]float64 `json:"custom_weights"`
	Properties    []PropertyRecord   `json:"properties"`
}

func (r PortfolioRequest) Options() scoring.AnalysisOptions {
	opts := scoring.AnalysisOptions{
		Strategy: scoring.Strategy(r.Strategy),
		Enhanced: r.Enhanced,
	}
	if len(r.CustomWeights) > 0 {
		opts.CustomWeights = make(scoring.Weights, len(r.CustomWeights))
		for k, v := range r.CustomWeights {
			opts.CustomWeights[scoring.Factor(strings.ToLower(strings.TrimSpace(k)))] = v
		}
	}
	return opts
}

// ReconcileRequest is the body of a stateless reconciliation.
type ReconcileRequest struct {
	Transactions []TransactionRecord `json:"transactions"`
	Leases       []LeaseRecord       `json:"leases"`
}

func ConvertProperties(records []PropertyRecord) ([]scoring.Property, error) {
	out := make([]scoring.Property, 0, len(records))
	for i, r := range records {
		p, err := r.ToEngine()
		if err != nil {
			return nil, fmt.Errorf("properties[%d]: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func ConvertLeases(records []LeaseRecord) ([]scoring.Lease, error) {
	out := make([]scoring.Lease, 0, len(records))
	for i, r := range records {
		l, err := r.ToEngine()
		if err != nil {
			return nil, fmt.Errorf("leases[%d]: %w", i, err)
		}
		out = append(out, l)
	}
	return out, nil
}

func ConvertTransactions(records []TransactionRecord) ([]scoring.Transaction, error) {
	out := make([]scoring.Transaction, 0, len(records))
	for i, r := range records {
		t, err := r.ToEngine()
		if err != nil {
			return nil, fmt.Errorf("transactions[%d]: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}
