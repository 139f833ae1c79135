package analytics

import (
	"strings"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/scoring"

	"github.com/google/uuid"
)

func toEngineProperty(p domain.Property) scoring.Property {
	return scoring.Property{
		ID:               p.PropertyID.String(),
		Name:             p.Name,
		Type:             scoring.PropertyType(p.PropertyType),
		Location:         p.Location,
		PurchasePrice:    p.PurchasePrice,
		CurrentValue:     p.CurrentValue,
		NOI:              p.NOI,
		OccupancyRate:    p.OccupancyRate,
		PurchaseDate:     p.PurchaseDate,
		LeaseExpiryDate:  p.LeaseExpiryDate,
		EPCRating:        p.EPCRating,
		MaintenanceScore: p.MaintenanceScore,
	}
}

// toEngineProperties converts stored properties. A property without its own
// lease expiry takes the earliest end date among its active leases.
func toEngineProperties(props []domain.Property, leases []domain.Lease) []scoring.Property {
	earliest := map[uuid.UUID]domain.Lease{}
	for _, l := range leases {
		if l.EndDate == nil || !strings.EqualFold(l.Status, "active") {
			continue
		}
		if cur, ok := earliest[l.PropertyID]; !ok || l.EndDate.Before(*cur.EndDate) {
			earliest[l.PropertyID] = l
		}
	}
	out := make([]scoring.Property, 0, len(props))
	for _, p := range props {
		ep := toEngineProperty(p)
		if ep.LeaseExpiryDate == nil {
			if l, ok := earliest[p.PropertyID]; ok {
				end := *l.EndDate
				ep.LeaseExpiryDate = &end
			}
		}
		out = append(out, ep)
	}
	return out
}

func toEngineLeases(leases []domain.Lease) []scoring.Lease {
	out := make([]scoring.Lease, 0, len(leases))
	for _, l := range leases {
		out = append(out, scoring.Lease{
			ID:             l.LeaseID.String(),
			PropertyID:     l.PropertyID.String(),
			TenantName:     l.TenantName,
			StartDate:      l.StartDate,
			EndDate:        l.EndDate,
			MonthlyRent:    l.MonthlyRent,
			EscalationRate: l.EscalationRate,
			RenewalOption:  l.RenewalOption,
			BreakClause:    l.BreakClause,
			Status:         l.Status,
		})
	}
	return out
}

func toEngineTransactions(txs []domain.Transaction) []scoring.Transaction {
	out := make([]scoring.Transaction, 0, len(txs))
	for _, t := range txs {
		out = append(out, scoring.Transaction{
			ID:             t.TxID.String(),
			PropertyID:     t.PropertyID.String(),
			TenantName:     t.TenantName,
			Type:           t.Type,
			Amount:         t.Amount,
			ExpectedAmount: t.ExpectedAmount,
			DueDate:        t.DueDate,
			OccurredAt:     t.OccurredAt,
			Status:         t.Status,
		})
	}
	return out
}

func toEngineReadings(readings []domain.OccupancyReading) []scoring.OccupancyReading {
	out := make([]scoring.OccupancyReading, 0, len(readings))
	for _, r := range readings {
		out = append(out, scoring.OccupancyReading{
			PropertyID:      r.PropertyID.String(),
			TotalArea:       r.TotalArea,
			OccupiedArea:    r.OccupiedArea,
			VacantArea:      r.VacantArea,
			CommonArea:      r.CommonArea,
			TotalParking:    r.TotalParking,
			OccupiedParking: r.OccupiedParking,
		})
	}
	return out
}
