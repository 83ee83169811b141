package get_payouts

import (
	"time"

	"github.com/dgarza/barberbook/internal/api/handlers/preview_payout"
	"github.com/dgarza/barberbook/internal/domain"
)

// PayoutResponse HTTP response model for one settled payout
type PayoutResponse struct {
	ID               int64                            `json:"id"`
	Reference        string                           `json:"reference"`
	BarberID         int64                            `json:"barberId"`
	PeriodStart      string                           `json:"periodStart"`
	PeriodEnd        string                           `json:"periodEnd"`
	Breakdown        preview_payout.BreakdownResponse `json:"breakdown"`
	CalculatedAmount float64                          `json:"calculatedAmount"`
	PaidAmount       float64                          `json:"paidAmount"`
	Difference       float64                          `json:"difference"`
	OverrideNote     *string                          `json:"overrideNote,omitempty"`
	CreatedAt        string                           `json:"createdAt"`
}

// PayoutListResponse HTTP response model
type PayoutListResponse struct {
	Payouts []PayoutResponse `json:"payouts"`
}

// FromDomainPayouts converts domain payouts to the HTTP response
func FromDomainPayouts(payouts []*domain.Payout) *PayoutListResponse {
	out := make([]PayoutResponse, 0, len(payouts))
	for _, p := range payouts {
		out = append(out, PayoutResponse{
			ID:               p.ID,
			Reference:        p.Reference,
			BarberID:         p.BarberID,
			PeriodStart:      p.PeriodStart.Format(domain.DateFormat),
			PeriodEnd:        p.PeriodEnd.Format(domain.DateFormat),
			Breakdown:        preview_payout.FromDomainBreakdown(p.Breakdown),
			CalculatedAmount: p.CalculatedAmount,
			PaidAmount:       p.PaidAmount,
			Difference:       p.Difference(),
			OverrideNote:     p.OverrideNote,
			CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		})
	}
	return &PayoutListResponse{Payouts: out}
}
