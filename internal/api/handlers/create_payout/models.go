package create_payout

import (
	"time"

	previewPayout "github.com/dgarza/barberbook/internal/api/handlers/preview_payout"
	"github.com/dgarza/barberbook/internal/domain"
	createPayout "github.com/dgarza/barberbook/internal/usecase/create_payout"
)

// CreatePayoutRequest HTTP request model
type CreatePayoutRequest struct {
	PeriodStart  string  `json:"periodStart"` // "2026-08-01"
	PeriodEnd    string  `json:"periodEnd"`   // "2026-08-15"
	PaidAmount   float64 `json:"paidAmount"`
	OverrideNote *string `json:"overrideNote,omitempty"`
	Force        bool    `json:"force,omitempty"`
}

// PayoutResponse HTTP response model
type PayoutResponse struct {
	ID               int64                           `json:"id"`
	Reference        string                          `json:"reference"`
	BarberID         int64                           `json:"barberId"`
	PeriodStart      string                          `json:"periodStart"`
	PeriodEnd        string                          `json:"periodEnd"`
	Breakdown        previewPayout.BreakdownResponse `json:"breakdown"`
	CalculatedAmount float64                         `json:"calculatedAmount"`
	PaidAmount       float64                         `json:"paidAmount"`
	Difference       float64                         `json:"difference"`
	OverrideNote     *string                         `json:"overrideNote,omitempty"`
	CreatedAt        string                          `json:"createdAt"`
}

// ToUseCaseRequest converts the HTTP request to the usecase request
func (r *CreatePayoutRequest) ToUseCaseRequest(barberID int64) (*createPayout.Request, error) {
	start, err := time.Parse(domain.DateFormat, r.PeriodStart)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(domain.DateFormat, r.PeriodEnd)
	if err != nil {
		return nil, err
	}
	return &createPayout.Request{
		BarberID:     barberID,
		PeriodStart:  start,
		PeriodEnd:    end,
		PaidAmount:   r.PaidAmount,
		OverrideNote: r.OverrideNote,
		Force:        r.Force,
	}, nil
}

// FromUseCaseResponse converts the usecase response to the HTTP response
func FromUseCaseResponse(resp *createPayout.Response) *PayoutResponse {
	return &PayoutResponse{
		ID:               resp.ID,
		Reference:        resp.Reference,
		BarberID:         resp.BarberID,
		PeriodStart:      resp.PeriodStart.Format(domain.DateFormat),
		PeriodEnd:        resp.PeriodEnd.Format(domain.DateFormat),
		Breakdown:        previewPayout.FromDomainBreakdown(resp.Breakdown),
		CalculatedAmount: resp.CalculatedAmount,
		PaidAmount:       resp.PaidAmount,
		Difference:       resp.Difference,
		OverrideNote:     resp.OverrideNote,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
