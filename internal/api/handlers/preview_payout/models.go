package preview_payout

import (
	"time"

	"github.com/dgarza/barberbook/internal/domain"
	previewPayout "github.com/dgarza/barberbook/internal/usecase/preview_payout"
)

// BucketResponse is one revenue category in the breakdown
type BucketResponse struct {
	Count            int     `json:"count"`
	TotalRevenue     float64 `json:"totalRevenue"`
	CommissionRate   float64 `json:"commissionRate"`
	CommissionAmount float64 `json:"commissionAmount"`
	ItemIDs          []int64 `json:"itemIds"`
}

// BreakdownResponse groups the three revenue categories
type BreakdownResponse struct {
	Services BucketResponse `json:"services"`
	Products BucketResponse `json:"products"`
	Tips     BucketResponse `json:"tips"`
}

// PreviewPayoutResponse HTTP response model
type PreviewPayoutResponse struct {
	BarberID         int64             `json:"barberId"`
	PeriodStart      string            `json:"periodStart"`
	PeriodEnd        string            `json:"periodEnd"`
	Breakdown        BreakdownResponse `json:"breakdown"`
	CalculatedAmount float64           `json:"calculatedAmount"`
}

// ToUseCaseRequest builds the usecase request from the parsed URL parts
func ToUseCaseRequest(barberID int64, startStr, endStr string) (*previewPayout.Request, error) {
	start, err := time.Parse(domain.DateFormat, startStr)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(domain.DateFormat, endStr)
	if err != nil {
		return nil, err
	}
	return &previewPayout.Request{
		BarberID:    barberID,
		PeriodStart: start,
		PeriodEnd:   end,
	}, nil
}

// FromDomainBucket converts one domain breakdown bucket to the response view
func FromDomainBucket(b domain.BreakdownBucket) BucketResponse {
	ids := b.ItemIDs
	if ids == nil {
		ids = []int64{}
	}
	return BucketResponse{
		Count:            b.Count,
		TotalRevenue:     b.TotalRevenue,
		CommissionRate:   b.CommissionRate,
		CommissionAmount: b.CommissionAmount,
		ItemIDs:          ids,
	}
}

// FromDomainBreakdown converts a domain breakdown to the response view
func FromDomainBreakdown(b domain.PayoutBreakdown) BreakdownResponse {
	return BreakdownResponse{
		Services: FromDomainBucket(b.Services),
		Products: FromDomainBucket(b.Products),
		Tips:     FromDomainBucket(b.Tips),
	}
}

// FromUseCaseResponse converts the usecase response to the HTTP response
func FromUseCaseResponse(resp *previewPayout.Response) *PreviewPayoutResponse {
	return &PreviewPayoutResponse{
		BarberID:         resp.BarberID,
		PeriodStart:      resp.PeriodStart.Format(domain.DateFormat),
		PeriodEnd:        resp.PeriodEnd.Format(domain.DateFormat),
		Breakdown:        FromDomainBreakdown(resp.Breakdown),
		CalculatedAmount: resp.CalculatedAmount,
	}
}
