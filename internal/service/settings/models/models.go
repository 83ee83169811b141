package models

import (
	"time"

	"github.com/dgarza/barberbook/internal/domain"
)

// UpdatePolicyRequest replaces the shop-wide booking policy
type UpdatePolicyRequest struct {
	DaysBookableInAdvance  int     `json:"daysBookableInAdvance"`
	MinBookAheadHours      float64 `json:"minBookAheadHours"`
	MinCancelAheadHours    float64 `json:"minCancelAheadHours"`
	BookingIntervalMinutes int     `json:"bookingIntervalMinutes"`
}

// ToDomainPolicy converts the request to the domain shop policy
func (r *UpdatePolicyRequest) ToDomainPolicy() *domain.ShopPolicy {
	return &domain.ShopPolicy{
		DaysBookableInAdvance:  r.DaysBookableInAdvance,
		MinBookAheadHours:      r.MinBookAheadHours,
		MinCancelAheadHours:    r.MinCancelAheadHours,
		BookingIntervalMinutes: r.BookingIntervalMinutes,
	}
}

// PolicyResponse is the shop policy view returned to handlers
type PolicyResponse struct {
	DaysBookableInAdvance  int       `json:"daysBookableInAdvance"`
	MinBookAheadHours      float64   `json:"minBookAheadHours"`
	MinCancelAheadHours    float64   `json:"minCancelAheadHours"`
	BookingIntervalMinutes int       `json:"bookingIntervalMinutes"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// FromDomainPolicy converts a domain shop policy to the response view
func FromDomainPolicy(p *domain.ShopPolicy) *PolicyResponse {
	return &PolicyResponse{
		DaysBookableInAdvance:  p.DaysBookableInAdvance,
		MinBookAheadHours:      p.MinBookAheadHours,
		MinCancelAheadHours:    p.MinCancelAheadHours,
		BookingIntervalMinutes: p.BookingIntervalMinutes,
		UpdatedAt:              p.UpdatedAt,
	}
}
