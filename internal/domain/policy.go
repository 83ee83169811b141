package domain

import "time"

// ShopPolicy is the shop-wide booking policy
type ShopPolicy struct {
	ID                     int64
	DaysBookableInAdvance  int
	MinBookAheadHours      float64
	MinCancelAheadHours    float64
	BookingIntervalMinutes int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// BarberPolicyOverride carries the per-barber policy overrides and the
// barber's commission rates. Each override field is nullable: nil means the
// shop-wide value applies. DaysBookableInAdvance has no per-barber override.
type BarberPolicyOverride struct {
	ID       int64
	BarberID int64

	MinBookAheadHoursOverride      *float64
	MinCancelAheadHoursOverride    *float64
	BookingIntervalMinutesOverride *int

	CommissionRates CommissionRates

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommissionRates are the barber's revenue shares, as fractions in [0, 1]
type CommissionRates struct {
	ServiceRate float64
	ProductRate float64
	TipRate     float64
}

// EffectivePolicy is the resolved policy for one barber: shop policy with
// any non-nil overrides applied. Computed per request, never persisted.
type EffectivePolicy struct {
	DaysBookableInAdvance  int
	MinBookAheadHours      float64
	MinCancelAheadHours    float64
	BookingIntervalMinutes int
}

// ResolvePolicy overlays the non-nil override fields onto the shop policy.
// Pure function; override may be nil when the barber has no record.
func ResolvePolicy(shop ShopPolicy, override *BarberPolicyOverride) EffectivePolicy {
	effective := EffectivePolicy{
		DaysBookableInAdvance:  shop.DaysBookableInAdvance,
		MinBookAheadHours:      shop.MinBookAheadHours,
		MinCancelAheadHours:    shop.MinCancelAheadHours,
		BookingIntervalMinutes: shop.BookingIntervalMinutes,
	}

	if override == nil {
		return effective
	}

	if override.MinBookAheadHoursOverride != nil {
		effective.MinBookAheadHours = *override.MinBookAheadHoursOverride
	}
	if override.MinCancelAheadHoursOverride != nil {
		effective.MinCancelAheadHours = *override.MinCancelAheadHoursOverride
	}
	if override.BookingIntervalMinutesOverride != nil {
		effective.BookingIntervalMinutes = *override.BookingIntervalMinutesOverride
	}

	return effective
}
