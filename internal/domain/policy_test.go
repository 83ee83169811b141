package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dgarza/barberbook/pkg/ptr"
)

func TestResolvePolicy(t *testing.T) {
	shop := ShopPolicy{
		DaysBookableInAdvance:  30,
		MinBookAheadHours:      2,
		MinCancelAheadHours:    24,
		BookingIntervalMinutes: 15,
	}

	tests := []struct {
		name     string
		override *BarberPolicyOverride
		want     EffectivePolicy
	}{
		{
			name:     "no override record",
			override: nil,
			want: EffectivePolicy{
				DaysBookableInAdvance:  30,
				MinBookAheadHours:      2,
				MinCancelAheadHours:    24,
				BookingIntervalMinutes: 15,
			},
		},
		{
			name:     "record with all fields nil",
			override: &BarberPolicyOverride{BarberID: 7},
			want: EffectivePolicy{
				DaysBookableInAdvance:  30,
				MinBookAheadHours:      2,
				MinCancelAheadHours:    24,
				BookingIntervalMinutes: 15,
			},
		},
		{
			name: "partial override",
			override: &BarberPolicyOverride{
				BarberID:                  7,
				MinBookAheadHoursOverride: ptr.Ptr(6.0),
			},
			want: EffectivePolicy{
				DaysBookableInAdvance:  30,
				MinBookAheadHours:      6,
				MinCancelAheadHours:    24,
				BookingIntervalMinutes: 15,
			},
		},
		{
			name: "full override",
			override: &BarberPolicyOverride{
				BarberID:                       7,
				MinBookAheadHoursOverride:      ptr.Ptr(0.5),
				MinCancelAheadHoursOverride:    ptr.Ptr(12.0),
				BookingIntervalMinutesOverride: ptr.Ptr(30),
			},
			want: EffectivePolicy{
				DaysBookableInAdvance:  30, // never overridable per barber
				MinBookAheadHours:      0.5,
				MinCancelAheadHours:    12,
				BookingIntervalMinutes: 30,
			},
		},
		{
			name: "zero-valued override is honored",
			override: &BarberPolicyOverride{
				BarberID:                  7,
				MinBookAheadHoursOverride: ptr.Ptr(0.0),
			},
			want: EffectivePolicy{
				DaysBookableInAdvance:  30,
				MinBookAheadHours:      0,
				MinCancelAheadHours:    24,
				BookingIntervalMinutes: 15,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePolicy(shop, tt.override))
		})
	}
}
