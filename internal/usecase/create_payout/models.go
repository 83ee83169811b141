package create_payout

import (
	"time"

	"github.com/dgarza/barberbook/internal/domain"
)

// Request asks to settle one barber's commission for a closed date range
type Request struct {
	BarberID    int64
	PeriodStart time.Time
	PeriodEnd   time.Time
	PaidAmount  float64
	// OverrideNote is mandatory when PaidAmount deviates from the
	// calculated amount by more than a cent
	OverrideNote *string
	// Force allows a period that overlaps an existing payout
	Force bool
}

// Response carries the created payout record
type Response struct {
	ID               int64
	Reference        string
	BarberID         int64
	PeriodStart      time.Time
	PeriodEnd        time.Time
	Breakdown        domain.PayoutBreakdown
	CalculatedAmount float64
	PaidAmount       float64
	Difference       float64
	OverrideNote     *string
	CreatedAt        time.Time
}
