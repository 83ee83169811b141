package preview_payout

import (
	"time"

	"github.com/dgarza/barberbook/internal/domain"
)

// Request asks for the commission calculation of one barber over a closed
// date range, without creating a payout
type Request struct {
	BarberID    int64
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// Response carries the calculated breakdown
type Response struct {
	BarberID         int64
	PeriodStart      time.Time
	PeriodEnd        time.Time
	Breakdown        domain.PayoutBreakdown
	CalculatedAmount float64
}
