package domain

import (
	"math"
	"time"
)

// PayoutCentTolerance is the largest calculated-vs-paid difference that does
// not require an override note.
const PayoutCentTolerance = 0.01

// ProductSale is a sale-type inventory movement attributable to a barber.
// Quantity × RetailPrice is the product revenue the barber earns
// commission on.
type ProductSale struct {
	ID          int64
	BarberID    int64
	ProductID   int64
	ProductName string
	Quantity    int
	RetailPrice float64
	SoldAt      time.Time

	CommissionPaid bool
	PayoutID       *int64
}

// Revenue returns the total revenue of the sale.
func (s *ProductSale) Revenue() float64 {
	return float64(s.Quantity) * s.RetailPrice
}

// EligibleForCommission reports whether the sale contributes to a payout.
func (s *ProductSale) EligibleForCommission() bool {
	return !s.CommissionPaid
}

// BreakdownBucket is one revenue category inside a payout calculation
type BreakdownBucket struct {
	Count            int
	TotalRevenue     float64
	CommissionRate   float64
	CommissionAmount float64
	ItemIDs          []int64
}

// PayoutBreakdown groups the three revenue categories of a payout
type PayoutBreakdown struct {
	Services BreakdownBucket
	Products BreakdownBucket
	Tips     BreakdownBucket
}

// CalculatedAmount is the sum of the three commission amounts.
func (b PayoutBreakdown) CalculatedAmount() float64 {
	return b.Services.CommissionAmount + b.Products.CommissionAmount + b.Tips.CommissionAmount
}

// Payout is a settled commission payment for one barber over a closed date
// range. CalculatedAmount and PaidAmount are both persisted; when they
// differ by more than a cent an override note is mandatory for the audit
// trail.
type Payout struct {
	ID          int64
	Reference   string // external payout reference (uuid)
	BarberID    int64
	PeriodStart time.Time
	PeriodEnd   time.Time

	Breakdown        PayoutBreakdown
	CalculatedAmount float64
	PaidAmount       float64
	OverrideNote     *string

	CreatedAt time.Time
}

// Difference returns paid minus calculated.
func (p *Payout) Difference() float64 {
	return p.PaidAmount - p.CalculatedAmount
}

// RequiresOverrideNote reports whether the paid amount deviates enough from
// the calculated amount to require a note.
func (p *Payout) RequiresOverrideNote() bool {
	return math.Abs(p.Difference()) > PayoutCentTolerance
}

// PeriodsOverlap reports whether two closed date ranges intersect.
// Payout periods are inclusive on both ends, so touching boundaries
// do overlap.
func PeriodsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}
