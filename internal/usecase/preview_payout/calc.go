package preview_payout

import "github.com/dgarza/barberbook/internal/domain"

// CalculateBreakdown aggregates the barber's unsettled revenue into the
// three commission buckets. Pure function: the inputs are assumed to be
// pre-filtered to eligible items (completed, not yet commission-paid);
// ineligible items are skipped defensively all the same.
//
// Services and tips come from the same appointments but are separate
// buckets with separate rates; an appointment with a zero tip still counts
// in the services bucket but adds nothing to tips.
func CalculateBreakdown(
	appointments []*domain.Appointment,
	sales []*domain.ProductSale,
	rates domain.CommissionRates,
) domain.PayoutBreakdown {
	var breakdown domain.PayoutBreakdown

	breakdown.Services.CommissionRate = rates.ServiceRate
	breakdown.Tips.CommissionRate = rates.TipRate
	breakdown.Products.CommissionRate = rates.ProductRate

	for _, appt := range appointments {
		if !appt.EligibleForCommission() {
			continue
		}

		breakdown.Services.Count++
		breakdown.Services.TotalRevenue += appt.ServicePrice
		breakdown.Services.ItemIDs = append(breakdown.Services.ItemIDs, appt.ID)

		if appt.TipAmount > 0 {
			breakdown.Tips.Count++
			breakdown.Tips.TotalRevenue += appt.TipAmount
			breakdown.Tips.ItemIDs = append(breakdown.Tips.ItemIDs, appt.ID)
		}
	}

	for _, sale := range sales {
		if !sale.EligibleForCommission() {
			continue
		}

		breakdown.Products.Count++
		breakdown.Products.TotalRevenue += sale.Revenue()
		breakdown.Products.ItemIDs = append(breakdown.Products.ItemIDs, sale.ID)
	}

	breakdown.Services.CommissionAmount = breakdown.Services.TotalRevenue * rates.ServiceRate
	breakdown.Tips.CommissionAmount = breakdown.Tips.TotalRevenue * rates.TipRate
	breakdown.Products.CommissionAmount = breakdown.Products.TotalRevenue * rates.ProductRate

	return breakdown
}
