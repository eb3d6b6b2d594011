package services

import "math"

// Money and tax arithmetic. Amounts are plain float64, matching the stored
// record fields; rounding happens at presentation time only, so intermediate
// sums are never pre-rounded.

// VAT returns the tax amount for a net value at the given percent rate.
func VAT(net, ratePct float64) float64 {
	return net * (ratePct / 100)
}

// Gross converts a net amount to gross at the given percent rate.
func Gross(net, ratePct float64) float64 {
	return net + VAT(net, ratePct)
}

// NetFromGross inverts Gross.
func NetFromGross(gross, ratePct float64) float64 {
	return gross / (1 + ratePct/100)
}

// Round2 rounds to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MaterialTotal is the gross line total of a material entry.
func MaterialTotal(quantity, unitPrice, vatRate float64) float64 {
	return Gross(quantity*unitPrice, vatRate)
}

// LaborTotal is the line total of a labor entry; labor carries no VAT.
func LaborTotal(hours, ratePerHour float64) float64 {
	return hours * ratePerHour
}

// QuoteItemTotal is the gross line total of a quote item.
func QuoteItemTotal(quantity, unitPrice, vatRate float64) float64 {
	return Gross(quantity*unitPrice, vatRate)
}

// Margin is profit as a percentage of revenue, 0 when revenue is 0.
func Margin(revenue, profit float64) float64 {
	if revenue == 0 {
		return 0
	}
	return profit / revenue * 100
}

// Markup is profit as a percentage of cost, 0 when costs are 0.
func Markup(costs, profit float64) float64 {
	if costs == 0 {
		return 0
	}
	return profit / costs * 100
}
