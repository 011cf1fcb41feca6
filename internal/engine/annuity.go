package engine

import "math"

// AnnuityDueFV returns the future value of a recurring contribution paid at
// the start of each period, the convention used by SIP, RD, PF, and pension
// projections. A zero rate degrades to simple accumulation.
func AnnuityDueFV(payment, periodRate float64, periods int) float64 {
	if periods <= 0 {
		return 0
	}
	if periodRate == 0 {
		return payment * float64(periods)
	}
	pow := math.Pow(1+periodRate, float64(periods))
	return payment * ((pow - 1) / periodRate) * (1 + periodRate)
}

// OrdinaryAnnuityFV returns the future value of a recurring contribution
// paid at the end of each period.
func OrdinaryAnnuityFV(payment, periodRate float64, periods int) float64 {
	if periods <= 0 {
		return 0
	}
	if periodRate == 0 {
		return payment * float64(periods)
	}
	pow := math.Pow(1+periodRate, float64(periods))
	return payment * ((pow - 1) / periodRate)
}

// CompoundFV returns principal compounded at periodRate for the given
// number of periods.
func CompoundFV(principal, periodRate float64, periods int) float64 {
	return principal * math.Pow(1+periodRate, float64(periods))
}
