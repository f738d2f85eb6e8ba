package vesting

import "time"

// BaseAnnualRate is the annual interest rate for a standard 12-month
// vesting commitment. Longer commitments earn a multiple of it.
const BaseAnnualRate = 0.05

// daysPerMonth is the average Gregorian month length. Elapsed vesting
// time is measured in these average months, not calendar months.
const daysPerMonth = 30.44

// Default vesting configuration.
const (
	DefaultMonths int32 = 12
	MinMonths     int32 = 1
	MaxMonths     int32 = 60
)

// Result describes how far a single deposit has vested.
type Result struct {
	VestedAmount     float64
	VestedPercentage float64
	MonthsElapsed    float64
	IsFullyVested    bool
}

// MonthsBetween returns the number of average-length months between
// start and now. Negative when now precedes start.
func MonthsBetween(start, now time.Time) float64 {
	return now.Sub(start).Hours() / (24 * daysPerMonth)
}

// Vest computes the linearly vested portion of principal at time now.
// Nothing is rounded here; callers round for display only.
func Vest(principal float64, start time.Time, vestingMonths int32, now time.Time) Result {
	monthsElapsed := MonthsBetween(start, now)

	if monthsElapsed >= float64(vestingMonths) {
		return Result{
			VestedAmount:     principal,
			VestedPercentage: 100,
			MonthsElapsed:    float64(vestingMonths),
			IsFullyVested:    true,
		}
	}

	if monthsElapsed <= 0 {
		return Result{}
	}

	return Result{
		VestedAmount:     principal * monthsElapsed / float64(vestingMonths),
		VestedPercentage: monthsElapsed / float64(vestingMonths) * 100,
		MonthsElapsed:    monthsElapsed,
	}
}

// RateFor returns the annual interest rate earned by a deposit with the
// given committed vesting length. Tiers are checked highest first;
// commitments under a year earn below the base rate.
func RateFor(vestingMonths int32) float64 {
	switch {
	case vestingMonths >= 48:
		return BaseAnnualRate * 1.5
	case vestingMonths >= 36:
		return BaseAnnualRate * 1.3
	case vestingMonths >= 24:
		return BaseAnnualRate * 1.2
	case vestingMonths >= 12:
		return BaseAnnualRate
	default:
		return BaseAnnualRate * 0.8
	}
}

// Interest computes simple (non-compounding) interest on amount over
// the given number of months at the given annual rate.
func Interest(amount, annualRate, months float64) float64 {
	return amount * annualRate * (months / 12)
}
