package roster

import "github.com/shopspring/decimal"

// Price computes the monetary value of one work day: the base rate for
// the day type plus overtime. Pure and total; negative inputs are the
// write boundary's problem, not this function's.
func Price(dayType WorkDayType, extraHours int, rates RateCard) decimal.Decimal {
	base := rates.DailyRate
	if dayType == WorkDayFesta {
		base = rates.PartyRate
	}
	if extraHours == 0 {
		return base
	}
	return base.Add(rates.ExtraHourRate.Mul(decimal.NewFromInt(int64(extraHours))))
}
