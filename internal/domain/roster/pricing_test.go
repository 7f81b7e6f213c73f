package roster

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testRates() RateCard {
	return RateCard{
		DailyRate:     decimal.NewFromInt(100),
		PartyRate:     decimal.NewFromInt(150),
		ExtraHourRate: decimal.NewFromInt(20),
	}
}

func TestPrice(t *testing.T) {
	rates := testRates()

	cases := []struct {
		name       string
		dayType    WorkDayType
		extraHours int
		want       int64
	}{
		{"comum no overtime", WorkDayComum, 0, 100},
		{"comum with overtime", WorkDayComum, 2, 140},
		{"festa no overtime", WorkDayFesta, 0, 150},
		{"festa with overtime", WorkDayFesta, 3, 210},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Price(tc.dayType, tc.extraHours, rates)
			if !got.Equal(decimal.NewFromInt(tc.want)) {
				t.Fatalf("expected %d, got %s", tc.want, got)
			}
		})
	}
}

func TestPriceMonotonicInExtraHours(t *testing.T) {
	rates := testRates()
	for _, dayType := range []WorkDayType{WorkDayComum, WorkDayFesta} {
		prev := Price(dayType, 0, rates)
		for hours := 1; hours <= 12; hours++ {
			current := Price(dayType, hours, rates)
			if current.LessThan(prev) {
				t.Fatalf("%s: price decreased from %s to %s at %d hours", dayType, prev, current, hours)
			}
			prev = current
		}
	}
}

func TestPriceFestaComumDeltaIsRateDelta(t *testing.T) {
	rates := testRates()
	wantDelta := rates.PartyRate.Sub(rates.DailyRate)
	for hours := 0; hours <= 8; hours++ {
		delta := Price(WorkDayFesta, hours, rates).Sub(Price(WorkDayComum, hours, rates))
		if !delta.Equal(wantDelta) {
			t.Fatalf("at %d hours expected delta %s, got %s", hours, wantDelta, delta)
		}
	}
}

func TestPriceDecimalRates(t *testing.T) {
	rates := RateCard{
		DailyRate:     decimal.RequireFromString("120.50"),
		PartyRate:     decimal.RequireFromString("180.75"),
		ExtraHourRate: decimal.RequireFromString("22.25"),
	}

	got := Price(WorkDayComum, 2, rates)
	if !got.Equal(decimal.RequireFromString("165.00")) {
		t.Fatalf("expected 165.00, got %s", got)
	}
}
