package roster

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testEmployee() Employee {
	return Employee{
		ID:            "emp-1",
		Name:          "Maria Silva",
		ArtisticName:  "Mari",
		Level:         LevelRecreador,
		DailyRate:     decimal.NewFromInt(100),
		PartyRate:     decimal.NewFromInt(150),
		ExtraHourRate: decimal.NewFromInt(20),
		WorkDays: []WorkDay{
			{ID: "2024-02-10", Date: "2024-02-10", Type: WorkDayComum, Value: decimal.NewFromInt(100)},
			{ID: "2024-03-01", Date: "2024-03-01", Type: WorkDayFesta, Value: decimal.NewFromInt(150)},
			{ID: "2024-04-02", Date: "2024-04-02", Type: WorkDayComum, ExtraHours: 1, Value: decimal.NewFromInt(120)},
		},
	}
}

func march2024() Month {
	return Month{Year: 2024, Month: time.March}
}

func daysByDate(days []WorkDay) map[string]WorkDay {
	out := make(map[string]WorkDay, len(days))
	for _, day := range days {
		out[day.Date] = day
	}
	return out
}

func TestReconcileReplacesMonthAndPricesSelections(t *testing.T) {
	emp := testEmployee()
	selections := map[string]Selection{
		"2024-03-05": {Type: WorkDayComum, ExtraHours: 2},
		"2024-03-20": {Type: WorkDayFesta},
	}

	result, err := Reconcile(emp, selections, march2024())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	march := MonthWorkDays(Employee{WorkDays: result}, march2024())
	if len(march) != 2 {
		t.Fatalf("expected 2 march entries, got %d", len(march))
	}

	byDate := daysByDate(march)
	day5, ok := byDate["2024-03-05"]
	if !ok {
		t.Fatal("missing 2024-03-05")
	}
	if day5.ID != "2024-03-05" {
		t.Fatalf("expected date-based id, got %q", day5.ID)
	}
	if !day5.Value.Equal(decimal.NewFromInt(140)) {
		t.Fatalf("expected 140 for 2024-03-05, got %s", day5.Value)
	}

	day20, ok := byDate["2024-03-20"]
	if !ok {
		t.Fatal("missing 2024-03-20")
	}
	if !day20.Value.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected 150 for 2024-03-20, got %s", day20.Value)
	}

	total := MonthTotal(march)
	if !total.Equal(decimal.NewFromInt(290)) {
		t.Fatalf("expected monthly total 290, got %s", total)
	}
}

func TestReconcileKeepsOtherMonthsUntouched(t *testing.T) {
	emp := testEmployee()
	result, err := Reconcile(emp, map[string]Selection{"2024-03-15": {Type: WorkDayComum}}, march2024())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byDate := daysByDate(result)
	for _, date := range []string{"2024-02-10", "2024-04-02"} {
		kept, ok := byDate[date]
		if !ok {
			t.Fatalf("work day %s was dropped", date)
		}
		var original WorkDay
		for _, day := range emp.WorkDays {
			if day.Date == date {
				original = day
			}
		}
		if kept.Type != original.Type || kept.ExtraHours != original.ExtraHours || !kept.Value.Equal(original.Value) {
			t.Fatalf("work day %s was altered: %+v", date, kept)
		}
	}
}

func TestReconcileEmptySelectionsClearsMonth(t *testing.T) {
	emp := testEmployee()
	result, err := Reconcile(emp, map[string]Selection{}, march2024())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(MonthWorkDays(Employee{WorkDays: result}, march2024())) != 0 {
		t.Fatal("expected march to be cleared")
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 remaining days, got %d", len(result))
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	emp := testEmployee()
	selections := map[string]Selection{
		"2024-03-05": {Type: WorkDayComum, ExtraHours: 2},
		"2024-03-20": {Type: WorkDayFesta},
	}

	first, err := Reconcile(emp, selections, march2024())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	emp.WorkDays = first
	second, err := Reconcile(emp, selections, march2024())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("length changed between runs: %d vs %d", len(first), len(second))
	}
	firstByDate := daysByDate(first)
	for _, day := range second {
		prev, ok := firstByDate[day.Date]
		if !ok {
			t.Fatalf("unexpected new day %s", day.Date)
		}
		if prev.Type != day.Type || prev.ExtraHours != day.ExtraHours || !prev.Value.Equal(day.Value) {
			t.Fatalf("day %s differs between runs", day.Date)
		}
	}
}

func TestReconcileRepricesWithCurrentRates(t *testing.T) {
	emp := testEmployee()
	selections := map[string]Selection{"2024-03-01": {Type: WorkDayFesta}}

	// rate card changed after the march day was originally stored
	emp.PartyRate = decimal.NewFromInt(200)

	result, err := Reconcile(emp, selections, march2024())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	day := daysByDate(result)["2024-03-01"]
	if !day.Value.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected value recomputed to 200, got %s", day.Value)
	}
}

func TestReconcileRejectsBadSelections(t *testing.T) {
	emp := testEmployee()

	cases := []struct {
		name       string
		selections map[string]Selection
		wantErr    error
	}{
		{"date outside month", map[string]Selection{"2024-04-05": {Type: WorkDayComum}}, ErrDateOutsideMonth},
		{"malformed date", map[string]Selection{"05/03/2024": {Type: WorkDayComum}}, ErrInvalidDate},
		{"unknown type", map[string]Selection{"2024-03-05": {Type: "Feriado"}}, ErrInvalidWorkDayType},
		{"negative hours", map[string]Selection{"2024-03-05": {Type: WorkDayComum, ExtraHours: -1}}, ErrNegativeExtraHours},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Reconcile(emp, tc.selections, march2024())
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != march2024() {
		t.Fatalf("unexpected month: %+v", m)
	}
	if m.String() != "2024-03" {
		t.Fatalf("unexpected formatting: %s", m)
	}

	if _, err := ParseMonth("march 2024"); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestMonthContains(t *testing.T) {
	m := march2024()
	if !m.Contains("2024-03-31") {
		t.Fatal("expected 2024-03-31 inside 2024-03")
	}
	if m.Contains("2024-04-01") {
		t.Fatal("expected 2024-04-01 outside 2024-03")
	}
	if m.Contains("not-a-date") {
		t.Fatal("malformed dates must never match")
	}
}
