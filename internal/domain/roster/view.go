package roster

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortByName         SortKey = "name"
	SortByArtisticName SortKey = "artisticName"
	SortByLevel        SortKey = "level"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortByName, SortByArtisticName, SortByLevel:
		return true
	}
	return false
}

// Filter returns the employees whose name or artistic name contains the
// search term, case-insensitively. An empty term keeps everyone.
func Filter(employees []Employee, term string) []Employee {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return employees
	}
	out := make([]Employee, 0, len(employees))
	for _, emp := range employees {
		if strings.Contains(strings.ToLower(emp.Name), term) ||
			strings.Contains(strings.ToLower(emp.ArtisticName), term) {
			out = append(out, emp)
		}
	}
	return out
}

// Sort orders employees by the given key. Names use pt-BR collation;
// levels use the fixed seniority order.
func Sort(employees []Employee, key SortKey, descending bool) {
	collator := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)

	less := func(a, b Employee) bool {
		switch key {
		case SortByArtisticName:
			return collator.CompareString(a.ArtisticName, b.ArtisticName) < 0
		case SortByLevel:
			if a.Level.Rank() != b.Level.Rank() {
				return a.Level.Rank() < b.Level.Rank()
			}
			return collator.CompareString(a.Name, b.Name) < 0
		default:
			return collator.CompareString(a.Name, b.Name) < 0
		}
	}

	sort.SliceStable(employees, func(i, j int) bool {
		if descending {
			return less(employees[j], employees[i])
		}
		return less(employees[i], employees[j])
	})
}

// MonthWorkDays returns the employee's work days inside the month,
// sorted by date for display.
func MonthWorkDays(emp Employee, m Month) []WorkDay {
	out := make([]WorkDay, 0, len(emp.WorkDays))
	for _, day := range emp.WorkDays {
		if m.Contains(day.Date) {
			out = append(out, day)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// MonthTotal sums stored day values; it is recomputed on demand and
// never cached.
func MonthTotal(days []WorkDay) decimal.Decimal {
	total := decimal.Zero
	for _, day := range days {
		total = total.Add(day.Value)
	}
	return total
}
