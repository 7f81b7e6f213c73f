package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"diarias/internal/domain/roster"
)

// ErrNoWorkDays is returned instead of producing an empty file; the
// caller surfaces it as a soft notice, not a failure.
var ErrNoWorkDays = errors.New("no work days in the selected month")

var ptBRMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

const (
	headerDate       = "Data"
	headerType       = "Tipo"
	headerExtraHours = "Horas Extras"
	headerValue      = "Valor"
	totalLabel       = "TOTAL"
)

// Summary is one employee's priced work-day table for one month.
type Summary struct {
	Employee roster.Employee
	Month    roster.Month
	Days     []roster.WorkDay
	Total    decimal.Decimal
}

func BuildSummary(emp roster.Employee, month roster.Month) (Summary, error) {
	days := roster.MonthWorkDays(emp, month)
	if len(days) == 0 {
		return Summary{}, fmt.Errorf("%w: %s", ErrNoWorkDays, month)
	}
	return Summary{
		Employee: emp,
		Month:    month,
		Days:     days,
		Total:    roster.MonthTotal(days),
	}, nil
}

// MonthLabel renders the month the way the download name shows it,
// e.g. "março de 2024".
func (s Summary) MonthLabel() string {
	return fmt.Sprintf("%s de %d", ptBRMonths[int(s.Month.Month)-1], s.Month.Year)
}

func (s Summary) FileName(ext string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '-'
		}
		return r
	}, s.Employee.Name)
	return fmt.Sprintf("%s_%s.%s", name, s.MonthLabel(), ext)
}

// localDate converts the stored ISO date to the pt-BR display form.
func localDate(date string) string {
	parsed, err := roster.ParseDate(date)
	if err != nil {
		return date
	}
	return parsed.Format("02/01/2006")
}
