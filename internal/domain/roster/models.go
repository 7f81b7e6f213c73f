package roster

import (
	"time"

	"github.com/shopspring/decimal"
)

type WorkDayType string

const (
	WorkDayComum WorkDayType = "Dia Comum"
	WorkDayFesta WorkDayType = "Dia de Festa"
)

func (t WorkDayType) Valid() bool {
	return t == WorkDayComum || t == WorkDayFesta
}

// RateCard holds the three configured monetary rates of one employee.
type RateCard struct {
	DailyRate     decimal.Decimal `json:"dailyRate"`
	PartyRate     decimal.Decimal `json:"partyRate"`
	ExtraHourRate decimal.Decimal `json:"extraHourRate"`
}

// WorkDay is one priced attendance record for one calendar date.
// ID is the ISO date itself, which also guarantees at most one record
// per date within an employee.
type WorkDay struct {
	ID         string          `json:"id"`
	Date       string          `json:"date"`
	Type       WorkDayType     `json:"type"`
	ExtraHours int             `json:"extraHours,omitempty"`
	Value      decimal.Decimal `json:"value"`
}

type Employee struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	ArtisticName  string          `json:"artisticName"`
	Level         Level           `json:"level"`
	DailyRate     decimal.Decimal `json:"dailyRate"`
	PartyRate     decimal.Decimal `json:"partyRate"`
	ExtraHourRate decimal.Decimal `json:"extraHourRate"`
	WorkDays      []WorkDay       `json:"workDays"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (e Employee) Rates() RateCard {
	return RateCard{
		DailyRate:     e.DailyRate,
		PartyRate:     e.PartyRate,
		ExtraHourRate: e.ExtraHourRate,
	}
}

// ScalarFields are the form-editable employee fields, excluding id and
// workDays, which only the store and the reconciliation path touch.
type ScalarFields struct {
	Name          string          `json:"name"`
	ArtisticName  string          `json:"artisticName"`
	Level         Level           `json:"level"`
	DailyRate     decimal.Decimal `json:"dailyRate"`
	PartyRate     decimal.Decimal `json:"partyRate"`
	ExtraHourRate decimal.Decimal `json:"extraHourRate"`
}

// Selection is one edited day inside the month being reconciled.
type Selection struct {
	Type       WorkDayType `json:"type"`
	ExtraHours int         `json:"extraHours"`
}
