package roster

import "fmt"

// Reconcile computes an employee's complete new work-day list for a
// month edit: days outside the target month are kept untouched, days
// inside it are replaced wholesale by the selections. A date absent
// from selections therefore deletes any existing record on that date,
// and every produced entry is freshly priced with the employee's
// current rate card.
func Reconcile(emp Employee, selections map[string]Selection, target Month) ([]WorkDay, error) {
	result := make([]WorkDay, 0, len(emp.WorkDays)+len(selections))
	for _, day := range emp.WorkDays {
		if !target.Contains(day.Date) {
			result = append(result, day)
		}
	}

	rates := emp.Rates()
	for date, sel := range selections {
		if _, err := ParseDate(date); err != nil {
			return nil, err
		}
		if !target.Contains(date) {
			return nil, fmt.Errorf("%w: %s not in %s", ErrDateOutsideMonth, date, target)
		}
		if !sel.Type.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWorkDayType, sel.Type)
		}
		if sel.ExtraHours < 0 {
			return nil, fmt.Errorf("%w: %d on %s", ErrNegativeExtraHours, sel.ExtraHours, date)
		}

		result = append(result, WorkDay{
			ID:         date,
			Date:       date,
			Type:       sel.Type,
			ExtraHours: sel.ExtraHours,
			Value:      Price(sel.Type, sel.ExtraHours, rates),
		})
	}

	return result, nil
}
