package roster

import "errors"

var (
	ErrNotFound           = errors.New("employee not found")
	ErrWorkDayNotFound    = errors.New("work day not found")
	ErrNameRequired       = errors.New("name is required")
	ErrArtisticNameTaken  = errors.New("artistic name already in use")
	ErrInvalidLevel       = errors.New("unknown level")
	ErrNegativeRate       = errors.New("rates must not be negative")
	ErrInvalidMonth       = errors.New("invalid month, expected YYYY-MM")
	ErrInvalidDate        = errors.New("invalid date, expected YYYY-MM-DD")
	ErrDateOutsideMonth   = errors.New("selection date outside the edited month")
	ErrInvalidWorkDayType = errors.New("unknown work day type")
	ErrNegativeExtraHours = errors.New("extra hours must not be negative")
)
