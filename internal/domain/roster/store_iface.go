package roster

import "context"

// StoreAPI is the persistence contract of the roster. Reconciliation
// output and plain form edits arrive through distinct methods so the
// store never guesses which kind of update it is applying.
type StoreAPI interface {
	ListEmployees(ctx context.Context, userID string) ([]Employee, error)
	GetEmployee(ctx context.Context, userID, employeeID string) (*Employee, error)
	CreateEmployee(ctx context.Context, userID string, fields ScalarFields) (string, error)
	UpdateScalarFields(ctx context.Context, userID, employeeID string, fields ScalarFields) error
	ReplaceWorkDays(ctx context.Context, userID, employeeID string, days []WorkDay) error
	DeleteEmployee(ctx context.Context, userID, employeeID string) error
	ArtisticNameTaken(ctx context.Context, userID, artisticName, excludeEmployeeID string) (bool, error)
}
