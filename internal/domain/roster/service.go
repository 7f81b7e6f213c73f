package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Service owns roster validation and the snapshot fan-out. All writes
// wait for store confirmation before anything becomes observable; there
// is no optimistic local state.
type Service struct {
	store    StoreAPI
	notifier *Notifier
}

func NewService(store StoreAPI, notifier *Notifier) *Service {
	if notifier == nil {
		notifier = NewNotifier()
	}
	return &Service{store: store, notifier: notifier}
}

func (s *Service) Roster(ctx context.Context, userID string) ([]Employee, error) {
	return s.store.ListEmployees(ctx, userID)
}

func (s *Service) Employee(ctx context.Context, userID, employeeID string) (*Employee, error) {
	return s.store.GetEmployee(ctx, userID, employeeID)
}

func (s *Service) Create(ctx context.Context, userID string, fields ScalarFields) (string, error) {
	fields = normalizeFields(fields)
	if err := s.validateFields(ctx, userID, fields, ""); err != nil {
		return "", err
	}

	id, err := s.store.CreateEmployee(ctx, userID, fields)
	if err != nil {
		return "", err
	}
	s.broadcast(ctx, userID)
	return id, nil
}

func (s *Service) UpdateFields(ctx context.Context, userID, employeeID string, fields ScalarFields) error {
	fields = normalizeFields(fields)
	if err := s.validateFields(ctx, userID, fields, employeeID); err != nil {
		return err
	}

	if err := s.store.UpdateScalarFields(ctx, userID, employeeID, fields); err != nil {
		return err
	}
	s.broadcast(ctx, userID)
	return nil
}

func (s *Service) Delete(ctx context.Context, userID, employeeID string) error {
	if err := s.store.DeleteEmployee(ctx, userID, employeeID); err != nil {
		return err
	}
	s.broadcast(ctx, userID)
	return nil
}

// SaveMonth reconciles one employee's work days for the target month
// and persists the complete replacement list. It returns the employee's
// new full work-day set.
func (s *Service) SaveMonth(ctx context.Context, userID, employeeID string, selections map[string]Selection, target Month) ([]WorkDay, error) {
	emp, err := s.store.GetEmployee(ctx, userID, employeeID)
	if err != nil {
		return nil, err
	}

	days, err := Reconcile(*emp, selections, target)
	if err != nil {
		return nil, err
	}

	if err := s.store.ReplaceWorkDays(ctx, userID, employeeID, days); err != nil {
		return nil, err
	}
	s.broadcast(ctx, userID)
	return days, nil
}

// DeleteWorkDay removes a single work day by id, leaving the rest of
// the employee's list as-is.
func (s *Service) DeleteWorkDay(ctx context.Context, userID, employeeID, workDayID string) error {
	emp, err := s.store.GetEmployee(ctx, userID, employeeID)
	if err != nil {
		return err
	}

	remaining := make([]WorkDay, 0, len(emp.WorkDays))
	found := false
	for _, day := range emp.WorkDays {
		if day.ID == workDayID {
			found = true
			continue
		}
		remaining = append(remaining, day)
	}
	if !found {
		return ErrWorkDayNotFound
	}

	if err := s.store.ReplaceWorkDays(ctx, userID, employeeID, remaining); err != nil {
		return err
	}
	s.broadcast(ctx, userID)
	return nil
}

// Subscribe returns a channel of full-roster snapshots for the user.
// Each message replaces the subscriber's entire view.
func (s *Service) Subscribe(userID string) (<-chan []Employee, func()) {
	return s.notifier.Subscribe(userID)
}

func (s *Service) broadcast(ctx context.Context, userID string) {
	snapshot, err := s.store.ListEmployees(ctx, userID)
	if err != nil {
		slog.Warn("roster snapshot reload failed", "err", err)
		return
	}
	s.notifier.Publish(userID, snapshot)
}

func normalizeFields(fields ScalarFields) ScalarFields {
	fields.Name = strings.TrimSpace(fields.Name)
	fields.ArtisticName = strings.TrimSpace(fields.ArtisticName)
	return fields
}

func (s *Service) validateFields(ctx context.Context, userID string, fields ScalarFields, excludeEmployeeID string) error {
	if fields.Name == "" {
		return ErrNameRequired
	}
	if fields.ArtisticName == "" {
		return fmt.Errorf("%w: artistic name", ErrNameRequired)
	}
	if !fields.Level.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, fields.Level)
	}
	if fields.DailyRate.IsNegative() || fields.PartyRate.IsNegative() || fields.ExtraHourRate.IsNegative() {
		return ErrNegativeRate
	}

	taken, err := s.store.ArtisticNameTaken(ctx, userID, fields.ArtisticName, excludeEmployeeID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %q", ErrArtisticNameTaken, fields.ArtisticName)
	}
	return nil
}
