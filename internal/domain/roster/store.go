package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Store is the PostgreSQL roster store. Work days are embedded in the
// employee row as a JSONB array, mirroring the document-per-employee
// shape of the upstream data; each write replaces the whole array.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

var _ StoreAPI = (*Store)(nil)

const employeeColumns = `
    id,
    name,
    artistic_name,
    level,
    daily_rate::text,
    party_rate::text,
    extra_hour_rate::text,
    work_days,
    created_at,
    updated_at`

func (s *Store) ListEmployees(ctx context.Context, userID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE user_id = $1
    ORDER BY created_at, id
  `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Employee, 0, 16)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, userID, employeeID string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE user_id = $1 AND id = $2
  `, userID, employeeID)

	emp, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (s *Store) CreateEmployee(ctx context.Context, userID string, fields ScalarFields) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (user_id, name, artistic_name, level, daily_rate, party_rate, extra_hour_rate, work_days)
    VALUES ($1,$2,$3,$4,$5,$6,$7,'[]'::jsonb)
    RETURNING id
  `, userID, fields.Name, fields.ArtisticName, string(fields.Level),
		fields.DailyRate.String(), fields.PartyRate.String(), fields.ExtraHourRate.String(),
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateScalarFields(ctx context.Context, userID, employeeID string, fields ScalarFields) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $1,
        artistic_name = $2,
        level = $3,
        daily_rate = $4,
        party_rate = $5,
        extra_hour_rate = $6,
        updated_at = now()
    WHERE user_id = $7 AND id = $8
  `, fields.Name, fields.ArtisticName, string(fields.Level),
		fields.DailyRate.String(), fields.PartyRate.String(), fields.ExtraHourRate.String(),
		userID, employeeID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ReplaceWorkDays(ctx context.Context, userID, employeeID string, days []WorkDay) error {
	if days == nil {
		days = []WorkDay{}
	}
	payload, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("encode work days: %w", err)
	}

	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET work_days = $1,
        updated_at = now()
    WHERE user_id = $2 AND id = $3
  `, payload, userID, employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, userID, employeeID string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE user_id = $1 AND id = $2", userID, employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ArtisticNameTaken(ctx context.Context, userID, artisticName, excludeEmployeeID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM employees
    WHERE user_id = $1
      AND lower(artistic_name) = lower($2)
      AND ($3 = '' OR id::text <> $3)
  `, userID, artisticName, excludeEmployeeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	var daily, party, extra string
	var workDays []byte
	if err := row.Scan(
		&emp.ID, &emp.Name, &emp.ArtisticName, &emp.Level,
		&daily, &party, &extra, &workDays,
		&emp.CreatedAt, &emp.UpdatedAt,
	); err != nil {
		return Employee{}, err
	}

	var err error
	if emp.DailyRate, err = decimal.NewFromString(daily); err != nil {
		return Employee{}, fmt.Errorf("daily_rate: %w", err)
	}
	if emp.PartyRate, err = decimal.NewFromString(party); err != nil {
		return Employee{}, fmt.Errorf("party_rate: %w", err)
	}
	if emp.ExtraHourRate, err = decimal.NewFromString(extra); err != nil {
		return Employee{}, fmt.Errorf("extra_hour_rate: %w", err)
	}
	if len(workDays) > 0 {
		if err := json.Unmarshal(workDays, &emp.WorkDays); err != nil {
			return Employee{}, fmt.Errorf("decode work days: %w", err)
		}
	}
	if emp.WorkDays == nil {
		emp.WorkDays = []WorkDay{}
	}
	return emp, nil
}
