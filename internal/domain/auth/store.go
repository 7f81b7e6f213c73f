package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (User, error) {
	var out User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash
    FROM users
    WHERE email = $1
  `, email).Scan(&out.ID, &out.Email, &out.PasswordHash)
	return out, err
}

func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (email, password_hash)
    VALUES ($1, $2)
    RETURNING id
  `, email, passwordHash).Scan(&id)
	return id, err
}

func (s *Store) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE id = $1", userID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login = now() WHERE id = $1", userID)
	return err
}

func (s *Store) CreateSession(ctx context.Context, userID, tokenHash string, expires time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO sessions (user_id, refresh_token, expires_at)
    VALUES ($1,$2,$3)
  `, userID, tokenHash, expires)
	return err
}

func (s *Store) RevokeSession(ctx context.Context, userID, tokenHash string) error {
	_, err := s.DB.Exec(ctx, "UPDATE sessions SET revoked_at = now() WHERE user_id = $1 AND refresh_token = $2", userID, tokenHash)
	return err
}

func (s *Store) SessionValid(ctx context.Context, userID, tokenHash string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM sessions
    WHERE user_id = $1 AND refresh_token = $2 AND expires_at > now() AND revoked_at IS NULL
  `, userID, tokenHash).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
