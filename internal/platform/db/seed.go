package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"diarias/internal/domain/auth"
	"diarias/internal/platform/config"
)

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	return ensureUser(ctx, pool, cfg.SeedUserEmail, cfg.SeedUserPassword)
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return pool.QueryRow(ctx, "INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id", email, hash).Scan(&id)
}
