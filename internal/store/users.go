package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lexhours/lexhours/internal/types"
)

const userColumns = "id, username, password_hash, real_name, email, team, center, role, created_at, updated_at"

// CreateUser inserts a new account. Usernames are unique.
func (s *SQLiteStore) CreateUser(ctx context.Context, u *types.NewUser) (*types.User, error) {
	now := time.Now().UTC()
	nowStr := now.Format(time.RFC3339)

	role := u.Role
	if role == "" {
		role = "user"
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, real_name, email, team, center, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, u.Username, u.PasswordHash, u.RealName, u.Email, u.Team, u.Center, role, nowStr, nowStr)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return &types.User{
		ID:           id,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		RealName:     u.RealName,
		Email:        u.Email,
		Team:         u.Team,
		Center:       u.Center,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// UserByUsername looks up an account by its login name.
func (s *SQLiteStore) UserByUsername(ctx context.Context, username string) (*types.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return scanUser(row)
}

// UserByID looks up an account by its numeric ID.
func (s *SQLiteStore) UserByID(ctx context.Context, id int64) (*types.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*types.User, error) {
	var u types.User
	var createdAt, updatedAt string

	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.RealName, &u.Email,
		&u.Team, &u.Center, &u.Role, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		u.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		u.UpdatedAt = t
	}

	return &u, nil
}
