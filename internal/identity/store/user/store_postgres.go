package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/models"
)

// pqUniqueViolation is the Postgres error code for unique constraint
// violations. Create surfaces it as ErrConflict so the find-or-create retry
// in the auth service can recover.
const pqUniqueViolation = "23505"

// Postgres persists users in PostgreSQL. Schema lives in
// migrations/0001_users.sql; google_id and email carry unique indexes.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const userColumns = "id, google_id, email, name, avatar, role, created_at"

func (s *Postgres) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, google_id, email, name, avatar, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		user.ID, user.GoogleID, user.Email, user.Name, user.Avatar, user.Role, user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row)
}

func (s *Postgres) FindByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE google_id = $1", googleID)
	return scanUser(row)
}

func (s *Postgres) List(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Postgres) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"UPDATE users SET role = $2 WHERE id = $1 RETURNING "+userColumns, id, role)
	return scanUser(row)
}

func (s *Postgres) UpdateProfile(ctx context.Context, id uuid.UUID, name, avatar string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"UPDATE users SET name = $2, avatar = $3 WHERE id = $1 RETURNING "+userColumns, id, name, avatar)
	return scanUser(row)
}

func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	var role string
	err := row.Scan(&u.ID, &u.GoogleID, &u.Email, &u.Name, &u.Avatar, &role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.Role = models.Role(role)
	return &u, nil
}
