package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	db_models "shoppergpt-backend/internal/models"
	"shoppergpt-backend/internal/store"
)

// Compile-time check to ensure PostgresStore implements store.Store
var _ store.Store = (*PostgresStore)(nil)

//go:embed schema.sql
var schemaDDL string

type PostgresStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresStore(db *pgxpool.Pool, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// InitSchema applies the embedded DDL. Every statement is idempotent
// (CREATE ... IF NOT EXISTS); there is no migration tooling for this service.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	s.logger.Info("database schema checked/created")
	return nil
}

const userColumns = `id, whatsapp_id, phone_number, profile_name, style_preferences, budget_range,
	preferred_categories, brand_preferences, sizes, shopping_context, created_at, updated_at`

func scanUser(row pgx.Row) (*db_models.User, error) {
	var u db_models.User
	err := row.Scan(
		&u.ID,
		&u.WhatsAppID,
		&u.PhoneNumber,
		&u.ProfileName,
		&u.StylePreferences,
		&u.BudgetRange,
		&u.PreferredCategories,
		&u.BrandPreferences,
		&u.Sizes,
		&u.ShoppingContext,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const getUserByWhatsAppID = `-- name: GetUserByWhatsAppID :one
SELECT ` + userColumns + `
FROM users
WHERE whatsapp_id = $1;
`

// GetUserByWhatsAppID retrieves a user by their WhatsApp ID.
// Returns store.ErrNotFound if the user does not exist.
func (s *PostgresStore) GetUserByWhatsAppID(ctx context.Context, whatsappID string) (*db_models.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx, getUserByWhatsAppID, whatsappID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		s.logger.Error("failed to fetch user by whatsapp id",
			zap.String("whatsapp_id", whatsappID), zap.Error(err))
		return nil, fmt.Errorf("database error fetching user: %w", err)
	}
	return user, nil
}

const createUser = `-- name: CreateUser :one
INSERT INTO users (whatsapp_id, phone_number, profile_name)
VALUES ($1, $2, $3)
RETURNING ` + userColumns + `;
`

// CreateUser inserts a new user record. The caller must already have checked
// for an existing whatsapp_id; a unique violation surfaces as a wrapped error.
func (s *PostgresStore) CreateUser(ctx context.Context, arg store.CreateUserParams) (*db_models.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx, createUser, arg.WhatsAppID, arg.PhoneNumber, arg.ProfileName))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			s.logger.Error("postgres error creating user",
				zap.String("whatsapp_id", arg.WhatsAppID),
				zap.String("code", pgErr.Code),
				zap.String("detail", pgErr.Detail))
		} else {
			s.logger.Error("failed to create user",
				zap.String("whatsapp_id", arg.WhatsAppID), zap.Error(err))
		}
		return nil, fmt.Errorf("database error creating user: %w", err)
	}
	s.logger.Info("created user",
		zap.Int64("user_id", user.ID), zap.String("whatsapp_id", user.WhatsAppID))
	return user, nil
}

const updateUserProfile = `-- name: UpdateUserProfile :one
UPDATE users
SET profile_name         = COALESCE($2, profile_name),
    style_preferences    = COALESCE($3, style_preferences),
    budget_range         = COALESCE($4, budget_range),
    preferred_categories = COALESCE($5, preferred_categories),
    brand_preferences    = COALESCE($6, brand_preferences),
    sizes                = COALESCE($7, sizes),
    shopping_context     = COALESCE($8, shopping_context),
    updated_at           = NOW()
WHERE whatsapp_id = $1
RETURNING ` + userColumns + `;
`

// UpdateUserProfile applies a partial profile update. Returns
// store.ErrNotFound when no user matches; the statement either commits fully
// or not at all.
func (s *PostgresStore) UpdateUserProfile(ctx context.Context, whatsappID string, arg store.UpdateUserProfileParams) (*db_models.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx, updateUserProfile,
		whatsappID,
		arg.ProfileName,
		arg.StylePreferences,
		arg.BudgetRange,
		arg.PreferredCategories,
		arg.BrandPreferences,
		arg.Sizes,
		arg.ShoppingContext,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		s.logger.Error("failed to update user profile",
			zap.String("whatsapp_id", whatsappID), zap.Error(err))
		return nil, fmt.Errorf("database error updating user profile: %w", err)
	}
	return user, nil
}

const listUsers = `-- name: ListUsers :many
SELECT ` + userColumns + `
FROM users
ORDER BY created_at DESC
LIMIT $1 OFFSET $2;
`

// ListUsers returns a page of users, newest first.
func (s *PostgresStore) ListUsers(ctx context.Context, limit, offset int) ([]db_models.User, error) {
	rows, err := s.db.Query(ctx, listUsers, limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("database error listing users: %w", err)
	}
	defer rows.Close()

	users := []db_models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}
