package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/models"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Compile-time check to ensure PostgresStore implements store.Store
var _ store.Store = (*PostgresStore)(nil)

// PostgresStore persists records in two tables:
//
//	kv_store (key TEXT PRIMARY KEY, value JSONB NOT NULL,
//	          updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW())
//	users    (id UUID PRIMARY KEY, email TEXT UNIQUE NOT NULL, name TEXT,
//	          hashed_password TEXT NOT NULL,
//	          created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	          updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW())
//
// Get/Set are individually atomic but a read-modify-write of one key is not;
// see the contract notes on store.KV.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get retrieves the JSON value stored under key.
// Returns store.ErrNotFound if the key does not exist.
func (s *PostgresStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`

	var value json.RawMessage
	err := s.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] Get: failed to read key %s: %v", key, err)
		return nil, fmt.Errorf("database error reading key: %w", err)
	}

	return value, nil
}

// Set writes the JSON value under key, replacing any previous value.
func (s *PostgresStore) Set(ctx context.Context, key string, value json.RawMessage) error {
	query := `
		INSERT INTO kv_store (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := s.db.Exec(ctx, query, key, value); err != nil {
		log.Printf("ERROR [PostgresStore] Set: failed to write key %s: %v", key, err)
		return fmt.Errorf("database error writing key: %w", err)
	}
	return nil
}

// Delete removes the value stored under key. Deleting an absent key is not
// an error.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_store WHERE key = $1`

	if _, err := s.db.Exec(ctx, query, key); err != nil {
		log.Printf("ERROR [PostgresStore] Delete: failed to delete key %s: %v", key, err)
		return fmt.Errorf("database error deleting key: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by their email address.
// Returns store.ErrNotFound if the user does not exist.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, name, hashed_password, created_at, updated_at
		FROM users
		WHERE email = $1`

	user := &models.User{}
	err := s.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetUserByEmail: failed to query user for email %s: %v", email, err)
		return nil, fmt.Errorf("database error fetching user by email: %w", err)
	}

	return user, nil
}

// CreateUser inserts a new user record into the database.
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, name, hashed_password)
		VALUES ($1, $2, $3, $4)`
	// created_at and updated_at have database defaults

	_, err := s.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.HashedPassword,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// 23505 is unique_violation (duplicate email or id)
			log.Printf("ERROR [PostgresStore] CreateUser: insert failed for email %s: Code=%s, Message=%s", user.Email, pgErr.Code, pgErr.Message)
		} else {
			log.Printf("ERROR [PostgresStore] CreateUser: insert failed for email %s: %v", user.Email, err)
		}
		return fmt.Errorf("database error creating user: %w", err)
	}

	return nil
}
