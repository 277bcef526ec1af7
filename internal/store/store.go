package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a key or record is not present.
var ErrNotFound = errors.New("record not found")

// Kind names a per-user record category. Each kind is stored as one JSON
// value (an ordered sequence for everything except settings) under one key.
type Kind string

const (
	KindTransactions Kind = "transactions"
	KindLoans        Kind = "loans"
	KindDocuments    Kind = "documents"
	KindChat         Kind = "chat"
	KindSettings     Kind = "settings"
)

// RecordKey composes the storage key for a user's records of the given kind.
// All record access goes through this builder so the key shape lives in
// exactly one place.
func RecordKey(userID uuid.UUID, kind Kind) string {
	return fmt.Sprintf("user:%s:%s", userID, kind)
}

// KV is the record store accessor. Get returns ErrNotFound for absent keys.
//
// There is no locking and no versioning: appending to a sequence is a full
// read, in-memory modify, full write. Two concurrent writers to the same key
// race and the last write wins. Accepted limitation, not to be papered over
// here; callers that need stronger guarantees must re-scope the storage
// contract first.
type KV interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
	Delete(ctx context.Context, key string) error
}

// UserStore defines the account operations backing signup and login.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Store is the full persistence surface the service layer depends on.
type Store interface {
	KV
	UserStore
}
