package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/store"
)

// readRecords loads a user's record sequence from the store. An absent key
// reads as an empty sequence.
func readRecords[T any](ctx context.Context, kv store.KV, key string) ([]T, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("corrupt record sequence at %s: %w", key, err)
	}
	return records, nil
}

// writeRecords replaces a user's record sequence wholesale. Appends are a
// readRecords, in-memory append, writeRecords cycle; see store.KV for the
// concurrency caveat.
func writeRecords[T any](ctx context.Context, kv store.KV, key string, records []T) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal records for %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// recordID derives a record id from the creation-time wall clock, the id
// shape the frontend already stores. Uniqueness is best effort: two records
// created in the same millisecond collide. Known limitation, kept as-is.
func recordID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// recordIDOffset produces a sibling id n millis after t, for records created
// together in one turn.
func recordIDOffset(t time.Time, n int64) string {
	return strconv.FormatInt(t.UnixMilli()+n, 10)
}
