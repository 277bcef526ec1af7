package memory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/models"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/store"

	"github.com/google/uuid"
)

func TestKVRoundTrip(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	key := store.RecordKey(uuid.New(), store.KindTransactions)

	if _, err := st.Get(ctx, key); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get of absent key = %v, want ErrNotFound", err)
	}

	value := json.RawMessage(`[{"id":"1"}]`)
	if err := st.Set(ctx, key, value); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := st.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(value) {
		t.Errorf("Get = %s, want %s", got, value)
	}

	if err := st.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get(ctx, key); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
}

func TestGetReturnsACopy(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if err := st.Set(ctx, "k", json.RawMessage(`"aa"`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := st.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got[1] = 'z'

	again, err := st.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(again) != `"aa"` {
		t.Errorf("stored value mutated through returned slice: %s", again)
	}
}

func TestUserStore(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if _, err := st.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("GetUserByEmail of absent user = %v, want ErrNotFound", err)
	}

	user := &models.User{ID: uuid.New(), Email: "a@example.com", Name: "A", HashedPassword: "x"}
	if err := st.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := st.GetUserByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != user.ID || got.Name != "A" {
		t.Errorf("GetUserByEmail = %+v, want the created user", got)
	}
}
