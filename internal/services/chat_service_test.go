package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/crypto"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/llm"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/models"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/store"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/store/memory"

	"github.com/google/uuid"
)

type fakeGateway struct {
	mu       sync.Mutex
	fn       func(ctx context.Context, apiKey, model string, messages []llm.Message) (string, error)
	lastKey  string
	lastModl string
	lastMsgs []llm.Message
}

func (f *fakeGateway) Complete(ctx context.Context, apiKey, model string, messages []llm.Message) (string, error) {
	f.mu.Lock()
	f.lastKey = apiKey
	f.lastModl = model
	f.lastMsgs = messages
	f.mu.Unlock()
	return f.fn(ctx, apiKey, model, messages)
}

func newTestChatService(t *testing.T) (*ChatService, *fakeGateway, *memory.MemoryStore, *SettingsService) {
	t.Helper()

	st := memory.NewMemoryStore()
	aead, err := crypto.NewAESGCM(make([]byte, 32))
	if err != nil {
		t.Fatalf("NewAESGCM: %v", err)
	}
	settings := NewSettingsService(st, aead)
	gw := &fakeGateway{
		fn: func(context.Context, string, string, []llm.Message) (string, error) {
			return "assistant reply", nil
		},
	}
	return NewChatService(st, gw, settings), gw, st, settings
}

func TestSendMessageAppendsAlternatingPairs(t *testing.T) {
	svc, _, _, _ := newTestChatService(t)
	userID := uuid.New()
	ctx := context.Background()

	const turns = 3
	for i := 0; i < turns; i++ {
		reply, err := svc.SendMessage(ctx, userID, models.ChatRequest{Message: fmt.Sprintf("question %d", i)})
		if err != nil {
			t.Fatalf("SendMessage turn %d: %v", i, err)
		}
		if reply.Role != models.ChatRoleBot {
			t.Errorf("reply role = %q, want %q", reply.Role, models.ChatRoleBot)
		}
		if reply.Content != "assistant reply" {
			t.Errorf("reply content = %q, want gateway text", reply.Content)
		}
	}

	history, err := svc.History(ctx, userID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2*turns {
		t.Fatalf("history length = %d, want %d", len(history), 2*turns)
	}
	for i, msg := range history {
		wantRole := models.ChatRoleUser
		if i%2 == 1 {
			wantRole = models.ChatRoleBot
		}
		if msg.Role != wantRole {
			t.Errorf("message %d role = %q, want %q", i, msg.Role, wantRole)
		}
		if _, err := time.Parse(time.RFC3339, msg.Timestamp); err != nil {
			t.Errorf("message %d timestamp %q not RFC3339: %v", i, msg.Timestamp, err)
		}
	}
	for i := 0; i < turns; i++ {
		if got, want := history[2*i].Content, fmt.Sprintf("question %d", i); got != want {
			t.Errorf("user message %d content = %q, want %q", i, got, want)
		}
	}
}

func TestAssembledContextWindow(t *testing.T) {
	svc, gw, st, _ := newTestChatService(t)
	userID := uuid.New()
	ctx := context.Background()

	// Seed a log well past the window.
	seeded := make([]models.ChatMessage, 0, 24)
	for i := 0; i < 24; i++ {
		role := models.ChatRoleUser
		if i%2 == 1 {
			role = models.ChatRoleBot
		}
		seeded = append(seeded, models.ChatMessage{
			ID:        strconv.Itoa(i),
			Role:      role,
			Content:   fmt.Sprintf("message %d", i),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
	if err := writeRecords(ctx, st, store.RecordKey(userID, store.KindChat), seeded); err != nil {
		t.Fatalf("seed chat log: %v", err)
	}

	if _, err := svc.SendMessage(ctx, userID, models.ChatRequest{Message: "latest question"}); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	// System message + last 10 of the log + the new message.
	if len(gw.lastMsgs) != chatHistoryWindow+2 {
		t.Fatalf("outbound context length = %d, want %d", len(gw.lastMsgs), chatHistoryWindow+2)
	}
	if gw.lastMsgs[0].Role != llm.RoleSystem {
		t.Errorf("first outbound role = %q, want system", gw.lastMsgs[0].Role)
	}
	last := gw.lastMsgs[len(gw.lastMsgs)-1]
	if last.Role != llm.RoleUser || last.Content != "latest question" {
		t.Errorf("last outbound message = %+v, want the new user message", last)
	}
	for i, msg := range gw.lastMsgs[1 : chatHistoryWindow+1] {
		src := seeded[len(seeded)-chatHistoryWindow+i]
		if msg.Content != src.Content {
			t.Errorf("window entry %d content = %q, want %q", i, msg.Content, src.Content)
		}
		wantRole := llm.RoleUser
		if src.Role == models.ChatRoleBot {
			wantRole = llm.RoleAssistant
		}
		if msg.Role != wantRole {
			t.Errorf("window entry %d role = %q, want %q (stored %q)", i, msg.Role, wantRole, src.Role)
		}
	}
}

func TestSystemPromptCarriesSummaryCounts(t *testing.T) {
	svc, gw, st, _ := newTestChatService(t)
	userID := uuid.New()
	ctx := context.Background()

	txns := []models.Transaction{{ID: "1", Name: "coffee"}, {ID: "2", Name: "rent"}, {ID: "3", Name: "groceries"}}
	if err := writeRecords(ctx, st, store.RecordKey(userID, store.KindTransactions), txns); err != nil {
		t.Fatalf("seed transactions: %v", err)
	}
	loans := []models.Loan{{ID: "4", Type: "auto"}, {ID: "5", Type: "home"}}
	if err := writeRecords(ctx, st, store.RecordKey(userID, store.KindLoans), loans); err != nil {
		t.Fatalf("seed loans: %v", err)
	}

	if _, err := svc.SendMessage(ctx, userID, models.ChatRequest{Message: "how am I doing?"}); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	system := gw.lastMsgs[0].Content
	if !strings.Contains(system, "Total Transactions: 3") {
		t.Errorf("system prompt missing transaction count:\n%s", system)
	}
	if !strings.Contains(system, "Active Loans: 2") {
		t.Errorf("system prompt missing loan count:\n%s", system)
	}
}

func TestGatewayFailurePersistsNothing(t *testing.T) {
	svc, gw, _, _ := newTestChatService(t)
	userID := uuid.New()
	ctx := context.Background()

	gw.fn = func(context.Context, string, string, []llm.Message) (string, error) {
		return "", fmt.Errorf("%w: status 502", llm.ErrUpstream)
	}

	_, err := svc.SendMessage(ctx, userID, models.ChatRequest{Message: "hello"})
	if !errors.Is(err, llm.ErrUpstream) {
		t.Fatalf("SendMessage error = %v, want ErrUpstream", err)
	}

	history, err := svc.History(ctx, userID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("history length after failed turn = %d, want 0", len(history))
	}
}

func TestSendMessageRejectsEmptyMessage(t *testing.T) {
	svc, _, _, _ := newTestChatService(t)

	_, err := svc.SendMessage(context.Background(), uuid.New(), models.ChatRequest{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("SendMessage error = %v, want ErrValidation", err)
	}
}

func TestRequestOverridesBeatStoredSettings(t *testing.T) {
	svc, gw, _, settings := newTestChatService(t)
	userID := uuid.New()
	ctx := context.Background()

	storedKey := "sk-stored"
	storedModel := "stored/model"
	_, err := settings.UpdateSettings(ctx, userID, models.UpdateSettingsRequest{APIKey: &storedKey, Model: &storedModel})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	// No overrides: the stored settings win.
	if _, err := svc.SendMessage(ctx, userID, models.ChatRequest{Message: "hi"}); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if gw.lastKey != "sk-stored" || gw.lastModl != "stored/model" {
		t.Errorf("gateway got key=%q model=%q, want stored settings", gw.lastKey, gw.lastModl)
	}

	// Request overrides take precedence over stored settings.
	req := models.ChatRequest{Message: "hi", APIKey: "sk-request", Model: "request/model"}
	if _, err := svc.SendMessage(ctx, userID, req); err != nil {
		t.Fatalf("SendMessage with overrides: %v", err)
	}
	if gw.lastKey != "sk-request" || gw.lastModl != "request/model" {
		t.Errorf("gateway got key=%q model=%q, want request overrides", gw.lastKey, gw.lastModl)
	}
}

// TestConcurrentTurnsCanLoseUpdates demonstrates the documented lost-update
// window: two turns for the same user that both read the log before either
// writes leave only the last writer's pair behind.
func TestConcurrentTurnsCanLoseUpdates(t *testing.T) {
	svc, gw, _, _ := newTestChatService(t)
	userID := uuid.New()
	ctx := context.Background()

	// Hold both turns at the gateway until each has read the (empty) log.
	var arrived sync.WaitGroup
	arrived.Add(2)
	gw.fn = func(context.Context, string, string, []llm.Message) (string, error) {
		arrived.Done()
		arrived.Wait()
		return "reply", nil
	}

	var done sync.WaitGroup
	done.Add(2)
	for i := 0; i < 2; i++ {
		go func(i int) {
			defer done.Done()
			if _, err := svc.SendMessage(ctx, userID, models.ChatRequest{Message: fmt.Sprintf("turn %d", i)}); err != nil {
				t.Errorf("SendMessage turn %d: %v", i, err)
			}
		}(i)
	}
	done.Wait()

	history, err := svc.History(ctx, userID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	// Both turns succeeded, but the second write replaced the first: one
	// pair survives instead of two.
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2 (one turn's records lost)", len(history))
	}
}
