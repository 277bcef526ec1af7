package services

import (
	"context"
	"fmt"
	"time"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/llm"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/models"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/store"

	"github.com/google/uuid"
)

// chatHistoryWindow bounds how many stored messages are replayed to the
// completion gateway each turn. Truncation is by message count only; no
// token counting.
const chatHistoryWindow = 10

const systemPromptTemplate = `You are FinFlow Assistant, a helpful AI financial advisor. You help users manage their finances, understand their spending, and make informed financial decisions.

User's Financial Summary:
- Total Transactions: %d
- Active Loans: %d

Be helpful, concise, and professional. Provide actionable financial advice when appropriate.`

// CompletionGateway is the outbound dependency of a chat turn. Implemented
// by llm.Client; faked in tests.
type CompletionGateway interface {
	Complete(ctx context.Context, apiKey, model string, messages []llm.Message) (string, error)
}

// ChatService runs one chat turn end-to-end: read state, assemble context,
// call the gateway, persist the exchange. Stateless across turns; the
// persisted log is the only state.
type ChatService struct {
	kv       store.KV
	gateway  CompletionGateway
	settings *SettingsService
}

func NewChatService(kv store.KV, gateway CompletionGateway, settings *SettingsService) *ChatService {
	return &ChatService{
		kv:       kv,
		gateway:  gateway,
		settings: settings,
	}
}

// History returns the user's full chat log in chronological order.
func (s *ChatService) History(ctx context.Context, userID uuid.UUID) ([]models.ChatMessage, error) {
	return readRecords[models.ChatMessage](ctx, s.kv, store.RecordKey(userID, store.KindChat))
}

// SendMessage services one chat turn. On gateway failure nothing is
// persisted: the turn simply did not happen as far as the log is concerned,
// which keeps the stored history consistent with what the user saw succeed.
func (s *ChatService) SendMessage(ctx context.Context, userID uuid.UUID, req models.ChatRequest) (models.ChatMessage, error) {
	if req.Message == "" {
		return models.ChatMessage{}, fmt.Errorf("%w: message cannot be empty", ErrValidation)
	}

	chatKey := store.RecordKey(userID, store.KindChat)
	history, err := readRecords[models.ChatMessage](ctx, s.kv, chatKey)
	if err != nil {
		return models.ChatMessage{}, err
	}

	// Cheap summary statistics for the system prompt; the assistant never
	// sees the raw records.
	transactions, err := readRecords[models.Transaction](ctx, s.kv, store.RecordKey(userID, store.KindTransactions))
	if err != nil {
		return models.ChatMessage{}, err
	}
	loans, err := readRecords[models.Loan](ctx, s.kv, store.RecordKey(userID, store.KindLoans))
	if err != nil {
		return models.ChatMessage{}, err
	}

	messages := assembleContext(history, len(transactions), len(loans), req.Message)

	apiKey, model := s.resolveOverrides(ctx, userID, req)
	reply, err := s.gateway.Complete(ctx, apiKey, model, messages)
	if err != nil {
		return models.ChatMessage{}, err
	}

	now := time.Now().UTC()
	userMsg := models.ChatMessage{
		ID:        recordID(now),
		Role:      models.ChatRoleUser,
		Content:   req.Message,
		Timestamp: now.Format(time.RFC3339),
	}
	botMsg := models.ChatMessage{
		ID:        recordIDOffset(now, 1),
		Role:      models.ChatRoleBot,
		Content:   reply,
		Timestamp: now.Format(time.RFC3339),
	}

	// Both records land in one write so the log never holds a user message
	// without its reply.
	history = append(history, userMsg, botMsg)
	if err := writeRecords(ctx, s.kv, chatKey, history); err != nil {
		return models.ChatMessage{}, err
	}

	return botMsg, nil
}

// resolveOverrides merges the key/model fallback chain at the call boundary:
// request override first, then the user's stored settings. Empty results let
// the gateway client fall back to its server-configured defaults.
func (s *ChatService) resolveOverrides(ctx context.Context, userID uuid.UUID, req models.ChatRequest) (apiKey, model string) {
	apiKey = req.APIKey
	model = req.Model
	if apiKey != "" && model != "" {
		return apiKey, model
	}

	storedKey, storedModel := s.settings.storedCredentials(ctx, userID)
	if apiKey == "" {
		apiKey = storedKey
	}
	if model == "" {
		model = storedModel
	}
	return apiKey, model
}

// assembleContext builds the outbound message sequence: one system message
// parameterized with the user's summary counts, the tail of the stored log
// translated to the gateway's role names, and the new user message last.
func assembleContext(history []models.ChatMessage, transactionCount, loanCount int, newMessage string) []llm.Message {
	window := history
	if len(window) > chatHistoryWindow {
		window = window[len(window)-chatHistoryWindow:]
	}

	messages := make([]llm.Message, 0, len(window)+2)
	messages = append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: fmt.Sprintf(systemPromptTemplate, transactionCount, loanCount),
	})

	for _, msg := range window {
		role := llm.RoleUser
		if msg.Role == models.ChatRoleBot {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: msg.Content})
	}

	return append(messages, llm.Message{Role: llm.RoleUser, Content: newMessage})
}
