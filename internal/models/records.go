package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts serialize as bare JSON numbers, matching the frontend contract.
	decimal.MarshalJSONWithoutQuotes = true
}

// ChatRole is the role tag stored with each chat message. Note the stored
// role for assistant replies is "bot"; translation to the completion
// protocol's "assistant" happens when the outbound context is assembled.
type ChatRole string

const (
	ChatRoleUser ChatRole = "user"
	ChatRoleBot  ChatRole = "bot"
)

// ChatMessage is a single entry in a user's append-only chat log.
// Messages are immutable once appended; insertion order is chronological.
type ChatMessage struct {
	ID        string   `json:"id"`
	Role      ChatRole `json:"role"`
	Content   string   `json:"content"`
	Timestamp string   `json:"timestamp"` // RFC 3339
}

// Transaction is a flat ledger entry. Negative amounts are spending.
type Transaction struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date"` // "2006-01-02"
}

// Loan is created once and never edited; Balance starts equal to Amount.
type Loan struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Balance      decimal.Decimal `json:"balance"`
	InterestRate decimal.Decimal `json:"interestRate"`
	DueDate      string          `json:"dueDate"` // "2006-01-02"
	CreatedAt    string          `json:"createdAt"`
}

// Document holds upload metadata only; file contents live elsewhere.
type Document struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	UploadDate string `json:"uploadDate"`
}

// Settings is the per-user assistant configuration. The API key is stored
// AES-GCM encrypted and base64 encoded; it is never returned by the API.
type Settings struct {
	EncryptedAPIKey string `json:"apiKey,omitempty"`
	Model           string `json:"model,omitempty"`
}

// User is the account record backing signup/login.
type User struct {
	ID             uuid.UUID
	Email          string
	Name           string
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
