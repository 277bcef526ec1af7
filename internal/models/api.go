package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Request Structs ---

// SignupRequest defines the expected body for the signup endpoint.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest defines the expected body for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateTransactionRequest defines the body for adding a transaction.
// Amount accepts both quoted and bare JSON numbers.
type CreateTransactionRequest struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date,omitempty"`
}

// CreateLoanRequest defines the body for a loan application. Amount and
// Duration arrive as strings from the application form and are parsed
// server-side.
type CreateLoanRequest struct {
	Amount   string `json:"amount"`
	Duration string `json:"duration"` // months
	Purpose  string `json:"purpose"`
}

// CreateDocumentRequest defines the body for recording a document upload.
// Only metadata is stored; the file itself is not handled here.
type CreateDocumentRequest struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// ChatRequest defines the body for one chat turn. APIKey and Model are
// per-request overrides for the completion gateway defaults.
type ChatRequest struct {
	Message string `json:"message"`
	APIKey  string `json:"apiKey,omitempty"`
	Model   string `json:"model,omitempty"`
}

// UpdateSettingsRequest defines the body for updating assistant settings.
// Only fields present in the request are updated; an explicit empty APIKey
// clears the stored key.
type UpdateSettingsRequest struct {
	APIKey *string `json:"apiKey"`
	Model  *string `json:"model"`
}

// --- Response Structs ---

// UserResponse defines the user information returned by the API.
// Avoid returning sensitive info like HashedPassword.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// AuthResponse defines the response body for successful authentication.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// SignupResponse wraps the created user.
type SignupResponse struct {
	User UserResponse `json:"user"`
}

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TransactionsResponse wraps a user's full transaction sequence.
type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

// TransactionResponse wraps a single created transaction.
type TransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

// LoansResponse wraps a user's full loan sequence.
type LoansResponse struct {
	Loans []Loan `json:"loans"`
}

// LoanResponse wraps a single created loan.
type LoanResponse struct {
	Loan Loan `json:"loan"`
}

// ChatHistoryResponse wraps the stored chat log.
type ChatHistoryResponse struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatTurnResponse wraps the assistant reply for one chat turn.
type ChatTurnResponse struct {
	Message ChatMessage `json:"message"`
}

// DocumentsResponse wraps a user's full document sequence.
type DocumentsResponse struct {
	Documents []Document `json:"documents"`
}

// DocumentResponse wraps a single created document.
type DocumentResponse struct {
	Document Document `json:"document"`
}

// DeleteDocumentResponse acknowledges a document deletion.
type DeleteDocumentResponse struct {
	Success bool `json:"success"`
}

// SettingsView is the API-safe projection of a user's settings.
// The stored API key is never returned, only whether one exists.
type SettingsView struct {
	Model     string `json:"model"`
	HasAPIKey bool   `json:"hasApiKey"`
}

// SettingsResponse wraps the settings projection.
type SettingsResponse struct {
	Settings SettingsView `json:"settings"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
