package services

import (
	"context"
	"fmt"
	"time"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/models"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/store"

	"github.com/google/uuid"
)

// LedgerService manages a user's transaction sequence.
type LedgerService struct {
	kv store.KV
}

func NewLedgerService(kv store.KV) *LedgerService {
	return &LedgerService{kv: kv}
}

// ListTransactions returns the user's full transaction sequence in insertion
// order.
func (s *LedgerService) ListTransactions(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	return readRecords[models.Transaction](ctx, s.kv, store.RecordKey(userID, store.KindTransactions))
}

// AddTransaction appends one transaction. The date defaults to today when
// the request omits it.
func (s *LedgerService) AddTransaction(ctx context.Context, userID uuid.UUID, req models.CreateTransactionRequest) (models.Transaction, error) {
	if req.Name == "" {
		return models.Transaction{}, fmt.Errorf("%w: transaction name is required", ErrValidation)
	}

	key := store.RecordKey(userID, store.KindTransactions)
	transactions, err := readRecords[models.Transaction](ctx, s.kv, key)
	if err != nil {
		return models.Transaction{}, err
	}

	now := time.Now().UTC()
	date := req.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}

	transaction := models.Transaction{
		ID:       recordID(now),
		Name:     req.Name,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     date,
	}

	transactions = append(transactions, transaction)
	if err := writeRecords(ctx, s.kv, key, transactions); err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}
