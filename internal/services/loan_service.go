package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/models"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Every loan is issued at the same flat rate; there is no underwriting here.
var loanInterestRate = decimal.RequireFromString("5.5")

// LoanService manages a user's loan sequence.
type LoanService struct {
	kv store.KV
}

func NewLoanService(kv store.KV) *LoanService {
	return &LoanService{kv: kv}
}

// ListLoans returns the user's full loan sequence in insertion order.
func (s *LoanService) ListLoans(ctx context.Context, userID uuid.UUID) ([]models.Loan, error) {
	return readRecords[models.Loan](ctx, s.kv, store.RecordKey(userID, store.KindLoans))
}

// CreateLoan appends a new loan. The balance starts equal to the amount and
// the due date is duration months (30-day months) from creation.
func (s *LoanService) CreateLoan(ctx context.Context, userID uuid.UUID, req models.CreateLoanRequest) (models.Loan, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return models.Loan{}, fmt.Errorf("%w: invalid loan amount %q", ErrValidation, req.Amount)
	}
	if !amount.IsPositive() {
		return models.Loan{}, fmt.Errorf("%w: loan amount must be positive", ErrValidation)
	}

	duration, err := strconv.Atoi(req.Duration)
	if err != nil || duration <= 0 {
		return models.Loan{}, fmt.Errorf("%w: invalid loan duration %q", ErrValidation, req.Duration)
	}

	loanType := req.Purpose
	if loanType == "" {
		loanType = "Personal Loan"
	}

	key := store.RecordKey(userID, store.KindLoans)
	loans, err := readRecords[models.Loan](ctx, s.kv, key)
	if err != nil {
		return models.Loan{}, err
	}

	now := time.Now().UTC()
	loan := models.Loan{
		ID:           recordID(now),
		Type:         loanType,
		Amount:       amount,
		Balance:      amount,
		InterestRate: loanInterestRate,
		DueDate:      now.AddDate(0, 0, duration*30).Format("2006-01-02"),
		CreatedAt:    now.Format(time.RFC3339),
	}

	loans = append(loans, loan)
	if err := writeRecords(ctx, s.kv, key, loans); err != nil {
		return models.Loan{}, err
	}

	return loan, nil
}
