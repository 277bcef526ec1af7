package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/auth"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/models"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/services"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/pkg/httputil"
)

// TransactionHandler handles HTTP requests for the transaction ledger.
type TransactionHandler struct {
	ledger *services.LedgerService
}

func NewTransactionHandler(ledger *services.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// HandleListTransactions handles GET /v1/transactions.
func (h *TransactionHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transactions, err := h.ledger.ListTransactions(r.Context(), userID)
	if err != nil {
		log.Printf("Error fetching transactions for user %s: %v", userID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.TransactionsResponse{Transactions: transactions})
}

// HandleAddTransaction handles POST /v1/transactions.
func (h *TransactionHandler) HandleAddTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	transaction, err := h.ledger.AddTransaction(r.Context(), userID, req)
	if err != nil {
		log.Printf("Error adding transaction for user %s: %v", userID, err)
		if errors.Is(err, services.ErrValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to add transaction")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.TransactionResponse{Transaction: transaction})
}
