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

// LoanHandler handles HTTP requests for loan management.
type LoanHandler struct {
	loans *services.LoanService
}

func NewLoanHandler(loans *services.LoanService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

// HandleListLoans handles GET /v1/loans.
func (h *LoanHandler) HandleListLoans(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	loans, err := h.loans.ListLoans(r.Context(), userID)
	if err != nil {
		log.Printf("Error fetching loans for user %s: %v", userID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch loans")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.LoansResponse{Loans: loans})
}

// HandleCreateLoan handles POST /v1/loans.
func (h *LoanHandler) HandleCreateLoan(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	loan, err := h.loans.CreateLoan(r.Context(), userID, req)
	if err != nil {
		log.Printf("Error creating loan for user %s: %v", userID, err)
		if errors.Is(err, services.ErrValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to create loan")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.LoanResponse{Loan: loan})
}
