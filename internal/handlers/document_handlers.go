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

	"github.com/go-chi/chi/v5"
)

// DocumentHandler handles HTTP requests for document metadata.
type DocumentHandler struct {
	documents *services.DocumentService
}

func NewDocumentHandler(documents *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// HandleListDocuments handles GET /v1/documents.
func (h *DocumentHandler) HandleListDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	documents, err := h.documents.ListDocuments(r.Context(), userID)
	if err != nil {
		log.Printf("Error fetching documents for user %s: %v", userID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch documents")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.DocumentsResponse{Documents: documents})
}

// HandleUploadDocument handles POST /v1/documents.
func (h *DocumentHandler) HandleUploadDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	document, err := h.documents.UploadDocument(r.Context(), userID, req)
	if err != nil {
		log.Printf("Error uploading document for user %s: %v", userID, err)
		if errors.Is(err, services.ErrValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to upload document")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.DocumentResponse{Document: document})
}

// HandleDeleteDocument handles DELETE /v1/documents/{documentID}.
func (h *DocumentHandler) HandleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	documentID := chi.URLParam(r, "documentID")
	if err := h.documents.DeleteDocument(r.Context(), userID, documentID); err != nil {
		log.Printf("Error deleting document %s for user %s: %v", documentID, userID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.DeleteDocumentResponse{Success: true})
}
