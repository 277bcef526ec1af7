package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/auth"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/llm"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/models"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/services"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/pkg/httputil"
)

// ChatHandler handles HTTP requests for the chatbot.
type ChatHandler struct {
	chat *services.ChatService
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// HandleHistory handles GET /v1/chat/history.
func (h *ChatHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	messages, err := h.chat.History(r.Context(), userID)
	if err != nil {
		log.Printf("Error fetching chat history for user %s: %v", userID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch chat history")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.ChatHistoryResponse{Messages: messages})
}

// HandleSendMessage handles POST /v1/chat: one complete chat turn.
//
// Gateway failures map to fixed user-facing messages; the upstream provider's
// own error text is logged by the gateway client, never relayed.
func (h *ChatHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	reply, err := h.chat.SendMessage(r.Context(), userID, req)
	if err != nil {
		log.Printf("Chat turn failed for user %s: %v", userID, err)
		switch {
		case errors.Is(err, services.ErrValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, llm.ErrNoAPIKey):
			httputil.RespondError(w, http.StatusInternalServerError, "OpenRouter API key not configured. Please add your API key in Settings.")
		case errors.Is(err, llm.ErrUpstream):
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to get response from AI")
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to process chat message")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.ChatTurnResponse{Message: reply})
}
