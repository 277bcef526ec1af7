package services

import (
	"context"
	"crypto/cipher"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/crypto"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/llm"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/models"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/store"

	"github.com/google/uuid"
)

// SettingsService stores per-user assistant settings. The OpenRouter API key
// is encrypted with AES-GCM before it touches the store and is only ever
// decrypted to authenticate an outbound completion request.
type SettingsService struct {
	kv   store.KV
	aead cipher.AEAD
}

func NewSettingsService(kv store.KV, aead cipher.AEAD) *SettingsService {
	return &SettingsService{kv: kv, aead: aead}
}

func (s *SettingsService) read(ctx context.Context, userID uuid.UUID) (models.Settings, error) {
	raw, err := s.kv.Get(ctx, store.RecordKey(userID, store.KindSettings))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Settings{}, nil
		}
		return models.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings models.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("corrupt settings record: %w", err)
	}
	return settings, nil
}

func (s *SettingsService) write(ctx context.Context, userID uuid.UUID, settings models.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := s.kv.Set(ctx, store.RecordKey(userID, store.KindSettings), raw); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

func (s *SettingsService) view(settings models.Settings) models.SettingsView {
	model := settings.Model
	if model == "" {
		model = llm.DefaultModel
	}
	return models.SettingsView{
		Model:     model,
		HasAPIKey: settings.EncryptedAPIKey != "",
	}
}

// GetSettings returns the API-safe projection of the user's settings.
func (s *SettingsService) GetSettings(ctx context.Context, userID uuid.UUID) (models.SettingsView, error) {
	settings, err := s.read(ctx, userID)
	if err != nil {
		return models.SettingsView{}, err
	}
	return s.view(settings), nil
}

// UpdateSettings applies the fields present in the request. An explicit empty
// APIKey clears the stored key.
func (s *SettingsService) UpdateSettings(ctx context.Context, userID uuid.UUID, req models.UpdateSettingsRequest) (models.SettingsView, error) {
	settings, err := s.read(ctx, userID)
	if err != nil {
		return models.SettingsView{}, err
	}

	if req.APIKey != nil {
		if *req.APIKey == "" {
			settings.EncryptedAPIKey = ""
		} else {
			sealed, err := crypto.Encrypt(s.aead, []byte(*req.APIKey))
			if err != nil {
				return models.SettingsView{}, fmt.Errorf("failed to encrypt API key: %w", err)
			}
			settings.EncryptedAPIKey = base64.StdEncoding.EncodeToString(sealed)
		}
	}
	if req.Model != nil {
		settings.Model = *req.Model
	}

	if err := s.write(ctx, userID, settings); err != nil {
		return models.SettingsView{}, err
	}
	return s.view(settings), nil
}

// storedCredentials returns the user's decrypted API key and preferred model
// for the chat fallback chain. Failures here must never fail a chat turn, so
// they are logged and reported as absent values.
func (s *SettingsService) storedCredentials(ctx context.Context, userID uuid.UUID) (apiKey, model string) {
	settings, err := s.read(ctx, userID)
	if err != nil {
		log.Printf("Warning: could not read settings for user %s: %v", userID, err)
		return "", ""
	}

	model = settings.Model
	if settings.EncryptedAPIKey == "" {
		return "", model
	}

	sealed, err := base64.StdEncoding.DecodeString(settings.EncryptedAPIKey)
	if err != nil {
		log.Printf("Warning: stored API key for user %s is not valid base64: %v", userID, err)
		return "", model
	}
	plaintext, err := crypto.Decrypt(s.aead, sealed)
	if err != nil {
		log.Printf("Warning: could not decrypt stored API key for user %s: %v", userID, err)
		return "", model
	}
	return string(plaintext), model
}
