package services

import (
	"context"
	"fmt"
	"time"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/models"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/store"

	"github.com/google/uuid"
)

// DocumentService manages a user's document metadata sequence. Only
// bookkeeping lives here; file contents are out of scope.
type DocumentService struct {
	kv store.KV
}

func NewDocumentService(kv store.KV) *DocumentService {
	return &DocumentService{kv: kv}
}

// ListDocuments returns the user's full document sequence in insertion order.
func (s *DocumentService) ListDocuments(ctx context.Context, userID uuid.UUID) ([]models.Document, error) {
	return readRecords[models.Document](ctx, s.kv, store.RecordKey(userID, store.KindDocuments))
}

// UploadDocument appends one document metadata record.
func (s *DocumentService) UploadDocument(ctx context.Context, userID uuid.UUID, req models.CreateDocumentRequest) (models.Document, error) {
	if req.Name == "" {
		return models.Document{}, fmt.Errorf("%w: document name is required", ErrValidation)
	}

	key := store.RecordKey(userID, store.KindDocuments)
	documents, err := readRecords[models.Document](ctx, s.kv, key)
	if err != nil {
		return models.Document{}, err
	}

	now := time.Now().UTC()
	document := models.Document{
		ID:         recordID(now),
		Name:       req.Name,
		Size:       req.Size,
		UploadDate: now.Format(time.RFC3339),
	}

	documents = append(documents, document)
	if err := writeRecords(ctx, s.kv, key, documents); err != nil {
		return models.Document{}, err
	}

	return document, nil
}

// DeleteDocument removes the document with the given id by rewriting the
// sequence without it. Deleting an id that is not present is not an error;
// the rewrite is a no-op then.
func (s *DocumentService) DeleteDocument(ctx context.Context, userID uuid.UUID, documentID string) error {
	key := store.RecordKey(userID, store.KindDocuments)
	documents, err := readRecords[models.Document](ctx, s.kv, key)
	if err != nil {
		return err
	}

	remaining := make([]models.Document, 0, len(documents))
	for _, doc := range documents {
		if doc.ID != documentID {
			remaining = append(remaining, doc)
		}
	}

	return writeRecords(ctx, s.kv, key, remaining)
}
