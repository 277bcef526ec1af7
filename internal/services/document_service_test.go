package services

import (
	"context"
	"testing"
	"time"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/models"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/store/memory"

	"github.com/google/uuid"
)

func TestDocumentLifecycle(t *testing.T) {
	svc := NewDocumentService(memory.NewMemoryStore())
	userID := uuid.New()
	ctx := context.Background()

	first, err := svc.UploadDocument(ctx, userID, models.CreateDocumentRequest{Name: "statement.pdf", Size: 2048})
	if err != nil {
		t.Fatalf("UploadDocument: %v", err)
	}
	// Ids are millisecond timestamps; step past the boundary so the second
	// upload gets its own id and delete-by-filter removes exactly one record.
	time.Sleep(2 * time.Millisecond)
	second, err := svc.UploadDocument(ctx, userID, models.CreateDocumentRequest{Name: "w2.pdf", Size: 1024})
	if err != nil {
		t.Fatalf("UploadDocument: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("both uploads share id %s, want distinct ids", first.ID)
	}

	if err := svc.DeleteDocument(ctx, userID, first.ID); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}

	documents, err := svc.ListDocuments(ctx, userID)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(documents) != 1 {
		t.Fatalf("documents after delete = %d, want 1", len(documents))
	}
	if documents[0].ID != second.ID || documents[0].Name != "w2.pdf" || documents[0].Size != 1024 {
		t.Errorf("surviving document = %+v, want the second upload untouched", documents[0])
	}
}

func TestDeleteAbsentDocumentIsNoop(t *testing.T) {
	svc := NewDocumentService(memory.NewMemoryStore())
	userID := uuid.New()
	ctx := context.Background()

	doc, err := svc.UploadDocument(ctx, userID, models.CreateDocumentRequest{Name: "receipt.png", Size: 64})
	if err != nil {
		t.Fatalf("UploadDocument: %v", err)
	}

	if err := svc.DeleteDocument(ctx, userID, "no-such-id"); err != nil {
		t.Fatalf("DeleteDocument of absent id: %v", err)
	}

	documents, err := svc.ListDocuments(ctx, userID)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(documents) != 1 || documents[0].ID != doc.ID {
		t.Errorf("documents = %+v, want the original upload untouched", documents)
	}
}
