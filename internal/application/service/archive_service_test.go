package service

import (
	"context"
	"errors"
	"testing"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/domain/entity"
)

func TestArchiveService_ArchiveAndRestore(t *testing.T) {
	var gotEntity port.ArchiveEntity
	var gotActive bool
	archiveRepo := &mockArchiveRepo{
		setActiveFunc: func(ctx context.Context, e port.ArchiveEntity, id string, active bool) error {
			gotEntity = e
			gotActive = active
			return nil
		},
	}

	service := NewArchiveService(archiveRepo, &mockLogger{})

	if err := service.Archive(context.Background(), port.ArchiveInvoice, "i1"); err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if gotEntity != port.ArchiveInvoice || gotActive {
		t.Errorf("Archive() called SetActive(%v, active=%v), want (invoice, false)", gotEntity, gotActive)
	}

	if err := service.Restore(context.Background(), port.ArchivePayment, "p1"); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if gotEntity != port.ArchivePayment || !gotActive {
		t.Errorf("Restore() called SetActive(%v, active=%v), want (payment, true)", gotEntity, gotActive)
	}
}

func TestArchiveService_PermanentDelete_ActiveRowRefused(t *testing.T) {
	archiveRepo := &mockArchiveRepo{
		permanentDeleteFunc: func(ctx context.Context, e port.ArchiveEntity, id string) error {
			return entity.ErrNotArchived
		},
	}

	service := NewArchiveService(archiveRepo, &mockLogger{})

	err := service.PermanentDelete(context.Background(), port.ArchiveContact, "c1")
	if !errors.Is(err, entity.ErrNotArchived) {
		t.Errorf("PermanentDelete() error = %v, want ErrNotArchived", err)
	}
}
