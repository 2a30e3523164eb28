package service

import (
	"context"

	"github.com/smallbiz/backoffice/internal/application/port"
)

// ArchiveService drives the soft-delete workflow shared by all entities
type ArchiveService interface {
	Archive(ctx context.Context, e port.ArchiveEntity, id string) error
	Restore(ctx context.Context, e port.ArchiveEntity, id string) error

	// PermanentDelete removes an archived row for good. The HTTP layer
	// requires an explicit confirmation before calling this.
	PermanentDelete(ctx context.Context, e port.ArchiveEntity, id string) error
}

type archiveServiceImpl struct {
	archiveRepo port.ArchiveRepository
	logger      Logger
}

// NewArchiveService creates a new ArchiveService
func NewArchiveService(archiveRepo port.ArchiveRepository, logger Logger) ArchiveService {
	return &archiveServiceImpl{
		archiveRepo: archiveRepo,
		logger:      logger,
	}
}

func (s *archiveServiceImpl) Archive(ctx context.Context, e port.ArchiveEntity, id string) error {
	if err := s.archiveRepo.SetActive(ctx, e, id, false); err != nil {
		s.logger.Error("Failed to archive", "error", err, "id", id)
		return err
	}
	s.logger.Info("Archived", "id", id)
	return nil
}

func (s *archiveServiceImpl) Restore(ctx context.Context, e port.ArchiveEntity, id string) error {
	if err := s.archiveRepo.SetActive(ctx, e, id, true); err != nil {
		s.logger.Error("Failed to restore", "error", err, "id", id)
		return err
	}
	s.logger.Info("Restored", "id", id)
	return nil
}

func (s *archiveServiceImpl) PermanentDelete(ctx context.Context, e port.ArchiveEntity, id string) error {
	if err := s.archiveRepo.PermanentDelete(ctx, e, id); err != nil {
		s.logger.Error("Failed to permanently delete", "error", err, "id", id)
		return err
	}
	s.logger.Info("Permanently deleted", "id", id)
	return nil
}
