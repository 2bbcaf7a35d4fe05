package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rp-projects/netball-api/internal/analyzer"
	"github.com/rp-projects/netball-api/internal/domain"
	"github.com/rp-projects/netball-api/internal/repository"
	"gorm.io/gorm"
)

// InjuryScorer is the external classifier collaborator.
type InjuryScorer interface {
	DetectInjury(ctx context.Context, imageURL string) (*analyzer.InjuryResult, error)
}

// InjuryService handles injury triage. Unlike skill records there is no
// separate analysis step: classification happens synchronously as part
// of record creation.
type InjuryService struct {
	records repository.InjuryRecordRepository
	media   *MediaService
	scorer  InjuryScorer
}

func NewInjuryService(records repository.InjuryRecordRepository, media *MediaService, scorer InjuryScorer) *InjuryService {
	return &InjuryService{
		records: records,
		media:   media,
		scorer:  scorer,
	}
}

// Create admits the image, classifies it and persists the result. An
// upstream failure fails the whole request; no record is saved.
func (s *InjuryService) Create(ctx context.Context, ownerID uuid.UUID, image UploadedFile) (*domain.InjuryRecord, error) {
	imageURL, err := s.media.StoreUpload(ctx, ownerID, CategoryInjuryImages, image, UploadOptions{
		MaxSize:   MaxImageSize,
		ImageOnly: true,
	})
	if err != nil {
		return nil, err
	}

	result, err := s.scorer.DetectInjury(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	record := &domain.InjuryRecord{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		ImageURL:    imageURL,
		InjuryClass: result.Class,
		Probability: result.Probability,
		UploadedAt:  time.Now(),
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *InjuryService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.InjuryRecord, error) {
	return s.records.GetByOwner(ctx, ownerID)
}

func (s *InjuryService) Get(ctx context.Context, id, ownerID uuid.UUID) (*domain.InjuryRecord, error) {
	record, err := s.records.GetOwned(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *InjuryService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	deleted, err := s.records.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}
