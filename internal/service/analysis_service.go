package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rp-projects/netball-api/internal/analyzer"
	"github.com/rp-projects/netball-api/internal/domain"
	"github.com/rp-projects/netball-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SkillScorer is the external scorer collaborator for video pairs.
type SkillScorer interface {
	AnalyzeSkill(ctx context.Context, spec domain.DomainSpec, correctURL, wrongURL string) (*analyzer.SkillResult, error)
}

// AnalysisService is the one engine behind every skill domain: record
// creation, the Pending-to-Analyzed transition, listings, deletion and
// suggestions. The per-domain differences live entirely in the
// domain.DomainSpec each call carries.
type AnalysisService struct {
	records repository.SkillRecordRepository
	media   *MediaService
	scorer  SkillScorer
}

func NewAnalysisService(records repository.SkillRecordRepository, media *MediaService, scorer SkillScorer) *AnalysisService {
	return &AnalysisService{
		records: records,
		media:   media,
		scorer:  scorer,
	}
}

// CreateRecord admits both video parts and creates a Pending record.
func (s *AnalysisService) CreateRecord(ctx context.Context, spec domain.DomainSpec, ownerID uuid.UUID, correct, wrong UploadedFile) (*domain.SkillRecord, error) {
	opts := UploadOptions{MaxSize: MaxVideoSize}

	correctURL, err := s.media.StoreUpload(ctx, ownerID, CategoryVideos, correct, opts)
	if err != nil {
		return nil, err
	}
	wrongURL, err := s.media.StoreUpload(ctx, ownerID, CategoryVideos, wrong, opts)
	if err != nil {
		return nil, err
	}

	record := &domain.SkillRecord{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Domain:          spec.Domain,
		CorrectVideoURL: correctURL,
		WrongVideoURL:   wrongURL,
		UploadedAt:      time.Now(),
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Analyze drives a record through its single Pending-to-Analyzed
// transition. A record that is already analyzed is returned together
// with domain.ErrAlreadyAnalyzed and the scorer is not called again.
// When two callers race, the conditional persist decides the winner;
// the loser discards its own upstream result and returns the stored
// one, so at most one analysis is ever durable.
func (s *AnalysisService) Analyze(ctx context.Context, id uuid.UUID) (*domain.SkillRecord, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if record.Analyzed() {
		return record, domain.ErrAlreadyAnalyzed
	}

	spec, ok := domain.SpecFor(record.Domain)
	if !ok {
		return nil, domain.ErrUnknownDomain
	}

	result, err := s.scorer.AnalyzeSkill(ctx, spec, record.CorrectVideoURL, record.WrongVideoURL)
	if err != nil {
		// Nothing was persisted; the record stays Pending and the
		// caller may retry.
		return nil, err
	}

	var metrics datatypes.JSON
	if result.Metrics != nil {
		data, err := json.Marshal(result.Metrics)
		if err != nil {
			return nil, err
		}
		metrics = datatypes.JSON(data)
	}

	won, err := s.records.SetAnalysisResult(ctx, id, result.AnalyzedVideoURL, result.Overall, metrics)
	if err != nil {
		return nil, err
	}

	record, err = s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !won {
		// A concurrent call persisted first; our result is dropped.
		return record, domain.ErrAlreadyAnalyzed
	}
	return record, nil
}

func (s *AnalysisService) ListByOwner(ctx context.Context, spec domain.DomainSpec, ownerID uuid.UUID) ([]*domain.SkillRecord, error) {
	return s.records.GetByOwner(ctx, spec.Domain, ownerID)
}

// MatchingEntry is one point of an athlete's score history.
type MatchingEntry struct {
	Overall   *float64           `json:"overall"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

// MatchingHistory returns score-over-time data, newest first.
func (s *AnalysisService) MatchingHistory(ctx context.Context, spec domain.DomainSpec, ownerID uuid.UUID) ([]MatchingEntry, error) {
	records, err := s.records.GetByOwner(ctx, spec.Domain, ownerID)
	if err != nil {
		return nil, err
	}

	entries := make([]MatchingEntry, 0, len(records))
	for _, record := range records {
		entry := MatchingEntry{
			Overall:   record.Score(),
			CreatedAt: record.CreatedAt,
		}
		if !spec.Scalar() && record.Analyzed() {
			entry.Metrics = record.ScoreData()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Delete removes a record only when it belongs to ownerID. A record
// owned by someone else is reported as not found, never revealed.
func (s *AnalysisService) Delete(ctx context.Context, spec domain.DomainSpec, id, ownerID uuid.UUID) error {
	deleted, err := s.records.DeleteOwned(ctx, spec.Domain, id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// Suggestions maps every record the caller owns in the domain through
// the suggestion function, historical records included.
func (s *AnalysisService) Suggestions(ctx context.Context, spec domain.DomainSpec, ownerID uuid.UUID) ([]domain.Suggestion, error) {
	records, err := s.records.GetByOwner(ctx, spec.Domain, ownerID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}

	suggestions := make([]domain.Suggestion, 0, len(records))
	for _, record := range records {
		suggestions = append(suggestions, domain.Suggest(spec, record.Score()))
	}
	return suggestions, nil
}
