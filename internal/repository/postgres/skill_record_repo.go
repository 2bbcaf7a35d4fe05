package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/rp-projects/netball-api/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type skillRecordRepository struct {
	db *gorm.DB
}

func NewSkillRecordRepository(db *gorm.DB) *skillRecordRepository {
	return &skillRecordRepository{db: db}
}

func (r *skillRecordRepository) Create(ctx context.Context, record *domain.SkillRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *skillRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SkillRecord, error) {
	var record domain.SkillRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *skillRecordRepository) GetByOwner(ctx context.Context, d domain.SkillDomain, ownerID uuid.UUID) ([]*domain.SkillRecord, error) {
	var records []*domain.SkillRecord
	err := r.db.WithContext(ctx).
		Where("domain = ? AND owner_id = ?", d, ownerID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *skillRecordRepository) DeleteOwned(ctx context.Context, d domain.SkillDomain, id, ownerID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("domain = ? AND id = ? AND owner_id = ?", d, id, ownerID).
		Delete(&domain.SkillRecord{})
	return res.RowsAffected > 0, res.Error
}

// SetAnalysisResult is the one place where read-then-write would race:
// the WHERE clause makes the database reject a second writer, so only
// one analysis result is ever persisted for a record.
func (r *skillRecordRepository) SetAnalysisResult(ctx context.Context, id uuid.UUID, analyzedURL string, overall float64, metrics datatypes.JSON) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.SkillRecord{}).
		Where("id = ? AND analyzed_video_url = ''", id).
		Updates(map[string]interface{}{
			"analyzed_video_url": analyzedURL,
			"overall_score":      overall,
			"metrics":            metrics,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *skillRecordRepository) BestPerOwner(ctx context.Context, d domain.SkillDomain, ownerIDs []uuid.UUID, limit int) ([]*domain.SkillRecord, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}

	best := r.db.Model(&domain.SkillRecord{}).
		Select("DISTINCT ON (owner_id) id").
		Where("domain = ? AND owner_id IN ? AND analyzed_video_url <> ''", d, ownerIDs).
		Order("owner_id, overall_score DESC, created_at ASC")

	var records []*domain.SkillRecord
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("id IN (?)", best).
		Order("overall_score DESC, created_at ASC, owner_id").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
