package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/rp-projects/netball-api/internal/domain"
	"gorm.io/gorm"
)

type injuryRecordRepository struct {
	db *gorm.DB
}

func NewInjuryRecordRepository(db *gorm.DB) *injuryRecordRepository {
	return &injuryRecordRepository{db: db}
}

func (r *injuryRecordRepository) Create(ctx context.Context, record *domain.InjuryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *injuryRecordRepository) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*domain.InjuryRecord, error) {
	var record domain.InjuryRecord
	err := r.db.WithContext(ctx).First(&record, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *injuryRecordRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.InjuryRecord, error) {
	var records []*domain.InjuryRecord
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("uploaded_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *injuryRecordRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.InjuryRecord{})
	return res.RowsAffected > 0, res.Error
}
