package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/rp-projects/netball-api/internal/domain"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id).Error
}

func (r *userRepository) GetCoaches(ctx context.Context) ([]*domain.User, error) {
	var coaches []*domain.User
	err := r.db.WithContext(ctx).
		Where("role = ?", domain.RoleCoach).
		Order("full_name ASC").
		Find(&coaches).Error
	if err != nil {
		return nil, err
	}
	return coaches, nil
}

func (r *userRepository) GetByCoachID(ctx context.Context, coachID uuid.UUID) ([]*domain.User, error) {
	var players []*domain.User
	err := r.db.WithContext(ctx).
		Where("coach_id = ?", coachID).
		Order("full_name ASC").
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}
