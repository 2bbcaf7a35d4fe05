package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rp-projects/netball-api/internal/domain"
	"github.com/rp-projects/netball-api/internal/repository"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) *UserService {
	return &UserService{userRepo: userRepo, sessionRepo: sessionRepo}
}

func (s *UserService) GetCoaches(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.GetCoaches(ctx)
}

// PlayersOf lists the athletes assigned to a coach. Players may not
// look up another coach's roster.
func (s *UserService) PlayersOf(ctx context.Context, callerID uuid.UUID) ([]*domain.User, error) {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}
	if caller.Role != domain.RoleCoach {
		return nil, domain.ErrForbidden
	}
	return s.userRepo.GetByCoachID(ctx, callerID)
}

type UpdateProfileInput struct {
	FullName string
	CoachID  *uuid.UUID
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.CoachID != nil && user.Role == domain.RolePlayer {
		user.CoachID = input.CoachID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	if err := s.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
