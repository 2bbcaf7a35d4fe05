package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rp-projects/netball-api/internal/domain"
	"gorm.io/datatypes"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetCoaches(ctx context.Context) ([]*domain.User, error)
	GetByCoachID(ctx context.Context, coachID uuid.UUID) ([]*domain.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type SkillRecordRepository interface {
	Create(ctx context.Context, record *domain.SkillRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SkillRecord, error)
	GetByOwner(ctx context.Context, d domain.SkillDomain, ownerID uuid.UUID) ([]*domain.SkillRecord, error)
	// DeleteOwned removes the record only when it belongs to ownerID and
	// reports whether a row was deleted.
	DeleteOwned(ctx context.Context, d domain.SkillDomain, id, ownerID uuid.UUID) (bool, error)
	// SetAnalysisResult persists the analyzed output in a single guarded
	// update: it only writes while analyzed_video_url is still empty, and
	// reports whether this caller won the write.
	SetAnalysisResult(ctx context.Context, id uuid.UUID, analyzedURL string, overall float64, metrics datatypes.JSON) (bool, error)
	// BestPerOwner returns each owner's single highest-scoring analyzed
	// record in the domain, ranked by overall score descending with the
	// earliest created record winning ties, limited to limit rows. Owner
	// identities are preloaded.
	BestPerOwner(ctx context.Context, d domain.SkillDomain, ownerIDs []uuid.UUID, limit int) ([]*domain.SkillRecord, error)
}

type InjuryRecordRepository interface {
	Create(ctx context.Context, record *domain.InjuryRecord) error
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*domain.InjuryRecord, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.InjuryRecord, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
}

type Repositories struct {
	User        UserRepository
	Session     SessionRepository
	SkillRecord SkillRecordRepository
	Injury      InjuryRecordRepository
}
