package service

import (
	"github.com/rp-projects/netball-api/internal/cache"
	"github.com/rp-projects/netball-api/internal/config"
	"github.com/rp-projects/netball-api/internal/repository"
	"github.com/rp-projects/netball-api/internal/storage"
)

// Scorer is the full external scoring collaborator.
type Scorer interface {
	SkillScorer
	InjuryScorer
}

type Services struct {
	Auth        *AuthService
	User        *UserService
	Analysis    *AnalysisService
	Leaderboard *LeaderboardService
	Injury      *InjuryService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, store storage.ObjectStorage, scorer Scorer, lbCache *cache.LeaderboardCache) *Services {
	media := NewMediaService(store, cfg.UploadDir)

	return &Services{
		Auth:        NewAuthService(repos.User, repos.Session, cfg),
		User:        NewUserService(repos.User, repos.Session),
		Analysis:    NewAnalysisService(repos.SkillRecord, media, scorer),
		Leaderboard: NewLeaderboardService(repos.User, repos.SkillRecord, lbCache),
		Injury:      NewInjuryService(repos.Injury, media, scorer),
	}
}
