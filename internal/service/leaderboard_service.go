package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/rp-projects/netball-api/internal/cache"
	"github.com/rp-projects/netball-api/internal/domain"
	"github.com/rp-projects/netball-api/internal/repository"
	"gorm.io/gorm"
)

// LeaderboardEntry is one ranked athlete. Raw record ids are never
// exposed to the coach.
type LeaderboardEntry struct {
	FullName  string             `json:"fullName"`
	Email     string             `json:"email"`
	ScoreData map[string]float64 `json:"scoreData"`
}

// LeaderboardService computes coach-scoped, domain-scoped rankings of
// athletes by their best-ever score. Results are cached in Redis for a
// short TTL when a cache is configured.
type LeaderboardService struct {
	users   repository.UserRepository
	records repository.SkillRecordRepository
	cache   *cache.LeaderboardCache
}

func NewLeaderboardService(users repository.UserRepository, records repository.SkillRecordRepository, lbCache *cache.LeaderboardCache) *LeaderboardService {
	return &LeaderboardService{
		users:   users,
		records: records,
		cache:   lbCache,
	}
}

// TopAthletes ranks the caller's assigned athletes by their single best
// overall score in the domain, descending, ties broken by the earliest
// record. Only coaches may call it.
func (s *LeaderboardService) TopAthletes(ctx context.Context, coachID uuid.UUID, spec domain.DomainSpec, count int) ([]LeaderboardEntry, error) {
	coach, err := s.users.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}
	if coach.Role != domain.RoleCoach {
		return nil, domain.ErrForbidden
	}

	if count <= 0 {
		return nil, domain.ErrValidation
	}

	key := cache.Key(coachID, spec.Domain, count)
	if s.cache != nil {
		var cached []LeaderboardEntry
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("ERROR [leaderboard.TopAthletes] cache read failed: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	players, err := s.users.GetByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}

	playerIDs := make([]uuid.UUID, 0, len(players))
	for _, p := range players {
		playerIDs = append(playerIDs, p.ID)
	}

	best, err := s.records.BestPerOwner(ctx, spec.Domain, playerIDs, count)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(best))
	for _, record := range best {
		if record.Owner == nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			FullName:  record.Owner.FullName,
			Email:     record.Owner.Email,
			ScoreData: record.ScoreData(),
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, entries); err != nil {
			log.Printf("ERROR [leaderboard.TopAthletes] cache write failed: %v", err)
		}
	}

	return entries, nil
}
