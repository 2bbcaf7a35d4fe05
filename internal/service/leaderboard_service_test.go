package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/rp-projects/netball-api/internal/domain"
	"github.com/rp-projects/netball-api/internal/repository/postgres"
	"github.com/rp-projects/netball-api/internal/service"
	"github.com/rp-projects/netball-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeaderboardService(t *testing.T, testDB *testutil.TestDB) *service.LeaderboardService {
	t.Helper()
	return service.NewLeaderboardService(
		postgres.NewUserRepository(testDB.DB),
		postgres.NewSkillRecordRepository(testDB.DB),
		nil, // cache is optional
	)
}

func TestLeaderboardService_TopAthletes(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	svc := newLeaderboardService(t, testDB)
	ctx := context.Background()
	spec, _ := domain.SpecFor(domain.DomainBallHandling)

	t.Run("ranks assigned athletes by best score", func(t *testing.T) {
		testDB.Truncate(t)
		coach, _ := testutil.NewUserBuilder().AsCoach().Build(t, testDB.DB)
		alice, _ := testutil.NewUserBuilder().WithFullName("Alice").WithCoach(coach).Build(t, testDB.DB)
		bob, _ := testutil.NewUserBuilder().WithFullName("Bob").WithCoach(coach).Build(t, testDB.DB)

		testutil.NewSkillRecordBuilder(alice).Analyzed(65).Build(t, testDB.DB)
		testutil.NewSkillRecordBuilder(alice).Analyzed(88).Build(t, testDB.DB)
		testutil.NewSkillRecordBuilder(bob).Analyzed(72).Build(t, testDB.DB)

		entries, err := svc.TopAthletes(ctx, coach.ID, spec, 10)
		require.NoError(t, err)

		require.Len(t, entries, 2)
		assert.Equal(t, "Alice", entries[0].FullName)
		assert.Equal(t, 88.0, entries[0].ScoreData["overall"])
		assert.Equal(t, "Bob", entries[1].FullName)
		assert.Equal(t, 72.0, entries[1].ScoreData["overall"])
	})

	t.Run("excludes unassigned athletes", func(t *testing.T) {
		testDB.Truncate(t)
		coach, _ := testutil.NewUserBuilder().AsCoach().Build(t, testDB.DB)
		assigned, _ := testutil.NewUserBuilder().WithCoach(coach).Build(t, testDB.DB)
		unassigned, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		testutil.NewSkillRecordBuilder(assigned).Analyzed(50).Build(t, testDB.DB)
		testutil.NewSkillRecordBuilder(unassigned).Analyzed(99).Build(t, testDB.DB)

		entries, err := svc.TopAthletes(ctx, coach.ID, spec, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 50.0, entries[0].ScoreData["overall"])
	})

	t.Run("excludes pending records", func(t *testing.T) {
		testDB.Truncate(t)
		coach, _ := testutil.NewUserBuilder().AsCoach().Build(t, testDB.DB)
		player, _ := testutil.NewUserBuilder().WithCoach(coach).Build(t, testDB.DB)
		testutil.NewSkillRecordBuilder(player).Build(t, testDB.DB)

		entries, err := svc.TopAthletes(ctx, coach.ID, spec, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("scopes to the requested domain", func(t *testing.T) {
		testDB.Truncate(t)
		coach, _ := testutil.NewUserBuilder().AsCoach().Build(t, testDB.DB)
		player, _ := testutil.NewUserBuilder().WithCoach(coach).Build(t, testDB.DB)
		testutil.NewSkillRecordBuilder(player).WithDomain(domain.DomainAttack).
			Analyzed(95).Build(t, testDB.DB)

		entries, err := svc.TopAthletes(ctx, coach.ID, spec, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("tie-break goes to the earlier record", func(t *testing.T) {
		testDB.Truncate(t)
		coach, _ := testutil.NewUserBuilder().AsCoach().Build(t, testDB.DB)
		early, _ := testutil.NewUserBuilder().WithFullName("Early").WithCoach(coach).Build(t, testDB.DB)
		late, _ := testutil.NewUserBuilder().WithFullName("Late").WithCoach(coach).Build(t, testDB.DB)

		testutil.NewSkillRecordBuilder(early).Analyzed(80).
			WithCreatedAt(time.Now().Add(-time.Hour)).Build(t, testDB.DB)
		testutil.NewSkillRecordBuilder(late).Analyzed(80).Build(t, testDB.DB)

		entries, err := svc.TopAthletes(ctx, coach.ID, spec, 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Early", entries[0].FullName)
	})

	t.Run("player caller is rejected", func(t *testing.T) {
		testDB.Truncate(t)
		player, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		_, err := svc.TopAthletes(ctx, player.ID, spec, 10)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("invalid count is rejected", func(t *testing.T) {
		testDB.Truncate(t)
		coach, _ := testutil.NewUserBuilder().AsCoach().Build(t, testDB.DB)

		_, err := svc.TopAthletes(ctx, coach.ID, spec, 0)
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = svc.TopAthletes(ctx, coach.ID, spec, -3)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("coach with no athletes gets an empty board", func(t *testing.T) {
		testDB.Truncate(t)
		coach, _ := testutil.NewUserBuilder().AsCoach().Build(t, testDB.DB)

		entries, err := svc.TopAthletes(ctx, coach.ID, spec, 5)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
