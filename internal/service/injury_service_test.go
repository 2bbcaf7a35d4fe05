package service_test

import (
	"context"
	"testing"

	"github.com/rp-projects/netball-api/internal/analyzer"
	"github.com/rp-projects/netball-api/internal/domain"
	"github.com/rp-projects/netball-api/internal/repository/postgres"
	"github.com/rp-projects/netball-api/internal/service"
	"github.com/rp-projects/netball-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjuryService_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewInjuryRecordRepository(testDB.DB)
	ctx := context.Background()

	t.Run("classifies and persists in one request", func(t *testing.T) {
		testDB.Truncate(t)
		scorer := testutil.NewFakeScorer()
		scorer.InjuryResult = &analyzer.InjuryResult{Class: "Bruises", Probability: 0.87}
		media := service.NewMediaService(testutil.NewFakeStorage(), t.TempDir())
		svc := service.NewInjuryService(repo, media, scorer)

		owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		record, err := svc.Create(ctx, owner.ID,
			uploadedFile(t, "knee.jpg", "image/jpeg", "image bytes"))
		require.NoError(t, err)

		assert.Equal(t, "Bruises", record.InjuryClass)
		assert.Equal(t, 0.87, record.Probability)
		assert.Contains(t, record.ImageURL, "injury_images/"+owner.ID.String())

		records, err := svc.List(ctx, owner.ID)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("rejects non-image uploads", func(t *testing.T) {
		testDB.Truncate(t)
		media := service.NewMediaService(testutil.NewFakeStorage(), t.TempDir())
		svc := service.NewInjuryService(repo, media, testutil.NewFakeScorer())

		owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		_, err := svc.Create(ctx, owner.ID,
			uploadedFile(t, "clip.mp4", "video/mp4", "video bytes"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("classifier failure saves nothing", func(t *testing.T) {
		testDB.Truncate(t)
		scorer := testutil.NewFakeScorer()
		scorer.InjuryErr = domain.ErrUpstream
		media := service.NewMediaService(testutil.NewFakeStorage(), t.TempDir())
		svc := service.NewInjuryService(repo, media, scorer)

		owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		_, err := svc.Create(ctx, owner.ID,
			uploadedFile(t, "knee.jpg", "image/jpeg", "image bytes"))
		assert.ErrorIs(t, err, domain.ErrUpstream)

		records, err := svc.List(ctx, owner.ID)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestInjuryService_OwnerScoping(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewInjuryRecordRepository(testDB.DB)
	svc := service.NewInjuryService(repo, nil, testutil.NewFakeScorer())
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	record := testutil.NewInjuryRecordBuilder(owner).Build(t, testDB.DB)

	t.Run("get hides foreign records", func(t *testing.T) {
		got, err := svc.Get(ctx, record.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)

		_, err = svc.Get(ctx, record.ID, other.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("delete enforces ownership", func(t *testing.T) {
		err := svc.Delete(ctx, record.ID, other.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		require.NoError(t, svc.Delete(ctx, record.ID, owner.ID))
	})
}
