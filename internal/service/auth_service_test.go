package service_test

import (
	"context"
	"testing"

	"github.com/rp-projects/netball-api/internal/domain"
	"github.com/rp-projects/netball-api/internal/repository/postgres"
	"github.com/rp-projects/netball-api/internal/service"
	"github.com/rp-projects/netball-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(testDB *testutil.TestDB) *service.AuthService {
	return service.NewAuthService(
		postgres.NewUserRepository(testDB.DB),
		postgres.NewSessionRepository(testDB.DB),
		testutil.TestConfig(),
	)
}

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	svc := newAuthService(testDB)
	ctx := context.Background()

	t.Run("registers a player with a coach", func(t *testing.T) {
		testDB.Truncate(t)
		coach, _ := testutil.NewUserBuilder().AsCoach().Build(t, testDB.DB)

		result, err := svc.Register(ctx, service.RegisterInput{
			FullName: "New Player",
			Email:    "Player@Test.com",
			Password: "secret123",
			Role:     domain.RolePlayer,
			CoachID:  &coach.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, "player@test.com", result.User.Email)
		assert.Equal(t, domain.RolePlayer, result.User.Role)
		require.NotNil(t, result.User.CoachID)
		assert.Equal(t, coach.ID, *result.User.CoachID)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
	})

	t.Run("coach never carries a coach assignment", func(t *testing.T) {
		testDB.Truncate(t)
		other, _ := testutil.NewUserBuilder().AsCoach().Build(t, testDB.DB)

		result, err := svc.Register(ctx, service.RegisterInput{
			FullName: "New Coach",
			Email:    "coach@test.com",
			Password: "secret123",
			Role:     domain.RoleCoach,
			CoachID:  &other.ID,
		})
		require.NoError(t, err)
		assert.Nil(t, result.User.CoachID)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		testDB.Truncate(t)
		_, err := svc.Register(ctx, service.RegisterInput{
			FullName: "Someone",
			Email:    "someone@test.com",
			Password: "secret123",
			Role:     "Referee",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		testDB.Truncate(t)
		input := service.RegisterInput{
			FullName: "First",
			Email:    "dup@test.com",
			Password: "secret123",
			Role:     domain.RolePlayer,
		}
		_, err := svc.Register(ctx, input)
		require.NoError(t, err)

		input.FullName = "Second"
		_, err = svc.Register(ctx, input)
		assert.ErrorIs(t, err, service.ErrEmailExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	svc := newAuthService(testDB)
	ctx := context.Background()

	user, password := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := svc.Login(ctx, service.LoginInput{Email: user.Email, Password: password})
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, service.LoginInput{Email: user.Email, Password: "wrong"})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, service.LoginInput{Email: "nobody@test.com", Password: password})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	svc := newAuthService(testDB)
	ctx := context.Background()

	user, password := testutil.NewUserBuilder().Build(t, testDB.DB)
	result, err := svc.Login(ctx, service.LoginInput{Email: user.Email, Password: password})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), (*claims)["sub"])
	assert.Equal(t, string(user.Role), (*claims)["role"])

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
