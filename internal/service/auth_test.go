package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shop-backend/internal/domain"
	"shop-backend/internal/repository"
	"shop-backend/internal/repository/sqldb"
)

const testSecret = "test-secret"

func newUserRepo(t *testing.T) repository.UserRepository {
	t.Helper()

	db, err := sqldb.Open(sqldb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqldb.NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func newAuthService(t *testing.T, ttl time.Duration) AuthService {
	t.Helper()
	return NewAuthService(newUserRepo(t), testSecret, ttl)
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthService(t, time.Hour)
	ctx := context.Background()

	user, err := auth.Register(ctx, "a@b.com", "pw123456", "")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "a@b.com", user.Email)
	require.Equal(t, domain.RoleClient, user.Role)
	require.Empty(t, user.PasswordHash)

	token, err := auth.Login(ctx, "a@b.com", "pw123456")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, "a@b.com", claims.Email)
	require.Equal(t, domain.RoleClient, claims.Role)
}

func TestRegisterMissingFields(t *testing.T) {
	auth := newAuthService(t, time.Hour)
	ctx := context.Background()

	_, err := auth.Register(ctx, "", "pw123456", "")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = auth.Register(ctx, "a@b.com", "", "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := newAuthService(t, time.Hour)
	ctx := context.Background()

	_, err := auth.Register(ctx, "a@b.com", "pw123456", "")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "a@b.com", "other-password", "")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterRoleParsing(t *testing.T) {
	auth := newAuthService(t, time.Hour)
	ctx := context.Background()

	admin, err := auth.Register(ctx, "admin@b.com", "pw123456", "admin")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, admin.Role)

	// unknown roles fall back to client
	user, err := auth.Register(ctx, "odd@b.com", "pw123456", "superuser")
	require.NoError(t, err)
	require.Equal(t, domain.RoleClient, user.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	auth := newAuthService(t, time.Hour)
	ctx := context.Background()

	_, err := auth.Register(ctx, "a@b.com", "pw123456", "")
	require.NoError(t, err)

	_, unknownErr := auth.Login(ctx, "nobody@b.com", "pw123456")
	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)

	_, wrongErr := auth.Login(ctx, "a@b.com", "wrong-password")
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)

	require.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestVerifyTokenExpired(t *testing.T) {
	auth := newAuthService(t, -time.Minute)
	ctx := context.Background()

	_, err := auth.Register(ctx, "a@b.com", "pw123456", "")
	require.NoError(t, err)

	token, err := auth.Login(ctx, "a@b.com", "pw123456")
	require.NoError(t, err)

	_, err = auth.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	repo := newUserRepo(t)
	auth := NewAuthService(repo, testSecret, time.Hour)
	other := NewAuthService(repo, "another-secret", time.Hour)
	ctx := context.Background()

	_, err := auth.Register(ctx, "a@b.com", "pw123456", "")
	require.NoError(t, err)

	token, err := auth.Login(ctx, "a@b.com", "pw123456")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.VerifyToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
