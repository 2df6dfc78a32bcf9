package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gcbp-mortgage/internal/config"
	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/pkg/password"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:           "access-secret",
		RefreshSecret:    "refresh-secret",
		AccessTokenMins:  15,
		RefreshTokenDays: 7,
	}
}

func newAuthFixture(t *testing.T, users ...domain.User) (*AuthService, *fakeUserRepo, *fakeTokenRepo) {
	t.Helper()
	userRepo := newFakeUserRepo(users...)
	tokenRepo := newFakeTokenRepo()
	svc := NewAuthService(userRepo, tokenRepo, testJWTConfig()).WithHashCost(bcrypt.MinCost)
	return svc, userRepo, tokenRepo
}

func hashed(t *testing.T, plain string) string {
	t.Helper()
	h, err := password.HashWithCost(plain, bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestAuthService_Register(t *testing.T) {
	svc, users, tokens := newAuthFixture(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, &RegisterInput{Name: " Alice ", Email: " Alice@Example.com ", Password: "secret123"})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", res.User.Email)
	assert.Equal(t, "Alice", res.User.Name)
	assert.Equal(t, domain.RoleCustomer, res.User.Role)
	assert.True(t, res.User.IsActive)
	assert.NotEqual(t, "secret123", users.users[res.User.ID].Password)
	assert.NotEmpty(t, res.Tokens.AccessToken)
	assert.Len(t, tokens.tokens, 1)

	claims, err := svc.ValidateAccessToken(res.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, string(domain.RoleCustomer), claims.Role)

	_, err = svc.Register(ctx, &RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = svc.Register(ctx, &RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "onlyletters"})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := newAuthFixture(t,
		domain.User{ID: 1, Email: "sales@gcbp.com", Name: "Sam", Password: hashed(t, "sales123"), Role: domain.RoleSalesAgent, IsActive: true},
		domain.User{ID: 2, Email: "gone@gcbp.com", Password: hashed(t, "gone1234"), Role: domain.RoleOperations, IsActive: false},
	)
	ctx := context.Background()

	res, err := svc.Login(ctx, &LoginInput{Email: "SALES@gcbp.com", Password: "sales123"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSalesAgent, res.User.Role)

	_, err = svc.Login(ctx, &LoginInput{Email: "sales@gcbp.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Email: "nobody@gcbp.com", Password: "sales123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Email: "gone@gcbp.com", Password: "gone1234"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestAuthService_RefreshTokenRotates(t *testing.T) {
	svc, _, _ := newAuthFixture(t,
		domain.User{ID: 1, Email: "sales@gcbp.com", Password: hashed(t, "sales123"), Role: domain.RoleSalesAgent, IsActive: true},
	)
	ctx := context.Background()

	login, err := svc.Login(ctx, &LoginInput{Email: "sales@gcbp.com", Password: "sales123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, login.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.Tokens.RefreshToken, refreshed.Tokens.RefreshToken)

	_, err = svc.RefreshToken(ctx, login.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = svc.RefreshToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// revokeAfterRead revokes the token right after it is read, as a concurrent refresh would.
type revokeAfterRead struct{ *fakeTokenRepo }

func (r revokeAfterRead) GetByTokenHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	t, err := r.fakeTokenRepo.GetByTokenHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if err := r.fakeTokenRepo.RevokeByTokenHash(ctx, hash); err != nil {
		return nil, err
	}
	return t, nil
}

func TestAuthService_RefreshToken_LosesRotationRace(t *testing.T) {
	users := newFakeUserRepo(
		domain.User{ID: 1, Email: "sales@gcbp.com", Password: hashed(t, "sales123"), Role: domain.RoleSalesAgent, IsActive: true},
	)
	tokens := newFakeTokenRepo()
	ctx := context.Background()

	login, err := NewAuthService(users, tokens, testJWTConfig()).WithHashCost(bcrypt.MinCost).
		Login(ctx, &LoginInput{Email: "sales@gcbp.com", Password: "sales123"})
	require.NoError(t, err)
	issued := len(tokens.tokens)

	racing := NewAuthService(users, revokeAfterRead{tokens}, testJWTConfig()).WithHashCost(bcrypt.MinCost)
	_, err = racing.RefreshToken(ctx, login.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	assert.Len(t, tokens.tokens, issued, "no replacement token may be issued")
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, _ := newAuthFixture(t,
		domain.User{ID: 1, Email: "sales@gcbp.com", Password: hashed(t, "sales123"), Role: domain.RoleSalesAgent, IsActive: true},
	)
	ctx := context.Background()

	first, err := svc.Login(ctx, &LoginInput{Email: "sales@gcbp.com", Password: "sales123"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, &LoginInput{Email: "sales@gcbp.com", Password: "sales123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, first.Tokens.RefreshToken))
	_, err = svc.RefreshToken(ctx, first.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	require.NoError(t, svc.Logout(ctx, first.Tokens.RefreshToken), "logout is idempotent")

	require.NoError(t, svc.LogoutAll(ctx, 1))
	_, err = svc.RefreshToken(ctx, second.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthService_GetUserByID(t *testing.T) {
	svc, _, _ := newAuthFixture(t, domain.User{ID: 1, Email: "a@gcbp.com", Role: domain.RoleAdmin, IsActive: true})

	u, err := svc.GetUserByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	_, err = svc.GetUserByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
