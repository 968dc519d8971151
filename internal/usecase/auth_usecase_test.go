package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/ecoloop/backend/internal/config"
	"github.com/ecoloop/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*models.User
}

func (f *fakeUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return models.ErrUserExists
		}
	}
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func newAuthFixture() (AuthUsecase, *fakeUserRepo) {
	repo := &fakeUserRepo{}
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	return NewAuthUsecase(cfg, repo), repo
}

func TestSignUp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates user and issues token", func(t *testing.T) {
		uc, repo := newAuthFixture()

		resp, err := uc.SignUp(ctx, models.SignUpRequest{
			Name:     "Asha",
			Email:    "asha@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		require.Len(t, repo.users, 1)
		assert.NotEqual(t, "secret123", repo.users[0].PasswordHash)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		uc, _ := newAuthFixture()

		req := models.SignUpRequest{Name: "Asha", Email: "asha@example.com", Password: "secret123"}
		_, err := uc.SignUp(ctx, req)
		require.NoError(t, err)
		_, err = uc.SignUp(ctx, req)
		require.ErrorIs(t, err, models.ErrUserExists)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	signUp := func(t *testing.T, uc AuthUsecase) {
		t.Helper()
		_, err := uc.SignUp(ctx, models.SignUpRequest{
			Name:     "Asha",
			Email:    "asha@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		uc, _ := newAuthFixture()
		signUp(t, uc)

		resp, err := uc.Login(ctx, models.LoginRequest{Email: "asha@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		uc, _ := newAuthFixture()
		signUp(t, uc)

		_, err := uc.Login(ctx, models.LoginRequest{Email: "asha@example.com", Password: "nope"})
		require.ErrorIs(t, err, models.ErrInvalidLogin)
	})

	t.Run("unknown email", func(t *testing.T) {
		uc, _ := newAuthFixture()

		_, err := uc.Login(ctx, models.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
		require.ErrorIs(t, err, models.ErrInvalidLogin)
	})
}

func TestValidateToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		uc, _ := newAuthFixture()
		resp, err := uc.SignUp(ctx, models.SignUpRequest{
			Name:     "Asha",
			Email:    "asha@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)

		claims, err := uc.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "asha@example.com", claims.Email)
		assert.Equal(t, resp.User.ID.Hex(), claims.UserID)
	})

	t.Run("garbage token", func(t *testing.T) {
		uc, _ := newAuthFixture()
		_, err := uc.ValidateToken("not.a.token")
		require.Error(t, err)
	})

	t.Run("wallet token carries the wallet claim", func(t *testing.T) {
		uc, _ := newAuthFixture()

		seller := &models.Seller{ID: primitive.NewObjectID(), WalletAddress: "0xabc"}
		token, err := uc.IssueWalletToken(seller)
		require.NoError(t, err)

		claims, err := uc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "0xabc", claims.WalletAddress)
	})

	t.Run("tampered token", func(t *testing.T) {
		uc, _ := newAuthFixture()

		seller := &models.Seller{ID: primitive.NewObjectID(), WalletAddress: "0xabc"}
		token, err := uc.IssueWalletToken(seller)
		require.NoError(t, err)

		_, err = uc.ValidateToken(token + "x")
		require.Error(t, err)
	})
}

func TestLoginWithGoogle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	uc, repo := newAuthFixture()
	profile := &models.GoogleProfile{Sub: "123", Name: "Asha", Email: "asha@example.com"}

	resp, err := uc.LoginWithGoogle(ctx, profile)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Len(t, repo.users, 1)

	// second login reuses the account
	_, err = uc.LoginWithGoogle(ctx, profile)
	require.NoError(t, err)
	assert.Len(t, repo.users, 1)
}
