package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/ecoloop/backend/internal/config"
	"github.com/ecoloop/backend/internal/models"
	"github.com/ecoloop/backend/internal/repo/mongodb"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = time.Hour

type AuthUsecase interface {
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	ValidateToken(tokenString string) (*models.JWTClaims, error)
	IssueWalletToken(seller *models.Seller) (string, error)
	LoginWithGoogle(ctx context.Context, profile *models.GoogleProfile) (*models.AuthResponse, error)
}

type authUsecase struct {
	userRepo  mongodb.UserRepository
	jwtSecret string
}

func NewAuthUsecase(cfg *config.Config, userRepo mongodb.UserRepository) AuthUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		jwtSecret: cfg.Auth.JWTSecret,
	}
}

func (uc *authUsecase) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error) {
	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashPassword(req.Password),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrUserExists) {
			return nil, models.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := uc.issueToken(models.JWTClaims{UserID: user.ID.Hex(), Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &models.AuthResponse{
		Message: "User created",
		User:    user,
		Token:   token,
	}, nil
}

func (uc *authUsecase) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidLogin
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if user.PasswordHash != hashPassword(req.Password) {
		return nil, models.ErrInvalidLogin
	}

	token, err := uc.issueToken(models.JWTClaims{UserID: user.ID.Hex(), Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &models.AuthResponse{
		Message: "Login successful",
		Token:   token,
	}, nil
}

// LoginWithGoogle finds or creates the account behind an OAuth profile.
func (uc *authUsecase) LoginWithGoogle(ctx context.Context, profile *models.GoogleProfile) (*models.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, profile.Email)
	if errors.Is(err, models.ErrNotFound) {
		user = &models.User{
			Name:  profile.Name,
			Email: profile.Email,
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create oauth user: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	token, err := uc.issueToken(models.JWTClaims{UserID: user.ID.Hex(), Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &models.AuthResponse{
		Message: "Login successful",
		User:    user,
		Token:   token,
	}, nil
}

// IssueWalletToken signs a token for an onboarded seller.
func (uc *authUsecase) IssueWalletToken(seller *models.Seller) (string, error) {
	return uc.issueToken(models.JWTClaims{
		UserID:        seller.ID.Hex(),
		WalletAddress: seller.WalletAddress,
	})
}

func (uc *authUsecase) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	out := &models.JWTClaims{}
	if v, ok := claims["user_id"].(string); ok {
		out.UserID = v
	}
	if v, ok := claims["email"].(string); ok {
		out.Email = v
	}
	if v, ok := claims["wallet_address"].(string); ok {
		out.WalletAddress = v
	}
	if v, ok := claims["exp"].(float64); ok {
		out.Exp = int64(v)
	}
	if v, ok := claims["iat"].(float64); ok {
		out.Iat = int64(v)
	}
	return out, nil
}

func (uc *authUsecase) issueToken(c models.JWTClaims) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": c.UserID,
		"exp":     now.Add(tokenTTL).Unix(),
		"iat":     now.Unix(),
	}
	if c.Email != "" {
		claims["email"] = c.Email
	}
	if c.WalletAddress != "" {
		claims["wallet_address"] = c.WalletAddress
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.jwtSecret))
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
