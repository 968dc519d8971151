package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecoloop/backend/internal/models"
	"github.com/ecoloop/backend/internal/usecase"
)

const claimsKey = "claims"

// JWTAuth validates the bearer token and stores its claims for downstream handlers.
func JWTAuth(authUsecase usecase.AuthUsecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
			}

			claims, err := authUsecase.ValidateToken(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(claimsKey, claims)
			c.Set("user_id", claims.UserID)
			return next(c)
		}
	}
}

func GetClaims(c echo.Context) *models.JWTClaims {
	claims, _ := c.Get(claimsKey).(*models.JWTClaims)
	return claims
}

func GetUserID(c echo.Context) string {
	if claims := GetClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}
