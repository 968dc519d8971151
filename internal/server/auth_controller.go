package server

import (
	"errors"
	"net/http"
	"net/url"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"

	"github.com/ecoloop/backend/internal/models"
	"github.com/ecoloop/backend/internal/repo/googleauth"
	"github.com/ecoloop/backend/internal/server/middleware"
	"github.com/ecoloop/backend/internal/usecase"
)

type AuthController interface {
	SignUp(c echo.Context) error
	Login(c echo.Context) error
	Protected(c echo.Context) error
	GoogleRedirect(c echo.Context) error
	GoogleCallback(c echo.Context) error
}

type authController struct {
	authUsecase usecase.AuthUsecase
	google      googleauth.Client
	frontendURL string
}

func NewAuthController(authUsecase usecase.AuthUsecase, google googleauth.Client, frontendURL string) AuthController {
	return &authController{
		authUsecase: authUsecase,
		google:      google,
		frontendURL: frontendURL,
	}
}

func (ac *authController) SignUp(c echo.Context) error {
	var req models.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	resp, err := ac.authUsecase.SignUp(ctx, req)
	if err != nil {
		if errors.Is(err, models.ErrUserExists) {
			return echo.NewHTTPError(http.StatusBadRequest, "user already exists")
		}
		return err
	}

	return c.JSON(http.StatusCreated, resp)
}

func (ac *authController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	resp, err := ac.authUsecase.Login(ctx, req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidLogin) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid email or password")
		}
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (ac *authController) Protected(c echo.Context) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "access granted",
		"user":    claims,
	})
}

func (ac *authController) GoogleRedirect(c echo.Context) error {
	if !ac.google.Enabled() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "google login is not configured")
	}
	return c.Redirect(http.StatusTemporaryRedirect, ac.google.AuthURL("qrApp"))
}

func (ac *authController) GoogleCallback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing code")
	}

	ctx := c.Request().Context()
	profile, err := ac.google.ExchangeProfile(ctx, code)
	if err != nil {
		log.Errorw(ctx, "google code exchange failed", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "google login failed")
	}

	resp, err := ac.authUsecase.LoginWithGoogle(ctx, profile)
	if err != nil {
		return err
	}

	redirect := ac.frontendURL + "/dashboard?token=" + url.QueryEscape(resp.Token)
	return c.Redirect(http.StatusTemporaryRedirect, redirect)
}
