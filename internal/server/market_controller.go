package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecoloop/backend/internal/models"
	"github.com/ecoloop/backend/internal/usecase"
)

type MarketController interface {
	Onboard(c echo.Context) error
	WalletLogin(c echo.Context) error
	CreateProduct(c echo.Context) error
	AllProducts(c echo.Context) error
	Companies(c echo.Context) error
	SellerProducts(c echo.Context) error
}

type marketController struct {
	marketUsecase usecase.MarketUsecase
	authUsecase   usecase.AuthUsecase
}

func NewMarketController(marketUsecase usecase.MarketUsecase, authUsecase usecase.AuthUsecase) MarketController {
	return &marketController{
		marketUsecase: marketUsecase,
		authUsecase:   authUsecase,
	}
}

func (mc *marketController) Onboard(c echo.Context) error {
	var req models.OnboardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	seller, err := mc.marketUsecase.OnboardSeller(ctx, req)
	if err != nil {
		if errors.Is(err, models.ErrSellerExists) {
			return echo.NewHTTPError(http.StatusBadRequest, "seller already onboarded")
		}
		return err
	}

	token, err := mc.authUsecase.IssueWalletToken(seller)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, models.SellerResponse{
		Message: "seller onboarded successfully",
		Seller:  seller,
		Token:   token,
	})
}

func (mc *marketController) WalletLogin(c echo.Context) error {
	var req models.WalletLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	seller, err := mc.marketUsecase.GetSellerByWallet(ctx, req.WalletAddress)
	if err != nil {
		if errors.Is(err, models.ErrSellerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "seller not found")
		}
		return err
	}

	token, err := mc.authUsecase.IssueWalletToken(seller)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.SellerResponse{
		Message: "login successful",
		Seller:  seller,
		Token:   token,
	})
}

func (mc *marketController) CreateProduct(c echo.Context) error {
	var req models.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	product, err := mc.marketUsecase.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, models.ErrSellerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "seller not found")
		}
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "product created successfully",
		"product": product,
	})
}

func (mc *marketController) AllProducts(c echo.Context) error {
	ctx := c.Request().Context()
	products, err := mc.marketUsecase.ListProducts(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (mc *marketController) Companies(c echo.Context) error {
	ctx := c.Request().Context()
	sellers, err := mc.marketUsecase.ListSellers(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sellers)
}

func (mc *marketController) SellerProducts(c echo.Context) error {
	walletAddress := c.Param("walletAddress")
	if walletAddress == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing wallet address")
	}

	ctx := c.Request().Context()
	products, err := mc.marketUsecase.ProductsForSeller(ctx, walletAddress)
	if err != nil {
		if errors.Is(err, models.ErrSellerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "seller not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, products)
}
