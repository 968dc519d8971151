package server

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/carousell/ct-go/pkg/logger"
	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"github.com/ecoloop/backend/internal/config"
	pkgmdw "github.com/ecoloop/backend/internal/server/middleware"
	"github.com/ecoloop/backend/internal/usecase"
)

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	authUsecase usecase.AuthUsecase,
	authCtrl AuthController,
	marketCtrl MarketController,
	analysisCtrl AnalysisController,
) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = pkgmdw.ErrorHandler(logger.MustNamed("http"))

	logConfig := pkgmdw.LogRequestConfig{
		Logger: logger.MustNamed("http"),
		Enabled: func(c echo.Context) bool {
			uri := c.Request().RequestURI
			return uri != "/health" && uri != "/metrics"
		},
		RequestBody: func(c echo.Context) bool {
			// bodies carry credentials on the auth routes
			uri := c.Request().RequestURI
			return uri != "/user/signUp" && uri != "/user/login"
		},
	}

	e.Use(pkgmdw.Metrics())
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.LogRequest(logConfig))
	e.Use(pkgmdw.CORS(regexp.MustCompile(conf.Server.CORSOrigins)))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw(c.Request().Context(), "PANIC RECOVER", "error", err, "stack", string(stack))
			return nil
		},
	}))

	e.GET("/health", health)

	user := e.Group("/user")
	user.POST("/signUp", authCtrl.SignUp)
	user.POST("/login", authCtrl.Login)
	user.GET("/protected", authCtrl.Protected, pkgmdw.JWTAuth(authUsecase))

	e.GET("/google", authCtrl.GoogleRedirect)
	e.GET("/google/dashboard/callback/qrApp", authCtrl.GoogleCallback)

	e.POST("/predictimage", analysisCtrl.PredictImage)
	e.POST("/metricsImage", analysisCtrl.Metrics)
	e.POST("/recyclingMethods", analysisCtrl.Recycling)
	e.POST("/predict-supply-chain", analysisCtrl.SupplyChain)

	market := e.Group("/market")
	market.POST("/onboard", marketCtrl.Onboard)
	market.POST("/login", marketCtrl.WalletLogin)
	market.POST("/product", marketCtrl.CreateProduct)
	market.GET("/all-products", marketCtrl.AllProducts)
	market.GET("/companies", marketCtrl.Companies)
	market.GET("/user-products/:walletAddress", marketCtrl.SellerProducts)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow(ctx, "starting HTTP server", "addr", conf.Server.Addr)
				if err := e.Start(conf.Server.Addr); !errors.Is(err, http.ErrServerClosed) {
					sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "ecoloop-backend",
	})
}
