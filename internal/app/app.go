package app

import (
	"github.com/carousell/ct-go/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/ecoloop/backend/internal/config"
	"github.com/ecoloop/backend/internal/llm/prompt"
	"github.com/ecoloop/backend/internal/repo/gemini"
	"github.com/ecoloop/backend/internal/repo/googleauth"
	"github.com/ecoloop/backend/internal/repo/mongodb"
	"github.com/ecoloop/backend/internal/server"
	"github.com/ecoloop/backend/internal/usecase"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newMongoDB,
			newKafkaPublisher,

			gemini.NewClient,
			googleauth.NewClient,
			prompt.NewBuilder,

			mongodb.NewSellerRepository,
			mongodb.NewProductRepository,
			mongodb.NewUserRepository,

			usecase.NewAuthUsecase,
			usecase.NewMarketUsecase,
			usecase.NewAnalysisUsecase,

			newAuthController,
			server.NewMarketController,
			server.NewAnalysisController,
		),
		fx.Supply(conf),
		fx.Invoke(InitializeIndexes),
		fx.Invoke(InitializeSeedSellers),
		fx.Invoke(funcs...),
	)
}

func newAuthController(
	authUsecase usecase.AuthUsecase,
	google googleauth.Client,
	conf *config.Config,
) server.AuthController {
	return server.NewAuthController(authUsecase, google, conf.Server.FrontendURL)
}
