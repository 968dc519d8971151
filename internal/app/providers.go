package app

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/ecoloop/backend/internal/config"
	"github.com/ecoloop/backend/internal/repo/kafka"
	"github.com/ecoloop/backend/internal/repo/mongodb"
	"github.com/ecoloop/backend/internal/usecase"
)

func newMongoDB(lc fx.Lifecycle, cfg *config.Config) (*mongodb.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := mongodb.NewConnection(ctx, cfg.Database.URI, cfg.Database.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return db.Client.Ping(ctx, nil)
		},
		OnStop: func(ctx context.Context) error {
			return db.Close(ctx)
		},
	})

	return db, nil
}

func newKafkaPublisher(lc fx.Lifecycle, cfg *config.Config) kafka.Publisher {
	publisher := kafka.NewPublisher(cfg)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}

// InitializeIndexes creates the unique indexes the onboarding and signup
// flows rely on before the server starts taking traffic.
func InitializeIndexes(
	lc fx.Lifecycle,
	sellerRepo mongodb.SellerRepository,
	userRepo mongodb.UserRepository,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := sellerRepo.EnsureIndexes(ctx); err != nil {
				return err
			}
			return userRepo.EnsureIndexes(ctx)
		},
	})
}

// InitializeSeedSellers guarantees the baseline seller catalog exists.
func InitializeSeedSellers(lc fx.Lifecycle, sellerRepo mongodb.SellerRepository) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return usecase.EnsureSeedSellers(ctx, sellerRepo)
		},
	})
}
