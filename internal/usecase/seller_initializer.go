package usecase

import (
	"context"
	_ "embed"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/ecoloop/backend/internal/models"
	"github.com/ecoloop/backend/internal/repo/mongodb"
	"gopkg.in/yaml.v3"
)

//go:embed seed_sellers.yaml
var seedSellersData []byte

type SeedSeller struct {
	SellerID      string `yaml:"seller_id"`
	Name          string `yaml:"name"`
	WalletAddress string `yaml:"wallet_address"`
}

// EnsureSeedSellers guarantees the baseline catalog exists. Safe to run on
// every startup: entries are inserted only when their seller_id is absent.
func EnsureSeedSellers(ctx context.Context, sellerRepo mongodb.SellerRepository) error {
	var seeds []SeedSeller
	if err := yaml.Unmarshal(seedSellersData, &seeds); err != nil {
		return fmt.Errorf("unmarshal seed sellers: %w", err)
	}

	for _, seed := range seeds {
		seller := &models.Seller{
			SellerID:      seed.SellerID,
			Name:          seed.Name,
			WalletAddress: seed.WalletAddress,
		}
		if err := sellerRepo.InsertIfAbsent(ctx, seller); err != nil {
			return fmt.Errorf("seed seller %q: %w", seed.SellerID, err)
		}
	}

	log.Infow(ctx, "seed sellers ensured", "count", len(seeds))
	return nil
}
