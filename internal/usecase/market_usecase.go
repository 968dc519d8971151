package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/ecoloop/backend/internal/models"
	"github.com/ecoloop/backend/internal/repo/kafka"
	"github.com/ecoloop/backend/internal/repo/mongodb"
	"github.com/google/uuid"
)

type MarketUsecase interface {
	OnboardSeller(ctx context.Context, req models.OnboardRequest) (*models.Seller, error)
	GetSellerByWallet(ctx context.Context, walletAddress string) (*models.Seller, error)
	CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.ProductWithSeller, error)
	ListSellers(ctx context.Context) ([]*models.Seller, error)
	ProductsForSeller(ctx context.Context, walletAddress string) ([]*models.Product, error)
}

type marketUsecase struct {
	sellerRepo  mongodb.SellerRepository
	productRepo mongodb.ProductRepository
	publisher   kafka.Publisher
}

func NewMarketUsecase(
	sellerRepo mongodb.SellerRepository,
	productRepo mongodb.ProductRepository,
	publisher kafka.Publisher,
) MarketUsecase {
	return &marketUsecase{
		sellerRepo:  sellerRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// OnboardSeller registers a wallet exactly once. Uniqueness is enforced by
// the store's wallet index, so two concurrent calls for the same wallet
// cannot both succeed.
func (u *marketUsecase) OnboardSeller(ctx context.Context, req models.OnboardRequest) (*models.Seller, error) {
	seller := &models.Seller{
		SellerID:      NewSellerID(),
		Name:          req.Name,
		WalletAddress: req.WalletAddress,
	}

	err := u.sellerRepo.Create(ctx, seller)
	if errors.Is(err, models.ErrSellerExists) {
		return nil, models.ErrSellerExists
	}
	if err != nil {
		return nil, fmt.Errorf("onboard seller: %w", err)
	}

	log.Infow(ctx, "seller onboarded", "seller_id", seller.SellerID, "wallet", seller.WalletAddress)
	return seller, nil
}

func (u *marketUsecase) GetSellerByWallet(ctx context.Context, walletAddress string) (*models.Seller, error) {
	seller, err := u.sellerRepo.GetByWallet(ctx, walletAddress)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrSellerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get seller by wallet: %w", err)
	}
	return seller, nil
}

// CreateProduct persists the product and links it into the owning seller's
// list. The two writes are not one transaction: the product insert goes
// first because an unlinked product is discoverable and repairable, while
// a seller link to a missing product is not. The link write is retried
// once before the error surfaces.
func (u *marketUsecase) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	seller, err := u.GetSellerByWallet(ctx, req.WalletAddress)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Images:      req.Images,
		Supply:      req.Supply,
		Price:       req.Price,
		SellerRef:   seller.ID,
	}
	if err := u.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := u.sellerRepo.AppendProduct(ctx, seller.ID, product.ID); err != nil {
		log.Warnw(ctx, "seller link write failed, retrying",
			"error", err,
			"seller_id", seller.SellerID,
			"product_id", product.ID.Hex(),
		)
		if err := u.sellerRepo.AppendProduct(ctx, seller.ID, product.ID); err != nil {
			return nil, fmt.Errorf("link product %s to seller %s: %w", product.ID.Hex(), seller.SellerID, err)
		}
	}

	u.publisher.PublishProductEvent(ctx, kafka.ProductEvent{
		Type:          kafka.EventProductCreated,
		ProductID:     product.ID.Hex(),
		SellerID:      seller.SellerID,
		WalletAddress: seller.WalletAddress,
		Name:          product.Name,
		Price:         product.Price,
		Supply:        product.Supply,
		CreatedAt:     product.CreatedAt,
	})

	log.Infow(ctx, "product created", "product_id", product.ID.Hex(), "seller_id", seller.SellerID)
	return product, nil
}

// ListProducts returns the whole catalog with each product's seller
// summary resolved.
func (u *marketUsecase) ListProducts(ctx context.Context) ([]*models.ProductWithSeller, error) {
	products, total, err := u.productRepo.ListWithCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	sellers, err := u.sellerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	log.Debugw(ctx, "catalog listed", "total", total)

	summaries := make(map[string]*models.SellerSummary, len(sellers))
	for _, s := range sellers {
		summaries[s.ID.Hex()] = &models.SellerSummary{
			SellerID:      s.SellerID,
			Name:          s.Name,
			WalletAddress: s.WalletAddress,
		}
	}

	out := make([]*models.ProductWithSeller, 0, len(products))
	for _, p := range products {
		out = append(out, &models.ProductWithSeller{
			Product: *p,
			Seller:  summaries[p.SellerRef.Hex()],
		})
	}
	return out, nil
}

func (u *marketUsecase) ListSellers(ctx context.Context) ([]*models.Seller, error) {
	return u.sellerRepo.List(ctx)
}

func (u *marketUsecase) ProductsForSeller(ctx context.Context, walletAddress string) ([]*models.Product, error) {
	seller, err := u.GetSellerByWallet(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	return u.productRepo.ListBySeller(ctx, seller.ID)
}

// NewSellerID generates a collision-resistant seller id. The timestamp
// keeps ids roughly sortable; the uuid suffix covers same-millisecond
// onboarding.
func NewSellerID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("SELLER_%d_%s", time.Now().UnixMilli(), suffix)
}
