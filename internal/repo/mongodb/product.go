package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/ecoloop/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*models.Product, error)
	ListWithCount(ctx context.Context) ([]*models.Product, int64, error)
}

type productRepo struct {
	collection *mongo.Collection
}

func NewProductRepository(db *DB) ProductRepository {
	return &productRepo{
		collection: db.Database.Collection("products"),
	}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	if product.Images == nil {
		product.Images = []string{}
	}

	_, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productRepo) ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*models.Product, error) {
	return r.find(ctx, bson.M{"seller": sellerID})
}

// ListWithCount fetches the catalog and its total in parallel.
func (r *productRepo) ListWithCount(ctx context.Context) ([]*models.Product, int64, error) {
	group, ctx := errgroup.WithContext(ctx)
	var products []*models.Product
	var total int64

	group.Go(func() error {
		var err error
		products, err = r.find(ctx, bson.M{})
		return err
	})
	group.Go(func() error {
		var err error
		total, err = r.collection.CountDocuments(ctx, bson.M{})
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepo) find(ctx context.Context, filter bson.M) ([]*models.Product, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	var products []*models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}
