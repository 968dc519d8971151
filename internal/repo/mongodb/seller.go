package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecoloop/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SellerRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, seller *models.Seller) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Seller, error)
	GetByWallet(ctx context.Context, walletAddress string) (*models.Seller, error)
	AppendProduct(ctx context.Context, sellerID, productID primitive.ObjectID) error
	List(ctx context.Context) ([]*models.Seller, error)
	InsertIfAbsent(ctx context.Context, seller *models.Seller) error
}

type sellerRepo struct {
	collection *mongo.Collection
}

func NewSellerRepository(db *DB) SellerRepository {
	return &sellerRepo{
		collection: db.Database.Collection("sellers"),
	}
}

// EnsureIndexes creates the unique wallet index. Onboarding relies on it:
// two concurrent onboard calls for the same wallet race on the insert and
// the store, not application code, rejects the loser.
func (r *sellerRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "wallet_address", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "seller_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("create seller indexes: %w", err)
	}
	return nil
}

func (r *sellerRepo) Create(ctx context.Context, seller *models.Seller) error {
	seller.ID = primitive.NewObjectID()
	seller.CreatedAt = time.Now()
	seller.UpdatedAt = seller.CreatedAt
	if seller.ProductIDs == nil {
		seller.ProductIDs = []primitive.ObjectID{}
	}

	_, err := r.collection.InsertOne(ctx, seller)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrSellerExists
	}
	if err != nil {
		return fmt.Errorf("insert seller: %w", err)
	}
	return nil
}

func (r *sellerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Seller, error) {
	var seller models.Seller
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&seller)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get seller: %w", err)
	}
	return &seller, nil
}

func (r *sellerRepo) GetByWallet(ctx context.Context, walletAddress string) (*models.Seller, error) {
	var seller models.Seller
	err := r.collection.FindOne(ctx, bson.M{"wallet_address": walletAddress}).Decode(&seller)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get seller by wallet: %w", err)
	}
	return &seller, nil
}

// AppendProduct links a product into the seller's list. $addToSet keeps
// the link unique and is safe under concurrent appends for the same
// seller: no read-modify-write of a stale snapshot.
func (r *sellerRepo) AppendProduct(ctx context.Context, sellerID, productID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": sellerID},
		bson.M{
			"$addToSet": bson.M{"products": productID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("append product to seller: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *sellerRepo) List(ctx context.Context) ([]*models.Seller, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	var sellers []*models.Seller
	if err := cursor.All(ctx, &sellers); err != nil {
		return nil, fmt.Errorf("decode sellers: %w", err)
	}
	return sellers, nil
}

// InsertIfAbsent inserts a seed seller keyed on seller_id. Running it
// again with the same entry is a no-op.
func (r *sellerRepo) InsertIfAbsent(ctx context.Context, seller *models.Seller) error {
	now := time.Now()
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":            primitive.NewObjectID(),
			"name":           seller.Name,
			"wallet_address": seller.WalletAddress,
			"products":       []primitive.ObjectID{},
			"created_at":     now,
			"updated_at":     now,
		},
	}

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"seller_id": seller.SellerID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert seed seller: %w", err)
	}
	return nil
}
