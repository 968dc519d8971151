package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a listed item owned by exactly one seller. SellerRef is
// immutable after creation.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Images      []string           `bson:"images" json:"images"`
	Supply      int64              `bson:"supply" json:"supply" validate:"gte=0"`
	Price       float64            `bson:"price" json:"price" validate:"gte=0"`
	SellerRef   primitive.ObjectID `bson:"seller" json:"seller"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Images        []string `json:"images"`
	Supply        int64    `json:"supply" validate:"gte=0"`
	Price         float64  `json:"price" validate:"gte=0"`
	WalletAddress string   `json:"walletAddress" validate:"required"`
}

// ProductWithSeller is a product joined with a summary of its owner,
// returned by the public catalog listing.
type ProductWithSeller struct {
	Product `bson:",inline"`
	Seller  *SellerSummary `json:"sellerInfo,omitempty"`
}

type SellerSummary struct {
	SellerID      string `json:"userSellerID"`
	Name          string `json:"name"`
	WalletAddress string `json:"walletAddress"`
}
