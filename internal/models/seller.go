package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Seller is a marketplace participant identified by wallet address.
// SellerID is generated once at onboarding and never changes.
type Seller struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	SellerID      string               `bson:"seller_id" json:"userSellerID"`
	Name          string               `bson:"name" json:"name" validate:"required"`
	WalletAddress string               `bson:"wallet_address" json:"walletAddress" validate:"required"`
	ProductIDs    []primitive.ObjectID `bson:"products" json:"products"`
	CreatedAt     time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at" json:"updated_at"`
}

type OnboardRequest struct {
	Name          string `json:"name" validate:"required"`
	WalletAddress string `json:"walletAddress" validate:"required"`
}

type WalletLoginRequest struct {
	WalletAddress string `json:"walletAddress" validate:"required"`
}

type SellerResponse struct {
	Message string  `json:"message"`
	Seller  *Seller `json:"user"`
	Token   string  `json:"token"`
}
