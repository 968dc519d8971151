package models

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrSellerExists   = errors.New("seller with this wallet address already exists")
	ErrSellerNotFound = errors.New("seller not found")
	ErrUserExists     = errors.New("user already exists")
	ErrInvalidLogin   = errors.New("invalid credentials")
)
