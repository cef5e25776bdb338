// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package lifecycle implements create, delete and session operations for
// stores, products and reviews.
//
// Ids are random UUIDs. Missing optional product fields are defaulted
// rather than rejected; missing required fields are rejected with a
// validation error.
package lifecycle

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mercadogenius/mercado/pkg/validation"
	"github.com/mercadogenius/mercado/services/market/model"
	"github.com/mercadogenius/mercado/services/market/records"
)

// Fallback values for blank optional product fields.
const (
	DefaultBrand = "Genérico"
	DefaultSize  = "Única"
)

// Manager performs lifecycle operations against a record store.
type Manager struct {
	store  *records.Store
	logger *slog.Logger
}

// New creates a lifecycle manager.
func New(store *records.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, logger: logger}
}

// OpenStoreInput is the seller signup form.
//
// Business mode requires a store name; personal mode synthesizes one from
// the owner's given name.
type OpenStoreInput struct {
	Personal    bool
	Name        string `validate:"required_if=Personal false"`
	OwnerName   string `validate:"required"`
	Description string
	City        string `validate:"required,city"`
	Address     string
	ThemeColor  string
	MapURL      string
	BannerURL   string
	LogoURL     string
}

// OpenStore registers a new store profile and logs the seller in.
//
// Personal-mode sellers get the synthesized name "Ventas de {first given
// name}". Saving the profile sets the active session as a side effect of
// SaveStore.
func (m *Manager) OpenStore(ctx context.Context, in OpenStoreInput) (model.StoreProfile, error) {
	if err := validation.Struct(in); err != nil {
		return model.StoreProfile{}, err
	}

	name := in.Name
	if in.Personal {
		name = "Ventas de " + firstName(in.OwnerName)
	}

	store := model.StoreProfile{
		ID:          uuid.NewString(),
		Name:        name,
		OwnerName:   in.OwnerName,
		Description: in.Description,
		ThemeColor:  in.ThemeColor,
		City:        in.City,
		Address:     in.Address,
		MapURL:      in.MapURL,
		BannerURL:   in.BannerURL,
		LogoURL:     in.LogoURL,
		IsPersonal:  in.Personal,
	}

	if err := m.store.SaveStore(ctx, store); err != nil {
		return model.StoreProfile{}, err
	}

	m.logger.Info("store opened",
		slog.String("store_id", store.ID),
		slog.String("city", store.City),
		slog.Bool("personal", store.IsPersonal))
	return store, nil
}

func firstName(owner string) string {
	fields := strings.Fields(owner)
	if len(fields) == 0 {
		return owner
	}
	return fields[0]
}

// AddProductInput is the product listing form.
type AddProductInput struct {
	StoreID     string `validate:"required"`
	Name        string `validate:"required"`
	Brand       string
	Price       float64 `validate:"gte=0"`
	Currency    string  `validate:"required,currency"`
	Size        string
	Category    model.Category
	Description string
	Images      []string
}

// AddProduct creates a product and prepends it to the catalog.
//
// Blank brand and size fall back to fixed defaults; an unknown or blank
// category falls back to Otro. The images list may be empty.
func (m *Manager) AddProduct(ctx context.Context, in AddProductInput) (model.Product, error) {
	if in.Currency == "" {
		in.Currency = model.CurrencyUSD
	}
	if err := validation.Struct(in); err != nil {
		return model.Product{}, err
	}

	if in.Brand == "" {
		in.Brand = DefaultBrand
	}
	if in.Size == "" {
		in.Size = DefaultSize
	}
	if !in.Category.Valid() {
		in.Category = model.CategoryOtro
	}
	if in.Images == nil {
		in.Images = []string{}
	}

	product := model.Product{
		ID:          uuid.NewString(),
		StoreID:     in.StoreID,
		Name:        in.Name,
		Brand:       in.Brand,
		Price:       in.Price,
		Currency:    in.Currency,
		Size:        in.Size,
		Category:    in.Category,
		Description: in.Description,
		Images:      in.Images,
		CreatedAt:   time.Now().UnixMilli(),
	}

	if err := m.store.AppendProduct(ctx, product); err != nil {
		return model.Product{}, err
	}

	m.logger.Info("product listed",
		slog.String("product_id", product.ID),
		slog.String("store_id", product.StoreID),
		slog.String("category", string(product.Category)))
	return product, nil
}

// DeleteProduct removes a product from the catalog. The caller is
// responsible for having confirmed the deletion with the user; reviews
// referencing the product are intentionally left in place.
func (m *Manager) DeleteProduct(ctx context.Context, productID string) error {
	if err := m.store.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	m.logger.Info("product deleted", slog.String("product_id", productID))
	return nil
}

// AddReviewInput is the buyer review form.
type AddReviewInput struct {
	ProductID string `validate:"required"`
	Author    string `validate:"required"`
	Rating    int    `validate:"gte=1,lte=5"`
	Comment   string
}

// AddReview records an immutable buyer review on a product.
func (m *Manager) AddReview(ctx context.Context, in AddReviewInput) (model.Review, error) {
	if err := validation.Struct(in); err != nil {
		return model.Review{}, err
	}

	review := model.Review{
		ID:        uuid.NewString(),
		ProductID: in.ProductID,
		Author:    in.Author,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Date:      time.Now().UnixMilli(),
	}

	if err := m.store.AppendReview(ctx, review); err != nil {
		return model.Review{}, err
	}
	return review, nil
}

// ActiveStore resolves the active session to its store profile. Returns
// records.ErrNotFound when no seller is logged in or the marker references
// a store that no longer resolves.
func (m *Manager) ActiveStore(ctx context.Context) (model.StoreProfile, error) {
	id, err := m.store.ActiveSellerID(ctx)
	if err != nil {
		return model.StoreProfile{}, err
	}
	if id == "" {
		return model.StoreProfile{}, records.ErrNotFound
	}
	return m.store.StoreByID(ctx, id)
}

// Logout clears the active-session marker. All store, product and review
// data persists.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.ClearActiveSeller(ctx); err != nil {
		return err
	}
	m.logger.Info("seller logged out")
	return nil
}
