// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package records

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadogenius/mercado/services/market/model"
	storagebadger "github.com/mercadogenius/mercado/services/market/storage/badger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := storagebadger.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := New(db, nil)
	require.NoError(t, err)
	return store
}

func TestSaveStoreUpsertRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	profile := model.StoreProfile{
		ID:          "store-1",
		Name:        "Moda Central",
		OwnerName:   "Ana María",
		Description: "Ropa y accesorios",
		City:        "Managua",
		Address:     "Km 4 Carretera Masaya",
	}
	require.NoError(t, s.SaveStore(ctx, profile))

	got, err := s.StoreByID(ctx, "store-1")
	require.NoError(t, err)
	assert.Equal(t, profile, got)

	// Upsert replaces by id instead of appending.
	profile.Description = "Ropa, zapatos y accesorios"
	require.NoError(t, s.SaveStore(ctx, profile))

	stores, err := s.Stores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "Ropa, zapatos y accesorios", stores[0].Description)
}

func TestSaveStoreSetsActiveSession(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveStore(ctx, model.StoreProfile{ID: "store-1", Name: "Tienda", City: "León"}))

	id, err := s.ActiveSellerID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "store-1", id)

	require.NoError(t, s.ClearActiveSeller(ctx))
	id, err = s.ActiveSellerID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestStoreByIDNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.StoreByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppendProductIsLIFO(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Identical CreatedAt values: ordering must come from insertion
	// order, not from the timestamp.
	for _, id := range []string{"p1", "p2", "p3"} {
		require.NoError(t, s.AppendProduct(ctx, model.Product{
			ID: id, StoreID: "store-1", Name: id, CreatedAt: 1700000000000,
		}))
	}

	products, err := s.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "p3", products[0].ID)
	assert.Equal(t, "p2", products[1].ID)
	assert.Equal(t, "p1", products[2].ID)
}

func TestProductsRoundTripLossless(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	product := model.Product{
		ID:          "p1",
		StoreID:     "store-1",
		Name:        "Camisa de lino",
		Brand:       "Genérico",
		Price:       24.99,
		Currency:    model.CurrencyNIO,
		Size:        "M",
		Category:    model.CategoryCamisas,
		Description: "Fresca y ligera",
		Images:      []string{"data:image/jpeg;base64,AAAA", "data:image/jpeg;base64,BBBB"},
		CreatedAt:   1700000000000,
	}
	require.NoError(t, s.AppendProduct(ctx, product))

	got, err := s.ProductByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, product, got)
}

func TestProductLegacyImageMigration(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AppendProduct(ctx, model.Product{
		ID:             "old",
		StoreID:        "store-1",
		Name:           "Producto viejo",
		LegacyImageURL: "data:image/jpeg;base64,LEGACY",
	}))

	got, err := s.ProductByID(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, []string{"data:image/jpeg;base64,LEGACY"}, got.Images)
	assert.Empty(t, got.LegacyImageURL)
}

func TestDeleteProductKeepsOrphanReviews(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AppendProduct(ctx, model.Product{ID: "p1", StoreID: "store-1"}))
	require.NoError(t, s.AppendReview(ctx, model.Review{ID: "r1", ProductID: "p1", Rating: 5, Date: 10}))

	require.NoError(t, s.DeleteProduct(ctx, "p1"))

	products, err := s.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	// The review survives as an orphan; deletion does not cascade.
	reviews, err := s.ReviewsByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "r1", reviews[0].ID)
}

func TestDeleteProductUnknownID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.DeleteProduct(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewsByProductSortedByDateDescending(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AppendReview(ctx, model.Review{ID: "older", ProductID: "p1", Rating: 4, Date: 100}))
	require.NoError(t, s.AppendReview(ctx, model.Review{ID: "newest", ProductID: "p1", Rating: 5, Date: 300}))
	require.NoError(t, s.AppendReview(ctx, model.Review{ID: "middle", ProductID: "p1", Rating: 3, Date: 200}))
	require.NoError(t, s.AppendReview(ctx, model.Review{ID: "other", ProductID: "p2", Rating: 1, Date: 400}))

	reviews, err := s.ReviewsByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "newest", reviews[0].ID)
	assert.Equal(t, "middle", reviews[1].ID)
	assert.Equal(t, "older", reviews[2].ID)
}

func TestEmptyCollections(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	stores, err := s.Stores(ctx)
	require.NoError(t, err)
	assert.Empty(t, stores)

	products, err := s.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	reviews, err := s.Reviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	id, err := s.ActiveSellerID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)
}
