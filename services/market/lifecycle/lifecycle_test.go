// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadogenius/mercado/pkg/validation"
	"github.com/mercadogenius/mercado/services/market/model"
	"github.com/mercadogenius/mercado/services/market/records"
	storagebadger "github.com/mercadogenius/mercado/services/market/storage/badger"
)

func newManager(t *testing.T) (*Manager, *records.Store) {
	t.Helper()
	db, err := storagebadger.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := records.New(db, nil)
	require.NoError(t, err)
	return New(store, nil), store
}

func TestOpenStoreBusiness(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(t)

	opened, err := m.OpenStore(ctx, OpenStoreInput{
		Name:      "Moda Central",
		OwnerName: "Ana María López",
		City:      "Managua",
		Address:   "Km 4 Carretera Masaya",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, opened.ID)
	assert.Equal(t, "Moda Central", opened.Name)
	assert.False(t, opened.IsPersonal)

	// Opening a store logs the seller in.
	id, err := store.ActiveSellerID(ctx)
	require.NoError(t, err)
	assert.Equal(t, opened.ID, id)
}

func TestOpenStorePersonalSynthesizesName(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	opened, err := m.OpenStore(ctx, OpenStoreInput{
		Personal:  true,
		OwnerName: "Carlos Alberto Mendoza",
		City:      "León",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ventas de Carlos", opened.Name)
	assert.True(t, opened.IsPersonal)
}

func TestOpenStoreValidation(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	tests := []struct {
		name string
		in   OpenStoreInput
	}{
		{name: "missing owner", in: OpenStoreInput{Name: "Tienda", City: "Managua"}},
		{name: "business without store name", in: OpenStoreInput{OwnerName: "Ana", City: "Managua"}},
		{name: "missing city", in: OpenStoreInput{Name: "Tienda", OwnerName: "Ana"}},
		{name: "unknown city", in: OpenStoreInput{Name: "Tienda", OwnerName: "Ana", City: "Madrid"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.OpenStore(ctx, tt.in)
			assert.ErrorIs(t, err, validation.ErrInvalid)
		})
	}
}

func TestAddProductDefaults(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	product, err := m.AddProduct(ctx, AddProductInput{
		StoreID: "s1",
		Name:    "Camisa",
		Price:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultBrand, product.Brand)
	assert.Equal(t, DefaultSize, product.Size)
	assert.Equal(t, model.CategoryOtro, product.Category)
	assert.Equal(t, model.CurrencyUSD, product.Currency)
	assert.NotNil(t, product.Images)
	assert.Empty(t, product.Images)
	assert.NotZero(t, product.CreatedAt)
}

func TestAddProductUnknownCategoryFallsBack(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	product, err := m.AddProduct(ctx, AddProductInput{
		StoreID:  "s1",
		Name:     "Gorra",
		Price:    5,
		Category: model.Category("Sombreros"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryOtro, product.Category)
}

func TestAddProductValidation(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	_, err := m.AddProduct(ctx, AddProductInput{StoreID: "s1", Price: 10})
	assert.ErrorIs(t, err, validation.ErrInvalid)

	_, err = m.AddProduct(ctx, AddProductInput{StoreID: "s1", Name: "Camisa", Price: -1})
	assert.ErrorIs(t, err, validation.ErrInvalid)

	_, err = m.AddProduct(ctx, AddProductInput{StoreID: "s1", Name: "Camisa", Price: 10, Currency: "EUR"})
	assert.ErrorIs(t, err, validation.ErrInvalid)
}

func TestAddProductIDsAreUnique(t *testing.T) {
	// Rapid successive creation must not collide; ids are random, not
	// derived from the clock.
	ctx := context.Background()
	m, _ := newManager(t)

	seen := make(map[string]bool)
	for range 20 {
		p, err := m.AddProduct(ctx, AddProductInput{StoreID: "s1", Name: "Camisa", Price: 1})
		require.NoError(t, err)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestAddReview(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(t)

	review, err := m.AddReview(ctx, AddReviewInput{
		ProductID: "p1",
		Author:    "Luis",
		Rating:    4,
		Comment:   "Buen producto",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.NotZero(t, review.Date)

	reviews, err := store.ReviewsByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestAddReviewRatingRange(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := m.AddReview(ctx, AddReviewInput{ProductID: "p1", Author: "Luis", Rating: rating})
		assert.ErrorIs(t, err, validation.ErrInvalid, "rating %d", rating)
	}
}

func TestActiveStoreAndLogout(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	_, err := m.ActiveStore(ctx)
	assert.ErrorIs(t, err, records.ErrNotFound)

	opened, err := m.OpenStore(ctx, OpenStoreInput{
		Name: "Tienda", OwnerName: "Ana", City: "Masaya",
	})
	require.NoError(t, err)

	active, err := m.ActiveStore(ctx)
	require.NoError(t, err)
	assert.Equal(t, opened.ID, active.ID)

	require.NoError(t, m.Logout(ctx))
	_, err = m.ActiveStore(ctx)
	assert.ErrorIs(t, err, records.ErrNotFound)

	// Logout clears only the session; the store record persists.
	kept, err := m.store.StoreByID(ctx, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, opened.Name, kept.Name)
}
