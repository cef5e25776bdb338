// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package reputation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadogenius/mercado/services/market/model"
	"github.com/mercadogenius/mercado/services/market/records"
	storagebadger "github.com/mercadogenius/mercado/services/market/storage/badger"
)

// seedStore writes one store with one product per rating, plus an
// unrelated store whose reviews must not leak into the aggregate.
func seedStore(t *testing.T, ratings []int) *Aggregator {
	t.Helper()
	db, err := storagebadger.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := records.New(db, nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.SaveStore(ctx, model.StoreProfile{ID: "s1", Name: "Tienda", City: "Managua"}))
	require.NoError(t, store.SaveStore(ctx, model.StoreProfile{ID: "other", Name: "Otra", City: "Managua"}))
	require.NoError(t, store.AppendProduct(ctx, model.Product{ID: "px", StoreID: "other"}))
	require.NoError(t, store.AppendReview(ctx, model.Review{ID: "rx", ProductID: "px", Rating: 1, Date: 1}))

	for i, rating := range ratings {
		pid := fmt.Sprintf("p%d", i)
		require.NoError(t, store.AppendProduct(ctx, model.Product{ID: pid, StoreID: "s1"}))
		require.NoError(t, store.AppendReview(ctx, model.Review{
			ID: fmt.Sprintf("r%d", i), ProductID: pid, Rating: rating, Date: int64(i),
		}))
	}

	return New(store)
}

func TestForStoreThresholds(t *testing.T) {
	tests := []struct {
		name       string
		ratings    []int
		wantRating float64
		wantCount  int
		wantStatus Status
	}{
		{name: "no reviews", ratings: nil, wantRating: 0, wantCount: 0, wantStatus: StatusNeutral},
		{name: "excellent", ratings: []int{5, 5, 5}, wantRating: 5.0, wantCount: 3, wantStatus: StatusExcellent},
		{name: "high average but too few reviews", ratings: []int{4, 4}, wantRating: 4.0, wantCount: 2, wantStatus: StatusGood},
		{name: "exactly five with two reviews stays good", ratings: []int{5, 5}, wantRating: 5.0, wantCount: 2, wantStatus: StatusGood},
		{name: "neutral band", ratings: []int{2, 3}, wantRating: 2.5, wantCount: 2, wantStatus: StatusNeutral},
		{name: "scam alert", ratings: []int{1, 1}, wantRating: 1.0, wantCount: 2, wantStatus: StatusScamAlert},
		{name: "boundary 3.5 is good", ratings: []int{3, 4}, wantRating: 3.5, wantCount: 2, wantStatus: StatusGood},
		{name: "boundary 2.0 is neutral", ratings: []int{1, 3}, wantRating: 2.0, wantCount: 2, wantStatus: StatusNeutral},
		{name: "boundary 4.5 with three reviews", ratings: []int{4, 5, 4, 5}, wantRating: 4.5, wantCount: 4, wantStatus: StatusExcellent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := seedStore(t, tt.ratings)
			result, err := agg.ForStore(context.Background(), "s1")
			require.NoError(t, err)
			assert.InDelta(t, tt.wantRating, result.Rating, 1e-9)
			assert.Equal(t, tt.wantCount, result.Count)
			assert.Equal(t, tt.wantStatus, result.Status)
		})
	}
}

func TestForStoreIgnoresOrphanedReviews(t *testing.T) {
	agg := seedStore(t, []int{5, 5, 5})
	ctx := context.Background()

	// Deleting a product orphans its review; the orphan no longer counts.
	require.NoError(t, agg.store.DeleteProduct(ctx, "p0"))

	result, err := agg.ForStore(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, StatusGood, result.Status)
}

func TestClassifyDeadBranch(t *testing.T) {
	// An average of exactly zero cannot occur while ratings are 1..5;
	// the terminal branch still has defined behavior.
	assert.Equal(t, StatusPoor, classify(0, 1))
}
