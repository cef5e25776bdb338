// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package reputation derives a per-store rating and status label from the
// review records of that store's products.
//
// The aggregate is recomputed from the full review set on every call; there
// is no cache to invalidate, which is acceptable for small local data.
package reputation

import (
	"context"

	"github.com/mercadogenius/mercado/services/market/records"
)

// Status is the categorical label summarizing a store's review ratings.
type Status string

const (
	StatusExcellent Status = "EXCELLENT"
	StatusGood      Status = "GOOD"
	StatusNeutral   Status = "NEUTRAL"
	StatusPoor      Status = "POOR"
	StatusScamAlert Status = "SCAM_ALERT"
)

// Result is a store's aggregated reputation.
type Result struct {
	// Rating is the arithmetic mean of all review ratings, 0 when there
	// are no reviews.
	Rating float64 `json:"rating"`
	// Count is the number of reviews aggregated.
	Count int `json:"count"`
	// Status is the derived label.
	Status Status `json:"status"`
}

// Aggregator computes store reputations from the record store.
type Aggregator struct {
	store *records.Store
}

// New creates an aggregator over the given record store.
func New(store *records.Store) *Aggregator {
	return &Aggregator{store: store}
}

// ForStore aggregates every review left on the store's products.
//
// The review-to-store join goes through product ownership: reviews carry
// only a product id, so the store's product id set is collected first and
// reviews are matched against it. Orphaned reviews (product since deleted)
// no longer count toward any store.
func (a *Aggregator) ForStore(ctx context.Context, storeID string) (Result, error) {
	products, err := a.store.ProductsByStore(ctx, storeID)
	if err != nil {
		return Result{}, err
	}
	owned := make(map[string]struct{}, len(products))
	for _, p := range products {
		owned[p.ID] = struct{}{}
	}

	reviews, err := a.store.Reviews(ctx)
	if err != nil {
		return Result{}, err
	}

	var sum, count int
	for _, r := range reviews {
		if _, ok := owned[r.ProductID]; ok {
			sum += r.Rating
			count++
		}
	}

	if count == 0 {
		return Result{Rating: 0, Count: 0, Status: StatusNeutral}, nil
	}

	avg := float64(sum) / float64(count)
	return Result{Rating: avg, Count: count, Status: classify(avg, count)}, nil
}

// classify maps an average rating and review count to a status label.
// The checks run in this exact order; the first match wins.
//
// The final POOR branch is unreachable while ratings are constrained to
// 1..5 (an average of exactly 0 would require a zero rating). It is kept in
// position so behavior is defined if that constraint is ever violated.
func classify(avg float64, count int) Status {
	switch {
	case avg >= 4.5 && count >= 3:
		return StatusExcellent
	case avg >= 3.5:
		return StatusGood
	case avg >= 2:
		return StatusNeutral
	case avg > 0 && avg < 2:
		return StatusScamAlert
	default:
		return StatusPoor
	}
}
