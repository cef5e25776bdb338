// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package catalog implements the buyer-facing query engine over the record
// store: city-scoped store and product search, plus per-store category
// filtering.
//
// Every query is a linear scan re-derived from the full collections on each
// call. There is no index, cache, ranking or pagination; result order is
// storage order, which for products means newest first. That is acceptable
// at this data scale (a single local seller community).
package catalog

import (
	"context"
	"strings"

	"github.com/mercadogenius/mercado/services/market/model"
	"github.com/mercadogenius/mercado/services/market/records"
)

// Engine answers catalog queries against a record store.
type Engine struct {
	store *records.Store
}

// New creates a query engine over the given record store.
func New(store *records.Store) *Engine {
	return &Engine{store: store}
}

// containsFold reports whether s contains term, case-insensitively.
// An empty term matches everything.
func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

// StoresByCity returns stores whose city matches exactly and whose name or
// description contains the search term.
//
// An empty city yields an empty result set: the buyer flow requires a city
// to be selected before anything is shown.
func (e *Engine) StoresByCity(ctx context.Context, city, term string) ([]model.StoreProfile, error) {
	if city == "" {
		return []model.StoreProfile{}, nil
	}

	stores, err := e.store.Stores(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.StoreProfile, 0, len(stores))
	for _, st := range stores {
		if st.City != city {
			continue
		}
		if containsFold(st.Name, term) || containsFold(st.Description, term) {
			matched = append(matched, st)
		}
	}
	return matched, nil
}

// ProductsByCity returns products sold by stores in the given city whose
// name, brand or description contains the search term. Results come back in
// storage order, i.e. most recently added first.
//
// An empty city yields an empty result set regardless of catalog contents.
func (e *Engine) ProductsByCity(ctx context.Context, city, term string) ([]model.Product, error) {
	if city == "" {
		return []model.Product{}, nil
	}

	stores, err := e.store.Stores(ctx)
	if err != nil {
		return nil, err
	}
	inCity := make(map[string]struct{}, len(stores))
	for _, st := range stores {
		if st.City == city {
			inCity[st.ID] = struct{}{}
		}
	}

	products, err := e.store.Products(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Product, 0, len(products))
	for _, p := range products {
		if _, ok := inCity[p.StoreID]; !ok {
			continue
		}
		if containsFold(p.Name, term) || containsFold(p.Brand, term) || containsFold(p.Description, term) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// ProductsByStore returns one store's products, optionally narrowed to a
// single category. An empty category matches all categories.
func (e *Engine) ProductsByStore(ctx context.Context, storeID string, category model.Category) ([]model.Product, error) {
	products, err := e.store.ProductsByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return products, nil
	}

	matched := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched, nil
}
