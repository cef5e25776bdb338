// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package records implements the flat record store for the marketplace.
//
// Four collections are persisted, each under a single fixed key: the store
// list, the product list, the review list, and the active-seller marker.
// A collection is serialized as one JSON array and rewritten whole on every
// mutation. That is deliberate: the data belongs to a single local seller
// and stays small, and whole-collection rewrites keep the on-disk format
// identical to the serialized record shapes with no index structures to
// maintain.
//
// Ordering is structural: AppendProduct and AppendReview prepend, so storage
// order is newest-first. No sort field is consulted for products.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"

	"github.com/mercadogenius/mercado/services/market/model"
)

// Collection keys. These are the complete persistence surface; everything
// else in the engine is derived from these four values.
const (
	keyStores       = "mercado/stores"
	keyProducts     = "mercado/products"
	keyReviews      = "mercado/reviews"
	keyActiveSeller = "mercado/active_seller"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrWriteFailed indicates a persistence write failed. The in-memory
	// record is lost; there is no retry. Callers surface this as a
	// user-facing storage warning.
	ErrWriteFailed = errors.New("record store write failed")
)

var opsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "market_record_ops_total",
	Help: "Record store operations by collection, operation and status",
}, []string{"collection", "op", "status"})

var tracer = otel.Tracer("market.records")

// Store is the single local persistence scope for all marketplace
// collections. Construct one at process start and inject it into callers.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New creates a record store over an opened BadgerDB instance.
func New(db *badger.DB, logger *slog.Logger) (*Store, error) {
	if db == nil {
		return nil, errors.New("db must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}, nil
}

// -----------------------------------------------------------------------------
// Raw collection access
// -----------------------------------------------------------------------------

// readRaw loads the raw bytes under key. A missing key yields (nil, nil):
// every collection starts out absent.
func (s *Store) readRaw(key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *Store) readCollection(key string, out any) error {
	data, err := s.readRaw(key)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// writeCollection serializes and rewrites a whole collection. Any failure
// is reported as ErrWriteFailed; the caller's in-memory copy is dropped.
func (s *Store) writeCollection(key string, in any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrWriteFailed, key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		s.logger.Warn("collection write failed, record lost",
			slog.String("key", key), slog.String("error", err.Error()))
		return fmt.Errorf("%w: write %s: %v", ErrWriteFailed, key, err)
	}
	return nil
}

func (s *Store) count(collection, op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	opsTotal.WithLabelValues(collection, op, status).Inc()
}

// -----------------------------------------------------------------------------
// Stores
// -----------------------------------------------------------------------------

// Stores returns every registered store profile in storage order.
func (s *Store) Stores(ctx context.Context) ([]model.StoreProfile, error) {
	_, span := tracer.Start(ctx, "records.Stores")
	defer span.End()

	var stores []model.StoreProfile
	err := s.readCollection(keyStores, &stores)
	s.count("stores", "list", err)
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}
	return stores, nil
}

// StoreByID returns the store with the given id, or ErrNotFound.
func (s *Store) StoreByID(ctx context.Context, id string) (model.StoreProfile, error) {
	stores, err := s.Stores(ctx)
	if err != nil {
		return model.StoreProfile{}, err
	}
	for _, st := range stores {
		if st.ID == id {
			return st, nil
		}
	}
	return model.StoreProfile{}, fmt.Errorf("store %s: %w", id, ErrNotFound)
}

// SaveStore upserts a store profile: it replaces the record with a matching
// id, or appends when the id is new. Saving a store always also logs that
// seller in by setting the active-session marker.
func (s *Store) SaveStore(ctx context.Context, store model.StoreProfile) error {
	ctx, span := tracer.Start(ctx, "records.SaveStore")
	defer span.End()
	span.SetAttributes(attribute.String("store.id", store.ID))

	stores, err := s.Stores(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range stores {
		if stores[i].ID == store.ID {
			stores[i] = store
			replaced = true
			break
		}
	}
	if !replaced {
		stores = append(stores, store)
	}

	err = s.writeCollection(keyStores, stores)
	s.count("stores", "save", err)
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}
	return s.SetActiveSellerID(ctx, store.ID)
}

// -----------------------------------------------------------------------------
// Active session
// -----------------------------------------------------------------------------

// ActiveSellerID returns the logged-in seller's store id, or "" when no
// seller is logged in.
func (s *Store) ActiveSellerID(ctx context.Context) (string, error) {
	_, span := tracer.Start(ctx, "records.ActiveSellerID")
	defer span.End()

	data, err := s.readRaw(keyActiveSeller)
	s.count("session", "get", err)
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return "", err
	}
	return string(data), nil
}

// SetActiveSellerID records the given store id as the logged-in seller.
func (s *Store) SetActiveSellerID(ctx context.Context, id string) error {
	_, span := tracer.Start(ctx, "records.SetActiveSellerID")
	defer span.End()

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyActiveSeller), []byte(id))
	})
	s.count("session", "set", err)
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("%w: write %s: %v", ErrWriteFailed, keyActiveSeller, err)
	}
	return nil
}

// ClearActiveSeller logs the seller out. Only the session marker is
// touched; store, product and review data persist.
func (s *Store) ClearActiveSeller(ctx context.Context) error {
	_, span := tracer.Start(ctx, "records.ClearActiveSeller")
	defer span.End()

	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(keyActiveSeller))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	s.count("session", "clear", err)
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("%w: delete %s: %v", ErrWriteFailed, keyActiveSeller, err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Products
// -----------------------------------------------------------------------------

// migrateProduct folds the legacy single-image field into Images. Early
// releases stored one imageUrl per product; those records are rewritten on
// read so downstream code only ever sees Images.
func migrateProduct(p model.Product) model.Product {
	if p.LegacyImageURL != "" && len(p.Images) == 0 {
		p.Images = []string{p.LegacyImageURL}
	}
	p.LegacyImageURL = ""
	if p.Images == nil {
		p.Images = []string{}
	}
	return p
}

// Products returns every product across all stores, newest first.
func (s *Store) Products(ctx context.Context) ([]model.Product, error) {
	_, span := tracer.Start(ctx, "records.Products")
	defer span.End()

	var products []model.Product
	err := s.readCollection(keyProducts, &products)
	s.count("products", "list", err)
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}
	for i := range products {
		products[i] = migrateProduct(products[i])
	}
	return products, nil
}

// ProductsByStore returns the products owned by one store, newest first.
func (s *Store) ProductsByStore(ctx context.Context, storeID string) ([]model.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.StoreID == storeID {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

// ProductByID returns the product with the given id, or ErrNotFound.
func (s *Store) ProductByID(ctx context.Context, id string) (model.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return model.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// AppendProduct prepends a product to the catalog. Prepending IS the
// ordering mechanism: listings read back newest-first by insertion order,
// even when CreatedAt timestamps collide.
func (s *Store) AppendProduct(ctx context.Context, product model.Product) error {
	ctx, span := tracer.Start(ctx, "records.AppendProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", product.ID))

	products, err := s.Products(ctx)
	if err != nil {
		return err
	}
	products = append([]model.Product{migrateProduct(product)}, products...)

	err = s.writeCollection(keyProducts, products)
	s.count("products", "append", err)
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
	}
	return err
}

// DeleteProduct removes the product with the given id and rewrites the
// collection. Reviews referencing the id are left untouched; orphaned
// reviews persist by design. Returns ErrNotFound for an unknown id.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "records.DeleteProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))

	products, err := s.Products(ctx)
	if err != nil {
		return err
	}

	kept := make([]model.Product, 0, len(products))
	found := false
	for _, p := range products {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		s.count("products", "delete", ErrNotFound)
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	err = s.writeCollection(keyProducts, kept)
	s.count("products", "delete", err)
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
	}
	return err
}

// -----------------------------------------------------------------------------
// Reviews
// -----------------------------------------------------------------------------

// Reviews returns every review across all products, in storage order.
func (s *Store) Reviews(ctx context.Context) ([]model.Review, error) {
	_, span := tracer.Start(ctx, "records.Reviews")
	defer span.End()

	var reviews []model.Review
	err := s.readCollection(keyReviews, &reviews)
	s.count("reviews", "list", err)
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}
	return reviews, nil
}

// ReviewsByProduct returns the reviews for one product, newest date first.
// The sort is stable, so reviews sharing a date keep insertion order.
func (s *Store) ReviewsByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	reviews, err := s.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.ProductID == productID {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date > matched[j].Date
	})
	return matched, nil
}

// AppendReview prepends a review. Reviews are immutable once written.
func (s *Store) AppendReview(ctx context.Context, review model.Review) error {
	ctx, span := tracer.Start(ctx, "records.AppendReview")
	defer span.End()
	span.SetAttributes(attribute.String("review.id", review.ID))

	reviews, err := s.Reviews(ctx)
	if err != nil {
		return err
	}
	reviews = append([]model.Review{review}, reviews...)

	err = s.writeCollection(keyReviews, reviews)
	s.count("reviews", "append", err)
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
	}
	return err
}
