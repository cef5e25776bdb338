// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package market exposes the marketplace engine over a local HTTP API.
//
// The API is single-user and meant for the browser UI running on the same
// machine. UI events call lifecycle and query endpoints, which read and
// write the record store and return the derived collections synchronously;
// there are no background jobs and no event queue.
package market

import (
	"log/slog"

	"github.com/mercadogenius/mercado/services/assistant"
	"github.com/mercadogenius/mercado/services/market/catalog"
	"github.com/mercadogenius/mercado/services/market/lifecycle"
	"github.com/mercadogenius/mercado/services/market/records"
	"github.com/mercadogenius/mercado/services/market/reputation"
)

// ServiceVersion is the marketplace service version.
const ServiceVersion = "0.1.0"

// Service bundles the marketplace components over one record store.
type Service struct {
	Records    *records.Store
	Catalog    *catalog.Engine
	Reputation *reputation.Aggregator
	Lifecycle  *lifecycle.Manager

	bridge *assistant.Bridge
	logger *slog.Logger
}

// NewService wires the engine components over the given record store.
func NewService(store *records.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Records:    store,
		Catalog:    catalog.New(store),
		Reputation: reputation.New(store),
		Lifecycle:  lifecycle.New(store, logger),
		logger:     logger,
	}
}

// WithAssistant enables the AI endpoints. Without it, description
// generation and buyer chat report the assistant as unavailable.
func (s *Service) WithAssistant(bridge *assistant.Bridge) *Service {
	s.bridge = bridge
	return s
}

// AssistantEnabled reports whether an AI bridge is configured.
func (s *Service) AssistantEnabled() bool {
	return s.bridge != nil
}
