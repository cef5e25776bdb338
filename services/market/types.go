// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package market

import (
	"github.com/mercadogenius/mercado/services/market/model"
	"github.com/mercadogenius/mercado/services/market/reputation"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// OpenStoreRequest is the seller signup body.
type OpenStoreRequest struct {
	Personal    bool   `json:"personal"`
	Name        string `json:"name"`
	OwnerName   string `json:"ownerName"`
	Description string `json:"description"`
	City        string `json:"city"`
	Address     string `json:"address"`
	ThemeColor  string `json:"themeColor"`
	MapURL      string `json:"mapUrl"`
	BannerURL   string `json:"bannerUrl"`
	LogoURL     string `json:"logoUrl"`
}

// StoresResponse lists store profiles in storage order.
type StoresResponse struct {
	Stores []model.StoreProfile `json:"stores"`
}

// StoreResponse carries one store profile.
type StoreResponse struct {
	Store model.StoreProfile `json:"store"`
}

// ReputationResponse carries a store's aggregated reputation.
type ReputationResponse struct {
	StoreID    string            `json:"storeId"`
	Reputation reputation.Result `json:"reputation"`
}

// AddProductRequest is the product listing body.
type AddProductRequest struct {
	StoreID     string   `json:"storeId"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Size        string   `json:"size"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// ProductsResponse lists products, newest first.
type ProductsResponse struct {
	Products []model.Product `json:"products"`
}

// ProductResponse carries one product.
type ProductResponse struct {
	Product model.Product `json:"product"`
}

// AddReviewRequest is the buyer review body.
type AddReviewRequest struct {
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewsResponse lists reviews, newest date first.
type ReviewsResponse struct {
	Reviews []model.Review `json:"reviews"`
}

// ReviewResponse carries one review.
type ReviewResponse struct {
	Review model.Review `json:"review"`
}

// SessionResponse carries the logged-in seller's store.
type SessionResponse struct {
	StoreID string             `json:"storeId"`
	Store   model.StoreProfile `json:"store"`
}

// DescribeRequest asks the assistant for listing copy.
type DescribeRequest struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Hints string `json:"hints"`
}

// DescribeResponse is the assistant's listing suggestion.
type DescribeResponse struct {
	Description       string `json:"description"`
	SuggestedCategory string `json:"suggestedCategory"`
}

// AskRequest is a buyer question about a product.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the assistant's answer. Always present: the chat path
// degrades to a fixed apology string instead of failing.
type AskResponse struct {
	Answer string `json:"answer"`
}
