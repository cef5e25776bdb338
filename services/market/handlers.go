// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package market

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mercadogenius/mercado/pkg/validation"
	"github.com/mercadogenius/mercado/services/market/lifecycle"
	"github.com/mercadogenius/mercado/services/market/model"
	"github.com/mercadogenius/mercado/services/market/records"
)

// storageFullMessage is the user-facing warning shown when a persistence
// write fails. The record is lost; there is no retry.
const storageFullMessage = "¡Almacenamiento lleno! Intenta borrar productos antiguos o subir imágenes menos pesadas."

// Handlers contains the HTTP handlers for the marketplace API.
type Handlers struct {
	svc *Service
}

// NewHandlers creates handlers for the given service.
func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc}
}

func getOrCreateRequestID(c *gin.Context) string {
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}

// writeError translates engine errors to the uniform error body.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, validation.ErrInvalid):
		logger.Warn("Invalid input", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_INPUT"})
	case errors.Is(err, records.ErrNotFound):
		logger.Warn("Record not found", "error", err)
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "NOT_FOUND"})
	case errors.Is(err, records.ErrWriteFailed):
		logger.Error("Storage write failed", "error", err)
		c.JSON(http.StatusInsufficientStorage, ErrorResponse{Error: storageFullMessage, Code: "STORAGE_FULL"})
	default:
		logger.Error("Request failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "INTERNAL"})
	}
}

// HandleHealth handles GET /v1/market/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Version: ServiceVersion})
}

// HandleOpenStore handles POST /v1/market/stores.
//
// Registers a store profile. Opening a store also logs the seller in.
func (h *Handlers) HandleOpenStore(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleOpenStore")

	var req OpenStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	store, err := h.svc.Lifecycle.OpenStore(c.Request.Context(), lifecycle.OpenStoreInput{
		Personal:    req.Personal,
		Name:        req.Name,
		OwnerName:   req.OwnerName,
		Description: req.Description,
		City:        req.City,
		Address:     req.Address,
		ThemeColor:  req.ThemeColor,
		MapURL:      req.MapURL,
		BannerURL:   req.BannerURL,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		writeError(c, logger, err)
		return
	}

	logger.Info("Store opened", "store_id", store.ID)
	c.JSON(http.StatusCreated, StoreResponse{Store: store})
}

// HandleListStores handles GET /v1/market/stores?city=&q=.
//
// With no city selected the result is empty by design: the buyer flow
// forces a city selection first.
func (h *Handlers) HandleListStores(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleListStores")

	stores, err := h.svc.Catalog.StoresByCity(c.Request.Context(), c.Query("city"), c.Query("q"))
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, StoresResponse{Stores: stores})
}

// HandleGetStore handles GET /v1/market/stores/:id.
func (h *Handlers) HandleGetStore(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleGetStore")

	store, err := h.svc.Records.StoreByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, StoreResponse{Store: store})
}

// HandleStoreReputation handles GET /v1/market/stores/:id/reputation.
//
// The aggregate is recomputed from the full review set on every call.
func (h *Handlers) HandleStoreReputation(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleStoreReputation")

	storeID := c.Param("id")
	result, err := h.svc.Reputation.ForStore(c.Request.Context(), storeID)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, ReputationResponse{StoreID: storeID, Reputation: result})
}

// HandleStoreProducts handles GET /v1/market/stores/:id/products?category=.
func (h *Handlers) HandleStoreProducts(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleStoreProducts")

	products, err := h.svc.Catalog.ProductsByStore(c.Request.Context(), c.Param("id"), model.Category(c.Query("category")))
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, ProductsResponse{Products: products})
}

// HandleListProducts handles GET /v1/market/products?city=&q=.
func (h *Handlers) HandleListProducts(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleListProducts")

	products, err := h.svc.Catalog.ProductsByCity(c.Request.Context(), c.Query("city"), c.Query("q"))
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, ProductsResponse{Products: products})
}

// HandleAddProduct handles POST /v1/market/products.
func (h *Handlers) HandleAddProduct(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleAddProduct")

	var req AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	product, err := h.svc.Lifecycle.AddProduct(c.Request.Context(), lifecycle.AddProductInput{
		StoreID:     req.StoreID,
		Name:        req.Name,
		Brand:       req.Brand,
		Price:       req.Price,
		Currency:    req.Currency,
		Size:        req.Size,
		Category:    model.Category(req.Category),
		Description: req.Description,
		Images:      req.Images,
	})
	if err != nil {
		writeError(c, logger, err)
		return
	}

	logger.Info("Product listed", "product_id", product.ID, "store_id", product.StoreID)
	c.JSON(http.StatusCreated, ProductResponse{Product: product})
}

// HandleDeleteProduct handles DELETE /v1/market/products/:id.
//
// The explicit yes/no confirmation lives at the input surface (the UI's
// confirm dialog, mercadoctl's prompt); the API deletes unconditionally.
// Reviews referencing the product are not cleaned up.
func (h *Handlers) HandleDeleteProduct(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleDeleteProduct")

	if err := h.svc.Lifecycle.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleListReviews handles GET /v1/market/products/:id/reviews.
//
// Reviews come back newest date first. The product is not required to
// exist: orphaned reviews of deleted products remain readable.
func (h *Handlers) HandleListReviews(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleListReviews")

	reviews, err := h.svc.Records.ReviewsByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, ReviewsResponse{Reviews: reviews})
}

// HandleAddReview handles POST /v1/market/products/:id/reviews.
func (h *Handlers) HandleAddReview(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleAddReview")

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	review, err := h.svc.Lifecycle.AddReview(c.Request.Context(), lifecycle.AddReviewInput{
		ProductID: c.Param("id"),
		Author:    req.Author,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, ReviewResponse{Review: review})
}

// HandleSession handles GET /v1/market/session.
//
// Returns 404 when no seller is logged in.
func (h *Handlers) HandleSession(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleSession")

	store, err := h.svc.Lifecycle.ActiveStore(c.Request.Context())
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{StoreID: store.ID, Store: store})
}

// HandleLogout handles DELETE /v1/market/session.
//
// Clears only the active-session marker; all data persists.
func (h *Handlers) HandleLogout(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleLogout")

	if err := h.svc.Lifecycle.Logout(c.Request.Context()); err != nil {
		writeError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleDescribe handles POST /v1/market/ai/describe.
//
// On assistant failure the caller receives 503 and keeps its prior form
// values untouched; nothing is persisted by this endpoint.
func (h *Handlers) HandleDescribe(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleDescribe")

	if !h.svc.AssistantEnabled() {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "assistant not configured", Code: "ASSISTANT_UNAVAILABLE"})
		return
	}

	var req DescribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required", Code: "INVALID_INPUT"})
		return
	}

	suggestion, err := h.svc.bridge.GenerateListingCopy(c.Request.Context(), req.Name, req.Brand, req.Hints)
	if err != nil {
		logger.Warn("Listing copy generation failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "no suggestion available", Code: "ASSISTANT_FAILED"})
		return
	}

	c.JSON(http.StatusOK, DescribeResponse{
		Description:       suggestion.Description,
		SuggestedCategory: suggestion.SuggestedCategory,
	})
}

// HandleAsk handles POST /v1/market/products/:id/ask.
//
// The chat path never fails once the product resolves: assistant errors
// degrade to a fixed apology string with status 200.
func (h *Handlers) HandleAsk(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleAsk")

	if !h.svc.AssistantEnabled() {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "assistant not configured", Code: "ASSISTANT_UNAVAILABLE"})
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	product, err := h.svc.Records.ProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, logger, err)
		return
	}

	storeName := ""
	if store, err := h.svc.Records.StoreByID(c.Request.Context(), product.StoreID); err == nil {
		storeName = store.Name
	}

	answer := h.svc.bridge.AnswerBuyerQuestion(c.Request.Context(), product, req.Question, storeName)
	c.JSON(http.StatusOK, AskResponse{Answer: answer})
}
