// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package market

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all marketplace routes with the router group.
//
// Endpoints:
//
//	GET    /v1/market/health
//	POST   /v1/market/stores                 open a store (logs the seller in)
//	GET    /v1/market/stores?city=&q=        stores in a city matching a search
//	GET    /v1/market/stores/:id
//	GET    /v1/market/stores/:id/reputation
//	GET    /v1/market/stores/:id/products?category=
//	GET    /v1/market/products?city=&q=      products in a city, newest first
//	POST   /v1/market/products
//	DELETE /v1/market/products/:id
//	GET    /v1/market/products/:id/reviews
//	POST   /v1/market/products/:id/reviews
//	POST   /v1/market/products/:id/ask       buyer chat (AI)
//	GET    /v1/market/session                active seller, 404 when logged out
//	DELETE /v1/market/session                logout
//	POST   /v1/market/ai/describe            listing copy generation (AI)
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	m := rg.Group("/market")

	m.GET("/health", handlers.HandleHealth)

	m.POST("/stores", handlers.HandleOpenStore)
	m.GET("/stores", handlers.HandleListStores)
	m.GET("/stores/:id", handlers.HandleGetStore)
	m.GET("/stores/:id/reputation", handlers.HandleStoreReputation)
	m.GET("/stores/:id/products", handlers.HandleStoreProducts)

	m.GET("/products", handlers.HandleListProducts)
	m.POST("/products", handlers.HandleAddProduct)
	m.DELETE("/products/:id", handlers.HandleDeleteProduct)
	m.GET("/products/:id/reviews", handlers.HandleListReviews)
	m.POST("/products/:id/reviews", handlers.HandleAddReview)
	m.POST("/products/:id/ask", handlers.HandleAsk)

	m.GET("/session", handlers.HandleSession)
	m.DELETE("/session", handlers.HandleLogout)

	m.POST("/ai/describe", handlers.HandleDescribe)
}
