// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package model defines the record shapes shared by the marketplace engine.
//
// All records are plain values with no cyclic references. They serialize to
// JSON losslessly; the serialized collections are the persistence format of
// the record store.
package model

// Currency codes accepted on product listings.
const (
	CurrencyUSD = "USD"
	CurrencyNIO = "NIO"
)

// Category is the closed set of product categories.
type Category string

const (
	CategoryCamisas    Category = "Camisas"
	CategoryPantalones Category = "Pantalones"
	CategoryZapatos    Category = "Zapatos"
	CategoryAccesorios Category = "Accesorios"
	CategoryDeportivo  Category = "Ropa Deportiva"
	CategoryVestidos   Category = "Vestidos"
	CategoryChaquetas  Category = "Chaquetas"
	CategoryOtro       Category = "Otro"
)

// Categories lists every valid category, in display order.
func Categories() []Category {
	return []Category{
		CategoryCamisas,
		CategoryPantalones,
		CategoryZapatos,
		CategoryAccesorios,
		CategoryDeportivo,
		CategoryVestidos,
		CategoryChaquetas,
		CategoryOtro,
	}
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Cities is the fixed list of cities a store can register under.
var Cities = []string{
	"Managua",
	"León",
	"Granada",
	"Estelí",
	"Matagalpa",
	"Chinandega",
	"Masaya",
	"Rivas",
	"Jinotega",
	"Bluefields",
}

// ValidCity reports whether city is on the fixed city list.
func ValidCity(city string) bool {
	for _, c := range Cities {
		if c == city {
			return true
		}
	}
	return false
}

// StoreProfile is a seller's profile and product catalog container.
//
// A profile is mutated only by full-record replace-by-id and is never
// deleted in-app.
type StoreProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerName   string `json:"ownerName"`
	ThemeColor  string `json:"themeColor,omitempty"`
	City        string `json:"city"`
	Address     string `json:"address"`
	MapURL      string `json:"mapUrl,omitempty"`
	BannerURL   string `json:"bannerUrl,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
	IsPersonal  bool   `json:"isPersonal,omitempty"`
}

// Product is an item listed for sale, owned by exactly one store.
//
// Products are created and deleted but never edited in place. Display order
// is insertion order (newest first), maintained by the record store itself;
// CreatedAt is informational and is not trusted as a sort key.
type Product struct {
	ID          string   `json:"id"`
	StoreID     string   `json:"storeId"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Size        string   `json:"size"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	// Images holds encoded image strings; the first entry is the cover.
	Images    []string `json:"images"`
	CreatedAt int64    `json:"createdAt"`

	// LegacyImageURL carries the single-image field written by early
	// releases. It is folded into Images on read and never written back.
	LegacyImageURL string `json:"imageUrl,omitempty"`
}

// Review is a buyer-submitted rating tied to one product. Reviews are
// immutable and survive deletion of the product they reference.
type Review struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Date      int64  `json:"date"`
}
