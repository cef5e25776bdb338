// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mercadogenius/mercado/services/market/model"
)

// Fixed chat fallbacks. The buyer chat path never surfaces an error.
const (
	emptyAnswerFallback = "Lo siento, no pude procesar tu pregunta en este momento."
	errorAnswerFallback = "Hubo un error conectando con el asistente virtual."
)

// Suggestion is the structured output of listing-copy generation.
type Suggestion struct {
	Description       string `json:"description"`
	SuggestedCategory string `json:"suggestedCategory"`
}

// Bridge formats prompts and parses responses for the two marketplace AI
// capabilities: listing-copy generation and the buyer sales assistant.
type Bridge struct {
	llm    LLMClient
	logger *slog.Logger
}

// NewBridge creates a bridge over a text-generation backend.
func NewBridge(llm LLMClient, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{llm: llm, logger: logger}
}

// GenerateListingCopy asks the model for a sales description and a category
// suggestion for a product being listed.
//
// On any failure (transport, empty output, unparseable JSON) an error is
// returned and the caller keeps its prior form values untouched. The
// suggested category is not validated here; callers fall back to Otro for
// unknown values.
func (b *Bridge) GenerateListingCopy(ctx context.Context, name, brand, hints string) (*Suggestion, error) {
	categories := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		categories = append(categories, string(c))
	}

	var sb strings.Builder
	sb.WriteString("Actúa como un experto en marketing de moda y comercio electrónico.\n")
	sb.WriteString("Genera una descripción atractiva y persuasiva para un producto, y sugiere la categoría más apropiada.\n\n")
	fmt.Fprintf(&sb, "Producto: %s\n", name)
	fmt.Fprintf(&sb, "Marca: %s\n", brand)
	fmt.Fprintf(&sb, "Detalles adicionales: %s\n\n", hints)
	fmt.Fprintf(&sb, "Categorías permitidas: %s.\n\n", strings.Join(categories, ", "))
	sb.WriteString("Responde únicamente con un objeto JSON con los campos ")
	sb.WriteString(`"description" (descripción de ventas, máximo 300 caracteres) y `)
	sb.WriteString(`"suggestedCategory" (una categoría de la lista permitida).`)

	raw, err := b.llm.Generate(ctx, sb.String(), GenerationParams{})
	if err != nil {
		b.logger.Warn("listing copy generation failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("generate listing copy: %w", err)
	}

	suggestion, err := parseSuggestion(raw)
	if err != nil {
		b.logger.Warn("listing copy response unparseable", slog.String("error", err.Error()))
		return nil, err
	}
	return suggestion, nil
}

// parseSuggestion decodes the model's JSON object, tolerating markdown code
// fences and surrounding prose.
func parseSuggestion(raw string) (*Suggestion, error) {
	text := strings.TrimSpace(raw)
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			text = text[start : end+1]
		}
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return nil, fmt.Errorf("parse suggestion: %w", err)
	}
	if s.Description == "" {
		return nil, fmt.Errorf("parse suggestion: empty description")
	}
	return &s, nil
}

// AnswerBuyerQuestion answers a buyer's question about a product, speaking
// as the store's virtual sales assistant.
//
// This path never returns an error: transport failures yield a fixed
// apology string and an empty model response yields a fixed "could not
// process" string.
func (b *Bridge) AnswerBuyerQuestion(ctx context.Context, product model.Product, question, storeName string) string {
	symbol := "$"
	if product.Currency == model.CurrencyNIO {
		symbol = "C$"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Eres un asistente de ventas virtual experto y amable para la tienda %q.\n", storeName)
	sb.WriteString("Un cliente está haciendo una pregunta sobre el siguiente producto:\n\n")
	fmt.Fprintf(&sb, "Nombre: %s\n", product.Name)
	fmt.Fprintf(&sb, "Marca: %s\n", product.Brand)
	fmt.Fprintf(&sb, "Precio: %s%g\n", symbol, product.Price)
	fmt.Fprintf(&sb, "Talla: %s\n", product.Size)
	fmt.Fprintf(&sb, "Descripción: %s\n", product.Description)
	fmt.Fprintf(&sb, "Categoría: %s\n\n", product.Category)
	fmt.Fprintf(&sb, "Pregunta del cliente: %q\n\n", question)
	sb.WriteString("Responde de manera concisa, útil y orientada a cerrar la venta. ")
	sb.WriteString("Si la pregunta es sobre stock o envíos, inventa una respuesta positiva estándar (ej: envíos a todo el país). ")
	sb.WriteString("Usa un tono amigable y profesional. Máximo 3 oraciones.")

	answer, err := b.llm.Generate(ctx, sb.String(), GenerationParams{})
	if err != nil {
		b.logger.Warn("buyer question failed", slog.String("error", err.Error()))
		return errorAnswerFallback
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return emptyAnswerFallback
	}
	return answer
}
