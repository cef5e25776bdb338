// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package assistant is the AI text bridge: it formats marketplace prompts,
// invokes an external text-generation service and parses the structured or
// free-text responses.
//
// The bridge never retries and never caches. Failures degrade: listing-copy
// generation returns an error the caller absorbs by keeping prior form
// values, and the buyer chat path returns a fixed apology string instead of
// propagating errors.
package assistant

import "context"

// GenerationParams are optional sampling knobs for a generation call.
type GenerationParams struct {
	Temperature *float32
	TopP        *float32
	MaxTokens   *int
	Stop        []string
}

// LLMClient is the interface any text-generation backend must satisfy.
type LLMClient interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}
