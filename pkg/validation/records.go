// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides input validation for marketplace records.
//
// Required fields are enforced here at the data layer, not just at the
// input surface: lifecycle operations reject records that are missing
// required fields or that carry values outside the closed enums (city,
// category, currency, rating range).
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mercadogenius/mercado/services/market/model"
)

// ErrInvalid marks validation failures so callers can translate them to
// user-facing input errors without string matching.
var ErrInvalid = errors.New("invalid input")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Closed-enum validators for record fields. Registration cannot fail
	// for non-nil funcs, so errors are ignored.
	_ = v.RegisterValidation("city", func(fl validator.FieldLevel) bool {
		return model.ValidCity(fl.Field().String())
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return model.Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		c := fl.Field().String()
		return c == model.CurrencyUSD || c == model.CurrencyNIO
	})

	return v
}

// Struct validates a tagged struct and returns a single flattened error
// naming every failed field, or nil when the value is valid.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(parts, "; "))
}

// describe renders one field error in user-facing terms.
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "city":
		return fmt.Sprintf("%s must be one of the supported cities", fe.Field())
	case "category":
		return fmt.Sprintf("%s must be a known product category", fe.Field())
	case "currency":
		return fmt.Sprintf("%s must be USD or NIO", fe.Field())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
