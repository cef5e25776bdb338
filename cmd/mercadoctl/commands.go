// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mercadogenius/mercado/services/market"
)

var (
	serverURL string
	client    *apiClient
)

var rootCmd = &cobra.Command{
	Use:   "mercadoctl",
	Short: "A cli for the local MercadoGenius marketplace server",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		client = newAPIClient(serverURL)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8950", "Base URL of the mercado server")

	rootCmd.AddCommand(storesCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(openStoreCmd)
	rootCmd.AddCommand(addProductCmd)
	rootCmd.AddCommand(deleteProductCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(describeCmd)
}

// -----------------------------------------------------------------------------
// Browsing
// -----------------------------------------------------------------------------

var (
	flagCity     string
	flagQuery    string
	flagStoreID  string
	flagCategory string
)

var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "List stores in a city, with their reputation",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp market.StoresResponse
		path := fmt.Sprintf("/v1/market/stores?city=%s&q=%s", flagCity, flagQuery)
		if err := client.get(path, &resp); err != nil {
			return err
		}
		if len(resp.Stores) == 0 {
			fmt.Println("No stores found. Did you pass --city?")
			return nil
		}
		for _, st := range resp.Stores {
			var rep market.ReputationResponse
			label := ""
			if err := client.get("/v1/market/stores/"+st.ID+"/reputation", &rep); err == nil {
				if rep.Reputation.Count == 0 {
					label = "new"
				} else {
					label = fmt.Sprintf("%.1f (%d) %s", rep.Reputation.Rating, rep.Reputation.Count, rep.Reputation.Status)
				}
			}
			fmt.Printf("%s  %-24s %-12s %s\n", st.ID, st.Name, st.City, label)
		}
		return nil
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products by city search or by store",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp market.ProductsResponse
		var err error
		if flagStoreID != "" {
			path := fmt.Sprintf("/v1/market/stores/%s/products?category=%s", flagStoreID, flagCategory)
			err = client.get(path, &resp)
		} else {
			path := fmt.Sprintf("/v1/market/products?city=%s&q=%s", flagCity, flagQuery)
			err = client.get(path, &resp)
		}
		if err != nil {
			return err
		}
		if len(resp.Products) == 0 {
			fmt.Println("No products found.")
			return nil
		}
		for _, p := range resp.Products {
			symbol := "$"
			if p.Currency == "NIO" {
				symbol = "C$"
			}
			fmt.Printf("%s  %-24s %-12s %s%.2f  %s\n", p.ID, p.Name, p.Category, symbol, p.Price, p.Brand)
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{storesCmd, productsCmd} {
		cmd.Flags().StringVar(&flagCity, "city", "", "City to browse (required for city searches)")
		cmd.Flags().StringVar(&flagQuery, "q", "", "Free-text search term")
	}
	productsCmd.Flags().StringVar(&flagStoreID, "store", "", "List one store's products instead")
	productsCmd.Flags().StringVar(&flagCategory, "category", "", "Filter a store listing by category")
}

// -----------------------------------------------------------------------------
// Seller operations
// -----------------------------------------------------------------------------

var openStoreIn market.OpenStoreRequest

var openStoreCmd = &cobra.Command{
	Use:   "open-store",
	Short: "Register a store and log in as its seller",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp market.StoreResponse
		if err := client.post("/v1/market/stores", openStoreIn, &resp); err != nil {
			return err
		}
		fmt.Printf("Store opened: %s (%s)\nYou are now logged in.\n", resp.Store.Name, resp.Store.ID)
		return nil
	},
}

var addProductIn market.AddProductRequest

var addProductCmd = &cobra.Command{
	Use:   "add-product",
	Short: "Publish a product on the logged-in store",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addProductIn.StoreID == "" {
			var session market.SessionResponse
			if err := client.get("/v1/market/session", &session); err != nil {
				return fmt.Errorf("no store given and no seller logged in: %w", err)
			}
			addProductIn.StoreID = session.StoreID
		}
		var resp market.ProductResponse
		if err := client.post("/v1/market/products", addProductIn, &resp); err != nil {
			return err
		}
		fmt.Printf("Product published: %s (%s)\n", resp.Product.Name, resp.Product.ID)
		return nil
	},
}

var deleteYes bool

var deleteProductCmd = &cobra.Command{
	Use:   "delete-product [product-id]",
	Short: "Delete a product listing (asks for confirmation)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if !deleteYes {
			if !confirm(fmt.Sprintf("Delete product %s? This cannot be undone", id)) {
				fmt.Println("Aborted.")
				return nil
			}
		}
		if err := client.delete("/v1/market/products/" + id); err != nil {
			return err
		}
		fmt.Println("Product deleted. Its reviews remain on record.")
		return nil
	},
}

var reviewIn market.AddReviewRequest

var reviewCmd = &cobra.Command{
	Use:   "review [product-id]",
	Short: "Leave a rating and comment on a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp market.ReviewResponse
		if err := client.post("/v1/market/products/"+args[0]+"/reviews", reviewIn, &resp); err != nil {
			return err
		}
		fmt.Printf("Review recorded (%d/5).\n", resp.Review.Rating)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in seller's store",
	RunE: func(cmd *cobra.Command, args []string) error {
		var session market.SessionResponse
		if err := client.get("/v1/market/session", &session); err != nil {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("%s (%s) — %s, %s\n", session.Store.Name, session.StoreID, session.Store.City, session.Store.OwnerName)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log the seller out (store data persists)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.delete("/v1/market/session"); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var describeHints string

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Generate AI listing copy for a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := market.DescribeRequest{
			Name:  addProductIn.Name,
			Brand: addProductIn.Brand,
			Hints: describeHints,
		}
		var resp market.DescribeResponse
		if err := client.post("/v1/market/ai/describe", req, &resp); err != nil {
			return err
		}
		fmt.Printf("Suggested category: %s\n\n%s\n", resp.SuggestedCategory, resp.Description)
		return nil
	},
}

func init() {
	openStoreCmd.Flags().BoolVar(&openStoreIn.Personal, "personal", false, "Personal mode (name synthesized from owner)")
	openStoreCmd.Flags().StringVar(&openStoreIn.Name, "name", "", "Store name (required for business mode)")
	openStoreCmd.Flags().StringVar(&openStoreIn.OwnerName, "owner", "", "Owner name (required)")
	openStoreCmd.Flags().StringVar(&openStoreIn.Description, "description", "", "Store description")
	openStoreCmd.Flags().StringVar(&openStoreIn.City, "city", "", "City (required)")
	openStoreCmd.Flags().StringVar(&openStoreIn.Address, "address", "", "Street address")

	addProductCmd.Flags().StringVar(&addProductIn.StoreID, "store", "", "Store id (defaults to the logged-in store)")
	addProductCmd.Flags().StringVar(&addProductIn.Name, "name", "", "Product name (required)")
	addProductCmd.Flags().StringVar(&addProductIn.Brand, "brand", "", "Brand")
	addProductCmd.Flags().Float64Var(&addProductIn.Price, "price", 0, "Price (required, non-negative)")
	addProductCmd.Flags().StringVar(&addProductIn.Currency, "currency", "USD", "Currency: USD or NIO")
	addProductCmd.Flags().StringVar(&addProductIn.Size, "size", "", "Size")
	addProductCmd.Flags().StringVar(&addProductIn.Category, "category", "", "Category")
	addProductCmd.Flags().StringVar(&addProductIn.Description, "description", "", "Description")

	deleteProductCmd.Flags().BoolVar(&deleteYes, "yes", false, "Skip the confirmation prompt")

	reviewCmd.Flags().StringVar(&reviewIn.Author, "author", "", "Reviewer name (required)")
	reviewCmd.Flags().IntVar(&reviewIn.Rating, "rating", 0, "Rating 1-5 (required)")
	reviewCmd.Flags().StringVar(&reviewIn.Comment, "comment", "", "Comment")

	describeCmd.Flags().StringVar(&addProductIn.Name, "name", "", "Product name (required)")
	describeCmd.Flags().StringVar(&addProductIn.Brand, "brand", "", "Brand")
	describeCmd.Flags().StringVar(&describeHints, "hints", "", "Freeform details to feed the generator")
}

// confirm asks a y/N question on the terminal. Without a TTY the answer is
// no: destructive operations in scripts must pass --yes explicitly.
func confirm(question string) bool {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		fmt.Println("stdin is not a terminal; re-run with --yes to confirm")
		return false
	}
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
