package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"instatory/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect cataloged products",
	}

	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))

	return catalogCmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cataloged products",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			products, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(products) == 0 {
				fmt.Fprintln(out, "Catalog is empty")
				return nil
			}

			headers := []string{"ID", "Name", "Category", "Import", "Retail", "Image"}
			rows := make([][]string, 0, len(products))
			for _, product := range products {
				rows = append(rows, []string{
					strconv.FormatInt(product.ID, 10),
					product.Name,
					product.Category,
					formatPrice(product.ImportCost),
					formatPrice(product.RetailPrice),
					product.ImageURL,
				})
			}
			aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft}
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			fmt.Fprintf(out, "%d product(s)\n", len(products))
			return nil
		},
	}
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one cataloged product in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			product, err := store.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("no product with id %d", id)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:           %d\n", product.ID)
			fmt.Fprintf(out, "Name:         %s\n", product.Name)
			fmt.Fprintf(out, "Category:     %s\n", product.Category)
			fmt.Fprintf(out, "Material:     %s\n", product.Material)
			fmt.Fprintf(out, "Color:        %s\n", product.Color)
			fmt.Fprintf(out, "Dimensions:   %s\n", product.Dimensions)
			fmt.Fprintf(out, "Origin:       %s\n", product.OriginSource)
			fmt.Fprintf(out, "Import cost:  %s\n", formatPrice(product.ImportCost))
			fmt.Fprintf(out, "Retail price: %s\n", formatPrice(product.RetailPrice))
			fmt.Fprintf(out, "Key tags:     %s\n", product.KeyTags)
			fmt.Fprintf(out, "Image:        %s\n", product.ImageURL)
			if !product.CreatedAt.IsZero() {
				fmt.Fprintf(out, "Cataloged:    %s\n", product.CreatedAt.Format("2006-01-02 15:04:05 MST"))
			}
			fmt.Fprintf(out, "Description:\n%s\n", product.Description)
			return nil
		},
	}
}

func formatPrice(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("$%.2f", *value)
}
