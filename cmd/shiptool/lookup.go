package main

import (
	"fmt"
	"os"
	"shipping-cost-service/internal/domain"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newGeocodeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "geocode <address>",
		Short: "Resolve an address to coordinates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := e.open(ctx, false)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Resolver.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newDistanceCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "distance <origin> <destination>",
		Short: "Compute the shipping distance between two addresses",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := e.open(ctx, false)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Calculator.Distance(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newQuoteCmd(e *env) *cobra.Command {
	var (
		destination string
		itemsFile   string
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price an order against the active shipping rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := readItems(itemsFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := e.open(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			q, err := a.Quotes.Quote(ctx, domain.OrderSnapshot{Destination: destination, Items: items})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), q)
		},
	}

	cmd.Flags().StringVar(&destination, "destination", "", "delivery address")
	cmd.Flags().StringVar(&itemsFile, "items", "", "JSON file with an array of line items")
	_ = cmd.MarkFlagRequired("destination")
	return cmd
}

func readItems(path string) ([]domain.LineItem, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	var items []domain.LineItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("parse items %q: %w", path, err)
	}
	return items, nil
}
