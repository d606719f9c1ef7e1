package main

import (
	"fmt"
	"shipping-cost-service/internal/adapters/cache"
	"shipping-cost-service/internal/adapters/repositories"
	"strings"

	"github.com/spf13/cobra"
)

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := e.open(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := repositories.InitSchema(ctx, a.DB); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema ready.")
			return nil
		},
	}
}

func newSeedCmd(e *env) *cobra.Command {
	var (
		file    string
		geocode bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load stores and shipping rules from a JSON file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := e.open(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := repositories.InitSchema(ctx, a.DB); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}
			if err := repositories.SeedFromJSON(ctx, a.DB, file); err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Seeding complete.")

			if !geocode {
				return nil
			}

			stores, err := a.Stores.ListActiveStores(ctx)
			if err != nil {
				return err
			}
			for _, s := range stores {
				if s.Coordinates != nil {
					continue
				}
				res, err := a.Resolver.Resolve(ctx, s.Address)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "store %d (%s): %v\n", s.ID, s.Address, err)
					continue
				}
				if err := a.Stores.UpdateCoordinates(ctx, s.ID, res.Coordinates); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "store %d geocoded to %.6f,%.6f\n", s.ID, res.Coordinates.Lat, res.Coordinates.Lon)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "data/seeds/shipping.json", "seed file")
	cmd.Flags().BoolVar(&geocode, "geocode", false, "resolve coordinates for stores that have none")
	return cmd
}

func newCacheCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Cache maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete expired cache entries (postgres backend)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend := strings.ToLower(e.settings.CacheBackend)
			if backend != "postgres" && backend != "sql" {
				fmt.Fprintf(cmd.OutOrStdout(), "backend %q expires entries on its own; nothing to purge\n", e.settings.CacheBackend)
				return nil
			}

			ctx := cmd.Context()
			a, err := e.open(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := cache.NewSQLStore(a.DB).PurgeExpired(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired entries\n", n)
			return nil
		},
	})
	return cmd
}
