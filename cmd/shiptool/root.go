package main

import (
	"context"
	"fmt"
	"io"
	"shipping-cost-service/internal/app"
	"shipping-cost-service/internal/config"
	"shipping-cost-service/internal/platform/obs"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type env struct {
	settings config.Settings
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "shiptool",
		Short:         "Operate the shipping cost service: schema, seed data, caches and lookups",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			e.settings = config.Load(config.LoadEnv())
			obs.Init(e.settings.Env, e.settings.LogLevel)
		},
	}

	root.AddCommand(
		newMigrateCmd(e),
		newSeedCmd(e),
		newCacheCmd(e),
		newGeocodeCmd(e),
		newDistanceCmd(e),
		newQuoteCmd(e),
	)
	return root
}

// open builds the app; with needDB the database must be configured.
func (e *env) open(ctx context.Context, needDB bool) (*app.App, error) {
	a, err := app.New(ctx, e.settings)
	if err != nil {
		return nil, err
	}
	if needDB {
		if err := a.RequireDB(); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
