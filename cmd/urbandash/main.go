// Command urbandash serves the urban data dashboard and checks its assets.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/urbandash"
	"github.com/eringen/urbandash/manifest"
	"github.com/eringen/urbandash/nav"
	"github.com/eringen/urbandash/planner"
)

// version is set at build time via ldflags.
var version = "dev"

// errMissingAssets makes `check --strict` exit non-zero.
var errMissingAssets = errors.New("missing assets")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "urbandash",
		Short:         "Dashboard of air-quality and Metro-usage charts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (yaml, toml or json)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := urbandash.LoadConfig(configPath)
			if err != nil {
				return err
			}
			logger, err := urbandash.NewLogger(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			app := urbandash.New(cfg, urbandash.WithLogger(logger))
			defer func() {
				if err := app.Close(); err != nil {
					logger.Warn("close", zap.Error(err))
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx)
		},
	}

	var strict bool
	check := &cobra.Command{
		Use:   "check",
		Short: "Plan every page and report missing assets",
		Long: `Plans every dashboard page against the configured asset root and
prints one line per asset. With --strict the command fails when any asset
is missing, which suits a deploy pipeline.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := urbandash.LoadConfig(configPath)
			if err != nil {
				return err
			}
			return runCheck(cmd.OutOrStdout(), cfg, strict)
		},
	}
	check.Flags().BoolVar(&strict, "strict", false, "fail when any asset is missing")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the urbandash version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "urbandash %s\n", version)
		},
	}

	root.AddCommand(serve, check, versionCmd)
	root.SetContext(context.Background())
	return root
}

func runCheck(w io.Writer, cfg urbandash.Config, strict bool) error {
	m := manifest.Default()
	if cfg.ManifestPath != "" {
		loaded, err := manifest.LoadFile(cfg.ManifestPath)
		if err != nil {
			return err
		}
		m = loaded
	}
	p := planner.New(m, cfg.AssetRoot)

	missing := 0
	for _, id := range nav.Pages() {
		plan, err := p.Plan(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s (%d assets)\n", id.Label(), len(plan.Blocks))
		for _, b := range plan.Blocks {
			switch v := b.(type) {
			case planner.Present:
				fmt.Fprintf(w, "  ok       %s\n", v.Path)
			case planner.Missing:
				missing++
				fmt.Fprintf(w, "  missing  %s\n", v.AttemptedPath)
			}
		}
	}
	fmt.Fprintf(w, "%d missing\n", missing)
	if strict && missing > 0 {
		return fmt.Errorf("%w: %d", errMissingAssets, missing)
	}
	return nil
}
