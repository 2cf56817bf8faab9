package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"cart3d/internal/assets"
	"cart3d/internal/cart"
	"cart3d/internal/config"
	"cart3d/internal/ui"

	"github.com/spf13/cobra"
)

type options struct {
	config string
	assets string
	db     string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "cart3d",
		Short: "Shopping cart with a 3D product viewer",
		Long: `Open the shopping cart window. Each cart item shows a live 3D view of
its material; the cart is kept in a SQLite database that is reset to the
demo products on every start.

Example:
  cart3d
  cart3d --config cart3d.yaml --db /tmp/cart.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.config, "config", "", "YAML config file (defaults when empty)")
	cmd.Flags().StringVar(&opts.assets, "assets", "", "asset bundle directory, overrides the config")
	cmd.Flags().StringVar(&opts.db, "db", "", "SQLite database path, overrides the config")

	return cmd
}

func loadConfig(opts *options, cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(opts.config)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("assets") {
		cfg.AssetRoot = opts.assets
	}
	if cmd.Flags().Changed("db") {
		cfg.DatabasePath = opts.db
	}
	return cfg, cfg.Validate()
}

func run(parent context.Context, opts *options, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts, cmd)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := cart.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Cart: close: %v", err)
		}
	}()

	writer := cart.NewWriter(store, nil)
	defer writer.Close()
	writer.Reset(cart.SeedProducts()...)

	log.Printf("Cart: %s, assets in %s", cfg.DatabasePath, cfg.AssetRoot)
	return ui.New(cfg, assets.Open(cfg.AssetRoot), store, writer).Run(ctx)
}

func main() {
	// Resolve relative asset and database paths next to deployed builds.
	// "go run" binaries live in a temp go-build directory and are skipped.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "cart3d:", err)
		os.Exit(1)
	}
}
