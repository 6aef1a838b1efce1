package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/weblarek/larek/internal/config"
	"github.com/weblarek/larek/internal/shop"
	"github.com/weblarek/larek/internal/shopserver"
)

var stubFixtures string

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Serve a local stand-in for the shop API",
	Long: `Serve GET /product/ and POST /order on stub.addr using built-in
products, or the products in the YAML file given with --fixtures.

Point the storefront at it with --api-url or LAREK_API_URL.`,
	Args: cobra.NoArgs,
	RunE: runStub,
}

func init() {
	rootCmd.AddCommand(stubCmd)
	stubCmd.Flags().StringVar(&stubFixtures, "fixtures", "", "YAML file with products")
	stubCmd.Flags().String("addr", "", "listen address (overrides stub.addr)")
}

func runStub(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Stub.Addr = addr
	}

	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer logger.Close()

	products, err := loadFixtures(stubFixtures)
	if err != nil {
		return err
	}

	srv := shopserver.New(products,
		shopserver.WithLatency(cfg.Stub.Latency),
		shopserver.WithLogger(logger),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %d products at %s\n", len(products), shopserver.BaseURL(cfg.Stub.Addr))
	return srv.ListenAndServe(ctx, cfg.Stub.Addr)
}

func loadFixtures(path string) ([]shop.Product, error) {
	if path == "" {
		return shopserver.DefaultProducts(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}
	products, err := shopserver.LoadProducts(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return products, nil
}
