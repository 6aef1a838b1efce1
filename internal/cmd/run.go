package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weblarek/larek/internal/config"
	"github.com/weblarek/larek/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the storefront",
	Long: `Open the storefront in the terminal. This is the default command.

Use the arrow keys to move between controls, enter to press a button or
edit a field, b to open the basket and esc to close a dialog.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer logger.Close()

	sf, err := newStorefront(cfg, logger)
	if err != nil {
		return err
	}

	app := tui.New(sf.presenter, sf.queue, logger)
	if err := app.Run(cmd.Context()); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
