package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weblarek/larek/internal/config"
	"github.com/weblarek/larek/internal/dom"
	"github.com/weblarek/larek/internal/util"
)

var catalogHTML bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the catalog",
	Long: `Load the catalog from the shop API and print it, one product per line.
With --html the rendered gallery markup is printed instead.`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().BoolVar(&catalogHTML, "html", false, "print the rendered gallery markup")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer logger.Close()

	sf, err := newStorefront(cfg, logger)
	if err != nil {
		return err
	}

	sf.presenter.Start()
	if err := sf.queue.Flush(cmd.Context()); err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	views := sf.presenter.Views()
	if views.Notice.Visible() {
		return fmt.Errorf("loading catalog: %s", views.Notice.Message())
	}

	out := cmd.OutOrStdout()
	if catalogHTML {
		_, err := fmt.Fprintln(out, views.Gallery.Root().HTML())
		return err
	}
	for _, tile := range views.Gallery.Root().Children() {
		fmt.Fprintln(out, catalogLine(tile))
	}
	return nil
}

// titleWidth is the title column of the catalog listing.
const titleWidth = 32

// catalogLine formats a gallery tile as "title [category]  price".
func catalogLine(tile *dom.Element) string {
	text := func(sel string) string {
		if el := tile.Query(sel); el != nil {
			return util.CollapseSpace(el.Text())
		}
		return ""
	}
	title := util.TruncateString(text(".card__title"), titleWidth)
	category := "[" + text(".card__category") + "]"
	return strings.TrimRight(fmt.Sprintf("%-*s %-14s %s", titleWidth, title, category, text(".card__price")), " ")
}
