package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"cinema-booking-cli/config"
	"cinema-booking-cli/model"
	"cinema-booking-cli/store"
)

func newMoviesCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "movies",
		Short: "List movies and showtimes",
		Long:  `List every movie of the catalog with its showtimes and seat capacity`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, _, err := store.ResolveCatalog(cfg.CatalogPath, cfg.Rows, cfg.Cols)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			renderCatalog(cmd, catalog)
			return nil
		},
	}
}

func renderCatalog(cmd *cobra.Command, catalog *model.Catalog) {
	rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"#", "Movie", "Show", "Seats"}, rowConfigAutoMerge)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 2, AutoMerge: true, WidthMax: 24},
	})
	t.Style().Options.SeparateRows = true

	for i, movie := range catalog.Movies {
		var items []table.Row
		for j, show := range movie.Shows {
			items = append(items, table.Row{
				i + 1,
				movie.Title,
				fmt.Sprintf("%d. %s", j+1, show.Time),
				show.Seats.Capacity(),
			})
		}
		t.AppendRows(items, rowConfigAutoMerge)
		t.AppendSeparator()
	}
	t.Render()
}
