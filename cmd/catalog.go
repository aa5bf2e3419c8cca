package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cinema-booking-cli/model"
	"cinema-booking-cli/store"
)

func newCatalogCommand() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the catalog file",
	}

	var path string
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in catalog to a file you can edit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := path
			if target == "" {
				defaultPath, err := store.DefaultCatalogPath()
				if err != nil {
					return err
				}
				target = defaultPath
			}

			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			if err := store.SaveCatalog(target, model.DefaultCatalog(model.DefaultRows, model.DefaultCols)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog written to %s\n", target)
			return nil
		},
	}
	initCmd.Flags().StringVar(&path, "path", "", "file to write (default: user config dir)")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	catalogCmd.AddCommand(initCmd)
	return catalogCmd
}
