package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cinelog/internal/catalog"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "delete <title>",
		Short: "Remove a movie from the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))

			return ctx.withStore(func(store *catalog.Store) error {
				movie, err := store.FindByTitle(cmd.Context(), title)
				if err != nil {
					return err
				}
				if movie == nil {
					return fmt.Errorf("no catalog entry for %q", title)
				}

				out := cmd.OutOrStdout()
				if !skipConfirm {
					prompter := newTerminalPrompter(cmd.InOrStdin(), out)
					if !prompter.Confirm(fmt.Sprintf("Delete %q (%s)?", movie.Title, formatYear(movie.Year))) {
						fmt.Fprintln(out, "Nothing deleted.")
						return nil
					}
				}

				deleted, err := store.Delete(cmd.Context(), movie.ID)
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("no catalog entry for %q", title)
				}
				fmt.Fprintf(out, "Deleted %q from the catalog.\n", movie.Title)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Delete without confirmation")
	return cmd
}
