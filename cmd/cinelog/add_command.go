package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cinelog/internal/catalog"
	"cinelog/internal/workflow"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "add [query]",
		Short: "Search TMDB and add a movie to the catalog",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			query := strings.TrimSpace(strings.Join(args, " "))
			if fromFile != "" {
				derived := workflow.DeriveQuery(fromFile)
				if derived == "" {
					return fmt.Errorf("could not derive a search query from %q", fromFile)
				}
				query = derived
			}

			prompter := newTerminalPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

			return ctx.withStore(func(store *catalog.Store) error {
				flow := &workflow.AddFlow{
					Catalog:     store,
					Credentials: configCredentials{cfg: cfg, path: ctx.configLocation()},
					NewLookup:   ctx.lookupFactory(),
					Prompter:    prompter,
					ImageBase:   cfg.TMDB.ImageBaseURL,
					Logger:      ctx.ensureLogger(),
				}

				result, err := flow.Run(cmd.Context(), query)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				switch result.Outcome {
				case workflow.OutcomeAdded:
					fmt.Fprintf(out, "Added %q (%s) to the catalog.\n", result.Movie.Title, formatYear(result.Movie.Year))
				case workflow.OutcomeAlreadyExists:
					// The duplicate notice was already printed by the flow.
				case workflow.OutcomeAborted:
					fmt.Fprintln(out, "No movie added.")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fromFile, "file", "", "Derive the search query from a media file name")
	return cmd
}
