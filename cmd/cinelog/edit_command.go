package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cinelog/internal/catalog"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	var ratingFlag float64
	var reviewFlag string

	cmd := &cobra.Command{
		Use:   "edit <title>",
		Short: "Update the rating and review of a movie",
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

				// Either flag alone is enough for a non-interactive edit; the
				// other field keeps its current value.
				if cmd.Flags().Changed("rating") || cmd.Flags().Changed("review") {
					rating := movie.Rating
					if cmd.Flags().Changed("rating") {
						rating = ratingFlag
					}
					review := movie.Review
					if cmd.Flags().Changed("review") {
						review = reviewFlag
					}
					if err := store.UpdateReview(cmd.Context(), movie.ID, rating, review); err != nil {
						if errors.Is(err, catalog.ErrRatingRange) {
							return fmt.Errorf("rating %v is out of range: %w", rating, err)
						}
						return err
					}
					fmt.Fprintf(out, "Updated %q: rating %.1f.\n", movie.Title, rating)
					return nil
				}

				prompter := newTerminalPrompter(cmd.InOrStdin(), out)
				for {
					rating, review, ok, err := prompter.EditReview(cmd.Context(), movie)
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(out, "Edit cancelled.")
						return nil
					}
					if err := store.UpdateReview(cmd.Context(), movie.ID, rating, review); err != nil {
						if errors.Is(err, catalog.ErrRatingRange) {
							prompter.Notify(catalog.ErrRatingRange.Error())
							continue
						}
						return err
					}
					fmt.Fprintf(out, "Updated %q: rating %.1f.\n", movie.Title, rating)
					return nil
				}
			})
		},
	}

	cmd.Flags().Float64Var(&ratingFlag, "rating", 0, "New rating between 0 and 10")
	cmd.Flags().StringVar(&reviewFlag, "review", "", "New review text")
	return cmd
}
