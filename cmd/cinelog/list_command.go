package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"cinelog/internal/catalog"
)

type movieListEntry struct {
	ID      int64   `json:"id"`
	Ranking int     `json:"ranking"`
	Title   string  `json:"title"`
	Year    int     `json:"year"`
	Rating  float64 `json:"rating"`
	Review  string  `json:"review,omitempty"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog, best rated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				movies, err := store.ListRanked(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()

				if asJSON {
					entries := make([]movieListEntry, 0, len(movies))
					for _, movie := range movies {
						entries = append(entries, movieListEntry{
							ID:      movie.ID,
							Ranking: movie.Ranking,
							Title:   movie.Title,
							Year:    movie.Year,
							Rating:  movie.Rating,
							Review:  movie.Review,
						})
					}
					encoder := json.NewEncoder(out)
					encoder.SetIndent("", "  ")
					return encoder.Encode(entries)
				}

				if len(movies) == 0 {
					fmt.Fprintln(out, "Catalog is empty. Add a movie with `cinelog add`.")
					return nil
				}
				writeMovieRows(out, movies)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	return cmd
}
