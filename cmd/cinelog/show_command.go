package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"cinelog/internal/catalog"
	"cinelog/internal/poster"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var skipPoster bool

	cmd := &cobra.Command{
		Use:   "show <title>",
		Short: "Show the full record of one movie",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *catalog.Store) error {
				movie, err := store.FindByTitle(cmd.Context(), title)
				if err != nil {
					return err
				}
				if movie == nil {
					return fmt.Errorf("no catalog entry for %q", title)
				}

				out := cmd.OutOrStdout()

				posterLocation := movie.ImgURL
				if !skipPoster && movie.ImgURL != "" {
					cache, cacheErr := poster.NewCache(cfg.Paths.CacheDir, ctx.ensureLogger())
					if cacheErr == nil {
						if path, fetchErr := cache.Fetch(cmd.Context(), movie.ImgURL); fetchErr == nil && path != "" {
							posterLocation = path
						} else if fetchErr != nil {
							// Artwork is cosmetic; the record renders without it.
							ctx.ensureLogger().Warn("poster unavailable", "title", movie.Title, "error", fetchErr)
						}
					}
				}

				tw := table.NewWriter()
				tw.SetStyle(table.StyleRounded)
				tw.AppendRow(table.Row{"Title", movie.Title})
				tw.AppendRow(table.Row{"Year", formatYear(movie.Year)})
				tw.AppendRow(table.Row{"Rating", movie.RatingLabel()})
				tw.AppendRow(table.Row{"Ranking", movie.Ranking})
				tw.AppendRow(table.Row{"Review", movie.Review})
				tw.AppendRow(table.Row{"Description", movie.Description})
				tw.AppendRow(table.Row{"Poster", posterLocation})
				fmt.Fprintln(out, tw.Render())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&skipPoster, "no-poster", false, "Skip downloading the poster image")
	return cmd
}
