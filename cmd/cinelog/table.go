package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"cinelog/internal/catalog"
	"cinelog/internal/tmdb"
)

const overviewPreviewLimit = 60

func renderMovieTable(movies []*catalog.Movie) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Rank", "Title", "Year", "Rating", "Review"})
	for _, movie := range movies {
		tw.AppendRow(table.Row{movie.Ranking, movie.Title, movie.Year, movie.RatingLabel(), movie.Review})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func renderCandidateTable(candidates []tmdb.Candidate) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Title", "Released", "Overview"})
	for i, candidate := range candidates {
		tw.AppendRow(table.Row{i + 1, candidate.Title, candidate.ReleaseYear(), previewText(candidate.Overview)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// writeMovieRows emits the list view: a pretty table on a terminal,
// tab-separated rows when output is piped.
func writeMovieRows(out io.Writer, movies []*catalog.Movie) {
	if isTerminal(out) {
		fmt.Fprintln(out, renderMovieTable(movies))
		return
	}
	for _, movie := range movies {
		fmt.Fprintf(out, "%d\t%s\t%d\t%s\t%s\n",
			movie.Ranking, movie.Title, movie.Year, movie.RatingLabel(), movie.Review)
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func previewText(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= overviewPreviewLimit {
		return s
	}
	cut := s[:overviewPreviewLimit]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

func formatYear(year int) string {
	if year <= 0 {
		return "unknown"
	}
	return strconv.Itoa(year)
}
