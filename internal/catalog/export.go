package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// exportHeader is the compatibility contract for bulk export: exact column
// order, matching the list view.
var exportHeader = []string{"Title", "Year", "Rating", "Ranking", "Review", "Description", "Poster URL"}

// ExportCSV writes movies as delimited text in the order given. Callers pass
// the result of ListRanked so rows appear in ranked order.
func ExportCSV(w io.Writer, movies []*Movie) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, movie := range movies {
		record := []string{
			movie.Title,
			strconv.Itoa(movie.Year),
			movie.RatingLabel(),
			strconv.Itoa(movie.Ranking),
			movie.Review,
			movie.Description,
			movie.ImgURL,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return nil
}
