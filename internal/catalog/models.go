package catalog

import (
	"strconv"
	"time"
)

// Movie is a persisted catalog record.
type Movie struct {
	ID          int64
	Title       string
	Year        int
	Description string
	Rating      float64
	Ranking     int
	Review      string
	ImgURL      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewMovie carries the fields a metadata lookup resolves for a record that is
// about to be created. Rating, ranking, and review always start at their
// zero values; they are never supplied by the lookup.
type NewMovie struct {
	Title       string
	Year        int
	Description string
	ImgURL      string
}

// RatingLabel formats the rating with one decimal, matching list and export
// output ("9.0", "7.5").
func (m *Movie) RatingLabel() string {
	return strconv.FormatFloat(m.Rating, 'f', 1, 64)
}

// RatingInRange reports whether a rating is acceptable for persistence.
func RatingInRange(rating float64) bool {
	return rating >= 0.0 && rating <= 10.0
}
