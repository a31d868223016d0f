package testsupport

import (
	"context"
	"testing"

	"cinelog/internal/catalog"
	"cinelog/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// AddMovie inserts a candidate for tests using the provided store.
func AddMovie(t testing.TB, store *catalog.Store, candidate catalog.NewMovie) *catalog.Movie {
	t.Helper()

	movie, err := store.Add(context.Background(), candidate)
	if err != nil {
		t.Fatalf("store.Add %q: %v", candidate.Title, err)
	}
	return movie
}

// SetRating updates rating and review for tests.
func SetRating(t testing.TB, store *catalog.Store, id int64, rating float64, review string) {
	t.Helper()

	if err := store.UpdateReview(context.Background(), id, rating, review); err != nil {
		t.Fatalf("store.UpdateReview: %v", err)
	}
}
