package catalog_test

import (
	"context"
	"errors"
	"testing"

	"cinelog/internal/catalog"
	"cinelog/internal/testsupport"
)

func TestAddAndFindRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	candidate := catalog.NewMovie{
		Title:       "Heat",
		Year:        1995,
		Description: "A group of high-end professional thieves...",
		ImgURL:      "https://image.tmdb.org/t/p/w500/heat.jpg",
	}
	added, err := store.Add(ctx, candidate)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.ID == 0 {
		t.Fatal("expected movie ID to be assigned")
	}

	found, err := store.FindByTitle(ctx, "Heat")
	if err != nil {
		t.Fatalf("FindByTitle failed: %v", err)
	}
	if found == nil {
		t.Fatal("expected movie to be found")
	}
	if found.Title != candidate.Title || found.Year != candidate.Year ||
		found.Description != candidate.Description || found.ImgURL != candidate.ImgURL {
		t.Fatalf("round-trip mismatch: %#v", found)
	}
	if found.Rating != 0.0 || found.Ranking != 0 || found.Review != "" {
		t.Fatalf("expected zeroed mutable fields, got rating=%v ranking=%d review=%q",
			found.Rating, found.Ranking, found.Review)
	}
}

func TestAddRejectsDuplicateTitleWithoutMutation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	original := testsupport.AddMovie(t, store, catalog.NewMovie{Title: "Alien", Year: 1979})

	_, err := store.Add(ctx, catalog.NewMovie{Title: "Alien", Year: 1986, Description: "different"})
	if !errors.Is(err, catalog.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected store unchanged, got %d records", count)
	}
	unchanged, err := store.FindByTitle(ctx, "Alien")
	if err != nil {
		t.Fatalf("FindByTitle failed: %v", err)
	}
	if unchanged.Year != original.Year {
		t.Fatalf("expected original record untouched, got year %d", unchanged.Year)
	}
}

func TestListRankedOrdersAndPersistsRankings(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	// Added in order B, C, A with ratings 7.5, 7.5, 9.0.
	b := testsupport.AddMovie(t, store, catalog.NewMovie{Title: "B", Year: 2001})
	c := testsupport.AddMovie(t, store, catalog.NewMovie{Title: "C", Year: 2002})
	a := testsupport.AddMovie(t, store, catalog.NewMovie{Title: "A", Year: 2003})
	testsupport.SetRating(t, store, b.ID, 7.5, "")
	testsupport.SetRating(t, store, c.ID, 7.5, "")
	testsupport.SetRating(t, store, a.ID, 9.0, "")

	ranked, err := store.ListRanked(ctx)
	if err != nil {
		t.Fatalf("ListRanked failed: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("expected 3 movies, got %d", len(ranked))
	}
	wantOrder := []string{"A", "B", "C"}
	for i, movie := range ranked {
		if movie.Title != wantOrder[i] {
			t.Fatalf("position %d: expected %s, got %s", i, wantOrder[i], movie.Title)
		}
		if movie.Ranking != i+1 {
			t.Fatalf("%s: expected ranking %d, got %d", movie.Title, i+1, movie.Ranking)
		}
	}

	// Rankings are persisted, not just returned.
	persisted, err := store.FindByTitle(ctx, "C")
	if err != nil {
		t.Fatalf("FindByTitle failed: %v", err)
	}
	if persisted.Ranking != 3 {
		t.Fatalf("expected persisted ranking 3, got %d", persisted.Ranking)
	}
}

func TestListRankedTieOrderStableAcrossCalls(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		m := testsupport.AddMovie(t, store, catalog.NewMovie{Title: title})
		testsupport.SetRating(t, store, m.ID, 6.0, "")
	}

	for call := 0; call < 3; call++ {
		ranked, err := store.ListRanked(ctx)
		if err != nil {
			t.Fatalf("ListRanked call %d failed: %v", call, err)
		}
		for i, movie := range ranked {
			if movie.Title != titles[i] {
				t.Fatalf("call %d position %d: expected %s, got %s", call, i, titles[i], movie.Title)
			}
		}
	}
}

func TestListRankedDistinctRatingsStrictlyDescending(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	ratings := []float64{3.5, 9.9, 1.0, 7.2, 5.5}
	for i, rating := range ratings {
		m := testsupport.AddMovie(t, store, catalog.NewMovie{Title: string(rune('a' + i))})
		testsupport.SetRating(t, store, m.ID, rating, "")
	}

	ranked, err := store.ListRanked(ctx)
	if err != nil {
		t.Fatalf("ListRanked failed: %v", err)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Rating <= ranked[i].Rating {
			t.Fatalf("ratings not strictly descending at %d: %v then %v", i, ranked[i-1].Rating, ranked[i].Rating)
		}
	}
	for i, movie := range ranked {
		if movie.Ranking != i+1 {
			t.Fatalf("expected ranking %d, got %d", i+1, movie.Ranking)
		}
	}
}

func TestUpdateReviewValidatesRange(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	movie := testsupport.AddMovie(t, store, catalog.NewMovie{Title: "Dune", Year: 2021})
	testsupport.SetRating(t, store, movie.ID, 8.0, "great sand")

	for _, rating := range []float64{-0.1, 10.1, 42} {
		if err := store.UpdateReview(ctx, movie.ID, rating, "bad"); !errors.Is(err, catalog.ErrRatingRange) {
			t.Fatalf("rating %v: expected ErrRatingRange, got %v", rating, err)
		}
	}

	unchanged, err := store.GetByID(ctx, movie.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if unchanged.Rating != 8.0 || unchanged.Review != "great sand" {
		t.Fatalf("expected record unchanged after rejection, got %#v", unchanged)
	}

	// Boundary values are accepted.
	if err := store.UpdateReview(ctx, movie.ID, 0.0, "zero"); err != nil {
		t.Fatalf("rating 0.0 should be accepted: %v", err)
	}
	if err := store.UpdateReview(ctx, movie.ID, 10.0, "ten"); err != nil {
		t.Fatalf("rating 10.0 should be accepted: %v", err)
	}
}

func TestUpdateReviewMissingMovie(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if err := store.UpdateReview(context.Background(), 9999, 5.0, ""); !errors.Is(err, catalog.ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound, got %v", err)
	}
}

func TestDeleteThenFindAbsent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	movie := testsupport.AddMovie(t, store, catalog.NewMovie{Title: "Gone", Year: 2012})

	removed, err := store.Delete(ctx, movie.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !removed {
		t.Fatal("expected a row to be removed")
	}

	found, err := store.FindByTitle(ctx, "Gone")
	if err != nil {
		t.Fatalf("FindByTitle failed: %v", err)
	}
	if found != nil {
		t.Fatalf("expected absent after delete, got %#v", found)
	}

	removedAgain, err := store.Delete(ctx, movie.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if removedAgain {
		t.Fatal("expected no row on second delete")
	}
}

func TestOpenRefusesSecondInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_ = testsupport.MustOpenStore(t, cfg)

	if _, err := catalog.Open(cfg); !errors.Is(err, catalog.ErrCatalogLocked) {
		t.Fatalf("expected ErrCatalogLocked, got %v", err)
	}
}

func TestFindByTitleIsExactMatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	testsupport.AddMovie(t, store, catalog.NewMovie{Title: "Seven"})

	found, err := store.FindByTitle(ctx, "seven")
	if err != nil {
		t.Fatalf("FindByTitle failed: %v", err)
	}
	if found != nil {
		t.Fatalf("expected exact-match semantics, got %#v", found)
	}
}
