package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"cinelog/internal/catalog"
	"cinelog/internal/services"
	"cinelog/internal/tmdb"
)

// State identifies a position in the add flow.
type State int

const (
	StateNeedCredential State = iota
	StateSearching
	StateSelecting
	StateResolving
	StateDone
)

// Outcome is the terminal result of an add flow run.
type Outcome int

const (
	// OutcomeAborted means a prompt was dismissed before a record was
	// resolved. Nothing was written.
	OutcomeAborted Outcome = iota
	// OutcomeAlreadyExists means the resolved title was already in the
	// catalog. Nothing was written.
	OutcomeAlreadyExists
	// OutcomeAdded means a new record was persisted.
	OutcomeAdded
)

// Prompter supplies the user interaction the flow needs. Returning ok=false
// from any method dismisses the current prompt.
type Prompter interface {
	// Credential asks for a TMDB API key.
	Credential(ctx context.Context) (key string, ok bool, err error)
	// Query asks for a search query.
	Query(ctx context.Context) (query string, ok bool, err error)
	// Pick asks the user to choose one candidate from a search result.
	Pick(ctx context.Context, candidates []tmdb.Candidate) (choice tmdb.Candidate, ok bool, err error)
	// EditReview collects a rating and review for a freshly added record.
	EditReview(ctx context.Context, movie *catalog.Movie) (rating float64, review string, ok bool, err error)
	// Notify presents an informational or error message.
	Notify(message string)
}

// Catalog is the store surface the flow mutates.
type Catalog interface {
	FindByTitle(ctx context.Context, title string) (*catalog.Movie, error)
	Add(ctx context.Context, candidate catalog.NewMovie) (*catalog.Movie, error)
	UpdateReview(ctx context.Context, id int64, rating float64, review string) error
}

// CredentialStore persists a newly supplied API key.
type CredentialStore interface {
	HasAPIKey() bool
	SaveAPIKey(key string) error
}

// LookupFactory builds a metadata client. It is invoked lazily, after the
// credential prompt has run, so it observes a saved key.
type LookupFactory func() (tmdb.Searcher, error)

// Result describes a finished run.
type Result struct {
	Outcome Outcome
	Movie   *catalog.Movie
	Session string
}

// AddFlow orchestrates the add workflow. Single-threaded; at most one
// lookup is in flight per run.
type AddFlow struct {
	Catalog     Catalog
	Credentials CredentialStore
	NewLookup   LookupFactory
	Prompter    Prompter
	ImageBase   string
	Logger      *slog.Logger
}

// Run executes the flow to a terminal state. initialQuery seeds the first
// search prompt; pass "" to prompt from scratch. The returned error is
// reserved for broken collaborators (prompter or store I/O); user-driven
// aborts and duplicates are Outcomes, not errors.
func (f *AddFlow) Run(ctx context.Context, initialQuery string) (*Result, error) {
	if f.Catalog == nil || f.Credentials == nil || f.NewLookup == nil || f.Prompter == nil {
		return nil, errors.New("add flow requires catalog, credentials, lookup factory, and prompter")
	}

	session := uuid.NewString()
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "add-flow", "session", session)

	result := &Result{Outcome: OutcomeAborted, Session: session}

	var (
		lookup     tmdb.Searcher
		candidates []tmdb.Candidate
		chosen     tmdb.Candidate
		query      = strings.TrimSpace(initialQuery)
		queryFirst = query != ""
	)

	state := StateSearching
	if !f.Credentials.HasAPIKey() {
		state = StateNeedCredential
	}

	for state != StateDone {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		switch state {
		case StateNeedCredential:
			key, ok, err := f.Prompter.Credential(ctx)
			if err != nil {
				return nil, fmt.Errorf("credential prompt: %w", err)
			}
			key = strings.TrimSpace(key)
			if !ok || key == "" {
				logger.Info("add aborted", "state", "credential")
				return result, nil
			}
			if err := f.Credentials.SaveAPIKey(key); err != nil {
				return nil, services.Wrap(services.ErrConfiguration, "add-flow", "save credential", "", err)
			}
			logger.Info("credential configured")
			state = StateSearching

		case StateSearching:
			if !queryFirst {
				q, ok, err := f.Prompter.Query(ctx)
				if err != nil {
					return nil, fmt.Errorf("query prompt: %w", err)
				}
				if !ok {
					logger.Info("add aborted", "state", "searching")
					return result, nil
				}
				query = strings.TrimSpace(q)
			}
			queryFirst = false

			// An empty query performs no call and returns nothing.
			if query == "" {
				continue
			}

			if lookup == nil {
				client, err := f.newLookup()
				if err != nil {
					return nil, err
				}
				lookup = client
			}

			resp, err := lookup.SearchMovie(ctx, query)
			if err != nil {
				wrapped := services.Wrap(services.ErrLookup, "tmdb", "search", query, err)
				logger.Warn("search failed", "query", query, "error", err)
				f.Prompter.Notify(wrapped.Error())
				continue
			}
			if len(resp.Results) == 0 {
				f.Prompter.Notify(fmt.Sprintf("No results for %q.", query))
				continue
			}
			candidates = resp.Results
			logger.Info("search complete", "query", query, "results", len(candidates))
			state = StateSelecting

		case StateSelecting:
			choice, ok, err := f.Prompter.Pick(ctx, candidates)
			if err != nil {
				return nil, fmt.Errorf("pick prompt: %w", err)
			}
			if !ok {
				logger.Info("add aborted", "state", "selecting")
				return result, nil
			}
			if lookup == nil {
				client, err := f.newLookup()
				if err != nil {
					return nil, err
				}
				lookup = client
			}
			details, err := lookup.MovieDetails(ctx, choice.ID)
			if err != nil {
				wrapped := services.Wrap(services.ErrLookup, "tmdb", "details", choice.Title, err)
				logger.Warn("details failed", "tmdb_id", choice.ID, "error", err)
				f.Prompter.Notify(wrapped.Error())
				continue
			}
			chosen = *details
			state = StateResolving

		case StateResolving:
			existing, err := f.Catalog.FindByTitle(ctx, chosen.Title)
			if err != nil {
				return nil, fmt.Errorf("duplicate check: %w", err)
			}
			if existing != nil {
				f.Prompter.Notify(fmt.Sprintf("%q is already in the catalog.", chosen.Title))
				logger.Info("add skipped", "title", chosen.Title, "reason", "duplicate")
				result.Outcome = OutcomeAlreadyExists
				result.Movie = existing
				return result, nil
			}

			movie, err := f.Catalog.Add(ctx, catalog.NewMovie{
				Title:       chosen.Title,
				Year:        candidateYear(chosen),
				Description: chosen.Overview,
				ImgURL:      chosen.PosterURL(f.ImageBase),
			})
			if err != nil {
				if errors.Is(err, catalog.ErrDuplicateTitle) {
					f.Prompter.Notify(fmt.Sprintf("%q is already in the catalog.", chosen.Title))
					result.Outcome = OutcomeAlreadyExists
					return result, nil
				}
				return nil, fmt.Errorf("add movie: %w", err)
			}
			logger.Info("movie added", "title", movie.Title, "year", movie.Year, "id", movie.ID)
			result.Outcome = OutcomeAdded
			result.Movie = movie

			// A successful add immediately opens the rating/review step.
			f.editNewRecord(ctx, logger, result)
			state = StateDone
		}
	}

	return result, nil
}

func (f *AddFlow) editNewRecord(ctx context.Context, logger *slog.Logger, result *Result) {
	for {
		rating, review, ok, err := f.Prompter.EditReview(ctx, result.Movie)
		if err != nil || !ok {
			return
		}
		if err := f.Catalog.UpdateReview(ctx, result.Movie.ID, rating, review); err != nil {
			if errors.Is(err, catalog.ErrRatingRange) {
				f.Prompter.Notify(catalog.ErrRatingRange.Error())
				continue
			}
			logger.Warn("review update failed", "error", err)
			f.Prompter.Notify(fmt.Sprintf("Could not save review: %v", err))
			return
		}
		result.Movie.Rating = rating
		result.Movie.Review = strings.TrimSpace(review)
		logger.Info("review saved", "title", result.Movie.Title, "rating", rating)
		return
	}
}

func (f *AddFlow) newLookup() (tmdb.Searcher, error) {
	client, err := f.NewLookup()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "add-flow", "build lookup client", "", err)
	}
	return client, nil
}

func candidateYear(c tmdb.Candidate) int {
	year, err := strconv.Atoi(c.ReleaseYear())
	if err != nil {
		return 0
	}
	return year
}
