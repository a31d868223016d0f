package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"cinelog/internal/config"
)

// Store manages catalog persistence backed by SQLite. It holds a file lock
// for its lifetime so at most one process mutates the catalog.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the catalog database, applies the schema,
// and acquires the single-instance lock.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "catalog.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !locked {
		return nil, ErrCatalogLocked
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection and releases the catalog lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

// Path returns the catalog database location.
func (s *Store) Path() string {
	return s.path
}

// Add inserts a record resolved by a metadata lookup. The add is rejected
// with ErrDuplicateTitle before any write when the title already exists.
// Rating, ranking, and review start at 0, 0, and "".
func (s *Store) Add(ctx context.Context, candidate NewMovie) (*Movie, error) {
	title := strings.TrimSpace(candidate.Title)
	if title == "" {
		return nil, errors.New("title must not be empty")
	}

	existing, err := s.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateTitle
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO movies (
            title, year, description, rating, ranking, review, img_url,
            created_at, updated_at
        ) VALUES (?, ?, ?, 0, 0, '', ?, ?, ?)`,
		title,
		candidate.Year,
		candidate.Description,
		candidate.ImgURL,
		now,
		now,
	)
	if err != nil {
		// The unique index is the backstop for a race between the check and
		// the insert.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("insert movie: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches a movie by identifier. Returns (nil, nil) when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*Movie, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	movie, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	return movie, nil
}

// FindByTitle performs an exact-match title lookup. Returns (nil, nil) when
// absent. Titles are unique, so the result is unambiguous; the CLI relies on
// this to resolve the current selection back to a record.
func (s *Store) FindByTitle(ctx context.Context, title string) (*Movie, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE title = ?`, title)
	movie, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by title: %w", err)
	}
	return movie, nil
}

// ListRanked returns every movie ordered by rating descending, insertion
// order on ties, and persists ranking = 1..N in the same transaction before
// returning. This is the only path by which ranking changes.
func (s *Store) ListRanked(ctx context.Context) ([]*Movie, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin ranking tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY rating DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	var movies []*Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i, movie := range movies {
		rank := i + 1
		if movie.Ranking == rank {
			continue
		}
		if _, err := tx.ExecContext(ctx, `UPDATE movies SET ranking = ? WHERE id = ?`, rank, movie.ID); err != nil {
			return nil, fmt.Errorf("assign ranking: %w", err)
		}
		movie.Ranking = rank
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit rankings: %w", err)
	}
	return movies, nil
}

// UpdateReview persists a new rating and review for an existing record.
// Rating and review are the only fields mutable after creation. The rating
// is validated here; callers' input handling is not trusted.
func (s *Store) UpdateReview(ctx context.Context, id int64, rating float64, review string) error {
	if !RatingInRange(rating) {
		return ErrRatingRange
	}

	res, err := s.db.ExecContext(
		ctx,
		`UPDATE movies SET rating = ?, review = ?, updated_at = ? WHERE id = ?`,
		rating,
		strings.TrimSpace(review),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// Delete removes a record unconditionally. Reports whether a row was removed.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete movie: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Count returns the number of catalog records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return count, nil
}

const movieColumns = "id, title, year, description, rating, ranking, review, img_url, created_at, updated_at"

func scanMovie(scanner interface{ Scan(dest ...any) error }) (*Movie, error) {
	var (
		id          int64
		title       string
		year        int
		description string
		rating      float64
		ranking     int
		review      string
		imgURL      string
		createdRaw  string
		updatedRaw  string
	)

	if err := scanner.Scan(
		&id,
		&title,
		&year,
		&description,
		&rating,
		&ranking,
		&review,
		&imgURL,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	movie := &Movie{
		ID:          id,
		Title:       title,
		Year:        year,
		Description: description,
		Rating:      rating,
		Ranking:     ranking,
		Review:      review,
		ImgURL:      imgURL,
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		movie.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		movie.UpdatedAt = updated
	}
	return movie, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
