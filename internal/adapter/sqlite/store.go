// Package sqlite implements the loader sink on an embedded SQLite file.
// It mirrors the PostgreSQL schema so a season can be loaded without a
// database server; air dates are stored as YYYY-MM-DD text.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/heartmarshall/trivia-loader/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// Store implements the loader sink using SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database file at path and applies the schema.
// Failures wrap domain.ErrConnection.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w: %w", path, domain.ErrConnection, err)
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w: %w", path, domain.ErrConnection, err)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w: %w", domain.ErrConnection, err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertSeason creates a season row and returns its id.
func (s *Store) InsertSeason(ctx context.Context, seasonNumber int) (int64, error) {
	query, args, err := squirrel.Insert("season").
		Columns("season_number").
		Values(seasonNumber).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert season: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, "season", strconv.Itoa(seasonNumber))
	}
	return res.LastInsertId()
}

// InsertEpisodes writes all episodes in one statement.
func (s *Store) InsertEpisodes(ctx context.Context, episodes []domain.Episode) (int, error) {
	if len(episodes) == 0 {
		return 0, nil
	}

	b := squirrel.Insert("episode").Columns("air_date", "season_id", "episode_number")
	for _, e := range episodes {
		b = b.Values(domain.FormatDate(e.AirDate), e.SeasonID, e.EpisodeNumber)
	}
	return s.exec(ctx, b, "episode")
}

// InsertCategories writes all categories in one statement.
func (s *Store) InsertCategories(ctx context.Context, categories []domain.Category) (int, error) {
	if len(categories) == 0 {
		return 0, nil
	}

	b := squirrel.Insert("category").Columns("name", "episode_id", "round")
	for _, c := range categories {
		b = b.Values(c.Name, c.EpisodeID, c.Round)
	}
	return s.exec(ctx, b, "category")
}

// InsertQuestions writes all questions in one statement.
func (s *Store) InsertQuestions(ctx context.Context, questions []domain.Question) (int, error) {
	if len(questions) == 0 {
		return 0, nil
	}

	b := squirrel.Insert("question").Columns("clue_value", "comment", "question", "answer", "category_id")
	for _, q := range questions {
		b = b.Values(q.ClueValue, q.Comment, q.Question, q.Answer, q.CategoryID)
	}
	return s.exec(ctx, b, "question")
}

func (s *Store) exec(ctx context.Context, b squirrel.InsertBuilder, entity string) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert %s: %w", entity, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, entity, "batch")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s rows affected: %w", entity, err)
	}
	return int(n), nil
}

// SeasonID returns the id of the season with the given number.
func (s *Store) SeasonID(ctx context.Context, seasonNumber int) (int64, error) {
	b := squirrel.Select("id").From("season").Where(squirrel.Eq{"season_number": seasonNumber})
	return s.lookup(ctx, b, "season", strconv.Itoa(seasonNumber))
}

// EpisodeID returns the id of the episode aired on airDate.
func (s *Store) EpisodeID(ctx context.Context, airDate time.Time) (int64, error) {
	day := domain.FormatDate(airDate)
	b := squirrel.Select("id").From("episode").Where(squirrel.Eq{"air_date": day})
	return s.lookup(ctx, b, "episode", day)
}

// CategoryID returns the id of the category with the given round and name
// in the episode aired on airDate.
func (s *Store) CategoryID(ctx context.Context, airDate time.Time, round int, name string) (int64, error) {
	day := domain.FormatDate(airDate)
	b := squirrel.Select("c.id").
		From("category c").
		Join("episode e ON e.id = c.episode_id").
		Where(squirrel.Eq{"e.air_date": day}).
		Where(squirrel.Eq{"c.round": round}).
		Where(squirrel.Eq{"c.name": name})

	return s.lookup(ctx, b, "category", fmt.Sprintf("%q round %d on %s", name, round, day))
}

func (s *Store) lookup(ctx context.Context, b squirrel.SelectBuilder, entity, key string) (int64, error) {
	query, args, err := b.Limit(1).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build select %s: %w", entity, err)
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapError(err, entity, key)
	}
	return id, nil
}

// Purge deletes every row child-first and resets the AUTOINCREMENT counters.
func (s *Store) Purge(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin purge: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM question`,
		`DELETE FROM category`,
		`DELETE FROM episode`,
		`DELETE FROM season`,
		`DELETE FROM sqlite_sequence WHERE name IN ('question', 'category', 'episode', 'season')`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return mapError(err, "purge", "all tables")
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit purge: %w", err)
	}
	return nil
}

// mapError converts database/sql and SQLite errors to domain errors.
func mapError(err error, entity, key string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, key, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
	}

	var liteErr *msqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrAlreadyExists)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
		case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return fmt.Errorf("%s %s: %w: %s", entity, key, domain.ErrValidation, liteErr.Error())
		}
	}

	return fmt.Errorf("%s %s: %w", entity, key, err)
}
