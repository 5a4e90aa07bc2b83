// Package trivia implements the loader sink on PostgreSQL.
// Inserts are multi-row INSERT statements built with squirrel; lookups
// resolve natural keys (season number, air date, round + category name)
// to the ids the database assigned.
package trivia

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/trivia-loader/internal/adapter/postgres"
	"github.com/heartmarshall/trivia-loader/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides trivia persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
	tx *postgres.TxManager
}

// New creates a new trivia repository. db is usually a *pgxpool.Pool.
func New(db postgres.DB) *Repo {
	return &Repo{
		db: db,
		tx: postgres.NewTxManager(db),
	}
}

// ---------------------------------------------------------------------------
// Inserts
// ---------------------------------------------------------------------------

// InsertSeason creates a season row and returns its id.
func (r *Repo) InsertSeason(ctx context.Context, seasonNumber int) (int64, error) {
	sql, args, err := psql.Insert("season").
		Columns("season_number").
		Values(seasonNumber).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert season: %w", err)
	}

	var id int64
	if err := r.q(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, "season", strconv.Itoa(seasonNumber))
	}
	return id, nil
}

// InsertEpisodes writes all episodes in one statement.
func (r *Repo) InsertEpisodes(ctx context.Context, episodes []domain.Episode) (int, error) {
	if len(episodes) == 0 {
		return 0, nil
	}

	b := psql.Insert("episode").Columns("air_date", "season_id", "episode_number")
	for _, e := range episodes {
		b = b.Values(domain.DateOnly(e.AirDate), e.SeasonID, e.EpisodeNumber)
	}
	return r.exec(ctx, b, "episode")
}

// InsertCategories writes all categories in one statement.
func (r *Repo) InsertCategories(ctx context.Context, categories []domain.Category) (int, error) {
	if len(categories) == 0 {
		return 0, nil
	}

	b := psql.Insert("category").Columns("name", "episode_id", "round")
	for _, c := range categories {
		b = b.Values(c.Name, c.EpisodeID, c.Round)
	}
	return r.exec(ctx, b, "category")
}

// InsertQuestions writes all questions in one statement.
func (r *Repo) InsertQuestions(ctx context.Context, questions []domain.Question) (int, error) {
	if len(questions) == 0 {
		return 0, nil
	}

	b := psql.Insert("question").Columns("clue_value", "comment", "question", "answer", "category_id")
	for _, q := range questions {
		b = b.Values(q.ClueValue, q.Comment, q.Question, q.Answer, q.CategoryID)
	}
	return r.exec(ctx, b, "question")
}

func (r *Repo) exec(ctx context.Context, b squirrel.InsertBuilder, entity string) (int, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert %s: %w", entity, err)
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, entity, "batch")
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Lookups
// ---------------------------------------------------------------------------

// SeasonID returns the id of the season with the given number.
// Returns domain.ErrNotFound if no such season exists.
func (r *Repo) SeasonID(ctx context.Context, seasonNumber int) (int64, error) {
	b := psql.Select("id").From("season").Where(squirrel.Eq{"season_number": seasonNumber})
	return r.lookup(ctx, b, "season", strconv.Itoa(seasonNumber))
}

// EpisodeID returns the id of the episode aired on airDate.
// Returns domain.ErrNotFound if no such episode exists.
func (r *Repo) EpisodeID(ctx context.Context, airDate time.Time) (int64, error) {
	b := psql.Select("id").From("episode").Where(squirrel.Eq{"air_date": domain.DateOnly(airDate)})
	return r.lookup(ctx, b, "episode", domain.FormatDate(airDate))
}

// CategoryID returns the id of the category with the given round and name
// in the episode aired on airDate.
// Returns domain.ErrNotFound if no such category exists.
func (r *Repo) CategoryID(ctx context.Context, airDate time.Time, round int, name string) (int64, error) {
	b := psql.Select("c.id").
		From("category c").
		Join("episode e ON e.id = c.episode_id").
		Where(squirrel.Eq{"e.air_date": domain.DateOnly(airDate)}).
		Where(squirrel.Eq{"c.round": round}).
		Where(squirrel.Eq{"c.name": name})

	key := fmt.Sprintf("%q round %d on %s", name, round, domain.FormatDate(airDate))
	return r.lookup(ctx, b, "category", key)
}

func (r *Repo) lookup(ctx context.Context, b squirrel.SelectBuilder, entity, key string) (int64, error) {
	sql, args, err := b.Limit(1).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build select %s: %w", entity, err)
	}

	var id int64
	if err := r.q(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, entity, key)
	}
	return id, nil
}

// ---------------------------------------------------------------------------
// Maintenance
// ---------------------------------------------------------------------------

const purgeSQL = `TRUNCATE question, category, episode, season RESTART IDENTITY CASCADE`

// Purge empties every trivia table and resets id sequences in one transaction.
func (r *Repo) Purge(ctx context.Context) error {
	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := r.q(ctx).Exec(ctx, purgeSQL); err != nil {
			return postgres.MapError(err, "purge", "all tables")
		}
		return nil
	})
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}
