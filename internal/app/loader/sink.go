// Package loader orchestrates loading trivia season files into the
// Season → Episode → Category → Question hierarchy.
package loader

import (
	"context"
	"time"

	"github.com/heartmarshall/trivia-loader/internal/domain"
)

// Sink is the persistence contract consumed by the loader.
// All methods use only domain types.
// Implemented by trivia.Repo (PostgreSQL) and sqlite.Store.
//
// Every insert commits when it returns; there is no transaction spanning
// calls. Lookups return an error wrapping domain.ErrNotFound on a miss.
type Sink interface {
	// Inserts return the number of rows written.
	InsertSeason(ctx context.Context, seasonNumber int) (int64, error)
	InsertEpisodes(ctx context.Context, episodes []domain.Episode) (int, error)
	InsertCategories(ctx context.Context, categories []domain.Category) (int, error)
	InsertQuestions(ctx context.Context, questions []domain.Question) (int, error)

	// Lookups resolve natural keys to assigned ids.
	SeasonID(ctx context.Context, seasonNumber int) (int64, error)
	EpisodeID(ctx context.Context, airDate time.Time) (int64, error)
	CategoryID(ctx context.Context, airDate time.Time, round int, name string) (int64, error)

	// Purge empties every table and resets id sequences.
	Purge(ctx context.Context) error
}
