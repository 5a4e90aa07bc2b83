package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/trivia-loader/internal/domain"
)

// Reset empties all trivia tables and restarts their id sequences.
// Tests in one package share a database, so each test calls Reset first.
func Reset(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`TRUNCATE question, category, episode, season RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("testhelper: Reset: %v", err)
	}
}

// SeedSeason inserts a season row and returns it.
func SeedSeason(t *testing.T, pool *pgxpool.Pool, number int) domain.Season {
	t.Helper()

	s := domain.Season{SeasonNumber: number}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO season (season_number) VALUES ($1) RETURNING id`, number,
	).Scan(&s.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedSeason: %v", err)
	}
	return s
}

// SeedEpisode inserts an episode for seasonID and returns it.
func SeedEpisode(t *testing.T, pool *pgxpool.Pool, seasonID int64, airDate time.Time, number int) domain.Episode {
	t.Helper()

	e := domain.Episode{AirDate: domain.DateOnly(airDate), SeasonID: seasonID, EpisodeNumber: number}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO episode (air_date, season_id, episode_number) VALUES ($1, $2, $3) RETURNING id`,
		e.AirDate, e.SeasonID, e.EpisodeNumber,
	).Scan(&e.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedEpisode: %v", err)
	}
	return e
}

// SeedCategory inserts a category for episodeID and returns it.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, episodeID int64, round int, name string) domain.Category {
	t.Helper()

	c := domain.Category{Name: name, EpisodeID: episodeID, Round: round}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO category (name, episode_id, round) VALUES ($1, $2, $3) RETURNING id`,
		c.Name, c.EpisodeID, c.Round,
	).Scan(&c.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory: %v", err)
	}
	return c
}

// Count returns the number of rows in table. table must be a literal name.
func Count(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), `SELECT count(*) FROM `+table).Scan(&n); err != nil {
		t.Fatalf("testhelper: Count %s: %v", table, err)
	}
	return n
}
