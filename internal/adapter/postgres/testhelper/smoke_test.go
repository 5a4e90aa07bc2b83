package testhelper

import (
	"context"
	"testing"
	"time"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)
	Reset(t, pool)

	season := SeedSeason(t, pool, 1)
	episode := SeedEpisode(t, pool, season.ID, time.Date(1984, 9, 10, 0, 0, 0, 0, time.UTC), 1)
	category := SeedCategory(t, pool, episode.ID, 1, "LAKES & RIVERS")

	var name string
	err := pool.QueryRow(
		context.Background(),
		`SELECT c.name FROM category c JOIN episode e ON e.id = c.episode_id WHERE e.season_id = $1`,
		season.ID,
	).Scan(&name)
	if err != nil {
		t.Fatalf("expected category in DB, got error: %v", err)
	}

	if name != category.Name {
		t.Fatalf("expected name %q, got %q", category.Name, name)
	}
	if got := Count(t, pool, "episode"); got != 1 {
		t.Fatalf("expected 1 episode, got %d", got)
	}
}
