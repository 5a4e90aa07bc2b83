package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	runIDKey  ctxKey = "run_id"
	seasonKey ctxKey = "season"
)

// WithRunID stores the load run ID in the context.
func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromCtx extracts the load run ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func RunIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(runIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithSeason stores the season number being loaded in the context.
func WithSeason(ctx context.Context, season int) context.Context {
	return context.WithValue(ctx, seasonKey, season)
}

// SeasonFromCtx extracts the season number from the context.
func SeasonFromCtx(ctx context.Context) (int, bool) {
	n, ok := ctx.Value(seasonKey).(int)
	return n, ok
}
