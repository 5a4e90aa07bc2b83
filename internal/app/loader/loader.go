package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/trivia-loader/internal/app/loader/group"
	"github.com/heartmarshall/trivia-loader/internal/app/loader/tsv"
	"github.com/heartmarshall/trivia-loader/internal/domain"
	"github.com/heartmarshall/trivia-loader/pkg/ctxutil"
)

// ErrNoSeasonFiles is returned by LoadSeasons when the first season file is missing.
var ErrNoSeasonFiles = errors.New("no season files found")

// Result holds the outcome of loading one season file.
type Result struct {
	SeasonNumber int
	SeasonID     int64
	File         string

	Rows                int
	Episodes            int
	Categories          int
	Questions           int
	DuplicateCategories int
	DuplicateQuestions  int

	DryRun   bool
	Duration time.Duration
}

// Loader runs parse → group → resolve-and-insert for season files,
// strictly in order. It owns no connection; the sink is borrowed.
type Loader struct {
	log  *slog.Logger
	sink Sink
	cfg  Config
}

// New creates a Loader. sink may be nil when cfg.DryRun is set.
func New(log *slog.Logger, sink Sink, cfg Config) *Loader {
	return &Loader{
		log:  log,
		sink: sink,
		cfg:  cfg,
	}
}

// Purge empties all tables through the sink.
func (l *Loader) Purge(ctx context.Context) error {
	if l.cfg.DryRun {
		l.log.InfoContext(ctx, "dry run: purge skipped")
		return nil
	}
	if err := l.sink.Purge(ctx); err != nil {
		return fmt.Errorf("purge: %w", err)
	}
	l.log.InfoContext(ctx, "database purged")
	return nil
}

// LoadSeasons loads consecutive season files starting at cfg.FirstSeason
// until a file is missing or cfg.MaxSeasons files were loaded (0 = no
// limit). The first error stops the run; results for seasons already
// loaded are still returned.
func (l *Loader) LoadSeasons(ctx context.Context) ([]Result, error) {
	ctx = ctxutil.WithRunID(ctx, uuid.New())

	var results []Result
	for n := l.cfg.FirstSeason; l.cfg.MaxSeasons == 0 || len(results) < l.cfg.MaxSeasons; n++ {
		path := l.cfg.SeasonPath(n)
		if _, err := os.Stat(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return results, fmt.Errorf("season %d: %w", n, err)
			}
			if len(results) == 0 {
				return nil, fmt.Errorf("%w: %s", ErrNoSeasonFiles, path)
			}
			l.log.DebugContext(ctx, "no more season files", slog.String("file", path))
			break
		}

		res, err := l.LoadSeason(ctx, n, path)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	l.log.InfoContext(ctx, "load completed", slog.Int("seasons", len(results)))
	return results, nil
}

// LoadSeason loads a single season file. Steps run in order and each
// insert step commits on its own; a failure leaves earlier steps in place.
func (l *Loader) LoadSeason(ctx context.Context, seasonNumber int, path string) (Result, error) {
	if _, ok := ctxutil.RunIDFromCtx(ctx); !ok {
		ctx = ctxutil.WithRunID(ctx, uuid.New())
	}
	ctx = ctxutil.WithSeason(ctx, seasonNumber)

	start := time.Now()
	res := Result{SeasonNumber: seasonNumber, File: path, DryRun: l.cfg.DryRun}
	l.log.InfoContext(ctx, "loading season", slog.String("file", path))

	if err := (domain.Season{SeasonNumber: seasonNumber}).Validate(); err != nil {
		return res, fmt.Errorf("season %d: %w", seasonNumber, err)
	}

	// Step 1: create the season.
	if !l.cfg.DryRun {
		id, err := l.sink.InsertSeason(ctx, seasonNumber)
		if err != nil {
			return res, fmt.Errorf("season %d: insert season: %w", seasonNumber, err)
		}
		res.SeasonID = id
	}

	// Step 2: parse every row.
	rows, err := tsv.ParseFile(path)
	if err != nil {
		return res, fmt.Errorf("season %d: %w", seasonNumber, err)
	}

	grouped := group.Group(rows)
	res.Rows = grouped.Stats.Rows
	res.DuplicateCategories = grouped.Stats.DuplicateCategories
	res.DuplicateQuestions = grouped.Stats.DuplicateQuestions
	l.logGrouping(ctx, grouped.Stats)

	if l.cfg.DryRun {
		if err := validateGrouped(grouped); err != nil {
			return res, fmt.Errorf("season %d: %w", seasonNumber, err)
		}
		res.Episodes = grouped.Stats.Episodes
		res.Categories = grouped.Stats.Categories
		res.Questions = grouped.Stats.Questions
		res.Duration = time.Since(start)
		l.logResult(ctx, res)
		return res, nil
	}

	// Steps 3-5: parent → child.
	if res.Episodes, err = l.insertEpisodes(ctx, seasonNumber, grouped.Episodes); err != nil {
		return res, fmt.Errorf("season %d: %w", seasonNumber, err)
	}
	if res.Categories, err = l.insertCategories(ctx, grouped.Categories); err != nil {
		return res, fmt.Errorf("season %d: %w", seasonNumber, err)
	}
	if res.Questions, err = l.insertQuestions(ctx, grouped.Questions); err != nil {
		return res, fmt.Errorf("season %d: %w", seasonNumber, err)
	}

	res.Duration = time.Since(start)
	l.logResult(ctx, res)
	return res, nil
}

// insertEpisodes resolves the season, numbers episodes 1..n in first-seen
// order and inserts them.
func (l *Loader) insertEpisodes(ctx context.Context, seasonNumber int, episodes []domain.Episode) (int, error) {
	seasonID, err := l.sink.SeasonID(ctx, seasonNumber)
	if err != nil {
		return 0, fmt.Errorf("resolve season %d: %w", seasonNumber, err)
	}

	numbered := NumberEpisodes(seasonID, episodes)
	if _, err := domain.ValidateAll(numbered); err != nil {
		return 0, fmt.Errorf("episodes: %w", err)
	}

	l.log.DebugContext(ctx, "inserting episodes", slog.Int("count", len(numbered)))
	inserted, err := batchProcess(numbered, l.cfg.BatchSize, func(batch []domain.Episode) (int, error) {
		return l.sink.InsertEpisodes(ctx, batch)
	})
	if err != nil {
		return inserted, fmt.Errorf("insert episodes: %w", err)
	}
	return inserted, nil
}

// NumberEpisodes assigns the season reference and a 1-based episode number
// by position. The input slice is not modified.
func NumberEpisodes(seasonID int64, episodes []domain.Episode) []domain.Episode {
	out := make([]domain.Episode, len(episodes))
	for i, ep := range episodes {
		ep.SeasonID = seasonID
		ep.EpisodeNumber = i + 1
		out[i] = ep
	}
	return out
}

// insertCategories inserts each date's categories under the episode aired
// on that date.
func (l *Loader) insertCategories(ctx context.Context, groups []group.DateCategories) (int, error) {
	total := 0
	for _, dc := range groups {
		episodeID, err := l.sink.EpisodeID(ctx, dc.AirDate)
		if err != nil {
			return total, fmt.Errorf("resolve episode %s: %w", domain.FormatDate(dc.AirDate), err)
		}

		categories := buildCategories(episodeID, dc)
		if _, err := domain.ValidateAll(categories); err != nil {
			return total, fmt.Errorf("categories for %s: %w", domain.FormatDate(dc.AirDate), err)
		}

		inserted, err := batchProcess(categories, l.cfg.BatchSize, func(batch []domain.Category) (int, error) {
			return l.sink.InsertCategories(ctx, batch)
		})
		total += inserted
		if err != nil {
			return total, fmt.Errorf("insert categories for %s: %w", domain.FormatDate(dc.AirDate), err)
		}
	}

	l.log.DebugContext(ctx, "categories inserted", slog.Int("count", total))
	return total, nil
}

// insertQuestions inserts each group's questions under the category
// identified by (air date, round, name).
func (l *Loader) insertQuestions(ctx context.Context, groups []group.CategoryQuestions) (int, error) {
	total := 0
	for _, cq := range groups {
		k := cq.Key
		categoryID, err := l.sink.CategoryID(ctx, k.AirDate, k.Round, k.Category)
		if err != nil {
			return total, fmt.Errorf("resolve category %q round %d on %s: %w", k.Category, k.Round, domain.FormatDate(k.AirDate), err)
		}

		questions := buildQuestions(categoryID, cq)
		if _, err := domain.ValidateAll(questions); err != nil {
			return total, fmt.Errorf("questions for %q round %d on %s: %w", k.Category, k.Round, domain.FormatDate(k.AirDate), err)
		}

		inserted, err := batchProcess(questions, l.cfg.BatchSize, func(batch []domain.Question) (int, error) {
			return l.sink.InsertQuestions(ctx, batch)
		})
		total += inserted
		if err != nil {
			return total, fmt.Errorf("insert questions for %q round %d on %s: %w", k.Category, k.Round, domain.FormatDate(k.AirDate), err)
		}
	}

	l.log.DebugContext(ctx, "questions inserted", slog.Int("count", total))
	return total, nil
}

func buildCategories(episodeID int64, dc group.DateCategories) []domain.Category {
	categories := make([]domain.Category, len(dc.Categories))
	for i, c := range dc.Categories {
		categories[i] = domain.Category{Name: c.Name, Round: c.Round, EpisodeID: episodeID}
	}
	return categories
}

func buildQuestions(categoryID int64, cq group.CategoryQuestions) []domain.Question {
	questions := make([]domain.Question, len(cq.Questions))
	for i, q := range cq.Questions {
		questions[i] = domain.Question{
			ClueValue:  q.ClueValue,
			Comment:    q.Comment,
			Question:   q.Question,
			Answer:     q.Answer,
			CategoryID: categoryID,
		}
	}
	return questions
}

// validateGrouped runs the checks the insert steps would run, with parent
// ids left at zero since nothing is stored.
func validateGrouped(g group.Result) error {
	if _, err := domain.ValidateAll(NumberEpisodes(0, g.Episodes)); err != nil {
		return fmt.Errorf("episodes: %w", err)
	}
	for _, dc := range g.Categories {
		if _, err := domain.ValidateAll(buildCategories(0, dc)); err != nil {
			return fmt.Errorf("categories for %s: %w", domain.FormatDate(dc.AirDate), err)
		}
	}
	for _, cq := range g.Questions {
		k := cq.Key
		if _, err := domain.ValidateAll(buildQuestions(0, cq)); err != nil {
			return fmt.Errorf("questions for %q round %d on %s: %w", k.Category, k.Round, domain.FormatDate(k.AirDate), err)
		}
	}
	return nil
}

// logGrouping reports the grouping counts. Repeated (date, name, round)
// rows are the normal shape of a season file; identical question records
// are not, so only those are raised to a warning.
func (l *Loader) logGrouping(ctx context.Context, s group.Stats) {
	l.log.InfoContext(ctx, "season parsed",
		slog.Int("rows", s.Rows),
		slog.Int("episodes", s.Episodes),
		slog.Int("categories", s.Categories),
		slog.Int("questions", s.Questions),
		slog.Int("duplicate_categories", s.DuplicateCategories),
	)
	if s.DuplicateQuestions > 0 {
		l.log.WarnContext(ctx, "duplicate questions dropped",
			slog.Int("duplicate_questions", s.DuplicateQuestions),
		)
	}
}

func (l *Loader) logResult(ctx context.Context, r Result) {
	l.log.InfoContext(ctx, "season loaded",
		slog.Int64("season_id", r.SeasonID),
		slog.Int("episodes", r.Episodes),
		slog.Int("categories", r.Categories),
		slog.Int("questions", r.Questions),
		slog.Bool("dry_run", r.DryRun),
		slog.Duration("duration", r.Duration),
	)
}

// batchProcess splits items into batches and processes each via fn.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
