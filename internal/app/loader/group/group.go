// Package group folds flat season rows into the episode, category and
// question hierarchy. Input order is preserved and exact duplicates are
// dropped and counted. No field bounds are checked here.
package group

import (
	"time"

	"github.com/heartmarshall/trivia-loader/internal/domain"
	"github.com/heartmarshall/trivia-loader/pkg/ordered"
)

// DateCategories lists the distinct categories seen under one air date.
type DateCategories struct {
	AirDate    time.Time
	Categories []domain.CategoryKey
}

// QuestionKey identifies the category a question belongs to.
type QuestionKey struct {
	AirDate  time.Time
	Round    int
	Category string
}

// CategoryQuestions lists the distinct questions of one category.
type CategoryQuestions struct {
	Key       QuestionKey
	Questions []domain.QuestionRecord
}

// Stats counts what grouping produced and what it dropped.
type Stats struct {
	Rows                int
	Episodes            int
	Categories          int
	Questions           int
	DuplicateCategories int
	DuplicateQuestions  int
}

// Result is the full hierarchy derived from one season file.
type Result struct {
	Episodes   []domain.Episode
	Categories []DateCategories
	Questions  []CategoryQuestions
	Stats      Stats
}

// Group runs all three extractions over rows.
func Group(rows []domain.Row) Result {
	episodes := Episodes(rows)
	categories, dupCategories := Categories(rows)
	questions, dupQuestions := Questions(rows)

	stats := Stats{
		Rows:                len(rows),
		Episodes:            len(episodes),
		DuplicateCategories: dupCategories,
		DuplicateQuestions:  dupQuestions,
	}
	for _, dc := range categories {
		stats.Categories += len(dc.Categories)
	}
	for _, cq := range questions {
		stats.Questions += len(cq.Questions)
	}

	return Result{
		Episodes:   episodes,
		Categories: categories,
		Questions:  questions,
		Stats:      stats,
	}
}

// Episodes returns one episode per distinct air date, in order of first
// appearance. Only AirDate is set.
func Episodes(rows []domain.Row) []domain.Episode {
	dates := ordered.NewSet[time.Time]()
	for _, row := range rows {
		dates.Add(domain.DateOnly(row.AirDate))
	}

	episodes := make([]domain.Episode, 0, dates.Len())
	for _, d := range dates.Values() {
		episodes = append(episodes, domain.Episode{AirDate: d})
	}
	return episodes
}

// Categories groups (name, round) pairs by air date. Dates keep their
// first-seen order and so do the pairs under each date. The second return
// value is the number of rows whose pair was already recorded.
func Categories(rows []domain.Row) ([]DateCategories, int) {
	byDate := ordered.New[time.Time, *ordered.Set[domain.CategoryKey]]()
	dropped := 0

	for _, row := range rows {
		set := *byDate.GetOrInit(domain.DateOnly(row.AirDate), ordered.NewSet[domain.CategoryKey])
		if !set.Add(domain.CategoryKey{Name: row.Category, Round: row.Round}) {
			dropped++
		}
	}

	out := make([]DateCategories, 0, byDate.Len())
	byDate.Each(func(d time.Time, set *ordered.Set[domain.CategoryKey]) {
		out = append(out, DateCategories{AirDate: d, Categories: set.Values()})
	})
	return out, dropped
}

// Questions groups question records by (air date, round, category name).
// A record equal in every field to one already in its group is dropped and
// counted; records differing in any field, comment included, are kept.
func Questions(rows []domain.Row) ([]CategoryQuestions, int) {
	byKey := ordered.New[QuestionKey, *ordered.Set[domain.QuestionRecord]]()
	dropped := 0

	for _, row := range rows {
		key := QuestionKey{AirDate: domain.DateOnly(row.AirDate), Round: row.Round, Category: row.Category}
		set := *byKey.GetOrInit(key, ordered.NewSet[domain.QuestionRecord])
		if !set.Add(toQuestionRecord(row)) {
			dropped++
		}
	}

	out := make([]CategoryQuestions, 0, byKey.Len())
	byKey.Each(func(k QuestionKey, set *ordered.Set[domain.QuestionRecord]) {
		out = append(out, CategoryQuestions{Key: k, Questions: set.Values()})
	})
	return out, dropped
}

func toQuestionRecord(row domain.Row) domain.QuestionRecord {
	return domain.QuestionRecord{
		ClueValue: row.ClueValue,
		Comment:   row.Comments,
		Question:  row.Question,
		Answer:    row.Answer,
	}
}
