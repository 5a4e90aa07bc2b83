package domain

import "time"

// Row is one parsed record of a season file. Nothing is validated yet
// beyond the integer and date syntax of its fields.
type Row struct {
	Round     int
	ClueValue int
	Category  string
	Comments  string
	Answer    string
	Question  string
	AirDate   time.Time
}

// Season is the root of the hierarchy; one per loaded file.
type Season struct {
	ID           int64
	SeasonNumber int
}

// Episode is a single show, identified within a season by its air date.
// EpisodeNumber is the 1-based position among the season's episodes.
type Episode struct {
	ID            int64
	AirDate       time.Time
	SeasonID      int64
	EpisodeNumber int
}

// Category is a named clue column inside one round of an episode.
type Category struct {
	ID        int64
	Name      string
	EpisodeID int64
	Round     int
}

// Question is a single clue. Comment is optional and defaults to "".
type Question struct {
	ID         int64
	ClueValue  int
	Comment    string
	Question   string
	Answer     string
	CategoryID int64
}

// CategoryKey is the identity of a category inside an episode.
type CategoryKey struct {
	Name  string
	Round int
}

// QuestionRecord is the content of a question without its category link.
// Two records are duplicates only if every field is equal.
type QuestionRecord struct {
	ClueValue int
	Comment   string
	Question  string
	Answer    string
}

// DateOnly truncates t to a UTC calendar date so that values parsed from
// files and values read back from a database compare equal.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
