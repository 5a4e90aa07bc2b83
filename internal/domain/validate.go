package domain

import (
	"fmt"
	"unicode/utf8"
)

// IntKind is the storage class of an integer column.
type IntKind int

const (
	UTinyInt IntKind = iota
	USmallInt
	Int
	UInt
)

// Bounds returns the inclusive range accepted for the kind.
func (k IntKind) Bounds() (lo, hi int64) {
	switch k {
	case UTinyInt:
		return 0, 127
	case USmallInt:
		return 0, 65535
	case Int:
		return -2147483648, 2147483647
	case UInt:
		return 0, 4294967295
	default:
		panic(fmt.Sprintf("domain: unknown int kind %d", int(k)))
	}
}

// String bounds, in characters.
const (
	CategoryNameMin = 3
	CategoryNameMax = 45
	CommentMax      = 250
	QuestionTextMax = 250
	AnswerMax       = 500
)

// Validator is implemented by every persisted entity.
type Validator interface {
	Validate() error
}

type fieldChecker struct {
	errs []FieldError
}

func (c *fieldChecker) intRange(field string, v int64, kind IntKind) {
	lo, hi := kind.Bounds()
	if v < lo || v > hi {
		c.errs = append(c.errs, FieldError{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d (got %d)", lo, hi, v),
		})
	}
}

func (c *fieldChecker) length(field, v string, lo, hi int) {
	n := utf8.RuneCountInString(v)
	if n < lo || n > hi {
		c.errs = append(c.errs, FieldError{
			Field:   field,
			Message: fmt.Sprintf("length must be between %d and %d (got %d)", lo, hi, n),
		})
	}
}

func (c *fieldChecker) result(entity string) error {
	if len(c.errs) == 0 {
		return nil
	}
	ve := NewValidationErrors(c.errs)
	ve.Entity = entity
	return ve
}

// Validate checks the season against its column bounds. A zero ID means
// the row has not been stored yet.
func (s Season) Validate() error {
	var c fieldChecker
	c.intRange("id", s.ID, UInt)
	c.intRange("season_number", int64(s.SeasonNumber), USmallInt)
	return c.result("season")
}

// Validate checks the episode against its column bounds.
func (e Episode) Validate() error {
	var c fieldChecker
	c.intRange("id", e.ID, UInt)
	if e.AirDate.IsZero() {
		c.errs = append(c.errs, FieldError{Field: "air_date", Message: "required"})
	}
	c.intRange("season_id", e.SeasonID, UInt)
	c.intRange("episode_number", int64(e.EpisodeNumber), USmallInt)
	return c.result("episode")
}

// Validate checks the category against its column bounds.
func (cat Category) Validate() error {
	var c fieldChecker
	c.intRange("id", cat.ID, UInt)
	c.length("name", cat.Name, CategoryNameMin, CategoryNameMax)
	c.intRange("episode_id", cat.EpisodeID, UInt)
	c.intRange("round", int64(cat.Round), UTinyInt)
	return c.result("category")
}

// Validate checks the question against its column bounds.
func (q Question) Validate() error {
	var c fieldChecker
	c.intRange("id", q.ID, UInt)
	c.intRange("clue_value", int64(q.ClueValue), USmallInt)
	c.length("comment", q.Comment, 0, CommentMax)
	c.length("question", q.Question, 0, QuestionTextMax)
	c.length("answer", q.Answer, 0, AnswerMax)
	c.intRange("category_id", q.CategoryID, UInt)
	return c.result("question")
}

// ValidateAll validates every item and returns the first failure, prefixed
// with the item's position. The items are returned unchanged on success.
func ValidateAll[T Validator](items []T) ([]T, error) {
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return items, nil
}
