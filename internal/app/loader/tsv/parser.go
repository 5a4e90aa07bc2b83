// Package tsv parses tab-separated trivia season files into flat rows.
// Pure function: file path in, domain structs out. No database dependencies.
package tsv

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/trivia-loader/internal/domain"
)

// Column names of the season file header.
const (
	ColRound     = "round"
	ColClueValue = "clue_value"
	ColCategory  = "category"
	ColComments  = "comments"
	ColAnswer    = "answer"
	ColQuestion  = "question"
	ColAirDate   = "air_date"
)

// Columns lists the header columns every season file must carry.
var Columns = []string{ColRound, ColClueValue, ColCategory, ColComments, ColAnswer, ColQuestion, ColAirDate}

// ParseFile opens filePath and parses it with Parse.
func ParseFile(filePath string) ([]domain.Row, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a header row followed by records and returns one Row per
// record, in file order. Columns are matched by header name, so their order
// may vary and extra columns are ignored. Blank lines are skipped. The first
// malformed integer or date aborts parsing with a *domain.ParseError.
func Parse(r io.Reader) ([]domain.Row, error) {
	reader := newRecordReader(r)

	header, _, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.ParseError{Line: 1, Err: errors.New("empty file")}
		}
		return nil, &domain.ParseError{Line: 1, Err: fmt.Errorf("read header: %w", err)}
	}

	idx, err := indexColumns(header)
	if err != nil {
		return nil, &domain.ParseError{Line: 1, Err: err}
	}
	width := len(header)

	var rows []domain.Row
	for {
		record, line, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		if len(record) < width {
			return nil, &domain.ParseError{
				Line: line,
				Err:  fmt.Errorf("expected %d fields, got %d", width, len(record)),
			}
		}

		row, err := toRow(record, idx, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// indexColumns maps every required column name to its position in header.
func indexColumns(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		idx[strings.TrimSpace(name)] = i
	}

	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing header column %q", col)
		}
	}
	return idx, nil
}

func toRow(record []string, idx map[string]int, line int) (domain.Row, error) {
	round, err := parseInt(record[idx[ColRound]], ColRound, line)
	if err != nil {
		return domain.Row{}, err
	}
	value, err := parseInt(record[idx[ColClueValue]], ColClueValue, line)
	if err != nil {
		return domain.Row{}, err
	}

	rawDate := strings.TrimSpace(record[idx[ColAirDate]])
	airDate, err := time.Parse(time.DateOnly, rawDate)
	if err != nil {
		return domain.Row{}, &domain.ParseError{Line: line, Column: ColAirDate, Value: rawDate, Err: err}
	}

	return domain.Row{
		Round:     round,
		ClueValue: value,
		Category:  record[idx[ColCategory]],
		Comments:  record[idx[ColComments]],
		Answer:    record[idx[ColAnswer]],
		Question:  record[idx[ColQuestion]],
		AirDate:   airDate,
	}, nil
}

func parseInt(raw, column string, line int) (int, error) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.ParseError{Line: line, Column: column, Value: raw, Err: err}
	}
	return n, nil
}
