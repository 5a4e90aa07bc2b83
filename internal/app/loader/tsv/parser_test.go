package tsv

import (
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/heartmarshall/trivia-loader/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

const header = "round\tclue_value\tcategory\tcomments\tanswer\tquestion\tair_date\n"

func TestParseFile_Sample(t *testing.T) {
	rows, err := ParseFile(testdataPath(t, "season_sample.tsv"))
	if err != nil {
		t.Fatalf("ParseFile returned error: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	first := rows[0]
	want := domain.Row{
		Round:     1,
		ClueValue: 100,
		Category:  "LAKES & RIVERS",
		Comments:  "-",
		Answer:    "River mentioned most often in the Bible",
		Question:  "the Jordan",
		AirDate:   time.Date(1984, 9, 10, 0, 0, 0, 0, time.UTC),
	}
	if first != want {
		t.Errorf("first row = %+v, want %+v", first, want)
	}

	if rows[2].Comments != "" {
		t.Errorf("empty comments should stay empty, got %q", rows[2].Comments)
	}
	if rows[3].Comments != "(Alex: Two answers accepted.)" {
		t.Errorf("comments = %q", rows[3].Comments)
	}
	if rows[3].AirDate != time.Date(1984, 9, 11, 0, 0, 0, 0, time.UTC) {
		t.Errorf("air date = %v", rows[3].AirDate)
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(testdataPath(t, "no_such_file.tsv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParse_KeepsFileOrder(t *testing.T) {
	input := header +
		"2\t400\tB CAT\t\ta\tq\t2020-01-02\n" +
		"1\t100\tA CAT\t\ta\tq\t2020-01-01\n" +
		"2\t400\tB CAT\t\ta\tq\t2020-01-02\n"

	rows, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows (duplicates are not dropped here), got %d", len(rows))
	}
	if rows[0].Category != "B CAT" || rows[1].Category != "A CAT" {
		t.Errorf("rows reordered: %+v", rows)
	}
}

func TestParse_ColumnOrderIndependent(t *testing.T) {
	input := "air_date\tquestion\tanswer\tcomments\tcategory\tclue_value\tround\n" +
		"2021-05-06\tq\ta\tc\tCAT\t300\t2\n"

	rows, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := rows[0]
	if got.Round != 2 || got.ClueValue != 300 || got.Category != "CAT" || got.Comments != "c" {
		t.Errorf("unexpected row: %+v", got)
	}
}

func TestParse_ByteOrderMark(t *testing.T) {
	input := "\ufeff" + header + "1\t100\tCAT\t\ta\tq\t2020-01-01\n"

	rows, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 1 || rows[0].Round != 1 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	rows, err := Parse(strings.NewReader(header))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantLine   int
		wantColumn string
	}{
		{"empty file", "", 1, ""},
		{"missing column", "round\tclue_value\tcategory\n", 1, ""},
		{"non-numeric round", header + "one\t100\tCAT\t\ta\tq\t2020-01-01\n", 2, ColRound},
		{"non-numeric value", header + "1\t100\tCAT\t\ta\tq\t2020-01-01\n1\t$200\tCAT\t\ta\tq\t2020-01-01\n", 3, ColClueValue},
		{"bad date", header + "1\t100\tCAT\t\ta\tq\t01/02/2020\n", 2, ColAirDate},
		{"impossible date", header + "1\t100\tCAT\t\ta\tq\t2020-02-30\n", 2, ColAirDate},
		{"short row", header + "1\t100\tCAT\n", 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if !errors.Is(err, domain.ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
			var pErr *domain.ParseError
			if !errors.As(err, &pErr) {
				t.Fatalf("expected *domain.ParseError, got %T", err)
			}
			if pErr.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", pErr.Line, tt.wantLine)
			}
			if pErr.Column != tt.wantColumn {
				t.Errorf("column = %q, want %q", pErr.Column, tt.wantColumn)
			}
		})
	}
}

func TestParse_Quotes(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantCategory []string
		wantQuestion []string
	}{
		{
			name: "text after closing quote",
			input: header +
				"1\t100\t\"THE\" BEATLES\t\tans\tq\t2020-01-01\n" +
				"1\t200\tRIVERS\t\tans\tq2\t2020-01-02\n",
			wantCategory: []string{"THE BEATLES", "RIVERS"},
			wantQuestion: []string{"q", "q2"},
		},
		{
			name:         "quoted field with doubled quote",
			input:        header + "1\t100\tCAT\t\tans\t\"say \"\"hi\"\"\"\t2020-01-01\n",
			wantCategory: []string{"CAT"},
			wantQuestion: []string{`say "hi"`},
		},
		{
			name:         "quote inside unquoted field",
			input:        header + "1\t100\tTHE \"BIG\" APPLE\t\tans\tq\t2020-01-01\n",
			wantCategory: []string{`THE "BIG" APPLE`},
			wantQuestion: []string{"q"},
		},
		{
			name:         "quoted field spans lines",
			input:        header + "1\t100\tCAT\t\tans\t\"two\nlines\"\t2020-01-01\n1\t200\tCAT\t\tans\tq\t2020-01-01\n",
			wantCategory: []string{"CAT", "CAT"},
			wantQuestion: []string{"two\nlines", "q"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(rows) != len(tt.wantCategory) {
				t.Fatalf("expected %d rows, got %d: %+v", len(tt.wantCategory), len(rows), rows)
			}
			for i, row := range rows {
				if row.Category != tt.wantCategory[i] {
					t.Errorf("row %d category = %q, want %q", i, row.Category, tt.wantCategory[i])
				}
				if row.Question != tt.wantQuestion[i] {
					t.Errorf("row %d question = %q, want %q", i, row.Question, tt.wantQuestion[i])
				}
			}
		})
	}
}

func TestParse_ErrorLineAfterMultilineField(t *testing.T) {
	input := header +
		"1\t100\tCAT\t\tans\t\"two\nlines\"\t2020-01-01\n" +
		"x\t100\tCAT\t\tans\tq\t2020-01-01\n"

	_, err := Parse(strings.NewReader(input))
	var pErr *domain.ParseError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected *domain.ParseError, got %v", err)
	}
	if pErr.Line != 4 || pErr.Column != ColRound {
		t.Errorf("got line %d column %q, want line 4 column %q", pErr.Line, pErr.Column, ColRound)
	}
}
