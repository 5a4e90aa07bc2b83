package tsv

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func readAll(t *testing.T, input string) ([][]string, []int) {
	t.Helper()
	rr := newRecordReader(strings.NewReader(input))

	var records [][]string
	var lines []int
	for {
		rec, line, err := rr.Read()
		if errors.Is(err, io.EOF) {
			return records, lines
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		records = append(records, rec)
		lines = append(lines, line)
	}
}

func TestRecordReader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		want      [][]string
		wantLines []int
	}{
		{"empty", "", nil, nil},
		{"plain", "a\tb\nc\td\n", [][]string{{"a", "b"}, {"c", "d"}}, []int{1, 2}},
		{"no trailing newline", "a\tb", [][]string{{"a", "b"}}, []int{1}},
		{"empty fields", "\ta\t\n", [][]string{{"", "a", ""}}, []int{1}},
		{"blank lines skipped", "a\n\n\nb\n", [][]string{{"a"}, {"b"}}, []int{1, 4}},
		{"crlf", "a\tb\r\nc\r\n", [][]string{{"a", "b"}, {"c"}}, []int{1, 2}},
		{"text after closing quote", "\"THE\" BEATLES\tx\n", [][]string{{"THE BEATLES", "x"}}, []int{1}},
		{"doubled quote", "\"a \"\"b\"\"\"\tc\n", [][]string{{`a "b"`, "c"}}, []int{1}},
		{"quoted tab", "\"a\tb\"\tc\n", [][]string{{"a\tb", "c"}}, []int{1}},
		{"literal quote mid field", "a \"b\" c\n", [][]string{{`a "b" c`}}, []int{1}},
		{"multiline quoted", "\"a\nb\"\tc\nd\n", [][]string{{"a\nb", "c"}, {"d"}}, []int{1, 3}},
		{"unterminated quote at eof", "\"abc", [][]string{{"abc"}}, []int{1}},
		{"empty quoted", "\"\"\tx\n", [][]string{{"", "x"}}, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, lines := readAll(t, tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("records = %q, want %q", got, tt.want)
			}
			if !reflect.DeepEqual(lines, tt.wantLines) {
				t.Errorf("lines = %v, want %v", lines, tt.wantLines)
			}
		})
	}
}
