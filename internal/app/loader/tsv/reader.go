package tsv

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

type fieldState int

const (
	startField fieldState = iota
	inField
	inQuoted
	quoteInQuoted
)

// recordReader splits tab-separated records with lenient quoting:
// a field that opens with '"' runs to the next lone quote, "" inside it is
// a literal quote, and text after the closing quote stays in the field
// ("THE" BEATLES reads as THE BEATLES). A quote anywhere else is literal.
// Quoted fields may span lines. CRLF and CR line ends read as LF.
type recordReader struct {
	r    *bufio.Reader
	line int
}

func newRecordReader(r io.Reader) *recordReader {
	return &recordReader{r: bufio.NewReader(r)}
}

// Read returns the next non-blank record and the 1-based line it starts on.
// It returns io.EOF once the input is exhausted.
func (rr *recordReader) Read() ([]string, int, error) {
	for {
		fields, line, err := rr.readRecord()
		if err != nil {
			return nil, 0, err
		}
		if len(fields) > 0 {
			return fields, line, nil
		}
	}
}

// readRecord reads up to the end of one record. A blank line yields an
// empty record.
func (rr *recordReader) readRecord() ([]string, int, error) {
	start := rr.line + 1

	var (
		fields []string
		field  strings.Builder
		state  = startField
	)
	save := func() {
		fields = append(fields, field.String())
		field.Reset()
	}

	for {
		c, _, err := rr.r.ReadRune()
		if errors.Is(err, io.EOF) {
			if state != startField || field.Len() > 0 || len(fields) > 0 {
				save()
				return fields, start, nil
			}
			return nil, 0, io.EOF
		}
		if err != nil {
			return nil, 0, err
		}

		if c == '\r' {
			if next, _, err := rr.r.ReadRune(); err == nil && next != '\n' {
				_ = rr.r.UnreadRune()
			}
			c = '\n'
		}
		if c == '\n' {
			rr.line++
			if state != inQuoted {
				if state == startField && len(fields) == 0 {
					return nil, start, nil
				}
				save()
				return fields, start, nil
			}
		}

		switch state {
		case startField:
			switch c {
			case '\t':
				save()
			case '"':
				state = inQuoted
			default:
				field.WriteRune(c)
				state = inField
			}
		case inField:
			if c == '\t' {
				save()
				state = startField
			} else {
				field.WriteRune(c)
			}
		case inQuoted:
			if c == '"' {
				state = quoteInQuoted
			} else {
				field.WriteRune(c)
			}
		case quoteInQuoted:
			switch c {
			case '"':
				field.WriteRune('"')
				state = inQuoted
			case '\t':
				save()
				state = startField
			default:
				field.WriteRune(c)
				state = inField
			}
		}
	}
}
