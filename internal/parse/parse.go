package parse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Row is a normalized attendance record extracted from an export.
type Row struct {
	Timestamp time.Time
	Name      string
	Email     string
}

// ErrEmptyFile is returned when the payload contains no rows at all.
var ErrEmptyFile = errors.New("the provided file is empty")

// ErrMissingColumns is returned when the header row lacks one of the
// required roles (time, name, email).
var ErrMissingColumns = errors.New("could not detect required columns: ensure the file contains time, name, and email headers")

// TimestampError reports a row whose timestamp cell could not be parsed.
// It aborts the whole import; there is no skip-and-continue for bad rows.
type TimestampError struct {
	Value string
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("unable to parse timestamp %q", e.Value)
}

// Header aliases recognized per column role, matched case-insensitively
// after trimming. Extend these sets to support new export variants.
var (
	timeAliases = map[string]bool{
		"timestamp":       true,
		"submission time": true,
		"start time":      true,
		"date":            true,
		"time":            true,
	}
	nameAliases = map[string]bool{
		"name":       true,
		"full name":  true,
		"first name": true,
	}
	emailAliases = map[string]bool{
		"email":         true,
		"email address": true,
		"user email":    true,
	}
)

// timestampLayouts are tried in order; the first full match wins.
var timestampLayouts = []string{
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/2006 15:04",
	"2006-01-02 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
}

// sniffDelimiter guesses the delimiter used in the sample, choosing among
// comma, tab and semicolon. A candidate wins when it splits every sampled
// line into the same number of fields (at least two); ties and failures
// fall back to comma.
func sniffDelimiter(sample string) rune {
	lines := strings.Split(strings.ReplaceAll(sample, "\r\n", "\n"), "\n")
	// Drop the trailing line: the sample may have been cut mid-row.
	if len(lines) > 1 {
		lines = lines[:len(lines)-1]
	}
	var complete []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			complete = append(complete, line)
		}
	}
	if len(complete) == 0 {
		return ','
	}

	best, bestFields := ',', 0
	for _, cand := range []rune{',', '\t', ';'} {
		fields := strings.Count(complete[0], string(cand)) + 1
		if fields < 2 {
			continue
		}
		consistent := true
		for _, line := range complete[1:] {
			if strings.Count(line, string(cand))+1 != fields {
				consistent = false
				break
			}
		}
		if consistent && fields > bestFields {
			best, bestFields = cand, fields
		}
	}
	return best
}

// ParseTimestamp parses a timestamp cell from an attendance export.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, &TimestampError{Value: value}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, &TimestampError{Value: value}
}

// ParseText parses attendance rows from a raw text payload. The first
// record is treated as the header row. Rows whose cells are all blank are
// skipped, as are rows missing a name or email after trimming. Row order
// is preserved.
func ParseText(text string) ([]Row, error) {
	text = strings.TrimPrefix(text, "\ufeff")

	sample := text
	if len(sample) > 1024 {
		sample = sample[:1024]
	}
	delimiter := ','
	if sample != "" {
		delimiter = sniffDelimiter(sample)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	timeIdx := detectColumn(header, timeAliases)
	nameIdx := detectColumn(header, nameAliases)
	emailIdx := detectColumn(header, emailAliases)
	if timeIdx < 0 || nameIdx < 0 || emailIdx < 0 {
		return nil, ErrMissingColumns
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if allBlank(record) {
			continue
		}
		ts, err := ParseTimestamp(cell(record, timeIdx))
		if err != nil {
			return nil, err
		}
		name := strings.TrimSpace(cell(record, nameIdx))
		email := strings.ToLower(strings.TrimSpace(cell(record, emailIdx)))
		if name == "" || email == "" {
			continue
		}
		rows = append(rows, Row{Timestamp: ts, Name: name, Email: email})
	}
	return rows, nil
}

// ReadFile reads attendance rows from a CSV/TSV file. The file is assumed
// to be UTF-8, with an optional byte-order mark.
func ReadFile(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseText(string(data))
}

// detectColumn returns the first header index matching any alias, or -1.
func detectColumn(header []string, aliases map[string]bool) int {
	for idx, cell := range header {
		if aliases[strings.ToLower(strings.TrimSpace(cell))] {
			return idx
		}
	}
	return -1
}

func cell(record []string, idx int) string {
	if idx < len(record) {
		return record[idx]
	}
	return ""
}

func allBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
