package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	apperrors "tabprep/internal/errors"
)

// Encodings tried by the loader, in order.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

// Source formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// defaultNAValues are the cell strings read as missing.
var defaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// delimiters tried in order when the previous one fails to parse.
var delimiters = []rune{',', ';'}

var (
	// ErrNoColumns is returned for inputs without a header record.
	ErrNoColumns = errors.New("No columns to parse from file")
	// ErrFileTooLarge is returned when the input exceeds LoaderOptions.MaxFileSize.
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
)

// structureError reports a record with more fields than the header.
type structureError struct {
	line     int
	expected int
	saw      int
}

func (e *structureError) Error() string {
	return fmt.Sprintf("Error tokenizing data. Expected %d fields in line %d, saw %d", e.expected, e.line, e.saw)
}

// LoadInfo describes how a file was read.
type LoadInfo struct {
	Format    string
	Encoding  string
	Delimiter string
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// ExtraNAValues are read as missing in addition to the defaults.
	ExtraNAValues []string
	// MaxFileSize rejects larger inputs; 0 disables the check.
	MaxFileSize int64
}

// Loader reads a file into a Table.
type Loader struct {
	naValues map[string]struct{}
	maxSize  int64
	logger   *slog.Logger
}

// NewLoader creates a loader.
func NewLoader(opts LoaderOptions, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	na := make(map[string]struct{}, len(defaultNAValues)+len(opts.ExtraNAValues))
	for _, v := range defaultNAValues {
		na[v] = struct{}{}
	}
	for _, v := range opts.ExtraNAValues {
		na[v] = struct{}{}
	}
	return &Loader{
		naValues: na,
		maxSize:  opts.MaxFileSize,
		logger:   logger.With(slog.String("component", "loader")),
	}
}

// Load reads path into a Table. CSV input is decoded as UTF-8, falling back
// to Latin-1 when the bytes are not valid UTF-8, and split on commas,
// falling back to semicolons when the comma parse is structurally broken.
// Every failure is a LOAD error.
func (l *Loader) Load(ctx context.Context, path string) (*Table, LoadInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, LoadInfo{}, apperrors.NewLoadError(err)
	}
	if l.maxSize > 0 && info.Size() > l.maxSize {
		return nil, LoadInfo{}, apperrors.NewLoadError(fmt.Errorf("%w: %d > %d bytes", ErrFileTooLarge, info.Size(), l.maxSize))
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return l.loadWorkbook(ctx, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, LoadInfo{}, apperrors.NewLoadError(err)
	}

	text, encoding, err := decode(data)
	if err != nil {
		return nil, LoadInfo{}, apperrors.NewLoadError(err)
	}

	var lastErr error
	for _, comma := range delimiters {
		records, err := parseDelimited(text, comma)
		if err != nil {
			l.logger.DebugContext(ctx, "Delimiter rejected",
				slog.String("file", path),
				slog.String("delimiter", string(comma)),
				slog.String("error", err.Error()))
			lastErr = err
			continue
		}

		table, err := l.build(records)
		if err != nil {
			return nil, LoadInfo{}, apperrors.NewLoadError(err)
		}
		loadInfo := LoadInfo{Format: FormatCSV, Encoding: encoding, Delimiter: string(comma)}
		l.logger.InfoContext(ctx, "Dataset loaded",
			slog.String("file", path),
			slog.String("encoding", encoding),
			slog.String("delimiter", string(comma)),
			slog.Int("rows", table.Rows()),
			slog.Int("columns", table.Cols()))
		return table, loadInfo, nil
	}
	return nil, LoadInfo{}, apperrors.NewLoadError(lastErr)
}

// decode returns the file as UTF-8 text and the encoding it was read with.
func decode(data []byte) (string, string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data), EncodingUTF8, nil
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		return "", "", fmt.Errorf("decode latin-1: %w", err)
	}
	return string(decoded), EncodingLatin1, nil
}

// parseDelimited splits text into records. Records may be shorter than the
// header; a longer record is a structure error.
func parseDelimited(text string, comma rune) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	width := len(records[0])
	for i, rec := range records[1:] {
		if len(rec) > width {
			return nil, &structureError{line: i + 2, expected: width, saw: len(rec)}
		}
	}
	return records, nil
}

func (l *Loader) loadWorkbook(ctx context.Context, path string) (*Table, LoadInfo, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, LoadInfo{}, apperrors.NewLoadError(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, LoadInfo{}, apperrors.NewLoadError(ErrNoColumns)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, LoadInfo{}, apperrors.NewLoadError(err)
	}

	// GetRows trims trailing empty cells, so widen the header instead of
	// treating long rows as malformed.
	var records [][]string
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		records = append(records, row)
	}
	if len(records) > 0 {
		width := 0
		for _, rec := range records {
			if len(rec) > width {
				width = len(rec)
			}
		}
		for len(records[0]) < width {
			records[0] = append(records[0], "")
		}
	}

	table, err := l.build(records)
	if err != nil {
		return nil, LoadInfo{}, apperrors.NewLoadError(err)
	}
	l.logger.InfoContext(ctx, "Workbook loaded",
		slog.String("file", path),
		slog.String("sheet", sheets[0]),
		slog.Int("rows", table.Rows()),
		slog.Int("columns", table.Cols()))
	return table, LoadInfo{Format: FormatXLSX, Encoding: EncodingUTF8}, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// build turns header + records into typed columns.
func (l *Loader) build(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrNoColumns
	}
	names := headerNames(records[0])
	body := records[1:]

	columns := make([]*Column, len(names))
	for j, name := range names {
		raw := make([]string, len(body))
		missing := make([]bool, len(body))
		for i, rec := range body {
			if j < len(rec) {
				raw[i] = rec[j]
			}
			_, isNA := l.naValues[raw[i]]
			missing[i] = j >= len(rec) || isNA
		}
		columns[j] = inferColumn(name, raw, missing)
	}
	return NewTable(columns...)
}

// headerNames names blank headers "Unnamed: i" and suffixes repeats with
// ".1", ".2", ...
func headerNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		if _, dup := seen[name]; dup {
			n := seen[h]
			for {
				n++
				name = h + "." + strconv.Itoa(n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[h] = n
		}
		seen[name] = 0
		names[i] = name
	}
	return names
}

// inferColumn picks the narrowest dtype that holds every non-missing value:
// integers (only when nothing is missing), then floats, then text. A column
// with no rows is text; one whose rows are all missing is float.
func inferColumn(name string, raw []string, missing []bool) *Column {
	if len(raw) == 0 {
		return NewColumn(name, TypeText)
	}
	allInt, allFloat := true, true
	anyMissing := false
	ints := make([]int64, len(raw))
	floats := make([]float64, len(raw))

	for i, s := range raw {
		if missing[i] {
			anyMissing = true
			continue
		}
		trimmed := strings.TrimSpace(s)
		if strings.ContainsAny(trimmed, "xX_") {
			allFloat, allInt = false, false
			break
		}
		if allInt {
			if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
				ints[i] = n
			} else {
				allInt = false
			}
		}
		if allFloat {
			if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
				floats[i] = f
			} else {
				allFloat = false
				allInt = false
				break
			}
		}
	}

	values := make([]Value, len(raw))
	switch {
	case allInt && !anyMissing:
		for i := range raw {
			values[i] = Integer(ints[i])
		}
		return NewColumn(name, TypeInt, values...)
	case allFloat:
		for i := range raw {
			if missing[i] {
				values[i] = Missing()
			} else {
				values[i] = Number(floats[i])
			}
		}
		return NewColumn(name, TypeFloat, values...)
	default:
		for i, s := range raw {
			if missing[i] {
				values[i] = Missing()
			} else {
				values[i] = Text(s)
			}
		}
		return NewColumn(name, TypeText, values...)
	}
}
