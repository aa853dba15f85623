// Package corpus reads patch-note corpus files from disk.
package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/patchscout/internal/domain"
	domcorpus "github.com/kailas-cloud/patchscout/internal/domain/corpus"
)

// Supported file formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Column names, matched case-insensitively.
const (
	TextColumn  = "raw_text"
	LabelColumn = "label"
)

// Loader reads a corpus file and builds the in-memory corpus.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a loader.
func NewLoader(logger *zap.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads path. An empty format is inferred from the file extension.
func (l *Loader) Load(path, format string) (*domcorpus.Corpus, error) {
	if format == "" {
		format = FormatFromPath(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, domain.ErrCorpusNotFound, err)
	}
	defer func() { _ = f.Close() }()

	var rows []domcorpus.Row
	switch format {
	case FormatXLSX:
		rows, err = ReadXLSX(f)
	case FormatCSV:
		rows, err = ReadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported corpus format %q: %w", format, domain.ErrInvalidCorpus)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	c := domcorpus.New(rows)
	l.logger.Info("corpus loaded",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("records", c.Len()),
		zap.Int("dropped", c.Dropped()),
	)
	return c, nil
}

// FormatFromPath maps a file extension to a format; anything but .xlsx is CSV.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// ReadCSV parses RFC 4180 CSV with a header row.
func ReadCSV(r io.Reader) ([]domcorpus.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w: %w", domain.ErrInvalidCorpus, err)
	}
	return rowsFromTable(records)
}

// ReadXLSX parses the first sheet of a workbook with a header row.
func ReadXLSX(r io.Reader) ([]domcorpus.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse xlsx: %w: %w", domain.ErrInvalidCorpus, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("parse xlsx: no sheets: %w", domain.ErrInvalidCorpus)
	}
	table, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("parse xlsx: %w: %w", domain.ErrInvalidCorpus, err)
	}
	return rowsFromTable(table)
}

func rowsFromTable(table [][]string) ([]domcorpus.Row, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("missing header row: %w", domain.ErrInvalidCorpus)
	}

	textCol, labelCol := -1, -1
	for i, name := range table[0] {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case TextColumn:
			textCol = i
		case LabelColumn:
			labelCol = i
		}
	}
	if textCol < 0 || labelCol < 0 {
		return nil, fmt.Errorf("header needs %q and %q columns: %w",
			TextColumn, LabelColumn, domain.ErrInvalidCorpus)
	}

	rows := make([]domcorpus.Row, 0, len(table)-1)
	for _, cells := range table[1:] {
		rows = append(rows, domcorpus.Row{
			Text:  cell(cells, textCol),
			Label: cell(cells, labelCol),
		})
	}
	return rows, nil
}

// cell tolerates short rows; spreadsheets omit trailing empty cells.
func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}
