package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/patchscout/internal/domain"
)

const sampleCSV = `id,Label,RAW_TEXT,date
1,Bug Fix,"Fixed a bug with the Scythe of Vitur, again",2024-01-01
2,,Orphan line without a label,2024-01-02
3,XP/Progression,"Woodcutting ""experience"" increased
across all trees",2024-01-03
`

func TestReadCSV(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Text != "Fixed a bug with the Scythe of Vitur, again" || rows[0].Label != "Bug Fix" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Label != "" {
		t.Errorf("row 1 label = %q, want empty", rows[1].Label)
	}
	if want := "Woodcutting \"experience\" increased\nacross all trees"; rows[2].Text != want {
		t.Errorf("row 2 text = %q, want %q", rows[2].Text, want)
	}
}

func TestReadCSV_MissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("text,label\nfoo,bar\n"))
	if !errors.Is(err, domain.ErrInvalidCorpus) {
		t.Fatalf("expected ErrInvalidCorpus, got %v", err)
	}
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	if !errors.Is(err, domain.ErrInvalidCorpus) {
		t.Fatalf("expected ErrInvalidCorpus, got %v", err)
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	table := [][]any{
		{"label", "raw_text"},
		{"Combat Balance", "Blowpipe nerf"},
		{"Quest"},
	}
	for i, row := range table {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	rows, err := ReadXLSX(buf)
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Text != "Blowpipe nerf" || rows[0].Label != "Combat Balance" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Text != "" || rows[1].Label != "Quest" {
		t.Errorf("row 1 = %+v", rows[1])
	}
}

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := NewLoader(zap.NewNop()).Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if c.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", c.Dropped())
	}
}

func TestLoader_NotFound(t *testing.T) {
	_, err := NewLoader(zap.NewNop()).Load(filepath.Join(t.TempDir(), "missing.csv"), "")
	if !errors.Is(err, domain.ErrCorpusNotFound) {
		t.Fatalf("expected ErrCorpusNotFound, got %v", err)
	}
}

func TestLoader_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := NewLoader(zap.NewNop()).Load(path, "parquet")
	if !errors.Is(err, domain.ErrInvalidCorpus) {
		t.Fatalf("expected ErrInvalidCorpus, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"notes.csv":  FormatCSV,
		"NOTES.XLSX": FormatXLSX,
		"notes":      FormatCSV,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
