package store

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/fieldviz/internal/field"
)

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta, err := st.Create(42)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	meta.Theme = "cyberpunk"

	if err := os.WriteFile(st.Path(meta.ID, "neural_matrix.html"), []byte("<html></html>"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := st.Record(meta, Artifact{Kind: "neural_matrix", Format: "html", Path: "neural_matrix.html", Panels: 1, Traces: 1}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := st.Save(meta); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := st.Load(meta.ID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Seed != 42 {
		t.Errorf("expected seed 42, got %d", got.Seed)
	}
	if got.Theme != "cyberpunk" {
		t.Errorf("expected theme cyberpunk, got %q", got.Theme)
	}
	if len(got.Artifacts) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(got.Artifacts))
	}
	if got.Artifacts[0].Bytes != int64(len("<html></html>")) {
		t.Errorf("expected artifact size %d, got %d", len("<html></html>"), got.Artifacts[0].Bytes)
	}
}

func TestStoreRecordMissingArtifact(t *testing.T) {
	st := New(t.TempDir())
	meta, err := st.Create(1)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Record(meta, Artifact{Path: "missing.png"}); err == nil {
		t.Error("expected error for missing artifact")
	}
	if len(meta.Artifacts) != 0 {
		t.Errorf("expected no artifacts, got %d", len(meta.Artifacts))
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	var ids []string
	for i := 0; i < 2; i++ {
		meta, err := st.Create(uint64(i))
		if err != nil {
			t.Fatal(err)
		}
		meta.Timestamp = time.Date(2024, 1, 2-i, 0, 0, 0, 0, time.UTC)
		if err := st.Save(meta); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, meta.ID)
	}
	// directories without a manifest are ignored
	if err := os.Mkdir(filepath.Join(tmpDir, "scratch"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != ids[1] {
		t.Errorf("expected oldest run %s first, got %s", ids[1], runs[0].ID)
	}
}

func TestStoreRejectsBadIDs(t *testing.T) {
	st := New(t.TempDir())
	for _, id := range []string{"", "../etc", "not-a-uuid"} {
		if _, err := st.Load(id); !errors.Is(err, ErrInvalidRunID) {
			t.Errorf("Load(%q): expected ErrInvalidRunID, got %v", id, err)
		}
		if err := st.Save(&RunMetadata{ID: id}); !errors.Is(err, ErrInvalidRunID) {
			t.Errorf("Save(%q): expected ErrInvalidRunID, got %v", id, err)
		}
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	meta, err := st.Create(7)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Save(meta); err != nil {
		t.Fatal(err)
	}

	if st.Dir(meta.ID) != filepath.Join(tmpDir, meta.ID) {
		t.Errorf("unexpected run dir %s", st.Dir(meta.ID))
	}
	if _, err := os.Stat(filepath.Join(tmpDir, meta.ID, ManifestFile)); os.IsNotExist(err) {
		t.Error("manifest.json not created")
	}
}

func TestWriteCSV(t *testing.T) {
	g, err := field.NewGrid([]float64{0, 1}, []float64{0, 1}, []float64{1, 2, 3, math.NaN()}, field.AxisLabels{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, g); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header and 4 rows, got %d lines", len(lines))
	}
	if lines[0] != "x,y,value" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[2] != "1.000000,0.000000,2.000000" {
		t.Errorf("unexpected row %q", lines[2])
	}
	if lines[4] != "1.000000,1.000000," {
		t.Errorf("masked cell should be empty, got %q", lines[4])
	}
}

func TestWriteCSVCategorical(t *testing.T) {
	s, err := field.NewCategorical([]string{"a", "b"}, []float64{3, 4}, field.AxisLabels{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, s); err != nil {
		t.Fatal(err)
	}
	want := "t,value,label\n0.000000,3.000000,a\n1.000000,4.000000,b\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	s, err := field.NewSeries([]float64{0, 0.5}, []float64{1, 2}, field.AxisLabels{})
	if err != nil {
		t.Fatal(err)
	}
	if err := ExportCSV(path, s); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "t,value\n") {
		t.Errorf("unexpected csv %q", data)
	}
}
