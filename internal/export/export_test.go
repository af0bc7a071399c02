package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sadopc/folio/internal/objref"
	"github.com/sadopc/folio/internal/portfolio"
)

func sampleData(t *testing.T) (portfolio.State, *objref.Tracker) {
	t.Helper()
	tr := objref.NewTracker()
	st := portfolio.Defaults()
	st.Works[0].Images = append(st.Works[0].Images, tr.Create(objref.BytesSource("frame.png", []byte("png"))))
	missing := int64(999)
	st.Works[1].ProfileID = &missing
	return st, tr
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestWorksToCSV(t *testing.T) {
	st, tr := sampleData(t)
	path := filepath.Join(t.TempDir(), "works.csv")

	if err := WorksToCSV(st.Works, st.Profiles, tr, path); err != nil {
		t.Fatalf("WorksToCSV: %v", err)
	}
	records := readCSV(t, path)

	if len(records) != len(st.Works)+1 {
		t.Fatalf("expected %d rows, got %d", len(st.Works)+1, len(records))
	}
	expectedHeader := []string{"ID", "Title", "Date", "Company", "Tags", "Images", "Videos", "Project URL", "Aspect Ratio"}
	for i, h := range expectedHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	row := records[1]
	if row[0] != "1" || row[1] != "Project Alpha Showcase" {
		t.Fatalf("first row = %v", row)
	}
	if row[3] != "Alpha Studios" {
		t.Fatalf("Company = %q, want Alpha Studios", row[3])
	}
	if row[4] != "Animation; 3D" {
		t.Fatalf("Tags = %q", row[4])
	}
	if strings.Contains(row[5], objref.Scheme) {
		t.Fatal("live references must not be exported")
	}
	if !strings.HasSuffix(row[5], "upload:frame.png") {
		t.Fatalf("Images = %q, want uploaded file name", row[5])
	}
	if records[2][3] != portfolio.NoAffiliation {
		t.Fatalf("dangling profile should export as %q, got %q", portfolio.NoAffiliation, records[2][3])
	}
}

func TestWorksToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := WorksToCSV(nil, nil, objref.NewTracker(), path); err != nil {
		t.Fatal(err)
	}
	if records := readCSV(t, path); len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestWorksToCSVBadPath(t *testing.T) {
	if err := WorksToCSV(nil, nil, objref.NewTracker(), "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestWorksToCSVSpecialCharacters(t *testing.T) {
	works := []portfolio.Work{{ID: 1, Title: `Reel "Final", v2`}}
	path := filepath.Join(t.TempDir(), "special.csv")
	if err := WorksToCSV(works, nil, objref.NewTracker(), path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if records[1][1] != `Reel "Final", v2` {
		t.Fatalf("title mangled: %q", records[1][1])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	st, tr := sampleData(t)
	path := filepath.Join(t.TempDir(), "site.json")

	if err := ToJSON(st, tr, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), objref.Scheme) {
		t.Fatal("live references must not be exported")
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.Count != len(st.Works) || len(result.Works) != len(st.Works) {
		t.Fatalf("count = %d, works = %d", result.Count, len(result.Works))
	}
	if result.ExportedAt == "" {
		t.Fatal("exported_at should not be empty")
	}
	if result.Name != st.Name || len(result.About.Skills) != len(st.Skills) {
		t.Fatal("site fields missing")
	}
	if result.Works[1].Company != portfolio.NoAffiliation {
		t.Fatalf("Company = %q", result.Works[1].Company)
	}
}

func TestToJSONEmptyWorks(t *testing.T) {
	st := portfolio.Defaults()
	st.Works = nil
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ToJSON(st, objref.NewTracker(), path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"works": []`) {
		t.Fatal("works should be an empty list, not null")
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(portfolio.Defaults(), objref.NewTracker(), "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}
