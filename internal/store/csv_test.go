package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
)

func testDatasets(t *testing.T) *Datasets {
	t.Helper()
	return NewDatasets(t.TempDir(), nil)
}

func sampleRows() []review.Review {
	return []review.Review{
		{Author: "Priya R", Rating: 5.0, Text: "Great service and friendly staff", Date: "Recent"},
		{Author: "Unknown", Rating: 3.0, Text: review.NoTextSentinel, Date: "Recent"},
		{Author: "Sam, the \"regular\"", Rating: 1.0, Text: "Waited 45 minutes,\nfood was cold", Date: "Recent"},
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"TCS Chennai", "tcs_chennai"},
		{"tcs chennai", "tcs_chennai"},
		{"Joe's Pizza, NYC", "joe_s_pizza__nyc"},
		{"Café München", "caf__m_nchen"},
		{"plain", "plain"},
		{"123 Go", "123_go"},
	}
	for _, tt := range tests {
		if got := Key(tt.query); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestSaveLookupRoundTrip(t *testing.T) {
	d := testDatasets(t)
	rows := sampleRows()

	if err := d.Save("TCS Chennai", rows); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok := d.Lookup("TCS Chennai")
	if !ok {
		t.Fatal("expected cache hit after save")
	}
	if len(got) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(got))
	}
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("row %d: got %+v, want %+v", i, got[i], rows[i])
		}
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	d := testDatasets(t)
	if err := d.Save("TCS Chennai", sampleRows()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := d.Lookup("tcs CHENNAI"); !ok {
		t.Error("expected normalized queries to share the cache entry")
	}
}

func TestLookupMissing(t *testing.T) {
	d := testDatasets(t)
	if _, ok := d.Lookup("never fetched"); ok {
		t.Error("expected miss for unknown query")
	}
}

func TestLookupCorruptedTreatedAsAbsent(t *testing.T) {
	d := testDatasets(t)
	path := d.Path("broken place")
	if err := os.WriteFile(path, []byte("author,rating\n\"unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok := d.Lookup("broken place"); ok {
		t.Error("expected corrupted cache to count as absent")
	}
}

func TestLookupBadRatingTreatedAsAbsent(t *testing.T) {
	d := testDatasets(t)
	path := d.Path("bad rating")
	content := "author,rating,text,date\nA,five stars,nice,Recent\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok := d.Lookup("bad rating"); ok {
		t.Error("expected unparseable rating to count as absent")
	}
}

func TestSaveSyncsSharedRawFile(t *testing.T) {
	d := testDatasets(t)
	rows := sampleRows()
	if err := d.Save("TCS Chennai", rows); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := d.LoadRaw()
	if err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("expected shared raw file to hold %d rows, got %d", len(rows), len(got))
	}
}

func TestLoadRawMissing(t *testing.T) {
	d := testDatasets(t)
	if _, err := d.LoadRaw(); err == nil {
		t.Error("expected error when raw file absent")
	}
}

func TestAnalyzedRoundTrip(t *testing.T) {
	d := testDatasets(t)
	rows := []review.Analyzed{
		{
			Review:         review.Review{Author: "Priya R", Rating: 5.0, Text: "Great service"},
			Sentiment:      review.Positive,
			Summary:        "Customer praised the service",
			Recommendation: "Keep staff training up",
		},
		{
			Review:         review.Review{Author: "Unknown", Rating: 3.0, Text: review.NoTextSentinel},
			Sentiment:      review.Neutral,
			Summary:        "No text provided",
			Recommendation: "N/A",
		},
	}

	if err := d.SaveAnalyzed(rows); err != nil {
		t.Fatalf("SaveAnalyzed: %v", err)
	}

	got, err := d.LoadAnalyzed()
	if err != nil {
		t.Fatalf("LoadAnalyzed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Sentiment != review.Positive {
		t.Errorf("expected Positive, got %q", got[0].Sentiment)
	}
	if got[1].Recommendation != "N/A" {
		t.Errorf("expected N/A recommendation, got %q", got[1].Recommendation)
	}
}

func TestStatsAndClear(t *testing.T) {
	d := testDatasets(t)
	if err := d.Save("spot one", sampleRows()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := d.Save("spot two", sampleRows()); err != nil {
		t.Fatalf("save: %v", err)
	}

	// two per-query files + shared raw file
	files, bytes, err := d.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if files != 3 {
		t.Errorf("expected 3 csv files, got %d", files)
	}
	if bytes == 0 {
		t.Error("expected non-zero total size")
	}

	removed, err := d.Clear()
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if removed != 3 {
		t.Errorf("expected 3 files removed, got %d", removed)
	}

	files, _, err = d.Stats()
	if err != nil {
		t.Fatalf("stats after clear: %v", err)
	}
	if files != 0 {
		t.Errorf("expected empty data dir, got %d files", files)
	}
}

func TestStatsMissingDir(t *testing.T) {
	d := NewDatasets(filepath.Join(t.TempDir(), "never-created"), nil)
	files, bytes, err := d.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if files != 0 || bytes != 0 {
		t.Errorf("expected zero stats for missing dir, got %d files / %d bytes", files, bytes)
	}
}
