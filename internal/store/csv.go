package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
	"go.uber.org/zap"
)

// Shared working files. The per-query dataset is the cache; these two are the
// hand-off between `repute fetch` and `repute analyze` run as separate
// processes.
const (
	RawFile      = "reviews_raw.csv"
	AnalyzedFile = "reviews_analyzed.csv"
)

var (
	rawHeader      = []string{"author", "rating", "text", "date"}
	analyzedHeader = []string{"author", "rating", "text", "sentiment", "summary", "recommendation"}
)

// Key normalizes a query into a dataset filename stem: each non-alphanumeric
// character becomes '_' and the result is lowercased, so "TCS Chennai" and
// "tcs chennai" share a cache entry.
func Key(query string) string {
	var b strings.Builder
	for _, r := range query {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Datasets reads and writes the CSV files under the data directory.
type Datasets struct {
	dir string
	log *zap.Logger
}

func NewDatasets(dir string, log *zap.Logger) *Datasets {
	if log == nil {
		log = zap.NewNop()
	}
	return &Datasets{dir: dir, log: log}
}

func (d *Datasets) Dir() string { return d.dir }

// Path returns the per-query dataset file for a query.
func (d *Datasets) Path(query string) string {
	return filepath.Join(d.dir, Key(query)+"_reviews.csv")
}

// Lookup returns the cached rows for a query. Missing or unreadable files
// both count as absent; a corrupted cache is logged and refetched, never
// surfaced as an error.
func (d *Datasets) Lookup(query string) ([]review.Review, bool) {
	path := d.Path(query)
	rows, err := readRaw(path)
	if err != nil {
		if !os.IsNotExist(err) {
			d.log.Warn("cache unreadable, refetching", zap.String("file", path), zap.Error(err))
		}
		return nil, false
	}
	return rows, true
}

// Save writes the per-query dataset and syncs it to the shared raw file.
func (d *Datasets) Save(query string, rows []review.Review) error {
	if err := writeRaw(d.Path(query), rows); err != nil {
		return err
	}
	return d.SyncRaw(rows)
}

// SyncRaw refreshes the shared raw file only, used on cache hits so a later
// standalone `repute analyze` sees the current query's rows.
func (d *Datasets) SyncRaw(rows []review.Review) error {
	return writeRaw(filepath.Join(d.dir, RawFile), rows)
}

// LoadRaw reads the shared raw file, the input for standalone analysis.
func (d *Datasets) LoadRaw() ([]review.Review, error) {
	path := filepath.Join(d.dir, RawFile)
	rows, err := readRaw(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s not found, run `repute fetch` first", path)
		}
		return nil, err
	}
	return rows, nil
}

// SaveAnalyzed writes the analyzed dataset.
func (d *Datasets) SaveAnalyzed(rows []review.Analyzed) error {
	path := filepath.Join(d.dir, AnalyzedFile)
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(analyzedHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Author,
			formatRating(r.Rating),
			r.Text,
			string(r.Sentiment),
			r.Summary,
			r.Recommendation,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// LoadAnalyzed reads the analyzed dataset back, for reopening the last run's
// dashboard without scraping.
func (d *Datasets) LoadAnalyzed() ([]review.Analyzed, error) {
	path := filepath.Join(d.dir, AnalyzedFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 || len(records[0]) != len(analyzedHeader) {
		return nil, fmt.Errorf("%s: unexpected layout", path)
	}

	rows := make([]review.Analyzed, 0, len(records)-1)
	for _, rec := range records[1:] {
		rating, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad rating %q: %w", path, rec[1], err)
		}
		rows = append(rows, review.Analyzed{
			Review: review.Review{
				Author: rec[0],
				Rating: rating,
				Text:   rec[2],
			},
			Sentiment:      review.ParseSentiment(rec[3]),
			Summary:        rec[4],
			Recommendation: rec[5],
		})
	}
	return rows, nil
}

// Stats reports how many dataset files exist and their total size.
func (d *Datasets) Stats() (files int, bytes int64, err error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files++
		bytes += info.Size()
	}
	return files, bytes, nil
}

// Clear deletes every dataset file, returning how many were removed.
func (d *Datasets) Clear() (int, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		if err := os.Remove(filepath.Join(d.dir, e.Name())); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func writeRaw(path string, rows []review.Review) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(rawHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Author, formatRating(r.Rating), r.Text, r.Date}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func readRaw(path string) ([]review.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 || len(records[0]) != len(rawHeader) {
		return nil, fmt.Errorf("%s: unexpected layout", path)
	}

	rows := make([]review.Review, 0, len(records)-1)
	for _, rec := range records[1:] {
		rating, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad rating %q: %w", path, rec[1], err)
		}
		rows = append(rows, review.Review{
			Author: rec[0],
			Rating: rating,
			Text:   rec[2],
			Date:   rec[3],
		})
	}
	return rows, nil
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}
