package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rs/xid"
	"github.com/san-kum/rotsim/internal/config"
	"github.com/san-kum/rotsim/internal/experiment"
	"github.com/san-kum/rotsim/internal/vote"
)

const (
	metadataFile        = "metadata.json"
	classificationsFile = "classifications.csv"
	bucketsFile         = "buckets.csv"
)

// Store keeps one directory per run holding its metadata, classification
// stream and final bucket weights. Runs are reports; they cannot be
// resumed.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Bodies    int                `json:"bodies"`
	Buckets   int                `json:"buckets"`
	Steps     int                `json:"steps"`
	Final     int                `json:"final"`
	Winner    vote.Run           `json:"winner"`
	Top       []vote.Run         `json:"top"`
	Distinct  int                `json:"distinct"`
	Runs      int                `json:"runs"`
	Metrics   map[string]float64 `json:"metrics"`
	Config    *config.Config     `json:"config"`
}

// BucketRow is one line of buckets.csv.
type BucketRow struct {
	Bucket int
	Center float64
	Weight float64
}

// Save writes a run and returns its id.
func (s *Store) Save(cfg *config.Config, out *experiment.Outcome, centers []float64) (string, error) {
	runID := xid.New().String()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	d := out.Decision
	meta := RunMetadata{
		ID:        runID,
		Name:      cfg.Name,
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		Bodies:    cfg.Bodies,
		Buckets:   cfg.Buckets,
		Steps:     out.Result.StepsTaken,
		Final:     d.Final,
		Winner:    d.Winner,
		Top:       d.Top,
		Distinct:  d.Distinct,
		Runs:      len(d.Runs),
		Metrics:   out.Result.Metrics,
		Config:    cfg,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	rows := [][]string{{"step", "class"}}
	for i, c := range out.Result.Classifications {
		rows = append(rows, []string{strconv.Itoa(i), strconv.Itoa(c)})
	}
	if err := writeCSV(filepath.Join(runDir, classificationsFile), rows); err != nil {
		return "", err
	}

	rows = [][]string{{"bucket", "center", "weight"}}
	for i, w := range out.Result.Weights {
		center := 0.0
		if i < len(centers) {
			center = centers[i]
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.FormatFloat(center, 'f', 6, 64),
			strconv.FormatFloat(w, 'g', -1, 64),
		})
	}
	if err := writeCSV(filepath.Join(runDir, bucketsFile), rows); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Sync()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadClassifications reads back the classification stream of a run.
func (s *Store) LoadClassifications(runID string) ([]int, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, classificationsFile))
	if err != nil {
		return nil, err
	}

	stream := make([]int, 0, len(records))
	for i, record := range records {
		if len(record) < 2 {
			return nil, fmt.Errorf("%s line %d: expected 2 fields", classificationsFile, i+2)
		}
		c, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", classificationsFile, i+2, err)
		}
		stream = append(stream, c)
	}
	return stream, nil
}

// LoadBuckets reads back the final bucket weights of a run.
func (s *Store) LoadBuckets(runID string) ([]BucketRow, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, bucketsFile))
	if err != nil {
		return nil, err
	}

	rows := make([]BucketRow, 0, len(records))
	for i, record := range records {
		if len(record) < 3 {
			return nil, fmt.Errorf("%s line %d: expected 3 fields", bucketsFile, i+2)
		}
		var row BucketRow
		if row.Bucket, err = strconv.Atoi(record[0]); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", bucketsFile, i+2, err)
		}
		if row.Center, err = strconv.ParseFloat(record[1], 64); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", bucketsFile, i+2, err)
		}
		if row.Weight, err = strconv.ParseFloat(record[2], 64); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", bucketsFile, i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// readCSV returns the records after the header line.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}
