package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the self-contained JSON form of a stored run.
type ExportData struct {
	Meta            *RunMetadata `json:"meta"`
	Classifications []int        `json:"classifications"`
	Buckets         []BucketRow  `json:"buckets"`
}

// Export gathers everything stored for runID.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	stream, err := s.LoadClassifications(runID)
	if err != nil {
		return nil, err
	}
	buckets, err := s.LoadBuckets(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{Meta: meta, Classifications: stream, Buckets: buckets}, nil
}

func (s *Store) ExportJSON(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.WriteJSON(file, runID)
}

func (s *Store) WriteJSON(w io.Writer, runID string) error {
	data, err := s.Export(runID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
