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

	"github.com/san-kum/simpson/internal/quad"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID              string               `json:"id"`
	Equation        int                  `json:"equation"`
	EquationName    string               `json:"equation_name"`
	Timestamp       time.Time            `json:"timestamp"`
	Lower           float64              `json:"lower"`
	Upper           float64              `json:"upper"`
	Intervals       int                  `json:"intervals"`
	Resolved        bool                 `json:"resolved"`
	Value           *float64             `json:"value,omitempty"`
	Discontinuities []quad.Discontinuity `json:"discontinuities"`
	Estimate        *quad.ErrorEstimate  `json:"estimate,omitempty"`
}

// Save writes meta and the accepted nodes of the run. ID and Timestamp
// are assigned here. An unresolved run is stored without a value.
func (s *Store) Save(meta RunMetadata, nodes []quad.Node) (string, error) {
	ts := s.now()
	meta.ID = fmt.Sprintf("eq%d_%d", meta.Equation, ts.UnixNano())
	meta.Timestamp = ts
	if !meta.Resolved {
		meta.Value = nil
		meta.Estimate = nil
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"index", "x", "fx", "weight"}); err != nil {
		return "", err
	}
	for _, n := range nodes {
		row := []string{
			strconv.Itoa(n.Index),
			strconv.FormatFloat(n.X, 'g', -1, 64),
			strconv.FormatFloat(n.Y, 'g', -1, 64),
			strconv.FormatFloat(n.Weight, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns all stored runs, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

func (s *Store) LoadSamples(runID string) ([]quad.Node, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []quad.Node{}, nil
	}

	nodes := make([]quad.Node, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != 4 {
			return nil, fmt.Errorf("storage: %s line %d: expected 4 fields, got %d", samplesFile, i+2, len(record))
		}
		idx, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", samplesFile, i+2, err)
		}
		vals := make([]float64, 3)
		for j := range vals {
			if vals[j], err = strconv.ParseFloat(record[j+1], 64); err != nil {
				return nil, fmt.Errorf("storage: %s line %d: %w", samplesFile, i+2, err)
			}
		}
		nodes = append(nodes, quad.Node{Index: idx, X: vals[0], Y: vals[1], Weight: vals[2]})
	}
	return nodes, nil
}
