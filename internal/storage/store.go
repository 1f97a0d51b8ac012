// Package storage persists simulation runs as per-run directories
// holding a metadata JSON file and a positions CSV trajectory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/cellsim/internal/engine"
	"github.com/san-kum/cellsim/internal/sim"
)

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
	Model     string             `json:"model"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	NumCells  int                `json:"num_cells"`
	CellTypes []string           `json:"cell_types,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run to a fresh directory and returns its ID. The
// CSV holds one row per recorded frame: time, then (y, x) per cell.
func (s *Store) Save(model string, cfg sim.Config, cellTypes []string, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", model, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	numCells := 0
	if len(result.Positions) > 0 {
		numCells = len(result.Positions[0])
	}

	meta := RunMetadata{
		ID:        runID,
		Model:     model,
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		Dt:        cfg.Dt,
		Steps:     result.StepsTaken,
		NumCells:  numCells,
		CellTypes: cellTypes,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "positions.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Positions) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := 0; i < numCells; i++ {
		header = append(header, fmt.Sprintf("y%d", i), fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, frame := range result.Positions {
		row := make([]string, 0, 1+numCells*2)
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
		for _, cell := range frame {
			row = append(row,
				strconv.FormatFloat(cell[0], 'f', 6, 64),
				strconv.FormatFloat(cell[1], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadPositions reads back the trajectory of a run: one Positions
// frame per recorded step plus the matching times. Malformed rows are
// skipped.
func (s *Store) LoadPositions(runID string) ([]engine.Positions, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "positions.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []engine.Positions{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	frames := make([]engine.Positions, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 1 || len(record)%2 == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		frame := make(engine.Positions, 0, (len(record)-1)/2)
		ok := true
		for j := 1; j+1 < len(record); j += 2 {
			y, err1 := strconv.ParseFloat(record[j], 64)
			x, err2 := strconv.ParseFloat(record[j+1], 64)
			if err1 != nil || err2 != nil {
				ok = false
				break
			}
			frame = append(frame, [2]float64{y, x})
		}
		if !ok {
			continue
		}

		times = append(times, t)
		frames = append(frames, frame)
	}

	return frames, times, nil
}
