package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/y624745579/pism/internal/taucompare"
)

// Store saves comparison runs as directories under a base dir, one
// metadata.json plus a stats.csv per run.
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
	ID        string    `json:"id"`
	InputFile string    `json:"input_file"`
	Timestamp time.Time `json:"timestamp"`
	TaucCap   float64   `json:"tauc_cap"`
	RelCap    float64   `json:"rel_cap"`

	IceCells     int     `json:"ice_cells"`
	SlidingCells int     `json:"sliding_cells"`
	MeanAbsDiff  float64 `json:"mean_abs_diff"`
	MaxAbsDiff   float64 `json:"max_abs_diff"`
	RMSRelError  float64 `json:"rms_rel_error"`
	MaxSpeed     float64 `json:"max_speed"`
}

// Save writes one run directory and returns its id.
func (s *Store) Save(res *taucompare.Result) (string, error) {
	base := filepath.Base(res.Options.InputFile)
	runID := fmt.Sprintf("%s_%d", base, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		InputFile:    res.Options.InputFile,
		Timestamp:    time.Now(),
		TaucCap:      res.Options.TaucCap,
		RelCap:       res.Options.RelCap,
		IceCells:     res.Stats.IceCells,
		SlidingCells: res.Stats.SlidingCells,
		MeanAbsDiff:  res.Stats.MeanAbsDiff,
		MaxAbsDiff:   res.Stats.MaxAbsDiff,
		RMSRelError:  res.Stats.RMSRelError,
		MaxSpeed:     res.Stats.MaxSpeed,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "stats.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"stat", "value"}); err != nil {
		return "", err
	}
	rows := [][2]interface{}{
		{"ice_cells", meta.IceCells},
		{"sliding_cells", meta.SlidingCells},
		{"mean_abs_diff", meta.MeanAbsDiff},
		{"max_abs_diff", meta.MaxAbsDiff},
		{"rms_rel_error", meta.RMSRelError},
		{"max_speed", meta.MaxSpeed},
	}
	for _, row := range rows {
		var val string
		switch v := row[1].(type) {
		case int:
			val = strconv.Itoa(v)
		case float64:
			val = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write([]string{row[0].(string), val}); err != nil {
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}
