package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var framesHeader = []string{"time", "id", "x", "y", "old_x", "old_y", "radius", "color"}

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
	ID             string             `json:"id"`
	Preset         string             `json:"preset"`
	Timestamp      time.Time          `json:"timestamp"`
	Seed           int64              `json:"seed"`
	Particles      int                `json:"particles"`
	Dt             float64            `json:"dt"`
	Duration       float64            `json:"duration"`
	SubSteps       int                `json:"substeps"`
	Gravity        float32            `json:"gravity"`
	Center         physics.Vec2       `json:"center"`
	BoundaryRadius float32            `json:"boundary_radius"`
	StepsTaken     int                `json:"steps_taken"`
	Frames         int                `json:"frames"`
	Metrics        map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and frames.csv under a new run directory and
// returns the run id.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Preset, now.UnixNano())
	meta.Timestamp = now
	meta.StepsTaken = result.StepsTaken
	meta.Frames = len(result.Frames)
	meta.Metrics = result.Metrics

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

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteFramesCSV(csvFile, result.Frames); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// WriteFramesCSV writes frames in the frames.csv layout, one row per
// particle per frame. An empty frame is a single row with only the time set.
func WriteFramesCSV(out io.Writer, frames []sim.Frame) error {
	w := csv.NewWriter(out)
	if err := w.Write(framesHeader); err != nil {
		return err
	}
	for _, f := range frames {
		ts := strconv.FormatFloat(f.Time, 'f', 6, 64)
		if len(f.Particles) == 0 {
			if err := w.Write(emptyRow(ts)); err != nil {
				return err
			}
			continue
		}
		for _, p := range f.Particles {
			if err := w.Write(particleRow(ts, p)); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func emptyRow(ts string) []string {
	row := make([]string, len(framesHeader))
	row[0] = ts
	return row
}

func particleRow(ts string, p physics.Particle) []string {
	f := func(v float32) string { return strconv.FormatFloat(float64(v), 'f', -1, 32) }
	return []string{
		ts,
		strconv.FormatUint(uint64(p.ID), 10),
		f(p.Pos.X), f(p.Pos.Y),
		f(p.OldPos.X), f(p.OldPos.Y),
		f(p.Radius), f(p.Color),
	}
}

// List returns every stored run, newest first.
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
		return runs[i].Timestamp.After(runs[j].Timestamp)
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

// LoadFrames reads frames.csv back into frames, grouped by time.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(framesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	frames := make([]sim.Frame, 0)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if rec[1] == "" {
			ts, err := strconv.ParseFloat(rec[0], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", framesFile, i+1, err)
			}
			frames = append(frames, sim.Frame{Time: ts})
			continue
		}

		ts, p, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+1, err)
		}
		if n := len(frames); n == 0 || frames[n-1].Time != ts || len(frames[n-1].Particles) == 0 {
			frames = append(frames, sim.Frame{Time: ts})
		}
		last := &frames[len(frames)-1]
		last.Particles = append(last.Particles, p)
	}

	return frames, nil
}

func parseRow(rec []string) (float64, physics.Particle, error) {
	ts, err := strconv.ParseFloat(rec[0], 64)
	if err != nil {
		return 0, physics.Particle{}, err
	}
	id, err := strconv.ParseUint(rec[1], 10, 32)
	if err != nil {
		return 0, physics.Particle{}, err
	}

	vals := make([]float32, 6)
	for k := range vals {
		v, err := strconv.ParseFloat(rec[k+2], 32)
		if err != nil {
			return 0, physics.Particle{}, err
		}
		vals[k] = float32(v)
	}

	return ts, physics.Particle{
		ID:     uint32(id),
		Pos:    physics.Vec2{X: vals[0], Y: vals[1]},
		OldPos: physics.Vec2{X: vals[2], Y: vals[3]},
		Radius: vals[4],
		Color:  vals[5],
	}, nil
}
