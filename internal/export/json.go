package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/P4GAN/PhysicsSims/internal/config"
	"github.com/P4GAN/PhysicsSims/internal/physics"
	"github.com/P4GAN/PhysicsSims/internal/sim"
)

type ExportData struct {
	Preset   string             `json:"preset"`
	FPS      float64            `json:"fps"`
	Duration float64            `json:"duration"`
	Substeps int                `json:"substeps"`
	Frames   int                `json:"frames"`
	Diverged bool               `json:"diverged"`
	Times    []float64          `json:"times"`
	States   [][]float64        `json:"states"`
	Springs  [][2]int           `json:"springs,omitempty"`
	Metrics  map[string]float64 `json:"metrics"`
	Errors   []string           `json:"errors,omitempty"`
}

// NewExportData collects a run for serialisation. springs may be nil.
func NewExportData(cfg *config.Config, result *sim.Result, springs [][2]int) ExportData {
	data := ExportData{
		Preset:   cfg.Preset,
		FPS:      cfg.Run.FPS,
		Duration: cfg.Run.Duration,
		Substeps: cfg.Physics.Substeps,
		Frames:   result.Frames,
		Diverged: result.Diverged,
		Times:    result.Times,
		States:   result.States,
		Springs:  springs,
		Metrics:  result.Metrics,
	}
	for _, err := range result.Errors {
		data.Errors = append(data.Errors, err.Error())
	}
	return data
}

// SpringPairs lists spring endpoints as particle indices into each state row.
func SpringPairs(springs []physics.Spring) [][2]int {
	out := make([][2]int, len(springs))
	for i, s := range springs {
		out[i] = [2]int{s.A, s.B}
	}
	return out
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}

func ExportJSONStdout(data ExportData) error {
	return WriteJSON(os.Stdout, data)
}
