package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/P4GAN/PhysicsSims/internal/config"
	"github.com/P4GAN/PhysicsSims/internal/dynamo"
	"github.com/P4GAN/PhysicsSims/internal/physics"
	"github.com/P4GAN/PhysicsSims/internal/sim"
	"github.com/P4GAN/PhysicsSims/internal/viewport"
)

func TestExportJSON(t *testing.T) {
	cfg := config.DefaultConfig()
	res := &sim.Result{
		Times:   []float64{0, 0.5},
		States:  [][]float64{{1, 2}, {1, 1.5}},
		Metrics: map[string]float64{"energy": 3},
		Frames:  2,
		Errors:  []error{errors.New("boom")},
	}
	springs := []physics.Spring{{A: 1, B: 0}}

	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, NewExportData(cfg, res, SpringPairs(springs))); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got ExportData
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Preset != "rope" || got.Frames != 2 || got.Substeps != cfg.Physics.Substeps {
		t.Errorf("unexpected header %+v", got)
	}
	if len(got.Springs) != 1 || got.Springs[0] != [2]int{1, 0} {
		t.Errorf("unexpected springs %v", got.Springs)
	}
	if len(got.Errors) != 1 || got.Errors[0] != "boom" {
		t.Errorf("unexpected errors %v", got.Errors)
	}
}

func TestWriteJSONOmitsEmptyErrors(t *testing.T) {
	var buf bytes.Buffer
	data := NewExportData(config.DefaultConfig(), &sim.Result{Metrics: map[string]float64{}}, nil)
	if err := WriteJSON(&buf, data); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), `"errors"`) || strings.Contains(buf.String(), `"springs"`) {
		t.Errorf("empty optional fields should be omitted:\n%s", buf.String())
	}
}

func TestFrameToSVG(t *testing.T) {
	w, err := physics.NewChain(physics.DefaultChainSpec())
	if err != nil {
		t.Fatal(err)
	}
	s, _ := sim.NewStepper(w, sim.DefaultStepConfig())
	m, _ := viewport.New(15, 10, 600, 400)

	svg := FrameToSVG(s.Step(0), m)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected a complete svg document")
	}
	if got := strings.Count(svg, "<circle"); got != 30 {
		t.Errorf("expected 30 circles, got %d", got)
	}
	if got := strings.Count(svg, "<line"); got != 29 {
		t.Errorf("expected 29 lines, got %d", got)
	}
	if !strings.Contains(svg, pinColor) || !strings.Contains(svg, anchorColor) {
		t.Error("pin and anchor should be highlighted")
	}
	// The pin sits at (7.5, 9) in simulation units.
	if !strings.Contains(svg, `cx="300.0" cy="40.0"`) {
		t.Error("pin should be drawn at (300, 40)")
	}
}

func TestStrainColor(t *testing.T) {
	tests := []struct {
		strain float64
		want   string
	}{
		{0, "#c0c0c0"},
		{0.5, "#ff0000"},
		{2, "#ff0000"},
		{-0.5, "#0000ff"},
	}
	for _, tt := range tests {
		if got := StrainColor(tt.strain); got != tt.want {
			t.Errorf("StrainColor(%v) = %s, want %s", tt.strain, got, tt.want)
		}
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	if TrajectoryToSVG([]dynamo.Vec{dynamo.V(0, 0)}, 100, 100, "#fff") != "" {
		t.Error("a single point has no trajectory")
	}

	svg := TrajectoryToSVG([]dynamo.Vec{dynamo.V(0, 0), dynamo.V(1, 1), dynamo.V(2, 0)}, 120, 100, "#00ff00")
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("stroke color missing")
	}
	if got := strings.Count(svg, " L"); got != 2 {
		t.Errorf("expected 2 line segments, got %d", got)
	}
	if !strings.Contains(svg, "d=\"M10.0,91.7") {
		t.Errorf("first point should be inset by the padding:\n%s", svg)
	}
}
