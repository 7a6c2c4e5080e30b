package render

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/ctessum/sparse"
)

func TestLinearNorm(t *testing.T) {
	n := Linear(0, 10)

	if got := n.Apply(5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("expected 0.5, got %f", got)
	}
	if got := n.Apply(-1); got != 0 {
		t.Errorf("expected clamp to 0, got %f", got)
	}
	if got := n.Apply(11); got != 1 {
		t.Errorf("expected clamp to 1, got %f", got)
	}
}

func TestSymmetricNorm(t *testing.T) {
	n := Symmetric(1.0)

	if got := n.Apply(0); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("expected zero at midpoint, got %f", got)
	}
	if got := n.Apply(-1); got != 0 {
		t.Errorf("expected -cap at 0, got %f", got)
	}
	if got := n.Apply(1); got != 1 {
		t.Errorf("expected +cap at 1, got %f", got)
	}
}

func TestLogNorm(t *testing.T) {
	n := Log(0.1, 1000)

	if got := n.Apply(0.1); got != 0 {
		t.Errorf("expected 0 at lower bound, got %f", got)
	}
	if got := n.Apply(1000); math.Abs(got-1) > 1e-12 {
		t.Errorf("expected 1 at upper bound, got %f", got)
	}
	// log midpoint of 0.1..1000 is 10
	if got := n.Apply(10); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("expected 0.5 at 10, got %f", got)
	}
	// zeros (masked cells) sit at the bottom of the scale
	if got := n.Apply(0); got != 0 {
		t.Errorf("expected 0 for zero value, got %f", got)
	}
}

func TestLogNormTicks(t *testing.T) {
	n := Log(0.1, 1000)
	ticks := n.Ticks(5)

	expected := []float64{0.1, 1, 10, 100, 1000}
	for k := range expected {
		if math.Abs(ticks[k]-expected[k])/expected[k] > 1e-9 {
			t.Errorf("tick %d: expected %f, got %f", k, expected[k], ticks[k])
		}
	}
}

func TestBlueWhiteRed(t *testing.T) {
	mid := BlueWhiteRed(0.5)
	if mid.R != 255 || mid.G != 255 || mid.B != 255 {
		t.Errorf("expected white at midpoint, got %v", mid)
	}

	lo := BlueWhiteRed(0)
	if lo.B != 255 || lo.R != 0 {
		t.Errorf("expected blue at 0, got %v", lo)
	}

	hi := BlueWhiteRed(1)
	if hi.R != 255 || hi.B != 0 {
		t.Errorf("expected red at 1, got %v", hi)
	}
}

func TestViridisEndpoints(t *testing.T) {
	lo := Viridis(0)
	if lo.B <= lo.G {
		t.Errorf("expected dark purple at 0, got %v", lo)
	}

	hi := Viridis(1)
	if hi.R < 200 || hi.G < 200 {
		t.Errorf("expected yellow at 1, got %v", hi)
	}
}

func TestHeatmapRender(t *testing.T) {
	data := sparse.ZerosDense(3, 5)
	for k := range data.Elements {
		data.Elements[k] = float64(k)
	}

	h := Heatmap{
		Title: "test",
		Cmap:  Viridis,
		Norm:  Linear(0, 14),
	}

	var buf bytes.Buffer
	if err := h.Render(&buf, Panel{Label: "a", Data: data}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Error("expected a non-empty image")
	}
}

func TestHeatmapRejectsMismatchedPanels(t *testing.T) {
	h := Heatmap{Cmap: Viridis, Norm: Linear(0, 1)}

	var buf bytes.Buffer
	err := h.Render(&buf,
		Panel{Label: "a", Data: sparse.ZerosDense(3, 5)},
		Panel{Label: "b", Data: sparse.ZerosDense(4, 4)})
	if err == nil {
		t.Error("expected error for mismatched panel shapes")
	}

	if err := h.Render(&buf); err == nil {
		t.Error("expected error for no panels")
	}
}

func TestSeriesChart(t *testing.T) {
	times := []float64{0, 1, 2, 3}
	series := map[string][]float64{
		"air_temp": {250, 260, 270, 260},
	}

	var buf bytes.Buffer
	if err := SeriesChart(&buf, "test", "day", "K", times, series); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
}

func TestSeriesChartValidation(t *testing.T) {
	var buf bytes.Buffer
	if err := SeriesChart(&buf, "t", "x", "y", nil, nil); err == nil {
		t.Error("expected error for no series")
	}

	err := SeriesChart(&buf, "t", "x", "y", []float64{0, 1},
		map[string][]float64{"a": {1}})
	if err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestAsciiSeries(t *testing.T) {
	out := AsciiSeries([]float64{1, 2, 3, 2, 1}, "caption")
	if out == "" {
		t.Error("expected a non-empty plot")
	}
}
