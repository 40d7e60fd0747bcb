package ui

import (
	"testing"

	"molten-core/internal/core"
	"molten-core/internal/render"
	"molten-core/internal/sims/molten"
)

func controlIndex(t *testing.T, c *Controls, key string) int {
	t.Helper()
	for i := 0; i < c.Len(); i++ {
		if c.Key(i) == key {
			return i
		}
	}
	t.Fatalf("control %q not found", key)
	return -1
}

func TestControlsTitleAndValues(t *testing.T) {
	scene := molten.New(64, 48)
	c := NewControls(scene)
	if c.Title() != "Molten Controls" {
		t.Fatalf("title = %q", c.Title())
	}
	if c.Len() == 0 {
		t.Fatal("expected live controls")
	}
	i := controlIndex(t, c, "vignette")
	value, ok := c.Value(i)
	if !ok || value != "0.70" {
		t.Fatalf("vignette value = %q (%v), want 0.70", value, ok)
	}
}

func TestControlsAdjustClamps(t *testing.T) {
	scene := molten.New(64, 48)
	c := NewControls(scene)
	i := controlIndex(t, c, "vignette")

	for range 100 {
		c.Adjust(i, 1)
	}
	if c.CanAdjust(i, 1) {
		t.Error("should not be able to step past the maximum")
	}
	if c.Adjust(i, 1) {
		t.Error("Adjust at the maximum should report no change")
	}
	c.Refresh()
	got, ok := scene.Parameters().Lookup("vignette")
	if !ok {
		t.Fatal("vignette missing from snapshot")
	}
	if v, _ := c.Value(i); v != formatFloat(core.ParameterControl{Step: 0.05}, 1) || got.Value != "1" {
		t.Fatalf("after clamping value = %q, scene = %q", v, got.Value)
	}

	if !c.Adjust(i, -1) {
		t.Fatal("stepping down from the maximum should succeed")
	}
	if !c.CanAdjust(i, -1) {
		t.Error("should be able to step down again")
	}
}

type plainScene struct{}

func (plainScene) Name() string               { return "" }
func (plainScene) Size() core.Size            { return core.Size{W: 4, H: 4} }
func (plainScene) Reset(int64)                {}
func (plainScene) Step()                      {}
func (plainScene) Resize(int, int)            {}
func (plainScene) SetCursor(float64, float64) {}
func (plainScene) LeaveCursor()               {}
func (plainScene) Draw(render.Surface)        {}

func TestControlsWithoutProviders(t *testing.T) {
	c := NewControls(plainScene{})
	if c.Title() != "Controls" || c.Len() != 0 {
		t.Fatalf("title %q len %d", c.Title(), c.Len())
	}
	if c.Adjust(0, 1) || c.CanAdjust(0, 1) {
		t.Fatal("out of range adjust should be rejected")
	}
	if len(c.Snapshot().Groups) != 0 {
		t.Fatal("expected empty snapshot")
	}
}

func TestFormatFloatPrecision(t *testing.T) {
	tests := []struct {
		step float64
		want string
	}{
		{0.0005, "0.1235"},
		{0.005, "0.123"},
		{0.05, "0.12"},
		{0.5, "0.1"},
	}
	for _, tt := range tests {
		if got := formatFloat(core.ParameterControl{Step: tt.step}, 0.123456); got != tt.want {
			t.Errorf("step %v: got %s, want %s", tt.step, got, tt.want)
		}
	}
}

func TestSampleGrid(t *testing.T) {
	samples, span := sampleGrid(nil, core.Size{W: 200, H: 100}, 2, 50, 4, 40)
	if span <= 0 || len(samples) == 0 {
		t.Fatalf("span %v samples %d", span, len(samples))
	}
	for _, s := range samples {
		if s.cx < 0 || s.cx > 200 || s.cy < 0 || s.cy > 100 {
			t.Fatalf("sample outside viewport: %+v", s)
		}
		if s.sx != s.cx*2 || s.sy != s.cy*2 {
			t.Fatalf("screen coords not scaled: %+v", s)
		}
	}
	if empty, _ := sampleGrid(samples, core.Size{}, 1, 50, 4, 40); len(empty) != 0 {
		t.Fatalf("empty viewport produced %d samples", len(empty))
	}
}

func TestHeatColorRamp(t *testing.T) {
	rCold, _, bCold, _ := heatColor(-1)
	rHot, _, bHot, _ := heatColor(1)
	if rHot <= rCold || bHot >= bCold {
		t.Fatalf("cold (%d,%d) hot (%d,%d)", rCold, bCold, rHot, bHot)
	}
}
