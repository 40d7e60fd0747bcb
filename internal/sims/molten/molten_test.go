package molten

import (
	"maps"
	"math"
	"slices"
	"testing"

	"molten-core/internal/core"
	"molten-core/internal/render"
)

func TestEnvelope(t *testing.T) {
	tests := []struct {
		life, max int
		want      float64
	}{
		{0, 100, 0},
		{100, 100, 0},
		{30, 100, 1},
		{5, 100, 0.5},
		{80, 100, 0.5},
		{60, 100, 1},
		{120, 100, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := Envelope(tt.life, tt.max); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Envelope(%d, %d) = %v, want %v", tt.life, tt.max, got, tt.want)
		}
	}
}

func TestCrackEnvelopeScalesWithMaxLife(t *testing.T) {
	for _, maxLife := range []int{180, 333, 480} {
		c := Crack{MaxLife: maxLife}
		if c.Alpha() != 0 {
			t.Fatalf("alpha at life 0 = %v", c.Alpha())
		}
		c.Life = maxLife
		if c.Alpha() != 0 {
			t.Fatalf("alpha at max life = %v", c.Alpha())
		}
		c.Life = int(0.3 * float64(maxLife))
		if c.Alpha() != 1 {
			t.Fatalf("alpha at 30%% of %d = %v", maxLife, c.Alpha())
		}
	}
}

func TestEndToEndHundredFrames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 800
	cfg.Height = 600
	cfg.Seed = 42
	a := NewWithConfig(cfg)

	counts := [5]int{len(a.Blobs()), len(a.FlowNodes()), len(a.Cracks()), len(a.Embers()), len(a.Shimmers())}
	if counts != [5]int{9, 24, 12, 80, 6} {
		t.Fatalf("unexpected default counts %v", counts)
	}

	for frame := 0; frame < 100; frame++ {
		a.Step()
		for i, b := range a.Blobs() {
			if b.X < -b.R || b.X > 800+b.R || b.Y < -b.R || b.Y > 600+b.R {
				t.Fatalf("frame %d: blob %d at (%.1f, %.1f) outside wrap bounds r=%.1f", frame, i, b.X, b.Y, b.R)
			}
		}
		for i, c := range a.Cracks() {
			if c.Life > c.MaxLife {
				t.Fatalf("frame %d: crack %d life %d > max %d", frame, i, c.Life, c.MaxLife)
			}
		}
		for i, e := range a.Embers() {
			if e.Life > e.MaxLife {
				t.Fatalf("frame %d: ember %d life %d > max %d", frame, i, e.Life, e.MaxLife)
			}
		}
		got := [5]int{len(a.Blobs()), len(a.FlowNodes()), len(a.Cracks()), len(a.Embers()), len(a.Shimmers())}
		if got != counts {
			t.Fatalf("frame %d: counts changed from %v to %v", frame, counts, got)
		}
	}
	if a.Frame() != 100 {
		t.Fatalf("frame counter = %d", a.Frame())
	}
	if a.Cursor().Active {
		t.Fatal("cursor must stay inactive without input")
	}
}

func TestLifeCountersMonotonic(t *testing.T) {
	a := New(320, 240)
	prevBlob := make([]int, len(a.Blobs()))
	prevEmber := make([]int, len(a.Embers()))
	for frame := 0; frame < 200; frame++ {
		a.Step()
		for i, b := range a.Blobs() {
			if b.Life != prevBlob[i]+1 {
				t.Fatalf("blob %d life jumped from %d to %d", i, prevBlob[i], b.Life)
			}
			prevBlob[i] = b.Life
		}
		for i, e := range a.Embers() {
			if e.Life != 0 && e.Life != prevEmber[i]+1 {
				t.Fatalf("ember %d life jumped from %d to %d", i, prevEmber[i], e.Life)
			}
			prevEmber[i] = e.Life
		}
	}
}

func TestEmberRespawnsAtGroundWhenOld(t *testing.T) {
	a := New(400, 300)
	e := &a.Embers()[0]
	e.Life = e.MaxLife + 1
	a.Step()
	if e.Life != 0 {
		t.Fatalf("expected respawned life 0, got %d", e.Life)
	}
	if e.Y < 300 {
		t.Fatalf("expected ground spawn at y >= 300, got %.2f", e.Y)
	}
}

func TestEmberRespawnsAtGroundAboveTop(t *testing.T) {
	a := New(400, 300)
	e := &a.Embers()[1]
	e.Y = -25
	e.Life = 1
	a.Step()
	if e.Life != 0 || e.Y < 300 {
		t.Fatalf("expected ground respawn, got life %d y %.2f", e.Life, e.Y)
	}
}

func TestInitialEmbersSpreadOverScreen(t *testing.T) {
	a := New(400, 300)
	onScreen := 0
	for _, e := range a.Embers() {
		if e.Life != 0 {
			t.Fatalf("seeded ember has life %d", e.Life)
		}
		if e.Y < 300 {
			onScreen++
		}
	}
	if onScreen == 0 {
		t.Fatal("initial embers should be seeded anywhere on screen")
	}
}

func TestEmberRisesAndShrinks(t *testing.T) {
	a := New(400, 300)
	e := &a.Embers()[2]
	e.Y = 150
	e.Life = 1
	e.MaxLife = 1000
	startY, startSize := e.Y, e.BaseSize
	for i := 0; i < 20; i++ {
		a.Step()
	}
	if e.Y >= startY {
		t.Fatalf("ember should rise, y %.2f -> %.2f", startY, e.Y)
	}
	if e.Size >= startSize {
		t.Fatalf("ember should shrink, size %.2f -> %.2f", startSize, e.Size)
	}
}

func TestCrackSlotRespawns(t *testing.T) {
	a := New(400, 300)
	c := &a.Cracks()[0]
	c.Delay = 0
	c.Life = c.MaxLife
	a.Step()
	if c.Life != 0 {
		t.Fatalf("expected fresh crack, life %d", c.Life)
	}
	if n := len(c.Points); n < 7 || n > 16 {
		t.Fatalf("crack has %d points, want 7..16", n)
	}
	if c.MaxLife < 180 || c.MaxLife > 480 {
		t.Fatalf("crack max life %d outside 180..480", c.MaxLife)
	}
}

func TestCrackDelayHoldsLife(t *testing.T) {
	a := New(400, 300)
	c := &a.Cracks()[0]
	c.Delay = 3
	c.Life = 0
	for i := 0; i < 3; i++ {
		a.Step()
		if c.Life != 0 {
			t.Fatalf("life advanced during delay: %d", c.Life)
		}
	}
	a.Step()
	if c.Life != 1 {
		t.Fatalf("life should start after delay, got %d", c.Life)
	}
}

func TestBlobWrapsToOppositeSide(t *testing.T) {
	a := New(400, 300)
	b := &a.Blobs()[0]
	b.X = -b.R - 5
	b.VX = -1
	a.Step()
	if b.X != 400+b.R {
		t.Fatalf("blob should re-enter at the right edge, x=%.2f", b.X)
	}
	b.Y = 300 + b.R + 5
	b.VY = 1
	a.Step()
	if b.Y != -b.R {
		t.Fatalf("blob should re-enter at the top edge, y=%.2f", b.Y)
	}
}

func TestBlobRepelledByCursor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 800, 600
	cfg.Params.BlobDrift = 0
	cfg.Params.BlobDamping = 1
	a := NewWithConfig(cfg)
	b := &a.Blobs()[0]
	b.X, b.Y, b.VX, b.VY = 400, 300, 0, 0

	a.SetCursor(350, 300)
	a.Step()
	if b.VX <= 0 || b.X <= 400 {
		t.Fatalf("blob should be pushed away from the cursor, vx=%.3f x=%.2f", b.VX, b.X)
	}

	a.LeaveCursor()
	vx := b.VX
	a.Step()
	if b.VX != vx {
		t.Fatalf("inactive cursor must not push, vx %.3f -> %.3f", vx, b.VX)
	}
}

func TestFlowNodesWrap(t *testing.T) {
	a := New(200, 100)
	for i := 0; i < 300; i++ {
		a.Step()
		for _, n := range a.FlowNodes() {
			if n.X < 0 || n.X >= 200 || n.Y < 0 || n.Y >= 100 {
				t.Fatalf("flow node escaped: (%.2f, %.2f)", n.X, n.Y)
			}
		}
	}
	vx, vy := a.FlowVectorAt(50, 50)
	n := &a.FlowNodes()[0]
	n.X, n.Y = 50, 50
	a.updateFlowNode(n, a.time())
	if n.VX != vx || n.VY != vy {
		t.Fatalf("FlowVectorAt (%v, %v) disagrees with node velocity (%v, %v)", vx, vy, n.VX, n.VY)
	}
}

func TestShimmerWrapsBelow(t *testing.T) {
	a := New(400, 300)
	s := &a.Shimmers()[0]
	s.Y = -s.H
	life := s.Life
	a.Step()
	if s.Y <= 300 {
		t.Fatalf("shimmer should reappear below the viewport, y=%.2f", s.Y)
	}
	if s.Life != life+1 {
		t.Fatalf("wrap must not reset life: %d -> %d", life, s.Life)
	}
}

func TestLayerOrder(t *testing.T) {
	a := NewWithConfig(ApplyMap(DefaultConfig(), map[string]string{"crack_delay_max": "0"}))
	for i := 0; i < 30; i++ {
		a.Step()
	}

	rec := render.NewRecorder(800, 600)
	a.Draw(rec)
	want := []string{LayerBase, LayerWash, LayerBlobs, LayerFlow, LayerCracks, LayerEmbers, LayerShimmer, LayerVignette}
	if got := rec.Layers(); !slices.Equal(got, want) {
		t.Fatalf("layers = %v, want %v", got, want)
	}
	for _, op := range rec.Ops {
		switch op.Kind {
		case LayerFlow:
			if op.Blend != render.BlendScreen {
				t.Fatalf("flow op blend %v, want screen", op.Blend)
			}
		case LayerShimmer:
			if op.Blend != render.BlendOverlay {
				t.Fatalf("shimmer op blend %v, want overlay", op.Blend)
			}
		}
	}

	a.SetCursor(100, 100)
	a.Step()
	rec = render.NewRecorder(800, 600)
	a.Draw(rec)
	want = []string{LayerBase, LayerWash, LayerBlobs, LayerFlow, LayerCracks, LayerEmbers, LayerShimmer, LayerCursor, LayerVignette}
	if got := rec.Layers(); !slices.Equal(got, want) {
		t.Fatalf("layers with cursor = %v, want %v", got, want)
	}

	a.LeaveCursor()
	rec = render.NewRecorder(800, 600)
	a.Draw(rec)
	if slices.Contains(rec.Layers(), LayerCursor) {
		t.Fatal("cursor layer drawn after the pointer left")
	}
}

func TestDrawOntoRasterIsOpaque(t *testing.T) {
	a := New(96, 64)
	a.SetCursor(48, 32)
	for i := 0; i < 10; i++ {
		a.Step()
	}
	r, err := render.NewRaster(96, 64)
	if err != nil {
		t.Fatal(err)
	}
	a.Draw(r)
	pix := r.Image().Pix
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 255 {
			t.Fatalf("pixel %d has alpha %d", i/4, pix[i])
		}
	}
	centre := r.Image().RGBAAt(48, 32)
	corner := r.Image().RGBAAt(0, 0)
	if int(centre.R)+int(centre.G) <= int(corner.R)+int(corner.G) {
		t.Fatalf("vignette should darken the corner: centre %v corner %v", centre, corner)
	}
}

func TestResetDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 320, 200
	cfg.Seed = 99

	a := NewWithConfig(cfg)
	b := NewWithConfig(cfg)
	for i := 0; i < 50; i++ {
		a.Step()
		b.Step()
	}
	if !slices.Equal(a.Blobs(), b.Blobs()) || !slices.Equal(a.Embers(), b.Embers()) {
		t.Fatal("same seed must give the same simulation")
	}
	if !slices.Equal(a.Shimmers(), b.Shimmers()) || !slices.Equal(a.FlowNodes(), b.FlowNodes()) {
		t.Fatal("same seed must give the same ambient entities")
	}

	initial := NewWithConfig(cfg)
	a.Reset(0)
	if !slices.Equal(a.Blobs(), initial.Blobs()) || a.Frame() != 0 {
		t.Fatal("Reset(0) must reuse the configured seed")
	}
	for i := range a.Cracks() {
		if !slices.Equal(a.Cracks()[i].Points, initial.Cracks()[i].Points) {
			t.Fatalf("crack %d differs after reset", i)
		}
	}

	a.Reset(777)
	explicit := slices.Clone(a.Blobs())
	a.Reset(777)
	if !slices.Equal(explicit, a.Blobs()) {
		t.Fatal("Reset with explicit seed not deterministic")
	}
	if slices.Equal(explicit, initial.Blobs()) {
		t.Fatal("different seeds should give different blobs")
	}
}

func TestResizeRegeneratesCracksOnly(t *testing.T) {
	a := New(800, 600)
	a.Step()
	blobs := slices.Clone(a.Blobs())
	embers := slices.Clone(a.Embers())
	var points [][]render.Point
	for _, c := range a.Cracks() {
		points = append(points, slices.Clone(c.Points))
	}

	a.Resize(400, 300)
	if got := a.Size(); got != (core.Size{W: 400, H: 300}) {
		t.Fatalf("size = %+v", got)
	}
	if !slices.Equal(blobs, a.Blobs()) || !slices.Equal(embers, a.Embers()) {
		t.Fatal("resize must not touch blobs or embers")
	}
	changed := 0
	for i, c := range a.Cracks() {
		if c.Life != 0 {
			t.Fatalf("crack %d not regenerated", i)
		}
		p := c.Points[0]
		if p.X < 0 || p.X > 400 || p.Y < 0 || p.Y > 300 {
			t.Fatalf("crack %d starts outside the new viewport: %+v", i, p)
		}
		if !slices.Equal(points[i], c.Points) {
			changed++
		}
	}
	if changed == 0 {
		t.Fatal("resize should regenerate the crack set")
	}
}

func TestZeroViewportIsNoop(t *testing.T) {
	a := New(0, 0)
	a.Step()
	if a.Frame() != 0 {
		t.Fatal("step on empty viewport must not advance")
	}
	rec := render.NewRecorder(0, 0)
	a.Draw(rec)
	if len(rec.Ops) != 0 {
		t.Fatalf("draw on empty viewport issued %d ops", len(rec.Ops))
	}
	a.Resize(200, 100)
	if len(a.Blobs()) != 9 || a.Blobs()[0].R == 0 {
		t.Fatal("first non-empty resize should seed the entities")
	}
	a.Step()
	if a.Frame() != 1 {
		t.Fatalf("frame = %d after resize and step", a.Frame())
	}
}

func TestCursorHighlightSpring(t *testing.T) {
	a := New(400, 300)
	a.SetCursor(100, 100)
	a.Step()
	if x, y := a.Highlight(); x != 100 || y != 100 {
		t.Fatalf("highlight should snap on first contact, got (%v, %v)", x, y)
	}
	a.SetCursor(300, 100)
	a.Step()
	if x, _ := a.Highlight(); x <= 100 || x >= 300 {
		t.Fatalf("highlight should ease toward the cursor, got x=%v", x)
	}
	for i := 0; i < 240; i++ {
		a.Step()
	}
	if x, _ := a.Highlight(); math.Abs(x-300) > 1 {
		t.Fatalf("highlight should settle on the cursor, got x=%v", x)
	}

	a.SetFloatParameter("cursor_spring", 0)
	a.SetCursor(10, 20)
	a.Step()
	if x, y := a.Highlight(); x != 10 || y != 20 {
		t.Fatalf("spring 0 must draw at the cursor, got (%v, %v)", x, y)
	}
}

func TestColorCellsGrid(t *testing.T) {
	a := New(800, 600)
	grid := a.ColorCells(0)
	if grid.W != 21 || grid.H != 16 {
		t.Fatalf("grid = %dx%d, want 21x16", grid.W, grid.H)
	}
	wantAlpha := uint8(a.Config().Params.WashIntensity*255 + 0.5)
	distinct := map[[3]uint8]bool{}
	for _, c := range grid.Cells() {
		if c.A != wantAlpha {
			t.Fatalf("cell alpha %d, want %d", c.A, wantAlpha)
		}
		distinct[[3]uint8{c.R, c.G, c.B}] = true
	}
	if len(distinct) < 10 {
		t.Fatalf("wash looks flat: %d distinct colours", len(distinct))
	}
	later := slices.Clone(a.ColorCells(5).Cells())
	if slices.Equal(later, a.ColorCells(0).Cells()) {
		t.Fatal("wash should change over time")
	}
}

func TestSettersClamp(t *testing.T) {
	a := New(100, 100)
	if !a.SetFloatParameter("blob_damping", 5) || a.Config().Params.BlobDamping != 1 {
		t.Fatalf("blob_damping not clamped: %v", a.Config().Params.BlobDamping)
	}
	if !a.SetIntParameter("octaves", 99) || a.Config().Params.Octaves != 8 {
		t.Fatalf("octaves not clamped: %d", a.Config().Params.Octaves)
	}
	if !a.SetIntParameter("octaves", -3) || a.Config().Params.Octaves != 1 {
		t.Fatalf("octaves not clamped low: %d", a.Config().Params.Octaves)
	}
	if a.SetFloatParameter("octaves", 2) {
		t.Fatal("float setter must reject int keys")
	}
	if a.SetIntParameter("blob_damping", 1) {
		t.Fatal("int setter must reject float keys")
	}
	if a.SetFloatParameter("nope", 1) {
		t.Fatal("unknown key accepted")
	}
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if a.SetFloatParameter("blob_damping", bad) {
			t.Fatalf("non-finite value %v accepted", bad)
		}
	}
	if d := a.Config().Params.BlobDamping; d != 1 {
		t.Fatalf("rejected value changed blob_damping to %v", d)
	}
	a.Step()
	for i, b := range a.Blobs() {
		if math.IsNaN(b.X) || math.IsNaN(b.Y) {
			t.Fatalf("blob %d position (%v,%v) after rejected update", i, b.X, b.Y)
		}
	}
	a.SetIntParameter("crack_life_max", 10)
	if p := a.Config().Params; p.CrackLifeMax < p.CrackLifeMin {
		t.Fatalf("range inverted: %d < %d", p.CrackLifeMax, p.CrackLifeMin)
	}

	blobs := len(a.Blobs())
	a.SetIntParameter("blobs", 2)
	if len(a.Blobs()) != blobs {
		t.Fatal("count change must wait for reset")
	}
	a.Reset(0)
	if len(a.Blobs()) != 2 {
		t.Fatalf("count change not applied on reset: %d", len(a.Blobs()))
	}
}

func TestParameterControlsAreLive(t *testing.T) {
	a := New(100, 100)
	controls := a.ParameterControls()
	if len(controls) == 0 {
		t.Fatal("expected HUD controls")
	}
	for _, c := range controls {
		switch c.Key {
		case "blobs", "embers", "cracks", "flow_nodes", "shimmers":
			t.Fatalf("count %q should not be a live control", c.Key)
		}
		if !c.HasMin || !c.HasMax || c.Min > c.Max {
			t.Fatalf("control %q has bad bounds", c.Key)
		}
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":              "640",
		"h":              "bad",
		"seed":           "5",
		"low_power":      "true",
		"noise":          "Simplex",
		"embers":         "12",
		"ember_life_min": "200",
		"ember_life_max": "100",
		"vignette":       "3",
		"unknown_key":    "1",
		"blob_drift":     "NaN",
	})
	if cfg.Width != 640 || cfg.Height != 600 || cfg.Seed != 5 || !cfg.LowPower {
		t.Fatalf("scene keys parsed wrong: %+v", cfg)
	}
	p := cfg.Params
	if p.Noise != "simplex" || p.Embers != 12 || p.Vignette != 1 {
		t.Fatalf("params parsed wrong: noise %q embers %d vignette %v", p.Noise, p.Embers, p.Vignette)
	}
	if p.EmberLifeMax != 200 {
		t.Fatalf("inverted range not normalised: %d..%d", p.EmberLifeMin, p.EmberLifeMax)
	}
	if p.BlobDrift != DefaultConfig().Params.BlobDrift {
		t.Fatalf("NaN must be ignored, got %v", p.BlobDrift)
	}

	rejected := Rejected(map[string]string{"h": "bad", "unknown_key": "1", "blob_drift": "NaN", "w": "10", "noise": "perlin"})
	if want := []string{"blob_drift", "h", "noise", "unknown_key"}; !slices.Equal(rejected, want) {
		t.Fatalf("rejected = %v, want %v", rejected, want)
	}
}

func TestParametersRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.Seed = 300, 200, 8
	cfg.LowPower = true
	a := NewWithConfig(cfg)
	values := a.Parameters().Values()
	if values["embers"] != "40" {
		t.Fatalf("reduced ember count = %s", values["embers"])
	}
	b := NewWithConfig(FromMap(values))
	if !maps.Equal(values, b.Parameters().Values()) {
		t.Fatal("snapshot values must rebuild the same configuration")
	}
	if len(b.Embers()) != len(a.Embers()) {
		t.Fatalf("round trip reduced twice: %d vs %d embers", len(b.Embers()), len(a.Embers()))
	}
}

func TestLowPowerReduces(t *testing.T) {
	p := DefaultConfig().Params.Reduced()
	if p.Blobs != 3 || p.FlowNodes != 12 || p.Cracks != 6 || p.Embers != 40 || p.Shimmers != 3 || p.Octaves != 3 {
		t.Fatalf("unexpected reduction %+v", p)
	}
	cfg := DefaultConfig()
	cfg.LowPower = true
	if n := len(NewWithConfig(cfg).Blobs()); n != 3 {
		t.Fatalf("low-power scene has %d blobs", n)
	}
}

func TestPresetsRegistered(t *testing.T) {
	for _, name := range Presets() {
		factory, ok := core.Scenes()[name]
		if !ok {
			t.Fatalf("preset %q not registered", name)
		}
		scene := factory(map[string]string{"w": "64", "h": "48"})
		if scene.Name() != name {
			t.Fatalf("scene name %q, want %q", scene.Name(), name)
		}
		if scene.Size() != (core.Size{W: 64, H: 48}) {
			t.Fatalf("preset %q ignored overrides: %+v", name, scene.Size())
		}
	}
	a, ok := NewPreset("embers", nil)
	if !ok || len(a.Blobs()) != 0 || len(a.Embers()) == 0 {
		t.Fatal("embers preset should only keep embers")
	}
	if _, ok := NewPreset("missing", nil); ok {
		t.Fatal("unknown preset accepted")
	}
	if _, ok := Preset(DefaultPreset); !ok {
		t.Fatal("default preset missing")
	}
}

func TestSimplexBasis(t *testing.T) {
	a := NewWithConfig(ApplyMap(DefaultConfig(), map[string]string{"noise": "simplex", "w": "200", "h": "100"}))
	for i := 0; i < 20; i++ {
		a.Step()
	}
	if v := a.NoiseAt(10, 10); math.IsNaN(v) || math.Abs(v) > 1.5 {
		t.Fatalf("simplex noise sample out of range: %v", v)
	}
}

func TestFlowVectorAtMatchesNodeVelocity(t *testing.T) {
	a := New(320, 200)
	before := slices.Clone(a.FlowNodes())
	a.Step()
	limit := 2 * a.Config().Params.FlowSpeed * 1.01
	for i, n := range a.FlowNodes() {
		vx, vy := a.FlowVectorAt(before[i].X, before[i].Y)
		if n.VX != vx || n.VY != vy {
			t.Fatalf("node %d velocity (%v,%v), FlowVectorAt gives (%v,%v)", i, n.VX, n.VY, vx, vy)
		}
		if math.Abs(vx) > limit || math.Abs(vy) > limit {
			t.Fatalf("node %d velocity (%v,%v) exceeds %v", i, vx, vy, limit)
		}
	}
}

func TestBlobWrapBoundsWithActiveCursor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 800, 600
	cfg.Seed = 7
	cfg.Params.RepelForce = 10
	a := NewWithConfig(cfg)
	b := &a.Blobs()[0]
	b.X, b.Y, b.VX, b.VY = 5, 300, 0, 0

	for frame := 0; frame < 200; frame++ {
		// Keep the cursor just inside the blob, pushing it toward the edge.
		a.SetCursor(b.X+10, b.Y)
		a.Step()
		for i, bl := range a.Blobs() {
			if bl.X < -bl.R || bl.X > 800+bl.R || bl.Y < -bl.R || bl.Y > 600+bl.R {
				t.Fatalf("frame %d: blob %d at (%.1f, %.1f) outside wrap bounds r=%.1f", frame, i, bl.X, bl.Y, bl.R)
			}
		}
	}
	if !a.Cursor().Active {
		t.Fatal("cursor should be active")
	}
}
