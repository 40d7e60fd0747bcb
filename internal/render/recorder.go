package render

import "image/color"

// Op is one primitive captured by a Recorder.
type Op struct {
	Kind  string
	Blend Blend
	Color color.NRGBA
}

// Recorder is a Surface that only remembers which primitives were issued,
// in order. Tag labels the ops that follow so callers can group them by layer.
type Recorder struct {
	W, H int
	Ops  []Op
	tag  string
}

// NewRecorder returns an empty recorder of the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

// Tag sets the label attached to subsequent ops.
func (r *Recorder) Tag(label string) { r.tag = label }

// Layers returns the distinct tags in first-seen order.
func (r *Recorder) Layers() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "" {
			continue
		}
		if len(out) == 0 || out[len(out)-1] != op.Kind {
			out = append(out, op.Kind)
		}
	}
	return out
}

func (r *Recorder) record(blend Blend, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: r.tag, Blend: blend, Color: c})
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Clear(c color.NRGBA) { r.record(BlendNormal, c) }

func (r *Recorder) FillCells(cols, rows int, cells []color.NRGBA, blend Blend) {
	r.record(blend, color.NRGBA{})
}

func (r *Recorder) FillRadial(cx, cy, radius float64, stops []Stop, blend Blend) {
	var c color.NRGBA
	if len(stops) > 0 {
		c = stops[0].Color
	}
	r.record(blend, c)
}

func (r *Recorder) FillLinear(area Rect, from, to Point, stops []Stop, blend Blend) {
	r.record(blend, color.NRGBA{})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.NRGBA, glow float64, blend Blend) {
	r.record(blend, c)
}

func (r *Recorder) StrokePolyline(pts []Point, st Stroke) {
	r.record(st.Blend, st.Color)
}

var _ Surface = (*Recorder)(nil)
