package molten

import "math"

// FlowNode is a small spark carried along the noise flow field.
type FlowNode struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Hue    float64
	Alpha  float64
	Life   int
}

func (a *Animator) spawnFlowNode(n *FlowNode) {
	p := &a.cfg.Params
	*n = FlowNode{
		X:     a.rng.Range(0, float64(a.w)),
		Y:     a.rng.Range(0, float64(a.h)),
		Size:  p.FlowSize * a.rng.Range(0.6, 1.4),
		Hue:   a.rng.Range(18, 42),
		Alpha: a.rng.Range(0.35, 0.7),
	}
}

func (a *Animator) updateFlowNode(n *FlowNode, t float64) {
	n.Life++
	n.VX, n.VY = a.flowVector(n.X, n.Y, t)
	n.X = wrapCyclic(n.X+n.VX, float64(a.w))
	n.Y = wrapCyclic(n.Y+n.VY, float64(a.h))
}

// flowVector samples the flow field. The x and y components come from
// independently offset regions of the noise field.
func (a *Animator) flowVector(x, y, t float64) (float64, float64) {
	p := &a.cfg.Params
	s := p.NoiseScale
	vx := a.field.Noise2(x*s+a.flowOffX, y*s+t)
	vy := a.field.Noise2(x*s+a.flowOffY, y*s-t)
	return vx * p.FlowSpeed * 2, vy * p.FlowSpeed * 2
}

// FlowVectorAt returns the flow velocity a node at (x, y) would receive on
// the current frame.
func (a *Animator) FlowVectorAt(x, y float64) (float64, float64) {
	return a.flowVector(x, y, a.time())
}

func wrapCyclic(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}

// FlowNodes exposes the flow node set.
func (a *Animator) FlowNodes() []FlowNode { return a.flowNodes }
