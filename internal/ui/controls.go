package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"molten-core/internal/core"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// Controls tracks the live parameters a scene exposes and applies +/-
// adjustments through the scene's setters. It holds no drawing state so
// both the window HUD and the terminal host can drive it.
type Controls struct {
	scene       core.Scene
	title       string
	states      []controlState
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	snapshot    core.ParameterSnapshot
}

type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool
}

// NewControls builds the control list for scene.
func NewControls(scene core.Scene) *Controls {
	c := &Controls{scene: scene, title: buildTitle(scene)}
	if provider, ok := scene.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		c.states = make([]controlState, len(controls))
		for i, ctrl := range controls {
			c.states[i] = controlState{control: ctrl, value: "--"}
		}
	}
	if setter, ok := scene.(core.IntParameterSetter); ok {
		c.intSetter = setter
	}
	if setter, ok := scene.(core.FloatParameterSetter); ok {
		c.floatSetter = setter
	}
	c.Refresh()
	return c
}

func buildTitle(scene core.Scene) string {
	if scene == nil || scene.Name() == "" {
		return "Controls"
	}
	name := scene.Name()
	return fmt.Sprintf("%s%s Controls", strings.ToUpper(name[:1]), name[1:])
}

// Title is the panel heading.
func (c *Controls) Title() string { return c.title }

// Len reports the number of adjustable controls.
func (c *Controls) Len() int { return len(c.states) }

// Label returns the display label of control i.
func (c *Controls) Label(i int) string { return c.states[i].control.Label }

// Key returns the parameter key of control i.
func (c *Controls) Key(i int) string { return c.states[i].control.Key }

// Value returns the formatted value of control i and whether the scene
// reported one.
func (c *Controls) Value(i int) (string, bool) {
	return c.states[i].value, c.states[i].hasValue
}

// Snapshot returns the parameters captured by the last Refresh.
func (c *Controls) Snapshot() core.ParameterSnapshot { return c.snapshot }

// Refresh re-reads the scene parameters.
func (c *Controls) Refresh() {
	provider, ok := c.scene.(parameterProvider)
	if !ok {
		c.snapshot = core.ParameterSnapshot{}
	} else {
		c.snapshot = provider.Parameters()
	}
	for i := range c.states {
		state := &c.states[i]
		param, ok := c.snapshot.Lookup(state.control.Key)
		state.hasValue = false
		state.value = "--"
		if !ok {
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			state.intValue = parsed
			state.floatValue = float64(parsed)
			state.value = strconv.Itoa(parsed)
			state.hasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			state.floatValue = parsed
			state.value = formatFloat(state.control, parsed)
			state.hasValue = true
		}
	}
}

// CanAdjust reports whether stepping control i in direction would stay
// within its bounds.
func (c *Controls) CanAdjust(i, direction int) bool {
	if i < 0 || i >= len(c.states) || direction == 0 {
		return false
	}
	state := &c.states[i]
	if !state.hasValue {
		return false
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if c.intSetter == nil {
			return false
		}
		target := state.intValue + direction*intStep(state.control)
		if state.control.HasMin && direction < 0 && target < int(math.Round(state.control.Min)) {
			return false
		}
		if state.control.HasMax && direction > 0 && target > int(math.Round(state.control.Max)) {
			return false
		}
		return true
	case core.ParamTypeFloat:
		if c.floatSetter == nil {
			return false
		}
		target := state.floatValue + float64(direction)*floatStep(state.control)
		if state.control.HasMin && direction < 0 && target < state.control.Min-1e-9 {
			return false
		}
		if state.control.HasMax && direction > 0 && target > state.control.Max+1e-9 {
			return false
		}
		return true
	default:
		return false
	}
}

// Adjust steps control i by one increment in direction, clamped to its
// bounds. It reports whether the scene accepted a new value.
func (c *Controls) Adjust(i, direction int) bool {
	if i < 0 || i >= len(c.states) || direction == 0 {
		return false
	}
	state := &c.states[i]
	if !state.hasValue {
		return false
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if c.intSetter == nil {
			return false
		}
		target := state.intValue + direction*intStep(state.control)
		if state.control.HasMin {
			target = max(target, int(math.Round(state.control.Min)))
		}
		if state.control.HasMax {
			target = min(target, int(math.Round(state.control.Max)))
		}
		if target == state.intValue || !c.intSetter.SetIntParameter(state.control.Key, target) {
			return false
		}
		state.intValue = target
		state.floatValue = float64(target)
		state.value = strconv.Itoa(target)
		return true
	case core.ParamTypeFloat:
		if c.floatSetter == nil {
			return false
		}
		target := state.floatValue + float64(direction)*floatStep(state.control)
		if state.control.HasMin {
			target = math.Max(target, state.control.Min)
		}
		if state.control.HasMax {
			target = math.Min(target, state.control.Max)
		}
		if math.Abs(target-state.floatValue) < 1e-9 || !c.floatSetter.SetFloatParameter(state.control.Key, target) {
			return false
		}
		state.floatValue = target
		state.value = formatFloat(state.control, target)
		return true
	default:
		return false
	}
}

func intStep(ctrl core.ParameterControl) int {
	step := int(math.Round(ctrl.Step))
	if step <= 0 {
		step = 1
	}
	return step
}

func floatStep(ctrl core.ParameterControl) float64 {
	if ctrl.Step <= 0 {
		return 0.05
	}
	return ctrl.Step
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := floatStep(ctrl)
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}
