package molten

import (
	"math"
	"strconv"

	"molten-core/internal/core"
)

// Parameters reports the current configuration grouped for the HUD.
func (a *Animator) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "Scene",
			Params: []core.Parameter{
				intParam("w", "Width", a.w),
				intParam("h", "Height", a.h),
				int64Param("seed", "Seed", a.cfg.Seed),
				{Key: "noise", Label: "Noise basis", Type: core.ParamTypeString, Value: string(a.cfg.Params.Noise)},
			},
		},
	}
	if a.cfg.LowPower {
		// Counts below are already reduced, so low_power itself is not
		// reported; feeding the snapshot back must not reduce them twice.
		groups[0].Summary = "reduced for a low-power host"
	}
	var current *core.ParameterGroup
	for _, spec := range paramSpecs {
		if current == nil || current.Name != spec.group {
			groups = append(groups, core.ParameterGroup{Name: spec.group})
			current = &groups[len(groups)-1]
		}
		current.Params = append(current.Params, a.specParam(spec))
	}
	return core.ParameterSnapshot{Groups: groups}
}

func (a *Animator) specParam(spec paramSpec) core.Parameter {
	var p core.Parameter
	if spec.intField != nil {
		p = intParam(spec.key, spec.label, *spec.intField(&a.cfg.Params))
	} else {
		p = floatParam(spec.key, spec.label, *spec.floatField(&a.cfg.Params))
	}
	if !spec.live {
		p.Description = "applied on reset"
	}
	return p
}

// ParameterControls lists the parameters the HUD can adjust live.
func (a *Animator) ParameterControls() []core.ParameterControl {
	var controls []core.ParameterControl
	for _, spec := range paramSpecs {
		if !spec.live {
			continue
		}
		controls = append(controls, core.ParameterControl{
			Key:    spec.key,
			Label:  spec.label,
			Type:   spec.kind(),
			Step:   spec.step,
			Min:    spec.min,
			Max:    spec.max,
			HasMin: true,
			HasMax: true,
		})
	}
	return controls
}

// SetIntParameter updates an integer parameter, clamped to its bounds.
// Entity counts are stored and take effect on the next Reset.
func (a *Animator) SetIntParameter(key string, value int) bool {
	spec, ok := lookupSpec(key)
	if !ok || spec.intField == nil {
		return false
	}
	*spec.intField(&a.cfg.Params) = int(spec.clamp(float64(value)))
	a.cfg.Params.normalize()
	return true
}

// SetFloatParameter updates a floating point parameter, clamped to its
// bounds. NaN and infinities are rejected.
func (a *Animator) SetFloatParameter(key string, value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	spec, ok := lookupSpec(key)
	if !ok || spec.floatField == nil {
		return false
	}
	*spec.floatField(&a.cfg.Params) = spec.clamp(value)
	a.cfg.Params.normalize()
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
