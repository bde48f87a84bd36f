package ui

import (
	"math"
	"strconv"

	"hexweave/internal/core"
)

type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool
}

// load reads the control's current value from a snapshot.
func (s *controlState) load(snapshot core.ParameterSnapshot) {
	s.hasValue = false
	s.value = "--"
	param, ok := snapshot.Lookup(s.control.Key)
	if !ok {
		return
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			return
		}
		s.intValue = parsed
		s.floatValue = float64(parsed)
		s.value = strconv.Itoa(parsed)
		s.hasValue = true
	case core.ParamTypeFloat:
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			return
		}
		s.floatValue = parsed
		s.value = formatFloat(s.control, parsed)
		s.hasValue = true
	}
}

// nextInt returns the clamped value one step in direction, and whether it
// differs from the current one.
func (s *controlState) nextInt(direction int) (int, bool) {
	step := int(math.Round(s.control.Step))
	if step <= 0 {
		step = 1
	}
	target := s.intValue + direction*step
	if s.control.HasMin {
		target = max(target, int(math.Round(s.control.Min)))
	}
	if s.control.HasMax {
		target = min(target, int(math.Round(s.control.Max)))
	}
	return target, target != s.intValue
}

func (s *controlState) nextFloat(direction int) (float64, bool) {
	step := s.control.Step
	if step <= 0 {
		step = 0.05
	}
	target := s.floatValue + float64(direction)*step
	if s.control.HasMin && target < s.control.Min {
		target = s.control.Min
	}
	if s.control.HasMax && target > s.control.Max {
		target = s.control.Max
	}
	return target, math.Abs(target-s.floatValue) >= 1e-9
}

// adjust applies one step through the matching setter. It reports whether
// the generator accepted the change.
func (s *controlState) adjust(direction int, ints core.IntParameterSetter, floats core.FloatParameterSetter) bool {
	if !s.hasValue || direction == 0 {
		return false
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		target, changed := s.nextInt(direction)
		if ints == nil || !changed || !ints.SetIntParameter(s.control.Key, target) {
			return false
		}
		s.intValue = target
		s.floatValue = float64(target)
		s.value = strconv.Itoa(target)
		return true
	case core.ParamTypeFloat:
		target, changed := s.nextFloat(direction)
		if floats == nil || !changed || !floats.SetFloatParameter(s.control.Key, target) {
			return false
		}
		s.floatValue = target
		s.value = formatFloat(s.control, target)
		return true
	}
	return false
}

func (s *controlState) canAdjust(direction int) bool {
	if !s.hasValue {
		return false
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		_, changed := s.nextInt(direction)
		return changed
	case core.ParamTypeFloat:
		_, changed := s.nextFloat(direction)
		return changed
	}
	return false
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
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

// StatusLine renders a one-line progress summary.
func StatusLine(st core.Status) string {
	line := "attempt " + strconv.Itoa(st.Attempt) +
		"  seed " + strconv.FormatInt(st.Seed, 10) +
		"  " + strconv.Itoa(st.Collapsed) + "/" + strconv.Itoa(st.Total)
	switch {
	case st.Failed:
		line += "  FAILED"
	case st.Done:
		line += "  done"
	}
	return line
}
