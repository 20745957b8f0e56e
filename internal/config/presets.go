package config

import (
	"math"
	"sort"
)

var Presets = map[int]map[string]*Config{
	1: {
		"half-period": {Equation: 1, Lower: 0, Upper: math.Pi, Intervals: 10},
		"full-period": {Equation: 1, Lower: 0, Upper: 2 * math.Pi, Intervals: 20},
		"quarter":     {Equation: 1, Lower: 0, Upper: math.Pi / 2, Intervals: 8},
	},
	2: {
		"log2":     {Equation: 2, Lower: 1, Upper: 2, Intervals: 10},
		"straddle": {Equation: 2, Lower: -1, Upper: 1, Intervals: 10},
	},
	3: {
		"symmetric": {Equation: 3, Lower: -math.Pi, Upper: math.Pi, Intervals: 8},
		"from-zero": {Equation: 3, Lower: 0, Upper: math.Pi / 2, Intervals: 10},
	},
	4: {
		"removable": {Equation: 4, Lower: 0, Upper: 4, Intervals: 4},
		"asymptote": {Equation: 4, Lower: -3, Upper: 1, Intervals: 10},
	},
}

// GetPreset returns a copy of the named preset with the ambient defaults
// filled in, or nil.
func GetPreset(equation int, name string) *Config {
	presets, ok := Presets[equation]
	if !ok {
		return nil
	}
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Equation = p.Equation
	cfg.Lower = p.Lower
	cfg.Upper = p.Upper
	cfg.Intervals = p.Intervals
	return cfg
}

func ListPresets(equation int) []string {
	presets, ok := Presets[equation]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
