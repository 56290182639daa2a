package systems

import "strings"

// Preset is a named feed/kill pair known to produce a stable pattern family.
type Preset struct {
	Name string
	Feed float32
	Kill float32
}

var presets = []Preset{
	{"mitosis", 0.0367, 0.0649},
	{"coral", 0.0545, 0.062},
	{"solitons", 0.03, 0.062},
	{"worms", 0.078, 0.061},
	{"maze", 0.029, 0.057},
	{"holes", 0.039, 0.058},
	{"waves", 0.014, 0.045},
	{"spots", 0.035, 0.065},
}

// Presets returns a copy of the built-in preset table.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset finds a preset by case-insensitive name.
func LookupPreset(name string) (Preset, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
