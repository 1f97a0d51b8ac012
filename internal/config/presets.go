package config

import "sort"

var Presets = map[string]*Config{
	"adhesion": {
		Name: "adhesion", Dt: 0.05, Steps: 400,
		Populations: []Population{
			{Type: "cell", Count: 12, Layout: "circle", Radius: 3},
		},
		Forces: []ForceTerm{
			{Law: "hooke", Params: []float64{1.0, 0.5}, MaxRange: 2.5},
		},
	},
	"sorting": {
		// Differential adhesion: strong like-like springs, weak
		// cross-type springs. Mixed populations unmix over time.
		Name: "sorting", Dt: 0.02, Steps: 1000, Seed: 1,
		Populations: []Population{
			{Type: "a", Count: 20, Layout: "uniform", Width: 6, Height: 6},
			{Type: "b", Count: 20, Layout: "uniform", Width: 6, Height: 6},
		},
		Forces: []ForceTerm{
			{Law: "hooke", Params: []float64{1.0, 1.0}, MaxRange: 2.0, Between: []string{"a", "a"}},
			{Law: "hooke", Params: []float64{1.0, 1.0}, MaxRange: 2.0, Between: []string{"b", "b"}},
			{Law: "hooke", Params: []float64{1.5, 0.2}, MaxRange: 2.0, Between: []string{"a", "b"}},
			{Law: "expneg", Params: []float64{0.5, 2.0, 4.0}, MaxRange: 1.0},
		},
	},
	"dispersal": {
		// Short-range repulsion plus bounded random motility.
		Name: "dispersal", Dt: 0.05, Steps: 600, Seed: 1,
		Populations: []Population{
			{Type: "cell", Count: 30, Layout: "grid", Spacing: 0.5},
		},
		Forces: []ForceTerm{
			{Law: "expdecay", Params: []float64{0.5, 1.0, 2.0}, MaxRange: 3.0},
			{Law: "hooke", Params: []float64{0, 0}, NoiseStdev: 0.3, NoiseBound: 1.0},
		},
	},
	"clustering": {
		// Anharmonic well: soft core with a broad attraction basin.
		// The inner cutoff caps the core force at ~19 so an Euler
		// step of dt moves a cell well under the cutoff distance.
		Name: "clustering", Dt: 0.005, Steps: 2000, Seed: 1,
		Populations: []Population{
			{Type: "cell", Count: 25, Layout: "uniform", Width: 8, Height: 8},
		},
		Forces: []ForceTerm{
			{Law: "anharmonic", Params: []float64{1.0, -0.2, 2.0, 4.0, 2.0}, MinRange: 0.5, MaxRange: 4.0},
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
