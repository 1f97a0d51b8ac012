package config

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/cellsim/internal/engine"
	"github.com/san-kum/cellsim/internal/forces"
)

// Model is a config materialized into engine inputs. Types runs
// parallel to Positions and records each cell's population type.
type Model struct {
	Positions engine.Positions
	Types     []string
	Terms     []engine.Term
}

// Build materializes the config: it places every population with the
// seeded layout generator, resolves force laws through the registry,
// and translates range, mask and noise options into engine terms.
func (c *Config) Build() (*Model, error) {
	rng := rand.New(rand.NewSource(c.Seed))

	positions := make(engine.Positions, 0)
	types := make([]string, 0)

	for _, p := range c.Populations {
		placed, err := place(p, rng)
		if err != nil {
			return nil, err
		}
		positions = append(positions, placed...)
		for i := 0; i < p.Count; i++ {
			types = append(types, p.Type)
		}
	}

	terms := make([]engine.Term, 0, len(c.Forces))
	for _, ft := range c.Forces {
		term, err := buildTerm(ft, types)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}

	return &Model{Positions: positions, Types: types, Terms: terms}, nil
}

func place(p Population, rng *rand.Rand) (engine.Positions, error) {
	pos := make(engine.Positions, p.Count)
	cy, cx := p.Center[0], p.Center[1]

	switch p.Layout {
	case "circle":
		radius := p.Radius
		if radius <= 0 {
			radius = 1
		}
		for i := 0; i < p.Count; i++ {
			angle := 2 * math.Pi * float64(i) / float64(p.Count)
			pos[i] = [2]float64{cy + radius*math.Sin(angle), cx + radius*math.Cos(angle)}
		}

	case "grid":
		spacing := p.Spacing
		if spacing <= 0 {
			spacing = 1
		}
		cols := int(math.Ceil(math.Sqrt(float64(p.Count))))
		rows := (p.Count + cols - 1) / cols
		for i := 0; i < p.Count; i++ {
			row, col := i/cols, i%cols
			pos[i] = [2]float64{
				cy + (float64(row)-float64(rows-1)/2)*spacing,
				cx + (float64(col)-float64(cols-1)/2)*spacing,
			}
		}

	case "uniform":
		w, h := p.Width, p.Height
		if w <= 0 {
			w = 1
		}
		if h <= 0 {
			h = 1
		}
		for i := 0; i < p.Count; i++ {
			pos[i] = [2]float64{
				cy + (rng.Float64()-0.5)*h,
				cx + (rng.Float64()-0.5)*w,
			}
		}

	default:
		return nil, fmt.Errorf("unknown layout: %s", p.Layout)
	}

	return pos, nil
}

func buildTerm(ft ForceTerm, types []string) (engine.Term, error) {
	law, err := forces.Get(ft.Law)
	if err != nil {
		return engine.Term{}, err
	}
	if len(ft.Params) != len(law.Params) {
		return engine.Term{}, fmt.Errorf("law %s expects %d params %v, got %d",
			law.Name, len(law.Params), law.Params, len(ft.Params))
	}

	maxRange := ft.MaxRange
	if maxRange <= 0 {
		maxRange = math.Inf(1)
	}

	term := engine.Term{
		Force:    law.Force,
		Params:   ft.Params,
		MinRange: ft.MinRange,
		MaxRange: maxRange,
	}

	if len(ft.Between) == 2 {
		term.Mask = typeMask(types, ft.Between[0], ft.Between[1])
	}

	// A bound without a stdev stays a no-op: no noise is attached.
	if ft.NoiseStdev > 0 {
		term.Noise = &engine.Noise{Stdev: ft.NoiseStdev, Bound: ft.NoiseBound}
	}

	return term, nil
}

// typeMask builds the symmetric gate selecting pairs whose types
// match {a, b} in either order.
func typeMask(types []string, a, b string) *engine.BoolMatrix {
	n := len(types)
	mask := engine.NewBoolMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if (types[i] == a && types[j] == b) || (types[i] == b && types[j] == a) {
				mask.Set(i, j, true)
			}
		}
	}
	return mask
}
