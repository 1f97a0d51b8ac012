package forces

import (
	"fmt"
	"sort"

	"github.com/san-kum/cellsim/internal/engine"
)

// Law bundles a named force function with its matching potential and
// the parameters both expect, in order.
type Law struct {
	Name      string
	Params    []string
	Force     engine.ForceFunc
	Potential PotentialFunc
}

var laws = map[string]Law{
	"hooke": {
		Name:      "hooke",
		Params:    []string{"dist0", "k"},
		Force:     Hooke,
		Potential: HookePotential,
	},
	"expdecay": {
		Name:      "expdecay",
		Params:    []string{"dist0", "pot0", "e"},
		Force:     ExpDecay,
		Potential: ExpDecayPotential,
	},
	"expneg": {
		Name:      "expneg",
		Params:    []string{"dist0", "pot0", "e"},
		Force:     ExpNeg,
		Potential: ExpNegPotential,
	},
	"anharmonic": {
		Name:      "anharmonic",
		Params:    []string{"dist0", "pot0", "m", "e1", "e2"},
		Force:     Anharmonic,
		Potential: AnharmonicPotential,
	},
}

// Get looks up a law by name.
func Get(name string) (Law, error) {
	law, ok := laws[name]
	if !ok {
		return Law{}, fmt.Errorf("unknown force law: %s (available: %v)", name, Names())
	}
	return law, nil
}

// Names lists the registered laws in sorted order.
func Names() []string {
	names := make([]string, 0, len(laws))
	for name := range laws {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
