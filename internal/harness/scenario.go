package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one determinism conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Seed is the override session seed string. Required: scenarios must
	// be reproducible by construction.
	Seed string `yaml:"seed"`

	// Ticks is the number of update calls to drive.
	Ticks int `yaml:"ticks"`

	// DT is the synthetic per-tick delta in seconds.
	DT float64 `yaml:"dt"`

	// Expect holds the scenario's assertions.
	Expect Expectations `yaml:"expect"`
}

// Expectations are the assertions evaluated after the run.
// Zero-valued fields are skipped (counts use -1 conventions via pointers
// kept out of the format; instead, zero means "not asserted" for counts
// that can never legitimately be zero).
type Expectations struct {
	// Edition asserts the allocated edition number (1..100).
	Edition int `yaml:"edition,omitempty"`

	// FinalState asserts the state name after the last tick.
	FinalState string `yaml:"final_state,omitempty"`

	// Visited asserts the full state trajectory, in order, including the
	// initial state.
	Visited []string `yaml:"visited,omitempty"`

	// MinGlobalProgress asserts a floor on global progress after the run.
	MinGlobalProgress float64 `yaml:"min_global_progress,omitempty"`

	// CircleSets/Spirals/Guides assert geometry descriptor counts.
	CircleSets int `yaml:"circle_sets,omitempty"`
	Spirals    int `yaml:"spirals,omitempty"`
	Guides     int `yaml:"guides,omitempty"`

	// GridSide/GridCells/Fragments assert grid descriptor counts.
	GridSide  int `yaml:"grid_side,omitempty"`
	GridCells int `yaml:"grid_cells,omitempty"`
	Fragments int `yaml:"fragments,omitempty"`

	// ActiveParticles asserts the active count after the final tick.
	// Pointer so 0 is assertable.
	ActiveParticles *int `yaml:"active_particles,omitempty"`

	// Fingerprint asserts the exact layout fingerprint hex.
	Fingerprint string `yaml:"fingerprint,omitempty"`
}

// LoadScenario reads and validates a single scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("harness: read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("harness: parse scenario %s: %w", path, err)
	}
	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("harness: scenario %s: %w", path, err)
	}
	return &sc, nil
}

// LoadDir loads every *.yaml scenario in a directory, sorted by filename
// for a stable run order.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("harness: read scenario dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("harness: no scenario files in %s", dir)
	}

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		sc, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

func (sc *Scenario) validate() error {
	if sc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if sc.Seed == "" {
		return fmt.Errorf("seed is required")
	}
	if sc.Ticks < 0 {
		return fmt.Errorf("ticks must be >= 0")
	}
	if sc.Ticks > 0 && sc.DT <= 0 {
		return fmt.Errorf("dt must be > 0 when ticks > 0")
	}
	if e := sc.Expect.Edition; e != 0 && (e < 1 || e > 100) {
		return fmt.Errorf("expected edition %d out of range [1,100]", e)
	}
	return nil
}
