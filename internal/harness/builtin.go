package harness

// Builtin returns the built-in conformance scenarios run by
// `reliquary verify` when no scenario directory is given.
//
// They assert structural properties that hold for ANY seed - determinism
// across runs (implicit in Run), full ritual traversal, and progress
// saturation - so the set stays valid if the embedded score's timings are
// ever re-tuned. Seed-specific expectations live in YAML scenario files.
func Builtin() []*Scenario {
	return []*Scenario{
		{
			Name:        "boot-holds",
			Description: "a short run never leaves the opening state",
			Seed:        "VERIFY-BOOT",
			Ticks:       10,
			DT:          0.1,
			Expect: Expectations{
				FinalState: "BOOT",
			},
		},
		{
			Name:        "full-traversal",
			Description: "a long run visits every state in order and saturates progress",
			Seed:        "VERIFY-TRAVERSAL",
			Ticks:       1000,
			DT:          0.1,
			Expect: Expectations{
				FinalState: "RELIC",
				Visited: []string{
					"BOOT", "TITLE", "EDITION", "AWAKENING", "DRAFTING",
					"LATTICE", "SWARM", "DESTABILIZE", "RESOLUTION", "RELIC",
				},
				MinGlobalProgress: 1.0,
			},
		},
		{
			Name:        "relic-stillness",
			Description: "past the terminal state the particle field winds down",
			Seed:        "VERIFY-STILLNESS",
			Ticks:       4000,
			DT:          0.1,
			Expect: Expectations{
				FinalState:      "RELIC",
				ActiveParticles: intPtr(0),
			},
		},
	}
}

func intPtr(n int) *int { return &n }
