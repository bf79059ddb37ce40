package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/vespertine/reliquary/internal/relic"
)

// AssertLayoutGolden compares a layout map's canonical JSON against a
// golden file in testdata/golden/{name}.golden.
//
// Golden files are the source of truth for a seed's generated layout: any
// diff means either an intentional re-mint of the run (regenerate with
// `go test ./internal/harness -update`) or a broken draw sequence.
func AssertLayoutGolden(t *testing.T, name string, layout map[string]any) {
	t.Helper()

	canonical, err := relic.MarshalCanonical(layout)
	if err != nil {
		t.Fatalf("marshal layout: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, canonical)
}

// AssertGolden compares arbitrary canonical bytes against a golden file.
// Used for the score snapshot and other static fixtures.
func AssertGolden(t *testing.T, name string, data []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
