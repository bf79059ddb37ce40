// Package edition allocates the numbered identity shown as provenance
// metadata on every minted artwork.
//
// Allocation is a pure function of the visitor token and the master seed.
// The same visitor always receives the same edition number, across visits
// and across devices that share the token.
package edition

import (
	"fmt"

	"github.com/vespertine/reliquary/internal/rng"
)

// Cap is the total number of editions in the run.
const Cap = 100

// Edition is a bounded edition number plus its display label.
type Edition struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
}

// Allocate derives the edition for a visitor token.
//
// Number = Hash(visitorToken + masterSeed) mod Cap + 1, so the result is
// always in [1, Cap] and is stable for the lifetime of the token. The label
// is the zero-padded number plus the fixed cap text.
func Allocate(visitorToken, masterSeed string) Edition {
	n := int(rng.Hash(visitorToken+masterSeed)%Cap) + 1
	return Edition{
		Number: n,
		Label:  fmt.Sprintf("EDITION %03d / %d", n, Cap),
	}
}
