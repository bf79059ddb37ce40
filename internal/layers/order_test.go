package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderFor_Default(t *testing.T) {
	want := []string{LayerWeathering, LayerGrid, LayerGeometry, LayerParticles}
	for _, state := range []string{"BOOT", "TITLE", "DRAFTING", "SWARM", "DESTABILIZE"} {
		assert.Equal(t, want, OrderFor(state), "state %s paints in default order", state)
	}
}

func TestOrderFor_ResolutionSinksGeometry(t *testing.T) {
	want := []string{LayerWeathering, LayerGeometry, LayerGrid, LayerParticles}
	assert.Equal(t, want, OrderFor("RESOLUTION"))
	assert.Equal(t, want, OrderFor("RELIC"))
}

func TestOrderFor_ReturnsCopy(t *testing.T) {
	a := OrderFor("BOOT")
	a[0] = "mutated"
	assert.Equal(t, LayerWeathering, OrderFor("BOOT")[0])
}
