package layers

// Layer names, in the default back-to-front paint order.
const (
	LayerWeathering = "weathering"
	LayerGrid       = "grid"
	LayerGeometry   = "geometry"
	LayerParticles  = "particles"
)

var defaultOrder = []string{LayerWeathering, LayerGrid, LayerGeometry, LayerParticles}

// During the resolution stages the geometry sinks behind the grid so the
// lattice reads as the final surface of the relic.
var resolutionOrder = []string{LayerWeathering, LayerGeometry, LayerGrid, LayerParticles}

// OrderFor returns the back-to-front paint order for a ritual state.
// The returned slice is a copy.
func OrderFor(state string) []string {
	order := defaultOrder
	switch state {
	case "RESOLUTION", "RELIC":
		order = resolutionOrder
	}
	return append([]string(nil), order...)
}
