package layers

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed palettes.yaml
var palettesYAML []byte

// Palette is one named color family from the embedded palette book.
type Palette struct {
	// Name identifies the palette in exports and debugging output.
	Name string `yaml:"name"`
	// Ink is the background/line color.
	Ink string `yaml:"ink"`
	// Colors are the layer colors, darkest first.
	Colors []string `yaml:"colors"`
}

type paletteBook struct {
	Palettes []Palette `yaml:"palettes"`
}

var (
	palettesOnce sync.Once
	palettes     []Palette
	palettesErr  error
)

// Palettes returns the embedded palette book.
func Palettes() ([]Palette, error) {
	palettesOnce.Do(func() {
		var book paletteBook
		if err := yaml.Unmarshal(palettesYAML, &book); err != nil {
			palettesErr = fmt.Errorf("layers: parse palette book: %w", err)
			return
		}
		if len(book.Palettes) == 0 {
			palettesErr = fmt.Errorf("layers: palette book is empty")
			return
		}
		palettes = book.Palettes
	})
	return palettes, palettesErr
}

// PaletteCount returns the number of palettes generators may draw from.
// The embedded book is trusted; a broken book is a build defect and panics.
func PaletteCount() int {
	p, err := Palettes()
	if err != nil {
		panic(err)
	}
	return len(p)
}
