// Package palette holds the fixed set of product color labels.
package palette

// NoColor is the label of products without a color choice.
const NoColor = "N/A"

// RGB is a gamma-encoded sRGB color with channels in [0, 1].
type RGB struct {
	R, G, B float32
}

var White = RGB{R: 1, G: 1, B: 1}

var colorByLabel = map[string]RGB{
	"Fiery Red":        {R: 0.634, G: 0.000, B: 0.000},
	"Deep Blue":        {R: 0.000, G: 0.480, B: 0.596},
	"Swirly Orange":    {R: 0.874, G: 0.522, B: 0.080},
	"Fantastic Yellow": {R: 0.859, G: 0.808, B: 0.020},
}

// cycle is the order "next color" walks through.
var cycle = []string{"Fiery Red", "Deep Blue", "Swirly Orange", "Fantastic Yellow"}

// Lookup returns the color for a label, opaque white for unknown labels.
func Lookup(label string) RGB {
	if c, ok := colorByLabel[label]; ok {
		return c
	}
	return White
}

// Next returns the label following label in the cycle. Labels outside the
// cycle are returned unchanged.
func Next(label string) string {
	for i, l := range cycle {
		if l == label {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return label
}

// IsProductColor reports whether a label carries a color swatch.
func IsProductColor(label string) bool {
	return label != NoColor
}

// Labels returns the cycle in order.
func Labels() []string {
	out := make([]string, len(cycle))
	copy(out, cycle)
	return out
}
