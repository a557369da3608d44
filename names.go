package paintbynumber

import "github.com/lucasb-eyer/go-colorful"

// Basic color vocabulary for the legend. Coarse on purpose: the label helps
// the user match paints or yarn, it is not a color space.
var namedColors = []struct {
	name  string
	color colorful.Color
}{
	{"red", rgb(255, 0, 0)},
	{"green", rgb(0, 255, 0)},
	{"blue", rgb(0, 0, 255)},
	{"yellow", rgb(255, 255, 0)},
	{"orange", rgb(255, 165, 0)},
	{"purple", rgb(128, 0, 128)},
	{"brown", rgb(165, 42, 42)},
	{"pink", rgb(255, 192, 203)},
	{"grey", rgb(128, 128, 128)},
	{"black", rgb(0, 0, 0)},
	{"white", rgb(255, 255, 255)},
	{"tan", rgb(210, 180, 140)},
	{"light blue", rgb(173, 216, 230)},
	{"dark blue", rgb(0, 0, 139)},
	{"light green", rgb(144, 238, 144)},
	{"dark green", rgb(0, 100, 0)},
	{"light grey", rgb(211, 211, 211)},
	{"dark grey", rgb(169, 169, 169)},
	{"navy", rgb(0, 0, 128)},
	{"maroon", rgb(128, 0, 0)},
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

// ColorName returns the closest basic color name for c, by Lab distance.
func ColorName(c colorful.Color) string {
	best := "unknown"
	bestD := -1.0
	for _, n := range namedColors {
		d := c.DistanceLab(n.color)
		if bestD < 0 || d < bestD {
			bestD = d
			best = n.name
		}
	}
	return best
}
