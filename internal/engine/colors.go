package engine

import (
	"github.com/chewxy/math32"
)

// SRGBToLinear decodes one gamma-encoded sRGB channel.
func SRGBToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math32.Pow((c+0.055)/1.055, 2.4)
}

// LinearToSRGB encodes one linear channel.
func LinearToSRGB(c float32) float32 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math32.Pow(c, 1/2.4) - 0.055
}

// CCT returns the linear sRGB color of a black body at the given correlated
// color temperature in Kelvin, normalized so the largest channel is 1.
// Uses Krystek's rational approximation of the Planckian locus in CIE 1960 UCS.
func CCT(kelvin float32) (r, g, b float32) {
	t := kelvin
	t2 := t * t
	u := (0.860117757 + 1.54118254e-4*t + 1.28641212e-7*t2) / (1 + 8.42420235e-4*t + 7.08145163e-7*t2)
	v := (0.317398726 + 4.22806245e-5*t + 4.20481691e-8*t2) / (1 - 2.89741816e-5*t + 1.61456053e-7*t2)

	d := 2*u - 8*v + 4
	x := 3 * u / d
	y := 2 * v / d

	// xyY with Y=1 to XYZ
	X := x / y
	Y := float32(1)
	Z := (1 - x - y) / y

	r = 3.2404542*X - 1.5371385*Y - 0.4985314*Z
	g = -0.9692660*X + 1.8760108*Y + 0.0415560*Z
	b = 0.0556434*X - 0.2040259*Y + 1.0572252*Z

	r, g, b = math32.Max(r, 0), math32.Max(g, 0), math32.Max(b, 0)
	m := math32.Max(r, math32.Max(g, b))
	if m > 0 {
		r, g, b = r/m, g/m, b/m
	}
	return r, g, b
}
