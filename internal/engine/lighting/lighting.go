// Package lighting provides lighting utilities for 3D rendering.
package lighting

import "math"

// Directional is a single sun-style light described by sky angles.
// Azimuth is rotation around the Y axis in degrees (0-360), elevation is
// height above the horizon in degrees (0-90).
type Directional struct {
	Azimuth   float32
	Elevation float32
	Ambient   [3]float32
	Diffuse   [3]float32
}

// Default returns the studio light used for anatomy models: high and
// slightly off to the side, with strong ambient so cavities stay readable.
func Default() Directional {
	return Directional{
		Azimuth:   45,
		Elevation: 55,
		Ambient:   [3]float32{0.45, 0.45, 0.45},
		Diffuse:   [3]float32{0.6, 0.6, 0.6},
	}
}

// Direction converts the sky angles to a normalized vector pointing towards
// the light.
func (d Directional) Direction() [3]float32 {
	azRad := float64(d.Azimuth) * math.Pi / 180.0
	elRad := float64(d.Elevation) * math.Pi / 180.0

	x := float32(math.Cos(elRad) * math.Sin(azRad))
	y := float32(math.Sin(elRad))
	z := float32(math.Cos(elRad) * math.Cos(azRad))

	return [3]float32{x, y, z}
}
