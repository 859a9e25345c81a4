// Package geo maps geographic coordinates onto a sphere.
package geo

import "math"

// GeoPoint is a geographic coordinate in degrees (WGS 84).
type GeoPoint struct {
	Lat float64
	Lon float64
}

// Point3 is a Cartesian position on (or around) the sphere.
type Point3 struct {
	X float64
	Y float64
	Z float64
}

// Norm returns the Euclidean length of the vector.
func (p Point3) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Project maps latitude/longitude in degrees onto a sphere of the given
// radius. The azimuth origin sits at the antimeridian so that the dot field
// and country markers land on the same grid as the source raster.
//
//	phi   = (90 - lat) * pi/180   polar angle from the north pole
//	theta = (lon + 180) * pi/180
//
// Inputs outside [-90,90]/[-180,180] still produce a defined point; callers
// pass validated coordinates.
func Project(lat, lon, radius float64) Point3 {
	phi := (90 - lat) * math.Pi / 180
	theta := (lon + 180) * math.Pi / 180

	return Point3{
		X: -(radius * math.Sin(phi) * math.Cos(theta)),
		Y: radius * math.Cos(phi),
		Z: radius * math.Sin(phi) * math.Sin(theta),
	}
}

// RotateY rotates the point about the Y axis by the given angle in radians.
// The renderer spins the globe this way once per frame.
func (p Point3) RotateY(angle float64) Point3 {
	sin, cos := math.Sincos(angle)
	return Point3{
		X: p.X*cos + p.Z*sin,
		Y: p.Y,
		Z: -p.X*sin + p.Z*cos,
	}
}
