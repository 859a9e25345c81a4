// Package dotfield distributes sphere-surface markers over the land areas of
// a raster mask.
package dotfield

import (
	"math"
	"sort"

	"github.com/irokhan/earth-trending/internal/geo"
	"github.com/irokhan/earth-trending/internal/mask"
)

// Defaults for the tuning constants. Density is dots per unit of row
// circumference; tolerance is the maximum degrees a candidate may sit from
// its nearest land sample and still be placed.
const (
	DefaultDensity      = 2.5
	DefaultTolerance    = 0.6
	DefaultSphereRadius = 20.0
)

// Options tunes a generation pass.
type Options struct {
	SphereRadius float64
	Density      float64
	Tolerance    float64
}

// DefaultOptions returns the reference tuning.
func DefaultOptions() Options {
	return Options{
		SphereRadius: DefaultSphereRadius,
		Density:      DefaultDensity,
		Tolerance:    DefaultTolerance,
	}
}

// DotRecord is one marker on the sphere surface. Records are immutable once
// generated; the rendering collaborator owns them for the scene's lifetime.
type DotRecord struct {
	Position geo.Point3
	Latitude int
}

// Generate sweeps latitudes 90 down to -89 and emits one DotRecord per
// accepted candidate. Each row gets 2*pi*r*density evenly spaced candidate
// longitudes; a candidate is accepted when its nearest land sample in the
// row lies within the tolerance. Output is fully deterministic for a fixed
// mask and options.
func Generate(m *mask.LandMask, opts Options) []DotRecord {
	var dots []DotRecord

	for lat := 90; lat >= -89; lat-- {
		row := m.Row(lat)
		if len(row) == 0 {
			continue
		}

		r := math.Cos(math.Abs(float64(lat))*math.Pi/180) * opts.SphereRadius
		dotsForLat := r * 2 * math.Pi * opts.Density
		if dotsForLat <= 0 {
			continue
		}

		for x := 0; float64(x) < dotsForLat; x++ {
			long := -180 + float64(x)*360/dotsForLat

			closest := nearestLongitude(row, long)
			if math.Abs(long-closest) > opts.Tolerance {
				continue
			}

			dots = append(dots, DotRecord{
				Position: geo.Project(float64(lat), long, opts.SphereRadius),
				Latitude: lat,
			})
		}
	}

	return dots
}

// nearestLongitude returns the entry of the ascending row closest to long.
// On an exact tie between the two bracketing samples the lower longitude
// wins. Rows are never empty here.
func nearestLongitude(row []float64, long float64) float64 {
	i := sort.SearchFloat64s(row, long)
	if i == 0 {
		return row[0]
	}
	if i == len(row) {
		return row[len(row)-1]
	}
	if long-row[i-1] <= row[i]-long {
		return row[i-1]
	}
	return row[i]
}
