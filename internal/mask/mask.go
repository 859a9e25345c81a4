// Package mask classifies an equirectangular raster into per-latitude land
// longitudes for the dot-field generator.
package mask

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"sort"
)

// Raster dimensions: one pixel per degree.
const (
	Width  = 360
	Height = 180
)

// DefaultLandThreshold is tuned for rasters that encode land as dark pixels.
// A pixel is land when its red channel is strictly below the threshold, so
// intensity exactly at the threshold is water.
const DefaultLandThreshold = 100

var (
	// ErrMaskUnavailable reports that the raster could not be loaded or
	// decoded. Callers skip dot generation entirely; there is no partial mask.
	ErrMaskUnavailable = errors.New("land mask unavailable")

	// ErrInvalidRasterDimensions reports a raster that is not 360x180.
	ErrInvalidRasterDimensions = errors.New("raster dimensions must be 360x180")
)

// LandMask holds, for each integer latitude from 90 down to -89 (raster row
// 0 is latitude 90), the ascending list of integer longitudes classified as
// land at that row. Every row is present; rows with no land are empty.
type LandMask struct {
	rows [Height][]float64
}

// RowIndex converts an integer latitude in [-89, 90] to a raster row.
func RowIndex(lat int) int { return 90 - lat }

// RowLatitude converts a raster row back to its latitude.
func RowLatitude(row int) int { return 90 - row }

// Row returns the ascending land longitudes for the given latitude, or nil
// when the latitude is outside [-89, 90].
func (m *LandMask) Row(lat int) []float64 {
	row := RowIndex(lat)
	if row < 0 || row >= Height {
		return nil
	}
	return m.rows[row]
}

// LandCount returns the total number of land samples in the mask.
func (m *LandMask) LandCount() int {
	n := 0
	for _, row := range m.rows {
		n += len(row)
	}
	return n
}

// New builds a mask from precomputed per-latitude land longitudes, for
// callers that classify land from something other than a raster. Rows are
// copied and sorted ascending; latitudes outside [-89, 90] are ignored.
func New(rows map[int][]float64) *LandMask {
	m := &LandMask{}
	for lat, longs := range rows {
		row := RowIndex(lat)
		if row < 0 || row >= Height {
			continue
		}
		m.rows[row] = append([]float64(nil), longs...)
		sort.Float64s(m.rows[row])
	}
	return m
}

// Build samples the raster top-to-bottom (latitude 90 to -89) and
// left-to-right (longitude -180 to 179), one pixel per degree, classifying a
// pixel as land when its red channel is strictly below threshold. The scan
// order leaves each row's longitudes ascending, which the generator relies
// on for its binary search.
func Build(img image.Image, threshold uint8) (*LandMask, error) {
	bounds := img.Bounds()
	if bounds.Dx() != Width || bounds.Dy() != Height {
		return nil, fmt.Errorf("%w: got %dx%d",
			ErrInvalidRasterDimensions, bounds.Dx(), bounds.Dy())
	}

	m := &LandMask{}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if uint8(r>>8) < threshold {
				m.rows[y] = append(m.rows[y], float64(x-180))
			}
		}
	}
	return m, nil
}

// Load decodes a PNG raster from disk and builds the mask. Load and decode
// failures are reported as ErrMaskUnavailable.
func Load(path string, threshold uint8) (*LandMask, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMaskUnavailable, err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrMaskUnavailable, path, err)
	}

	return Build(img, threshold)
}
