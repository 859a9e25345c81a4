package mask

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func whiteRaster() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return img
}

func TestBuildAllWaterRaster(t *testing.T) {
	m, err := Build(whiteRaster(), DefaultLandThreshold)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for lat := -89; lat <= 90; lat++ {
		if got := m.Row(lat); len(got) != 0 {
			t.Fatalf("latitude %d: expected no land, got %v", lat, got)
		}
	}
	if m.LandCount() != 0 {
		t.Fatalf("LandCount = %d, want 0", m.LandCount())
	}
}

func TestBuildSinglePixel(t *testing.T) {
	img := whiteRaster()
	// Raster row 10 is latitude 80; column 200 is longitude 20.
	img.Set(200, 10, color.RGBA{R: 0, G: 0, B: 0, A: 255})

	m, err := Build(img, DefaultLandThreshold)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	row := m.Row(80)
	if len(row) != 1 || row[0] != 20 {
		t.Fatalf("latitude 80 land = %v, want [20]", row)
	}
	if m.LandCount() != 1 {
		t.Fatalf("LandCount = %d, want 1", m.LandCount())
	}
}

func TestBuildThresholdBoundary(t *testing.T) {
	img := whiteRaster()
	// Intensity exactly at the threshold is water; one below is land.
	img.Set(0, 0, color.RGBA{R: DefaultLandThreshold, A: 255})
	img.Set(1, 0, color.RGBA{R: DefaultLandThreshold - 1, A: 255})

	m, err := Build(img, DefaultLandThreshold)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	row := m.Row(90)
	if len(row) != 1 || row[0] != -179 {
		t.Fatalf("latitude 90 land = %v, want [-179]", row)
	}
}

func TestBuildRowsAscending(t *testing.T) {
	img := whiteRaster()
	for _, x := range []int{300, 5, 120} {
		img.Set(x, 45, color.RGBA{A: 255})
	}

	m, err := Build(img, DefaultLandThreshold)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	row := m.Row(45)
	if len(row) != 3 {
		t.Fatalf("latitude 45 land = %v, want 3 entries", row)
	}
	for i := 1; i < len(row); i++ {
		if row[i] <= row[i-1] {
			t.Fatalf("row not ascending: %v", row)
		}
	}
}

func TestBuildRejectsWrongDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 720, 360))
	if _, err := Build(img, DefaultLandThreshold); !errors.Is(err, ErrInvalidRasterDimensions) {
		t.Fatalf("Build on 720x360 raster: err = %v, want ErrInvalidRasterDimensions", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("testdata/does-not-exist.png", DefaultLandThreshold); !errors.Is(err, ErrMaskUnavailable) {
		t.Fatalf("Load missing file: err = %v, want ErrMaskUnavailable", err)
	}
}

func TestRowIndexRoundTrip(t *testing.T) {
	for lat := -89; lat <= 90; lat++ {
		row := RowIndex(lat)
		if row < 0 || row >= Height {
			t.Fatalf("RowIndex(%d) = %d out of range", lat, row)
		}
		if back := RowLatitude(row); back != lat {
			t.Fatalf("RowLatitude(RowIndex(%d)) = %d", lat, back)
		}
	}
}
