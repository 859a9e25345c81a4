package main

// Downsamples an equirectangular projection PNG of Earth to the 360x180
// land raster the mask builder expects: one pixel per degree, dark = land.

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

const (
	targetWidth  = 360
	targetHeight = 180
)

func main() {
	var in = flag.String("in", "equirectangle_projection.png", "Source equirectangular PNG")
	var out = flag.String("out", "land_mask.png", "Output 360x180 mask PNG")
	var cutoff = flag.Int("cutoff", 128, "Source brightness above which a pixel is water (0-255)")
	flag.Parse()

	if *cutoff < 0 || *cutoff > 255 {
		fmt.Fprintln(os.Stderr, "Error: cutoff must be 0-255")
		os.Exit(1)
	}

	file, err := os.Open(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding PNG: %v\n", err)
		os.Exit(1)
	}

	bounds := img.Bounds()
	scaleX := float64(bounds.Dx()) / float64(targetWidth)
	scaleY := float64(bounds.Dy()) / float64(targetHeight)

	// Nearest-neighbor sample into a grayscale mask. Land pixels are written
	// as 0 and water as 255, so any mask threshold in between classifies
	// them correctly.
	dst := image.NewGray(image.Rect(0, 0, targetWidth, targetHeight))
	for y := 0; y < targetHeight; y++ {
		for x := 0; x < targetWidth; x++ {
			srcX := bounds.Min.X + int(float64(x)*scaleX)
			srcY := bounds.Min.Y + int(float64(y)*scaleY)

			r, g, b, _ := img.At(srcX, srcY).RGBA()
			avg := (r + g + b) / 3 >> 8

			if avg > uint32(*cutoff) {
				dst.SetGray(x, y, color.Gray{Y: 255}) // water
			} else {
				dst.SetGray(x, y, color.Gray{Y: 0}) // land
			}
		}
	}

	outFile, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(1)
	}
	defer outFile.Close()

	if err := png.Encode(outFile, dst); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %dx%d mask to %s\n", targetWidth, targetHeight, *out)
}
