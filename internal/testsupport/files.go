package testsupport

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte. With an image
// extension the result doubles as an undecodable image fixture.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := int64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// Pattern selects the pixel layout of a generated test image. The patterns
// produce strongly distinct perceptual hashes from one another, while the
// same pattern at different resolutions hashes identically.
type Pattern int

const (
	// PatternHSplit paints the left half white and the right half black.
	PatternHSplit Pattern = iota
	// PatternVSplit paints the top half white and the bottom half black.
	PatternVSplit
	// PatternVStripes alternates white and black vertical eighth bands.
	PatternVStripes
)

// WriteImage encodes a width x height test image with the given pattern.
// The encoder is chosen by the path extension (.png, .jpg, .jpeg).
func WriteImage(t testing.TB, path string, width, height int, pattern Pattern) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, patternColor(pattern, x, y, width, height, white, black))
		}
	}
	encodeImage(t, path, img)
}

// WriteFlatImage encodes a width x height image filled with a single color.
func WriteFlatImage(t testing.TB, path string, width, height int, c color.Color) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	encodeImage(t, path, img)
}

func patternColor(pattern Pattern, x, y, width, height int, on, off color.Color) color.Color {
	switch pattern {
	case PatternVSplit:
		if y < height/2 {
			return on
		}
		return off
	case PatternVStripes:
		band := max(1, width/8)
		if (x/band)%2 == 0 {
			return on
		}
		return off
	default:
		if x < width/2 {
			return on
		}
		return off
	}
}

func encodeImage(t testing.TB, path string, img image.Image) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 92})
	default:
		t.Fatalf("unsupported test image extension: %s", path)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}
