package imaging_test

import (
	"image"
	"image/color"
	"math"
	"testing"

	"wallpipe/internal/imaging"
)

func flatImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestMedianSaturation(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	gray := color.RGBA{R: 128, G: 128, B: 128, A: 255}

	halfAndHalf := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if x < 32 {
				halfAndHalf.Set(x, y, red)
			} else {
				halfAndHalf.Set(x, y, gray)
			}
		}
	}

	cases := []struct {
		name string
		img  image.Image
		want float64
	}{
		{"pure red", flatImage(64, 64, red), 1.0},
		{"neutral gray", flatImage(64, 64, gray), 0.0},
		{"black", flatImage(64, 64, color.RGBA{A: 255}), 0.0},
		{"half red half gray", halfAndHalf, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := imaging.MedianSaturation(tc.img)
			if math.Abs(got-tc.want) > 0.02 {
				t.Fatalf("MedianSaturation = %.4f, want %.4f", got, tc.want)
			}
		})
	}
}

func TestMedianSaturationDownscalesLargeImages(t *testing.T) {
	img := flatImage(2048, 1024, color.RGBA{R: 255, A: 255})
	got := imaging.MedianSaturation(img)
	if math.Abs(got-1.0) > 0.02 {
		t.Fatalf("MedianSaturation(large red) = %.4f, want 1.0", got)
	}
}

func TestMedianSaturationEmptyImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if got := imaging.MedianSaturation(img); got != 0 {
		t.Fatalf("MedianSaturation(empty) = %.4f, want 0", got)
	}
}
