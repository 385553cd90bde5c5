package imaging

import (
	"image"

	"golang.org/x/image/draw"
)

// saturationSample bounds the longest side of the thumbnail used for
// saturation sampling. Larger sources are downscaled; smaller ones are
// sampled as-is.
const saturationSample = 512

// MedianSaturation estimates the median HSV saturation of img on a 0 to 1
// scale. Grayscale images score near zero and vivid images near one, which
// lets callers gate out black-and-white material with a small threshold.
func MedianSaturation(img image.Image) float64 {
	small := shrink(img, saturationSample)
	bounds := small.Bounds()

	var counts [256]int
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := small.At(x, y).RGBA()
			counts[saturation8(uint8(r>>8), uint8(g>>8), uint8(b>>8))]++
			total++
		}
	}
	if total == 0 {
		return 0
	}

	if total%2 == 1 {
		return float64(nthSaturation(&counts, total/2)) / 255
	}
	lo := nthSaturation(&counts, total/2-1)
	hi := nthSaturation(&counts, total/2)
	return (float64(lo) + float64(hi)) / 2 / 255
}

// saturation8 computes the HSV S channel of an 8-bit RGB pixel on a 0 to
// 255 scale.
func saturation8(r, g, b uint8) int {
	maxc := max(r, g, b)
	minc := min(r, g, b)
	if maxc == 0 {
		return 0
	}
	return int(maxc-minc) * 255 / int(maxc)
}

// nthSaturation returns the value at sorted position idx of the histogram.
func nthSaturation(counts *[256]int, idx int) int {
	seen := 0
	for value, count := range counts {
		seen += count
		if seen > idx {
			return value
		}
	}
	return 255
}

// shrink scales img so its longest side is at most limit pixels. Images
// already within the limit are returned unchanged.
func shrink(img image.Image, limit int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	longest := max(width, height)
	if longest <= limit || longest == 0 {
		return img
	}

	scale := float64(limit) / float64(longest)
	dst := image.NewRGBA(image.Rect(0, 0,
		max(1, int(float64(width)*scale)),
		max(1, int(float64(height)*scale))))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
