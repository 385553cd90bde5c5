package imaging

import (
	"fmt"
	"image"

	"github.com/corona10/goimagehash"
)

// Hasher produces a perceptual hash for a decoded image.
type Hasher func(image.Image) (*goimagehash.ImageHash, error)

// HasherFor maps a configured algorithm name to its perceptual hash
// implementation. The names mirror the curate.hash_algorithm setting.
func HasherFor(algorithm string) (Hasher, error) {
	switch algorithm {
	case "average":
		return goimagehash.AverageHash, nil
	case "difference":
		return goimagehash.DifferenceHash, nil
	case "perception":
		return goimagehash.PerceptionHash, nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", algorithm)
	}
}
