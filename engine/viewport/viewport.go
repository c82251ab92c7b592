// Package viewport derives the projection aspect ratio from the presentation surface size.
package viewport

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned for a surface size with a zero or negative side.
var ErrInvalidDimensions = errors.New("invalid viewport dimensions")

// Aspect returns width/height for a presentation surface.
//
// Parameters:
//   - width: surface width in pixels
//   - height: surface height in pixels
//
// Returns:
//   - float32: the aspect ratio width/height
//   - error: an error wrapping ErrInvalidDimensions if either side is <= 0
func Aspect(width, height int) (float32, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return float32(width) / float32(height), nil
}
