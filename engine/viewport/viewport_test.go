package viewport

import (
	"errors"
	"testing"
)

func TestAspect(t *testing.T) {
	type spec struct {
		w, h   int
		exp    float32
		expErr bool
	}
	specs := []spec{
		{800, 600, float32(800) / float32(600), false},
		{1600, 900, float32(1600) / float32(900), false},
		{1, 1, 1, false},
		{1600, 0, 0, true},
		{0, 900, 0, true},
		{-1, 600, 0, true},
		{800, -600, 0, true},
	}

	for index, s := range specs {
		got, err := Aspect(s.w, s.h)
		if s.expErr {
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Fatalf("[spec %d] expected ErrInvalidDimensions for %dx%d; got %v", index, s.w, s.h, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}
		if got != s.exp {
			t.Fatalf("[spec %d] expected aspect %f; got %f", index, s.exp, got)
		}
	}
}
