package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/graphplay/engine/renderer"
	"github.com/urfave/cli"
)

// ErrInvalidConfig is returned when command line flags describe an unusable session.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the session settings collected from command line flags.
type Config struct {
	Title    string
	Width    int
	Height   int
	FPS      float64
	VSync    bool
	MSAA     int
	Software bool
	Profile  bool

	// Frames and Work are only used by the bench command.
	Frames int
	Work   time.Duration
}

// Validate rejects non-positive sizes and frame rates and unsupported MSAA sample counts.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %v", ErrInvalidConfig, c.FPS)
	}
	if !renderer.MSAASampleCount(c.MSAA).Valid() {
		return fmt.Errorf("%w: msaa %d (use 1, 4, 8 or 16)", ErrInvalidConfig, c.MSAA)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames %d", ErrInvalidConfig, c.Frames)
	}
	if c.Work < 0 {
		return fmt.Errorf("%w: work %s", ErrInvalidConfig, c.Work)
	}
	return nil
}

func configFromContext(ctx *cli.Context) Config {
	return Config{
		Title:    ctx.String("title"),
		Width:    ctx.Int("width"),
		Height:   ctx.Int("height"),
		FPS:      ctx.Float64("fps"),
		VSync:    ctx.Bool("vsync"),
		MSAA:     ctx.Int("msaa"),
		Software: ctx.Bool("software"),
		Profile:  ctx.Bool("profile"),
		Frames:   ctx.Int("frames"),
		Work:     ctx.Duration("work"),
	}
}
