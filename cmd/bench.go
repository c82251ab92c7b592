package cmd

import (
	"time"

	"github.com/Carmen-Shannon/graphplay/common"
	"github.com/Carmen-Shannon/graphplay/engine"
	"github.com/Carmen-Shannon/graphplay/engine/clock"
	"github.com/Carmen-Shannon/graphplay/engine/renderer"
	"github.com/Carmen-Shannon/graphplay/engine/scheduler"
	"github.com/Carmen-Shannon/graphplay/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/urfave/cli"
)

// Bench runs the render loop without a window or GPU for a fixed number of frames and reports the pacing statistics.
func Bench(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg := configFromContext(ctx)
	cfg.MSAA = int(renderer.MSAAOff)
	if err := cfg.Validate(); err != nil {
		logger.Error(err)
		return err
	}

	stats, presented, err := runBench(cfg, clock.NewClock())
	if err != nil {
		logger.Error(err)
		return err
	}
	logStats(stats, presented)
	return nil
}

func runBench(cfg Config, c clock.Clock) (scheduler.FrameStats, uint64, error) {
	e, err := engine.NewEngine(&frameLimit{remaining: cfg.Frames}, &nullGraphics{clock: c, work: cfg.Work},
		engine.WithClock(c),
		engine.WithScheduler(scheduler.NewScheduler(scheduler.WithTargetFPS(cfg.FPS), scheduler.WithClock(c))),
		engine.WithInitialSize(cfg.Width, cfg.Height),
		engine.WithProfiling(cfg.Profile),
	)
	if err != nil {
		return scheduler.FrameStats{}, 0, err
	}

	logger.Noticef("benchmarking %d frames at %.0f fps", cfg.Frames, cfg.FPS)
	stats := e.Run()
	return stats, e.Frames(), nil
}

// frameLimit is an event source that requests a close once the given number of frames were polled.
type frameLimit struct {
	remaining int
}

func (f *frameLimit) PollEvents() []common.Event {
	if f.remaining <= 0 {
		return []common.Event{common.CloseEvent()}
	}
	f.remaining--
	return nil
}

// nullGraphics accepts every frame and optionally burns a fixed amount of work on present.
type nullGraphics struct {
	clock clock.Clock
	work  time.Duration
}

func (g *nullGraphics) BeginFrame() error { return nil }

func (g *nullGraphics) Clear(common.Color, float32) {}

func (g *nullGraphics) UpdateUniform(transform.ViewProjectionBlock) {}

func (g *nullGraphics) Draw(common.MeshHandle, string, mgl32.Mat4) error { return nil }

func (g *nullGraphics) Present() {
	g.clock.Sleep(g.work)
}
