package cmd

import (
	"fmt"

	"github.com/Carmen-Shannon/graphplay/common"
	"github.com/Carmen-Shannon/graphplay/engine"
	"github.com/Carmen-Shannon/graphplay/engine/mesh"
	"github.com/Carmen-Shannon/graphplay/engine/renderer"
	"github.com/Carmen-Shannon/graphplay/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/graphplay/engine/renderer/shader"
	"github.com/Carmen-Shannon/graphplay/engine/scheduler"
	"github.com/Carmen-Shannon/graphplay/engine/window"
	"github.com/urfave/cli"
)

// Run opens a window and renders the rotating octahedron until the window is closed or Escape is pressed.
func Run(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg := configFromContext(ctx)
	if err := cfg.Validate(); err != nil {
		logger.Error(err)
		return err
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Title),
		window.WithWidth(cfg.Width),
		window.WithHeight(cfg.Height),
	)
	if err != nil {
		logger.Error(err)
		return err
	}
	defer win.Close()

	presentMode := renderer.PresentModeUncapped
	if cfg.VSync {
		presentMode = renderer.PresentModeVSync
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Software),
	)
	if err != nil {
		logger.Error(err)
		return err
	}
	defer r.Release()

	// The surface follows the framebuffer before the engine sees the resize event.
	win.SetResizeCallback(func(width, height int) {
		if err := r.Resize(width, height); err != nil {
			logger.Debugf("keeping surface: %v", err)
		}
	})

	p, err := unlitPipeline()
	if err != nil {
		logger.Error(err)
		return err
	}
	if err := r.RegisterPipelines(p); err != nil {
		logger.Error(err)
		return err
	}

	vertices, indices := mesh.Octahedron()
	handle, err := r.UploadMesh(common.SliceToBytes(vertices), common.SliceToBytes(indices), len(indices))
	if err != nil {
		logger.Error(err)
		return err
	}

	e, err := engine.NewEngine(win, r,
		engine.WithScheduler(scheduler.NewScheduler(scheduler.WithTargetFPS(cfg.FPS))),
		engine.WithMesh(handle),
		engine.WithPipelineKey(p.PipelineKey()),
		engine.WithInitialSize(win.Width(), win.Height()),
		engine.WithProfiling(cfg.Profile),
	)
	if err != nil {
		logger.Error(err)
		return err
	}

	logger.Noticef("rendering %q at %.0f fps", cfg.Title, cfg.FPS)
	stats := e.Run()
	logStats(stats, e.Frames())
	return nil
}

// unlitPipeline builds the vertex-colored pipeline from the embedded shaders.
func unlitPipeline() (pipeline.Pipeline, error) {
	vs, err := shader.NewShader("unlit_vertex", shader.ShaderTypeVertex, shader.UnlitVertexSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", renderer.ErrShaderCompilation, err)
	}
	fs, err := shader.NewShader("unlit_fragment", shader.ShaderTypeFragment, shader.UnlitFragmentSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", renderer.ErrShaderCompilation, err)
	}
	return pipeline.NewPipeline(engine.DefaultPipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	)
}
