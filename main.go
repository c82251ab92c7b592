package main

import (
	"os"

	"github.com/Carmen-Shannon/graphplay/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	sessionFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 800,
			Usage: "window width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 600,
			Usage: "window height",
		},
		cli.Float64Flag{
			Name:  "fps",
			Value: 60,
			Usage: "target frames per second",
		},
		cli.BoolFlag{
			Name:  "profile",
			Usage: "log frame rate, timing and memory once per second",
		},
	}

	app := cli.NewApp()
	app.Name = "graphplay"
	app.Usage = "render a rotating octahedron at a fixed frame rate"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "open a window and render until it is closed",
			Description: `
Open a window and draw a vertex-colored octahedron tumbling about the X axis,
one full turn every 600 frames (ten seconds at 60 fps), composed with a
rotation about the Y axis at half that rate. Press Escape or close the window
to exit; frame statistics are printed on exit.`,
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "title",
					Value: "graphplay",
					Usage: "window title",
				},
				cli.BoolFlag{
					Name:  "vsync",
					Usage: "wait for vertical blank when presenting",
				},
				cli.IntFlag{
					Name:  "msaa",
					Value: 4,
					Usage: "multisample count (1, 4, 8 or 16)",
				},
				cli.BoolFlag{
					Name:  "software",
					Usage: "force the software fallback adapter",
				},
			}, sessionFlags...),
			Action: cmd.Run,
		},
		{
			Name:  "bench",
			Usage: "run the frame loop headless and print pacing statistics",
			Description: `
Run the frame loop without a window or GPU for a fixed number of frames.
Each frame optionally burns --work of simulated render time, which is
useful to observe sleep accuracy and overruns.`,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "frames",
					Value: 600,
					Usage: "number of frames to render",
				},
				cli.DurationFlag{
					Name:  "work",
					Value: 0,
					Usage: "simulated render time per frame",
				},
			}, sessionFlags...),
			Action: cmd.Bench,
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
