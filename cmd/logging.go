package cmd

import (
	"github.com/Carmen-Shannon/graphplay/engine/log"
	"github.com/urfave/cli"
)

var logger = log.New("graphplay")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
