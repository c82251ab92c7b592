package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Carmen-Shannon/graphplay/engine/scheduler"
	"github.com/olekukonko/tablewriter"
)

// writeStats renders the session statistics as a table.
func writeStats(w io.Writer, stats scheduler.FrameStats, presented uint64) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frames", "Presented", "Slept", "Overruns", "Avg update", "Avg sleep", "Avg real sleep"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.FrameCount),
		fmt.Sprintf("%d", presented),
		fmt.Sprintf("%d", stats.SleptFrames),
		fmt.Sprintf("%d", stats.Overruns()),
		stats.AvgUpdate().String(),
		stats.AvgSleep().String(),
		stats.AvgRealSleep().String(),
	})
	table.Render()
}

func logStats(stats scheduler.FrameStats, presented uint64) {
	var buf bytes.Buffer
	writeStats(&buf, stats, presented)
	logger.Noticef("frame statistics\n%s", buf.String())
}
