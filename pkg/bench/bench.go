// Package bench measures how long it takes to stop a sleeping thread.
package bench

import (
	"fmt"
	"strings"
	"time"

	"github.com/christophe-duc/mediathread/pkg/config"
	"github.com/christophe-duc/mediathread/pkg/i18n"
	"github.com/christophe-duc/mediathread/pkg/mtime"
	"github.com/christophe-duc/mediathread/pkg/threads"
	"github.com/christophe-duc/mediathread/pkg/utils"
	"github.com/fatih/color"
	"github.com/jesseduffield/asciigraph"
	"github.com/samber/lo"
)

// Result holds the latency of every run, in run order.
type Result struct {
	Latencies []time.Duration
	// Completed counts the runs whose thread finished its loop before it was
	// cancelled. Their latency only measures the join.
	Completed int
}

// Run creates cfg.Runs threads one after the other. Each one sleeps in a
// loop, is cancelled after cfg.CancelAfter and joined; the time from Cancel
// to the end of Join is its latency. progress, when not nil, is called after
// every run.
func Run(cfg config.BenchConfig, progress func(done, total int)) (Result, error) {
	result := Result{Latencies: make([]time.Duration, 0, cfg.Runs)}

	for i := 0; i < cfg.Runs; i++ {
		thread, err := threads.Clone(sleepLoop, cfg, 0)
		if err != nil {
			return result, err
		}

		threads.Msleep(mtime.FromDuration(cfg.CancelAfter))

		start := time.Now()
		thread.Cancel()
		if thread.Join() != nil {
			result.Completed++
		}
		result.Latencies = append(result.Latencies, time.Since(start))

		if progress != nil {
			progress(i+1, cfg.Runs)
		}
	}

	return result, nil
}

// sleepLoop returns the number of sleeps it made, unless it is cancelled first
func sleepLoop(data any) any {
	cfg := data.(config.BenchConfig)
	delay := mtime.FromDuration(cfg.SleepDelay)
	for i := 0; i < cfg.SleepCount; i++ {
		threads.Msleep(delay)
	}
	return cfg.SleepCount
}

func (r Result) milliseconds() []float64 {
	return lo.Map(r.Latencies, func(d time.Duration, _ int) float64 {
		return float64(d) / float64(time.Millisecond)
	})
}

// Min returns the lowest latency, or 0 without runs.
func (r Result) Min() time.Duration {
	return lo.Min(r.Latencies)
}

// Max returns the highest latency, or 0 without runs.
func (r Result) Max() time.Duration {
	return lo.Max(r.Latencies)
}

// Mean returns the average latency, or 0 without runs.
func (r Result) Mean() time.Duration {
	if len(r.Latencies) == 0 {
		return 0
	}
	return lo.SumBy(r.Latencies, func(d time.Duration) time.Duration { return d }) / time.Duration(len(r.Latencies))
}

// Report renders the summary table and, with more than one run, a graph of
// the latencies.
func Report(r Result, cfg config.BenchConfig, tr *i18n.TranslationSet) (string, error) {
	table, err := utils.RenderTable([][]string{
		{utils.ColoredString(tr.Minimum, color.FgCyan), utils.FormatDuration(r.Min())},
		{utils.ColoredString(tr.Mean, color.FgCyan), utils.FormatDuration(r.Mean())},
		{utils.ColoredString(tr.Maximum, color.FgCyan), utils.FormatDuration(r.Max())},
	})
	if err != nil {
		return "", err
	}

	sections := []string{
		utils.ColoredString(tr.LatencyTitle, color.Bold),
		table,
	}

	if len(r.Latencies) > 1 {
		data := r.milliseconds()
		graph := asciigraph.Plot(
			data,
			asciigraph.Height(cfg.GraphHeight),
			asciigraph.Min(0),
			asciigraph.Max(lo.Max(data)),
			asciigraph.Caption(tr.LatencyCaption),
		)
		sections = append(sections, utils.ColoredString(graph, utils.GetColorAttribute(cfg.GraphColor)))
	}

	return strings.Join(sections, "\n\n") + "\n", nil
}

// Progress renders the progress line printed while the runs go on.
func Progress(done, total int, tr *i18n.TranslationSet) string {
	return fmt.Sprintf(tr.LatencyProgress, done, total)
}
