package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/boz/go-throttle"
	"github.com/christophe-duc/mediathread/pkg/bench"
	"github.com/christophe-duc/mediathread/pkg/config"
	"github.com/christophe-duc/mediathread/pkg/cpu"
	"github.com/christophe-duc/mediathread/pkg/i18n"
	"github.com/christophe-duc/mediathread/pkg/log"
	"github.com/christophe-duc/mediathread/pkg/tasks"
	"github.com/christophe-duc/mediathread/pkg/threads"
	"github.com/christophe-duc/mediathread/pkg/utils"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// how often the latency progress line is redrawn
const progressPeriod = 100 * time.Millisecond

// App struct
type App struct {
	closers []io.Closer

	Config      *config.AppConfig
	Log         *logrus.Entry
	Tr          *i18n.TranslationSet
	TaskManager *tasks.TaskManager
	// Out receives the command output
	Out io.Writer
	// guards Out while the progress line is being redrawn
	outMutex sync.Mutex
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}

// NewApp bootstrap a new application
func NewApp(config *config.AppConfig) (*App, error) {
	app := &App{
		closers: []io.Closer{},
		Config:  config,
		Out:     os.Stdout,
	}
	var err error
	app.Log = log.NewLogger(config)
	app.Tr, err = i18n.NewTranslationSetFromConfig(app.Log, config.UserConfig.Language)
	if err != nil {
		return app, err
	}

	if err := threads.Setup(config.UserConfig.Threads, app.Log); err != nil {
		return app, err
	}

	app.TaskManager = tasks.NewTaskManager(app.Log, app.Tr)
	app.closers = append(app.closers, closerFunc(app.TaskManager.Close))
	return app, nil
}

// Topology prints the processor counts of the host
func (app *App) Topology(ctx context.Context) error {
	topology := cpu.GetTopology(ctx)
	count := func(n int) string {
		if n == 0 {
			return app.Tr.NotAvailable
		}
		return fmt.Sprint(n)
	}

	counts := utils.FormatMap(2, map[string]string{
		app.Tr.ConfiguredCPUs: count(topology.Configured),
		app.Tr.OnlineCPUs:     count(topology.Online),
		app.Tr.PhysicalCores:  count(topology.Physical),
		app.Tr.UsableCPUs:     count(topology.Usable),
	})

	app.print(utils.ColoredString(app.Tr.TopologyTitle, color.Bold) + "\n" + counts)
	return nil
}

// Latency runs the cancellation latency scenario and prints its report
func (app *App) Latency() error {
	cfg := app.Config.UserConfig.Bench

	var mutex sync.Mutex
	latest := ""
	redraw := throttle.NewThrottle(progressPeriod, true)
	redrawn := make(chan struct{})
	go func() {
		defer close(redrawn)
		for redraw.Next() {
			mutex.Lock()
			line := latest
			mutex.Unlock()
			app.print("\r" + line)
		}
	}()

	result, err := bench.Run(cfg, func(done, total int) {
		mutex.Lock()
		latest = bench.Progress(done, total, app.Tr)
		mutex.Unlock()
		redraw.Trigger()
	})
	redraw.Stop()
	<-redrawn
	if err != nil {
		return err
	}

	app.Log.WithFields(logrus.Fields{
		"runs":      len(result.Latencies),
		"completed": result.Completed,
		"min":       result.Min(),
		"max":       result.Max(),
		"mean":      result.Mean(),
	}).Info("cancellation latency measured")

	report, err := bench.Report(result, cfg, app.Tr)
	if err != nil {
		return err
	}
	app.print("\n\n" + report)
	return nil
}

// Watch prints the CPU usage every interval until ctx is done
func (app *App) Watch(ctx context.Context, interval time.Duration) error {
	err := app.TaskManager.NewTickerTask(interval, func() {
		app.print(utils.ColoredString(app.Tr.WatchTitle, color.Bold) + "\n")
	}, func() bool {
		usage, err := cpu.Usage(ctx, 0)
		if err != nil {
			app.Log.Error(err)
			return false
		}
		app.print(fmt.Sprintf("%s %s\n", utils.ColoredString(app.Tr.CPUUsage+":", color.FgYellow), utils.WithPadding(fmt.Sprintf("%.1f%%", usage), 6)))
		return ctx.Err() == nil
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	app.Log.Info(app.Tr.WatchStopping)
	app.TaskManager.Close()
	return nil
}

func (app *App) print(str string) {
	app.outMutex.Lock()
	defer app.outMutex.Unlock()
	fmt.Fprint(app.Out, str)
}

func (app *App) Close() error {
	return utils.CloseMany(app.closers)
}

type errorMapping struct {
	originalError string
	code          syscall.Errno
	newError      string
}

// KnownError takes an error and tells us whether it's an error that we know about where we can print a nicely formatted version of it rather than panicking with a stack trace
func (app *App) KnownError(err error) (string, bool) {
	errorMessage := err.Error()

	mappings := []errorMapping{
		{
			originalError: "creating thread",
			code:          syscall.ENOMEM,
			newError:      app.Tr.CreatingThreadError,
		},
	}

	for _, mapping := range mappings {
		if threads.HasErrorCode(err, mapping.code) && strings.Contains(errorMessage, mapping.originalError) {
			return mapping.newError, true
		}
	}

	return "", false
}
