package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/christophe-duc/mediathread/pkg/app"
	"github.com/christophe-duc/mediathread/pkg/config"
	"github.com/go-errors/errors"
	"github.com/integrii/flaggy"
	"github.com/jesseduffield/yaml"
)

var (
	commit      string
	version     = "unversioned"
	date        string
	buildSource = "unknown"

	configFlag    = false
	debuggingFlag = false
	configFile    = ""
	watchInterval = time.Second
)

func main() {
	info := fmt.Sprintf(
		"%s\nDate: %s\nBuildSource: %s\nCommit: %s\nOS: %s\nArch: %s",
		version,
		date,
		buildSource,
		commit,
		runtime.GOOS,
		runtime.GOARCH,
	)

	flaggy.SetName("mediathread")
	flaggy.SetDescription("Threads with cooperative cancellation, and the tools to measure them")
	flaggy.DefaultParser.AdditionalHelpPrepend = "https://github.com/christophe-duc/mediathread"

	flaggy.Bool(&configFlag, "c", "config", "Print the current default config")
	flaggy.Bool(&debuggingFlag, "d", "debug", "Check mutex, condition and thread misuse, and log to development.log")
	flaggy.String(&configFile, "f", "file", "Specify a config file")
	flaggy.SetVersion(info)

	cpuCmd := flaggy.NewSubcommand("cpu")
	cpuCmd.Description = "Show the CPU topology"
	flaggy.AttachSubcommand(cpuCmd, 1)

	latencyCmd := flaggy.NewSubcommand("latency")
	latencyCmd.Description = "Measure how fast sleeping threads stop when cancelled"
	flaggy.AttachSubcommand(latencyCmd, 1)

	watchCmd := flaggy.NewSubcommand("watch")
	watchCmd.Description = "Print the CPU usage from a cancellable thread until interrupted"
	watchCmd.Duration(&watchInterval, "i", "interval", "Time between two samples")
	flaggy.AttachSubcommand(watchCmd, 1)

	flaggy.Parse()

	if configFlag {
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		err := encoder.Encode(config.GetDefaultConfig())
		if err != nil {
			log.Fatal(err.Error())
		}
		fmt.Printf("%v\n", buf.String())
		os.Exit(0)
	}

	appConfig, err := config.NewAppConfig("mediathread", version, commit, date, buildSource, debuggingFlag, configFile)
	if err != nil {
		log.Fatal(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := app.NewApp(appConfig)
	if err == nil {
		switch {
		case latencyCmd.Used:
			err = app.Latency()
		case watchCmd.Used:
			err = app.Watch(ctx, watchInterval)
		default:
			err = app.Topology(ctx)
		}
	}
	if closeErr := app.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		if errMessage, known := app.KnownError(err); known {
			log.Println(errMessage)
			os.Exit(1)
		}

		newErr := errors.Wrap(err, 0)
		stackTrace := newErr.ErrorStack()
		app.Log.Error(stackTrace)

		log.Fatal(fmt.Sprintf("%s\n\n%s", app.Tr.ErrorOccurred, stackTrace))
	}
}
