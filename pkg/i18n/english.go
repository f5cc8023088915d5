package i18n

func englishSet() TranslationSet {
	return TranslationSet{
		ErrorOccurred:        "An error occurred! Please create an issue at https://github.com/christophe-duc/mediathread/issues",
		CannotKillChildError: "Waited three seconds for the running task to stop. Its thread may keep running until the process exits.",
		CreatingThreadError:  "Could not create a thread. Raise 'threads.maxThreads' in your config, or set it to 0 to remove the cap.",

		TopologyTitle:   "CPU topology",
		ConfiguredCPUs:  "configured",
		OnlineCPUs:      "online",
		PhysicalCores:   "physical cores",
		UsableCPUs:      "usable by this process",
		NotAvailable:    "n/a",
		LatencyTitle:    "Cancellation latency",
		LatencyCaption:  "latency per run (ms)",
		LatencyProgress: "run %d/%d",
		Run:             "run",
		Latency:         "latency",
		Minimum:         "min",
		Maximum:         "max",
		Mean:            "mean",
		WatchTitle:      "Watching CPU usage, press ctrl+c to stop",
		WatchStopping:   "stopping",
		CPUUsage:        "cpu",
	}
}
