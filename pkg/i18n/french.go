package i18n

func frenchSet() TranslationSet {
	return TranslationSet{
		ErrorOccurred:        "Une erreur est survenue ! Merci de créer un ticket sur https://github.com/christophe-duc/mediathread/issues",
		CannotKillChildError: "La tâche en cours ne s'est pas arrêtée après trois secondes. Son thread peut continuer jusqu'à la fin du processus.",
		CreatingThreadError:  "Impossible de créer un thread. Augmentez 'threads.maxThreads' dans votre configuration, ou mettez-le à 0 pour ne pas limiter.",

		TopologyTitle:   "Topologie CPU",
		ConfiguredCPUs:  "configurés",
		OnlineCPUs:      "en ligne",
		PhysicalCores:   "cœurs physiques",
		UsableCPUs:      "utilisables par ce processus",
		NotAvailable:    "n/d",
		LatencyTitle:    "Latence d'annulation",
		LatencyCaption:  "latence par essai (ms)",
		LatencyProgress: "essai %d/%d",
		Run:             "essai",
		Latency:         "latence",
		Minimum:         "min",
		Maximum:         "max",
		Mean:            "moyenne",
		WatchTitle:      "Suivi de l'utilisation CPU, ctrl+c pour arrêter",
		WatchStopping:   "arrêt",
		CPUUsage:        "cpu",
	}
}
