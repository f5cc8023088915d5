package i18n

// TranslationSet is a set of localised strings for a given language
type TranslationSet struct {
	ErrorOccurred        string
	CannotKillChildError string
	CreatingThreadError  string

	TopologyTitle   string
	ConfiguredCPUs  string
	OnlineCPUs      string
	PhysicalCores   string
	UsableCPUs      string
	NotAvailable    string
	LatencyTitle    string
	LatencyCaption  string
	LatencyProgress string
	Run             string
	Latency         string
	Minimum         string
	Maximum         string
	Mean            string
	WatchTitle      string
	WatchStopping   string
	CPUUsage        string
}
