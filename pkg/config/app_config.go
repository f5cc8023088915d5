package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/imdario/mergo"
	yaml "github.com/jesseduffield/yaml"
)

// AppConfig contains the base configuration fields required for mediathread.
type AppConfig struct {
	Debug       bool   `long:"debug" env:"DEBUG" default:"false"`
	Version     string `long:"version" env:"VERSION" default:"unversioned"`
	Commit      string `long:"commit" env:"COMMIT"`
	BuildDate   string `long:"build-date" env:"BUILD_DATE"`
	Name        string `long:"name" env:"NAME" default:"mediathread"`
	BuildSource string `long:"build-source" env:"BUILD_SOURCE" default:""`
	UserConfig  *UserConfig
	// ConfigFile is the yaml file the user config was loaded from. Empty when
	// running on defaults only.
	ConfigFile string
	// ConfigDir holds development.log in debug mode. Empty means log to stderr.
	ConfigDir string
}

// UserConfig holds all of the user-configurable options. The fields here are all in PascalCase but in your actual config.yml they'll be in camelCase. You can view the default config with `mediathread --config`.
type UserConfig struct {
	// Threads configures the threading layer itself
	Threads ThreadsConfig `yaml:"threads,omitempty"`

	// Bench configures the `latency` command
	Bench BenchConfig `yaml:"bench,omitempty"`

	// Language is the language of the command line output, e.g. "en" or "fr". "auto" picks it from the environment
	Language string `yaml:"language,omitempty"`
}

// GetDefaultConfig returns the application default configuration
// NOTE (to contributors, not users): do not default a boolean to true, because false is the boolean zero value and this will be ignored when parsing the user's config
func GetDefaultConfig() UserConfig {
	return UserConfig{
		Threads: ThreadsConfig{
			Debug:            false,
			Clock:            ClockMonotonic,
			SleepQuantum:     10 * time.Millisecond,
			JoinMode:         JoinModeSignal,
			JoinPollInterval: 10 * time.Millisecond,
			SharedOSThreads:  false,
			KeepSignalMask:   false,
			MaxThreads:       0,
		},
		Bench: BenchConfig{
			Runs:        20,
			SleepDelay:  10 * time.Millisecond,
			SleepCount:  1000,
			CancelAfter: 25 * time.Millisecond,
			GraphHeight: 10,
			GraphColor:  "green",
		},
		Language: "auto",
	}
}

// NewAppConfig makes a new app config. configFile may be empty, in which case
// the defaults are used as-is.
func NewAppConfig(name, version, commit, date string, buildSource string, debuggingFlag bool, configFile string) (*AppConfig, error) {
	userConfig, err := loadUserConfigWithDefaults(configFile)
	if err != nil {
		return nil, err
	}

	debug := debuggingFlag || os.Getenv("DEBUG") == "TRUE"
	if debug {
		userConfig.Threads.Debug = true
	}

	if err := userConfig.Validate(); err != nil {
		return nil, err
	}

	configDir := ""
	if configFile != "" {
		configDir = filepath.Dir(configFile)
	}

	appConfig := &AppConfig{
		Name:        name,
		Version:     version,
		Commit:      commit,
		BuildDate:   date,
		Debug:       debug,
		BuildSource: buildSource,
		UserConfig:  userConfig,
		ConfigFile:  configFile,
		ConfigDir:   configDir,
	}

	return appConfig, nil
}

func loadUserConfigWithDefaults(configFile string) (*UserConfig, error) {
	config := GetDefaultConfig()
	if configFile == "" {
		return &config, nil
	}

	userConfig, err := loadUserConfig(configFile, &UserConfig{})
	if err != nil {
		return nil, err
	}

	if err := mergo.Merge(&config, userConfig, mergo.WithOverride); err != nil {
		return nil, err
	}

	return &config, nil
}

func loadUserConfig(fileName string, base *UserConfig) (*UserConfig, error) {
	content, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(content, base); err != nil {
		return nil, err
	}

	return base, nil
}
