package config

import (
	"io"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Prefix is the environment prefix LoadConfig reads under
const Prefix = "TIMELINE"

// Config is a struct to contain all the configuration of the timeline
// tools.
type Config struct {
	Log     *Log
	Flatten *Flatten
}

// Log configures the logger handed to library code.
type Log struct {
	// Level is any level logrus understands: debug, info, warn, error
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"json"`

	// Output, when set, replaces stderr. It can't be set from the
	// environment.
	Output io.Writer `ignored:"true"`
}

// Flatten configures the stack flattener.
type Flatten struct {
	TrackName string `envconfig:"TRACK_NAME" default:"Flattened"`

	// Strict makes a missing flatten mapping fail the flatten instead of
	// skipping the item
	Strict bool `envconfig:"STRICT"`
}

// LoadConfig loads the configuration from environment variables prefixed
// with TIMELINE_, panicking on malformed values.
func LoadConfig() *Config {
	cfg, err := Load(Prefix)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load loads the configuration from environment variables prefixed with
// prefix.
func Load(prefix string) (*Config, error) {
	cfg := Default()
	if err := envconfig.Process(prefix, cfg); err != nil {
		return nil, errors.Wrap(err, "loading config from environment")
	}
	if _, err := cfg.Log.Logger(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Log:     &Log{Level: "info", Format: "json"},
		Flatten: &Flatten{TrackName: "Flattened"},
	}
}

// Logger builds the logger described by l.
func (l *Log) Logger() (*logrus.Logger, error) {
	logger := logrus.New()
	if l == nil {
		logger.Out = io.Discard
		return logger, nil
	}

	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", l.Level)
	}
	logger.Level = level

	switch strings.ToLower(l.Format) {
	case "json", "":
		logger.Formatter = &logrus.JSONFormatter{}
	case "text":
		logger.Formatter = &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}
	default:
		return nil, errors.Errorf("log format %q: want json or text", l.Format)
	}

	logger.Out = os.Stderr
	if l.Output != nil {
		logger.Out = l.Output
	}
	return logger, nil
}
