package logging

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// KeyError is the key used for errors in log attributes.
	KeyError = "error"

	// KeyDal is the key used to identify the data access layer that logged.
	KeyDal = "dal"

	// KeyApp is the key used for the application name.
	KeyApp = "app"

	// KeyGuild is the key used for guild ids.
	KeyGuild = "guild_id"

	// KeyChannel is the key used for channel ids.
	KeyChannel = "channel_id"

	// KeyUser is the key used for user ids.
	KeyUser = "user_id"

	// KeyCommand is the key used for command names.
	KeyCommand = "command"
)

// envLogLevel is the environment variable read for the log level.
const envLogLevel = "LOG_LEVEL"

// Name is the name of the application that is logging.
type Name string

// Config is the configuration for a logger.
type Config struct {
	// Name is added to every record under KeyApp.
	Name Name

	// Level is the minimum level that is written.
	Level slog.Level

	// Out is where the records are written. Defaults to stdout.
	Out io.Writer
}

// NewConfig creates a new logging configuration. The level is taken from LOG_LEVEL when set.
func NewConfig(name Name) *Config {
	c := &Config{
		Name:  name,
		Level: slog.LevelInfo,
		Out:   os.Stdout,
	}

	switch strings.ToLower(os.Getenv(envLogLevel)) {
	case "debug":
		c.Level = slog.LevelDebug
	case "warn", "warning":
		c.Level = slog.LevelWarn
	case "error":
		c.Level = slog.LevelError
	}
	return c
}

// CommonLogger returns a JSON logger for the given configuration and sets it as the default logger.
func CommonLogger(c *Config) (*slog.Logger, error) {
	if c == nil {
		return nil, errors.New("logging config is nil")
	}

	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	h := slog.NewJSONHandler(out, &slog.HandlerOptions{
		AddSource: c.Level == slog.LevelDebug,
		Level:     c.Level,
	})

	l := slog.New(h).With(slog.String(KeyApp, string(c.Name)))
	slog.SetDefault(l)
	return l, nil
}
