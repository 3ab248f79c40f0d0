// Package config reads the bot configuration from the environment once at startup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Jacobbrewer1/ticketeer/pkg/embeds"
	"github.com/Jacobbrewer1/ticketeer/pkg/permissions"
	"github.com/Jacobbrewer1/ticketeer/pkg/tickets"
	"github.com/joho/godotenv"
)

// ErrIncomplete is returned when a required variable is not set.
var ErrIncomplete = errors.New("incomplete configuration")

// Config is the immutable configuration of the bot. It is built once and passed to every constructor.
type Config struct {
	BotToken string
	ClientId string
	GuildId  string
	OwnerIds []string

	AdminRole   string
	SellerRole  string
	BuyerRole   string
	SupportRole string

	DataDir          string
	AutosaveInterval time.Duration
	Language         string

	// MongoUri enables the remote backup sink when set.
	MongoUri string

	MonitoringPort string

	ActiveCategory  string
	ClosedCategory  string
	ArchiveCategory string

	DefaultColor int
	ProductColor int
	SuccessColor int
	WarningColor int
	ErrorColor   int

	Limits embeds.Limits

	DeleteDelay    time.Duration
	ConfirmTimeout time.Duration

	TicketRateInterval time.Duration
	TicketRateBurst    int
}

// Load reads the .env files, when present, into the environment and builds the configuration from it.
// Variables already set in the environment win over the files.
func Load(l *slog.Logger, files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading env file: %w", err)
		}
		l.Debug("No env file found, using the process environment")
	}
	return Parse(l, os.Getenv)
}

// Parse builds the configuration from getenv. A missing bot token or guild ID is an error.
func Parse(l *slog.Logger, getenv func(string) string) (*Config, error) {
	c := &Config{
		BotToken: strings.TrimSpace(getenv(EnvBotToken)),
		ClientId: strings.TrimSpace(getenv(EnvClientId)),
		GuildId:  strings.TrimSpace(getenv(EnvGuildId)),
		OwnerIds: permissions.ParseOwnerIDs(getenv(EnvOwnerIds)),

		AdminRole:   withDefault(getenv(EnvAdminRole), defaultAdminRole),
		SellerRole:  withDefault(getenv(EnvSellerRole), defaultSellerRole),
		BuyerRole:   withDefault(getenv(EnvBuyerRole), defaultBuyerRole),
		SupportRole: withDefault(getenv(EnvSupportRole), defaultSupportRole),

		DataDir:          withDefault(getenv(EnvDataDir), defaultDataDir),
		AutosaveInterval: defaultAutosaveInterval,
		Language:         strings.ToLower(withDefault(getenv(EnvLanguage), defaultLanguage)),
		MongoUri:         strings.TrimSpace(getenv(EnvMongoUri)),
		MonitoringPort:   withDefault(getenv(EnvMonitoringPort), defaultMonitoringPort),

		ActiveCategory:  defaultActiveCategory,
		ClosedCategory:  defaultClosedCategory,
		ArchiveCategory: defaultArchiveCategory,

		DefaultColor: defaultColor,
		ProductColor: defaultProductColor,
		SuccessColor: defaultSuccessColor,
		WarningColor: defaultWarningColor,
		ErrorColor:   defaultErrorColor,

		Limits: embeds.DefaultLimits,

		DeleteDelay:    defaultDeleteDelay,
		ConfirmTimeout: defaultConfirmTimeout,

		TicketRateInterval: defaultTicketRateInterval,
		TicketRateBurst:    defaultTicketRateBurst,
	}

	if v := strings.TrimSpace(getenv(EnvAutosaveInterval)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid %s %q: must be a positive duration", EnvAutosaveInterval, v)
		}
		c.AutosaveInterval = d
	}

	if getenv(EnvMonitoringPort) == "" {
		l.Info("No monitoring port provided in environment, defaulting to "+defaultMonitoringPort,
			slog.String("key", EnvMonitoringPort))
	}

	missing := make([]string, 0, 2)
	if c.BotToken == "" {
		missing = append(missing, EnvBotToken)
	}
	if c.GuildId == "" {
		missing = append(missing, EnvGuildId)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s not set", ErrIncomplete, strings.Join(missing, ", "))
	}

	l.Debug("All required environment variables have been provided")
	return c, nil
}

func withDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

// Permissions returns the permission evaluator configuration.
func (c *Config) Permissions() permissions.Config {
	return permissions.Config{
		OwnerIDs:    c.OwnerIds,
		AdminRole:   c.AdminRole,
		SellerRole:  c.SellerRole,
		BuyerRole:   c.BuyerRole,
		SupportRole: c.SupportRole,
	}
}

// Tickets returns the ticket manager configuration.
func (c *Config) Tickets() tickets.Config {
	return tickets.Config{
		ActiveCategory:  c.ActiveCategory,
		ClosedCategory:  c.ClosedCategory,
		ArchiveCategory: c.ArchiveCategory,
		DeleteDelay:     c.DeleteDelay,
		DefaultColor:    c.DefaultColor,
		ProductColor:    c.ProductColor,
		SuccessColor:    c.SuccessColor,
	}
}

// Embeds returns the composer configuration.
func (c *Config) Embeds() embeds.Config {
	return embeds.Config{
		Limits:       c.Limits,
		DefaultColor: c.DefaultColor,
		ProductColor: c.ProductColor,
		SuccessColor: c.SuccessColor,
		WarningColor: c.WarningColor,
		ErrorColor:   c.ErrorColor,
	}
}
