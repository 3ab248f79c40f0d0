package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/cmd/bot/config"
	"github.com/Jacobbrewer1/ticketeer/pkg/confirm"
	"github.com/Jacobbrewer1/ticketeer/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketeer/pkg/dataaccess/connection"
	"github.com/Jacobbrewer1/ticketeer/pkg/embeds"
	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
	"github.com/Jacobbrewer1/ticketeer/pkg/messages"
	"github.com/Jacobbrewer1/ticketeer/pkg/permissions"
	"github.com/Jacobbrewer1/ticketeer/pkg/platform"
	"github.com/Jacobbrewer1/ticketeer/pkg/throttle"
	"github.com/Jacobbrewer1/ticketeer/pkg/tickets"
)

// LoadConfig reads the configuration from .env and the environment.
func LoadConfig(l *slog.Logger) (*config.Config, error) {
	return config.Load(l)
}

// NewDiscordSession creates the gateway session for the configured bot token. It is not opened.
func NewDiscordSession(cfg *config.Config) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsAll)
	return dg, nil
}

// NewStore creates the file store over the data directory and loads it.
func NewStore(l *slog.Logger, cfg *config.Config) *dataaccess.Store {
	s := dataaccess.NewStore(l, cfg.DataDir)
	s.Load()
	return s
}

// NewBackupDal connects to Mongo when a URI is configured. Without one the backup sink is nil.
func NewBackupDal(l *slog.Logger, cfg *config.Config) (dataaccess.BackupDal, func(), error) {
	if cfg.MongoUri == "" {
		l.Info("No MongoDB URI provided, remote backups are disabled", slog.String("key", config.EnvMongoUri))
		return nil, func() {}, nil
	}

	mongoConn := &connection.MongoDB{ConnectionString: cfg.MongoUri}
	client, err := mongoConn.Connect(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("error connecting to mongo: %w", err)
	}
	l.Debug("Connected to MongoDB", slog.String("key", config.EnvMongoUri))

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			l.Error("Error disconnecting from mongo", slog.String(logging.KeyError, err.Error()))
		}
	}
	return dataaccess.NewBackupDal(l, client), cleanup, nil
}

func NewEvaluator(cfg *config.Config) *permissions.Evaluator {
	return permissions.NewEvaluator(cfg.Permissions())
}

func NewCatalog(cfg *config.Config) (*messages.Catalog, error) {
	return messages.NewCatalog(cfg.Language)
}

func NewTicketLimiter(cfg *config.Config) *throttle.Keyed {
	return throttle.NewKeyed(cfg.TicketRateInterval, cfg.TicketRateBurst)
}

func NewConfirmRegistry(cfg *config.Config) *confirm.Registry {
	return confirm.NewRegistry(cfg.ConfirmTimeout)
}

func NewTicketManager(
	l *slog.Logger,
	client platform.Client,
	store *dataaccess.Store,
	perms *permissions.Evaluator,
	msgs *messages.Catalog,
	limiter *throttle.Keyed,
	cfg *config.Config,
) *tickets.Manager {
	return tickets.NewManager(l, client, store, perms, msgs, limiter, cfg.Tickets())
}

func NewComposer(
	l *slog.Logger,
	client platform.Client,
	store *dataaccess.Store,
	perms *permissions.Evaluator,
	msgs *messages.Catalog,
	cfg *config.Config,
) *embeds.Composer {
	return embeds.NewComposer(l, client, store, perms, msgs, cfg.Embeds())
}
