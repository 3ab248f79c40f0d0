package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/cmd/bot/config"
	"github.com/Jacobbrewer1/ticketeer/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/ticketeer/pkg/confirm"
	"github.com/Jacobbrewer1/ticketeer/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketeer/pkg/embeds"
	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
	"github.com/Jacobbrewer1/ticketeer/pkg/messages"
	"github.com/Jacobbrewer1/ticketeer/pkg/permissions"
	"github.com/Jacobbrewer1/ticketeer/pkg/platform"
	"github.com/Jacobbrewer1/ticketeer/pkg/request"
	"github.com/Jacobbrewer1/ticketeer/pkg/tickets"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// PathMetrics is the path for metrics.
	PathMetrics = "/metrics"

	// PathHealth is the path for the health check.
	PathHealth = "/health"
)

type App struct {
	// is the logger.
	*slog.Logger

	// cfg is the configuration the app was built with.
	cfg *config.Config

	// r is the router for the monitoring server.
	r *mux.Router

	// svr is the monitoring server.
	svr *http.Server

	// s is the discord session. It is nil in tests.
	s *discordgo.Session

	// client is the narrowed platform client the components use.
	client platform.Client

	store    *dataaccess.Store
	backups  dataaccess.BackupDal
	perms    *permissions.Evaluator
	msgs     *messages.Catalog
	tickets  *tickets.Manager
	embeds   *embeds.Composer
	confirms *confirm.Registry

	// responder answers interactions.
	responder responder

	// fetch downloads interaction attachments.
	fetch attachmentFetcher

	// ctx is cancelled when the app shuts down.
	ctx context.Context

	started time.Time

	// commands routes slash commands by name.
	commands map[string]commandController

	// buttons routes button clicks by custom ID prefix.
	buttons map[string]commandProcessor

	// registered are the commands created on the platform.
	registered []*discordgo.ApplicationCommand

	// eventNotifier is the channel for notifying of events.
	eventNotifier chan any
}

// NewApp creates a new instance of App.
func NewApp(
	l *slog.Logger,
	cfg *config.Config,
	r *mux.Router,
	s *discordgo.Session,
	client platform.Client,
	store *dataaccess.Store,
	backups dataaccess.BackupDal,
	perms *permissions.Evaluator,
	msgs *messages.Catalog,
	tm *tickets.Manager,
	composer *embeds.Composer,
	confirms *confirm.Registry,
) *App {
	a := &App{
		Logger:   l,
		cfg:      cfg,
		r:        r,
		s:        s,
		client:   client,
		store:    store,
		backups:  backups,
		perms:    perms,
		msgs:     msgs,
		tickets:  tm,
		embeds:   composer,
		confirms: confirms,
		fetch:    httpFetcher(&http.Client{Timeout: attachmentTimeout}),
		ctx:      context.Background(),
		started:  time.Now(),
	}
	if s != nil {
		a.responder = &sessionResponder{s: s}
	}
	a.commands, a.buttons = routes()
	return a
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a.ctx = ctx

	// Register bot.
	a.RegisterBot()

	a.s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		a.Info(fmt.Sprintf("Logged in as %s#%s", r.User.Username, r.User.Discriminator))
	})

	a.RegisterDiscordHandlers()

	// Start event listener.
	go a.eventListener()

	// Open websocket.
	if err := a.s.Open(); err != nil {
		return fmt.Errorf("error opening connection to Discord: %w", err)
	}

	// Register slash commands.
	if err := a.registerSlashCommands(); err != nil {
		return fmt.Errorf("error registering slash commands: %w", err)
	}

	// Missing groupings are created again on the first ticket.
	if _, err := a.tickets.PrepareCategories(a.cfg.GuildId); err != nil {
		a.Error("Error preparing ticket categories", slog.String(logging.KeyError, err.Error()))
	}

	a.store.StartAutosave(ctx, a.cfg.AutosaveInterval)

	a.Info("Bot is now running.")

	a.generateServer()
	a.setupRoutes()
	a.runServer()

	<-ctx.Done()
	a.Info("Received shutdown signal")

	if err := a.ShutdownHook(); err != nil {
		return fmt.Errorf("error shutting down application: %w", err)
	}
	return nil
}

func (a *App) ShutdownHook() error {
	// Reset the total number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	// Pending confirmations are dropped, their tickets stay open.
	a.confirms.Stop()
	monitoring.PendingConfirmations.Set(0)

	// Let scheduled ticket deletions observe the cancelled context.
	a.tickets.Wait()

	if !a.store.SaveAll() {
		a.Warn("Not every document was saved on shutdown")
	}

	if a.svr != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.svr.Shutdown(ctx); err != nil {
			a.Error("Error shutting down monitoring server", slog.String(logging.KeyError, err.Error()))
		}
	}

	// Unregister slash commands.
	if err := a.unregisterSlashCommands(); err != nil {
		a.Error("Error unregistering slash commands", slog.String(logging.KeyError, err.Error()))
	}

	// Close the connection to Discord.
	if err := a.s.Close(); err != nil {
		return fmt.Errorf("error closing connection to Discord: %w", err)
	}
	return nil
}

func (a *App) RegisterBot() {
	// Default the number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	if a.eventNotifier == nil {
		// Create event notifier. This is buffered to prevent blocking.
		a.eventNotifier = make(chan any, 100)
	}

	a.s.SetEventNotifier(a.eventNotifier)
}

func (a *App) runServer() {
	go func() {
		a.Info("Starting monitoring server", slog.String("addr", a.svr.Addr))
		if err := a.svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Error("Error starting monitoring server", slog.String(logging.KeyError, err.Error()))
			a.Warn("Monitoring server will not be available")
		}
	}()
}

func (a *App) setupRoutes() {
	a.r.HandleFunc(PathMetrics, middlewareHttp(promhttp.Handler().ServeHTTP, a)).Methods(http.MethodGet)
	a.r.HandleFunc(PathHealth, middlewareHttp(a.healthCheck(), a)).Methods(http.MethodGet)

	a.r.NotFoundHandler = request.NotFoundHandler(a.Logger)
	a.r.MethodNotAllowedHandler = request.MethodNotAllowedHandler(a.Logger)
}

func (a *App) generateServer() {
	a.svr = &http.Server{
		Addr:              ":" + a.cfg.MonitoringPort,
		Handler:           a.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (a *App) RegisterDiscordHandlers() {
	// Bot joined guild.
	a.s.AddHandler(guildJoinedHandler(a))

	// Bot left guild.
	a.s.AddHandler(guildLeaveHandler(a))

	// Interaction create handler.
	a.s.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		a.handleInteraction(i.Interaction)
	})
}

func (a *App) eventListener() {
	for e := range a.eventNotifier {
		switch t := e.(type) {
		case *discordgo.Event:
			if t.Type != "" {
				monitoring.TotalDiscordEvents.WithLabelValues(t.Type).Inc()
			} else {
				// If there is no type, then use the operation name.
				monitoring.TotalDiscordEvents.WithLabelValues(strings.ToUpper(t.Operation.String())).Inc()
			}
		default:
			a.Error("Unknown event type", slog.String("type", fmt.Sprintf("%T", e)))
			monitoring.TotalDiscordEvents.WithLabelValues("UNKNOWN").Inc()
		}
	}
}

// applicationID is the configured client ID, or the bot user when none is configured.
func (a *App) applicationID() string {
	if a.cfg.ClientId != "" {
		return a.cfg.ClientId
	}
	return a.client.BotUserID()
}

func (a *App) registerSlashCommands() error {
	cmds, err := a.s.ApplicationCommandBulkOverwrite(a.applicationID(), a.cfg.GuildId, slashCommands())
	if err != nil {
		return fmt.Errorf("error creating commands for guild %s: %w", a.cfg.GuildId, err)
	}
	a.registered = cmds
	a.Info("Registered slash commands", slog.Int("count", len(cmds)), slog.String(logging.KeyGuild, a.cfg.GuildId))
	return nil
}

func (a *App) unregisterSlashCommands() error {
	for _, cmd := range a.registered {
		if err := a.s.ApplicationCommandDelete(a.applicationID(), a.cfg.GuildId, cmd.ID); err != nil {
			return fmt.Errorf("error deleting command %s for guild %s: %w", cmd.Name, a.cfg.GuildId, err)
		}
	}
	a.registered = nil
	return nil
}

// gatewayStats returns the heartbeat latency and the number of joined guilds.
func (a *App) gatewayStats() (time.Duration, int) {
	if a.s == nil {
		return 0, 0
	}
	guilds := 0
	if a.s.State != nil {
		guilds = len(a.s.State.Guilds)
	}
	return a.s.HeartbeatLatency(), guilds
}
