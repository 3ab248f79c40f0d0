package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Jacobbrewer1/ticketeer/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
	"github.com/Jacobbrewer1/ticketeer/pkg/messages"
	"github.com/Jacobbrewer1/ticketeer/pkg/request"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// Interaction outcomes recorded by DiscordInteractions.
const (
	outcomeOK       = "ok"
	outcomeError    = "error"
	outcomePanic    = "panic"
	outcomeRejected = "rejected"
)

type Controller func(w http.ResponseWriter, r *http.Request)

func middlewareHttp(handler Controller, a *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		// Recover from any panics that occur in the handler.
		defer func() {
			if rec := recover(); rec != nil {
				a.Error("Panic in handler",
					slog.String(logging.KeyError, fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				request.WriteJSON(a.Logger, cw, http.StatusInternalServerError, request.NewMessage(request.ErrInternalServer.Error()))
			}
		}()

		var path string
		route := mux.CurrentRoute(r)
		if route != nil { // The route may be nil if the request is not routed.
			var err error
			path, err = route.GetPathTemplate()
			if err != nil {
				// An error here is only returned if the route does not define a path.
				a.Error("Error getting path template", slog.String(logging.KeyError, err.Error()))
				path = r.URL.Path
			}
		} else {
			path = r.URL.Path
		}

		defer func() {
			// The status code is only known once the handler returned.
			monitoring.HttpTotalRequests.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Inc()
			monitoring.HttpRequestDuration.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Observe(time.Since(now).Seconds())
		}()

		handler(cw, r)
	}
}

// run executes a processor for an interaction. Panics and errors are logged and
// answered with the generic failure message when nothing was sent yet.
func (a *App) run(label string, ic *interaction, p commandProcessor) {
	timer := prometheus.NewTimer(monitoring.DiscordCommandDuration.WithLabelValues(label))
	defer timer.ObserveDuration()

	l := a.With(
		slog.String(logging.KeyCommand, label),
		slog.String(logging.KeyGuild, ic.GuildID),
		slog.String(logging.KeyChannel, ic.ChannelID),
		slog.String(logging.KeyUser, ic.actor.ID),
	)

	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		l.Error("Panic in interaction handler",
			slog.String(logging.KeyError, fmt.Sprint(rec)),
			slog.String("stack", string(debug.Stack())),
		)
		monitoring.DiscordInteractions.WithLabelValues(label, outcomePanic).Inc()
		a.failed(l, ic)
	}()

	l.Debug("Handling interaction")
	if err := p(a, ic); err != nil {
		l.Error("Error processing interaction", slog.String(logging.KeyError, err.Error()))
		monitoring.DiscordInteractions.WithLabelValues(label, outcomeError).Inc()
		a.failed(l, ic)
		return
	}

	outcome := outcomeOK
	if ic.rejected {
		outcome = outcomeRejected
	}
	monitoring.DiscordInteractions.WithLabelValues(label, outcome).Inc()
}

func (a *App) failed(l *slog.Logger, ic *interaction) {
	if ic.responded {
		return
	}
	if err := a.reply(ic, a.msgs.T(messages.ErrUserErrorProcessing)); err != nil {
		l.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
	}
}
