//go:build wireinject
// +build wireinject

package main

import (
	"github.com/Jacobbrewer1/ticketeer/cmd/bot/config"
	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
	"github.com/Jacobbrewer1/ticketeer/pkg/platform"
	"github.com/google/wire"
	"github.com/gorilla/mux"
)

func InitializeApp() (*App, func(), error) {
	wire.Build(
		wire.Value(logging.Name(config.AppName)),
		logging.NewConfig,
		logging.CommonLogger,
		LoadConfig,
		mux.NewRouter,
		NewDiscordSession,
		platform.NewSession,
		wire.Bind(new(platform.Client), new(*platform.Session)),
		NewStore,
		NewBackupDal,
		NewEvaluator,
		NewCatalog,
		NewTicketLimiter,
		NewConfirmRegistry,
		NewTicketManager,
		NewComposer,
		NewApp,
	)
	return new(App), nil, nil
}
