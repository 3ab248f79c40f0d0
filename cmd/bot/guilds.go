package main

import (
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
)

func guildJoinedHandler(a *App) func(s *discordgo.Session, g *discordgo.GuildCreate) {
	return func(_ *discordgo.Session, g *discordgo.GuildCreate) {
		a.Info(fmt.Sprintf("Joined guild %s", g.Name), slog.String(logging.KeyGuild, g.ID))

		// Increment the total number of guilds.
		monitoring.TotalDiscordGuilds.Inc()

		if g.ID != a.cfg.GuildId {
			a.Warn("Joined a guild that is not configured, commands are not registered there",
				slog.String(logging.KeyGuild, g.ID))
		}
	}
}

func guildLeaveHandler(a *App) func(s *discordgo.Session, g *discordgo.GuildDelete) {
	return func(_ *discordgo.Session, g *discordgo.GuildDelete) {
		a.Info("Left guild", slog.String(logging.KeyGuild, g.ID))

		// Decrement the total number of guilds.
		monitoring.TotalDiscordGuilds.Dec()
	}
}
