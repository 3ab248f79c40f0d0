package main

import (
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/custom"
)

const (
	statusBot    = "bot"
	statusServer = "server"
	statusStats  = "stats"
	statusSystem = "system"
	statusFull   = "full"
)

func statusCommand(a *App, ic *interaction) error {
	kind := ic.opts.String("type")
	if kind == "" {
		kind = statusFull
	}

	e := &discordgo.MessageEmbed{
		Color:     a.cfg.DefaultColor,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	switch kind {
	case statusBot:
		e.Title = a.msgs.T("status_bot_title")
		e.Fields = a.botFields()
	case statusServer:
		fields, err := a.serverFields(ic.GuildID)
		if err != nil {
			return err
		}
		e.Title = a.msgs.T("status_server_title")
		e.Fields = fields
	case statusStats:
		e.Title = a.msgs.T("status_stats_title")
		e.Fields = a.statsFields()
	case statusSystem:
		e.Title = a.msgs.T("status_system_title")
		e.Fields = a.systemFields()
	default:
		e.Title = a.msgs.T("status_full_title")
		e.Fields = append(a.botFields(), a.statsFields()...)
		e.Fields = append(e.Fields, a.systemFields()...)
	}
	e.Footer = &discordgo.MessageEmbedFooter{Text: a.msgs.T("status_footer", "uptime", custom.FormatUptime(time.Since(a.started)))}
	return a.replyEmbed(ic, e)
}

func (a *App) botFields() []*discordgo.MessageEmbedField {
	latency, guilds := a.gatewayStats()
	return []*discordgo.MessageEmbedField{{
		Name: a.msgs.T("status_bot_field"),
		Value: a.msgs.T("status_bot_value",
			"uptime", custom.FormatUptime(time.Since(a.started)),
			"ping", strconv.FormatInt(latency.Milliseconds(), 10),
			"guilds", strconv.Itoa(guilds),
			"commands", strconv.Itoa(len(a.commands)),
		),
		Inline: true,
	}}
}

func (a *App) serverFields(guildID string) ([]*discordgo.MessageEmbedField, error) {
	g, err := a.client.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("error getting guild: %w", err)
	}
	channels, err := a.client.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("error listing channels: %w", err)
	}
	roles, err := a.client.GuildRoles(guildID)
	if err != nil {
		return nil, fmt.Errorf("error listing roles: %w", err)
	}

	var text, voice, categories int
	for _, ch := range channels {
		switch ch.Type {
		case discordgo.ChannelTypeGuildText:
			text++
		case discordgo.ChannelTypeGuildVoice:
			voice++
		case discordgo.ChannelTypeGuildCategory:
			categories++
		}
	}

	created := ""
	if ts, err := discordgo.SnowflakeTimestamp(g.ID); err == nil {
		created = fmt.Sprintf("<t:%d:F>", ts.Unix())
	}

	return []*discordgo.MessageEmbedField{
		{
			Name: a.msgs.T("status_server_general"),
			Value: a.msgs.T("status_server_general_value",
				"name", g.Name,
				"id", g.ID,
				"owner", userMention(g.OwnerID),
				"created", created,
				"members", strconv.Itoa(g.MemberCount),
			),
			Inline: true,
		},
		{
			Name: a.msgs.T("status_server_channels"),
			Value: a.msgs.T("status_server_channels_value",
				"text", strconv.Itoa(text),
				"voice", strconv.Itoa(voice),
				"categories", strconv.Itoa(categories),
				"roles", strconv.Itoa(len(roles)),
			),
			Inline: true,
		},
	}, nil
}

func (a *App) statsFields() []*discordgo.MessageEmbedField {
	ts := a.store.TicketStatistics()
	es := a.store.EmbedStatistics()
	c := a.store.Info().Counts

	return []*discordgo.MessageEmbedField{
		{
			Name: a.msgs.T("status_tickets_field"),
			Value: a.msgs.T("status_tickets_value",
				"active", strconv.Itoa(c.ActiveTickets),
				"created", strconv.Itoa(ts.TotalCreated),
				"closed", strconv.Itoa(ts.TotalClosed),
				"archived", strconv.Itoa(ts.TotalArchived),
			),
			Inline: true,
		},
		{
			Name: a.msgs.T("status_embeds_field"),
			Value: a.msgs.T("status_embeds_value",
				"created", strconv.Itoa(es.TotalCreated),
				"edited", strconv.Itoa(es.TotalEdited),
				"saved", strconv.Itoa(c.SavedEmbeds),
				"templates", strconv.Itoa(c.CustomTemplates),
				"products", strconv.Itoa(len(a.embeds.ListProducts())),
			),
			Inline: true,
		},
	}
}

func (a *App) systemFields() []*discordgo.MessageEmbedField {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return []*discordgo.MessageEmbedField{{
		Name: a.msgs.T("status_system_field"),
		Value: a.msgs.T("status_system_value",
			"memory", custom.FormatBytes(int64(mem.HeapAlloc)),
			"reserved", custom.FormatBytes(int64(mem.Sys)),
			"goroutines", strconv.Itoa(runtime.NumGoroutine()),
			"go", runtime.Version(),
			"platform", runtime.GOOS+"/"+runtime.GOARCH,
			"storage", custom.FormatBytes(a.store.Info().TotalSize()),
			"language", a.msgs.Language(),
		),
		Inline: false,
	}}
}
