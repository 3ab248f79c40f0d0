package main

import (
	"fmt"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
	"github.com/Jacobbrewer1/ticketeer/pkg/permissions"
)

func ticketOpen(a *App, ic *interaction) error {
	res, err := a.tickets.Create(ic.GuildID, ic.actor, entities.TicketTypeGeneral)
	return a.replyResult(ic, res, err)
}

func ticketClose(a *App, ic *interaction) error {
	res, err := a.tickets.Close(ic.GuildID, ic.ChannelID, ic.actor)
	return a.replyResult(ic, res, err)
}

func ticketRename(a *App, ic *interaction) error {
	res, err := a.tickets.Rename(ic.GuildID, ic.ChannelID, ic.actor, ic.opts.String("name"))
	return a.replyResult(ic, res, err)
}

func ticketArchive(a *App, ic *interaction) error {
	res, err := a.tickets.Archive(ic.GuildID, ic.ChannelID, ic.actor)
	return a.replyResult(ic, res, err)
}

func ticketDelete(a *App, ic *interaction) error {
	res, err := a.tickets.Delete(a.ctx, ic.GuildID, ic.ChannelID, ic.actor)
	return a.replyResult(ic, res, err)
}

func ticketSetup(a *App, ic *interaction) error {
	res, err := a.tickets.SetupPanel(ic.channel("channel"))
	return a.replyResult(ic, res, err)
}

// closeTicketCommand is the /closeticket shortcut for closing the current ticket.
func closeTicketCommand(a *App, ic *interaction) error {
	return ticketClose(a, ic)
}

// botReport checks the bot's server permissions and, when channelID is set, its permissions there.
func (a *App) botReport(guildID, channelID string) (permissions.BotReport, error) {
	guildPerms, err := a.client.BotGuildPermissions(guildID)
	if err != nil {
		return permissions.BotReport{}, fmt.Errorf("error getting bot guild permissions: %w", err)
	}

	var channelPerms *int64
	if channelID != "" {
		perms, err := a.client.BotChannelPermissions(channelID)
		if err != nil {
			return permissions.BotReport{}, fmt.Errorf("error getting bot channel permissions: %w", err)
		}
		channelPerms = &perms
	}
	return permissions.CheckBot(guildPerms, channelPerms), nil
}

func reportLines(r permissions.Report) string {
	lines := make([]string, 0, len(r.Present)+len(r.Missing))
	for _, c := range r.Present {
		lines = append(lines, "✅ "+c.Name)
	}
	for _, c := range r.Missing {
		lines = append(lines, "❌ "+c.Name)
	}
	return strings.Join(lines, "\n")
}

func ticketPermissions(a *App, ic *interaction) error {
	channelID := ic.channel("channel")
	report, err := a.botReport(ic.GuildID, channelID)
	if err != nil {
		return err
	}

	e := &discordgo.MessageEmbed{
		Title:       a.msgs.T("perm_check_title"),
		Description: a.msgs.T("perm_check_description", "channel", channelMention(channelID)),
		Color:       a.cfg.DefaultColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: a.msgs.T("perm_check_footer")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: a.msgs.T("perm_check_server"), Value: reportLines(report.Server), Inline: true},
		},
	}
	if report.Channel != nil {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:   a.msgs.T("perm_check_channel"),
			Value:  reportLines(*report.Channel),
			Inline: true,
		})
	}
	return a.replyEmbed(ic, e)
}

func ticketBotInfo(a *App, ic *interaction) error {
	report, err := a.botReport(ic.GuildID, ic.ChannelID)
	if err != nil {
		return err
	}

	admin := true
	for _, c := range report.Server.Missing {
		if c == permissions.CapAdministrator {
			admin = false
			break
		}
	}

	missing := a.msgs.T("botinfo_none_missing")
	if names := report.Server.MissingNames(); len(names) > 0 && !admin {
		missing = strings.Join(names, ", ")
	}

	color := a.cfg.SuccessColor
	if !admin {
		color = a.cfg.WarningColor
	}

	botID := a.client.BotUserID()
	return a.replyEmbed(ic, &discordgo.MessageEmbed{
		Title:       a.msgs.T("botinfo_title"),
		Description: a.msgs.T("botinfo_description", "user", userMention(botID)),
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: a.msgs.T("perm_check_footer")},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  a.msgs.T("botinfo_basic"),
				Value: a.msgs.T("botinfo_basic_value", "id", botID, "admin", yesNo(a, admin)),
			},
			{Name: a.msgs.T("botinfo_missing"), Value: missing},
			{Name: a.msgs.T("perm_check_channel"), Value: reportLines(*report.Channel)},
		},
	})
}
