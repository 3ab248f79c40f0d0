package tickets

import (
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
)

func (m *Manager) welcomeEmbed(r Requester, channelID string, t entities.TicketType) *discordgo.MessageEmbed {
	kind := string(t)
	color := m.cfg.DefaultColor
	if t == entities.TicketTypeOrder {
		color = m.cfg.ProductColor
	}

	info := m.msgs.T("welcome_info",
		"role", m.msgs.T("welcome_"+kind+"_role"),
		"tag", r.Tag(),
		"created", discordTimestamp(m.now()),
		"channel", channelMention(channelID),
		"type", strings.ToUpper(kind[:1])+kind[1:],
	)

	e := &discordgo.MessageEmbed{
		Title:       m.msgs.T("welcome_" + kind + "_title"),
		Description: m.msgs.T("welcome_"+kind+"_body", "user", r.Mention()) + "\n\n" + info,
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: m.msgs.T("welcome_" + kind + "_footer")},
	}
	if r.AvatarURL != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: r.AvatarURL}
	}
	return e
}

func (m *Manager) closeOrderRow() discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			Label:    m.msgs.T("close_order_button"),
			Style:    discordgo.DangerButton,
			CustomID: CloseOrderButtonID,
		},
	}}
}
