package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/ticketeer/pkg/confirm"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
)

const (
	// confirmCloseButtonID closes the order ticket. The id of the confirmation follows a colon.
	confirmCloseButtonID = "confirm_close_order"

	// cancelCloseButtonID drops the confirmation.
	cancelCloseButtonID = "cancel_close_order"
)

func createTicketButton(a *App, ic *interaction) error {
	res, err := a.tickets.Create(ic.GuildID, ic.actor, entities.TicketTypeGeneral)
	return a.replyResult(ic, res, err)
}

func productCSButton(a *App, ic *interaction) error {
	res, err := a.tickets.Create(ic.GuildID, ic.actor, entities.TicketTypeCS)
	return a.replyResult(ic, res, err)
}

// productBuyButton sends the buyer to the order channel of the product, or opens an order
// ticket when the product has none.
func productBuyButton(a *App, ic *interaction) error {
	messageID := ""
	if ic.Message != nil {
		messageID = ic.Message.ID
	}

	channelID, err := a.embeds.ResolveOrderChannel(ic.GuildID, messageID)
	if err != nil {
		a.Warn("Error resolving order channel",
			slog.String("message_id", messageID),
			slog.String(logging.KeyError, err.Error()),
		)
	}
	if channelID != "" {
		return a.reply(ic, a.msgs.T("order_channel", "channel", channelMention(channelID)))
	}

	res, err := a.tickets.Create(ic.GuildID, ic.actor, entities.TicketTypeOrder)
	return a.replyResult(ic, res, err)
}

// isOwnOrderTicket reports whether the button was pressed in an order ticket or in a
// ticket the member opened.
func (a *App) isOwnOrderTicket(ic *interaction) (bool, error) {
	ch, err := a.client.Channel(ic.ChannelID)
	if err != nil {
		return false, fmt.Errorf("error getting channel: %w", err)
	}
	return strings.Contains(ch.Name, string(entities.TicketTypeOrder)) || ch.Topic == ic.actor.ID, nil
}

// closeOrderButton asks the member to confirm closing the order ticket.
func closeOrderButton(a *App, ic *interaction) error {
	ok, err := a.isOwnOrderTicket(ic)
	if err != nil {
		return err
	} else if !ok {
		ic.rejected = true
		return a.reply(ic, a.msgs.T("close_order_not_allowed"))
	}

	_, err = a.confirms.Begin(ic.ID, ic.actor.ID, ic.ChannelID, func(req confirm.Request) {
		monitoring.PendingConfirmations.Set(float64(a.confirms.Len()))
		if a.responder == nil {
			return
		}
		if err := a.responder.EditResponse(ic.Interaction, a.msgs.T("confirm_close_timeout")); err != nil {
			a.Warn("Error expiring close confirmation",
				slog.String(logging.KeyChannel, req.ChannelID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	})
	if err != nil {
		return fmt.Errorf("error starting close confirmation: %w", err)
	}
	monitoring.PendingConfirmations.Set(float64(a.confirms.Len()))

	seconds := strconv.Itoa(int(a.confirms.Timeout() / time.Second))
	err = a.respond(ic, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{{
				Title:       a.msgs.T("confirm_close_title"),
				Description: a.msgs.T("confirm_close_prompt", "seconds", seconds),
				Color:       a.cfg.WarningColor,
				Footer:      &discordgo.MessageEmbedFooter{Text: a.msgs.T("confirm_close_footer")},
			}},
			Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    a.msgs.T("confirm_close_button"),
					Style:    discordgo.DangerButton,
					CustomID: confirmCloseButtonID + ":" + ic.ID,
				},
				discordgo.Button{
					Label:    a.msgs.T("cancel_close_button"),
					Style:    discordgo.SecondaryButton,
					CustomID: cancelCloseButtonID + ":" + ic.ID,
				},
			}}},
		},
	})
	if err != nil {
		// Nobody can answer a prompt that was never shown.
		if _, cerr := a.confirms.Cancel(ic.ID, ic.actor.ID); cerr == nil {
			monitoring.PendingConfirmations.Set(float64(a.confirms.Len()))
		}
		return err
	}
	return nil
}

// answerError replies to a click on a confirmation that cannot be answered.
func (a *App) answerError(ic *interaction, err error) error {
	switch {
	case errors.Is(err, confirm.ErrNotOwner):
		ic.rejected = true
		return a.reply(ic, a.msgs.T("confirm_not_yours"))
	case errors.Is(err, confirm.ErrUnknown):
		return a.update(ic, a.msgs.T("confirm_expired"))
	}
	return err
}

func confirmCloseButton(a *App, ic *interaction) error {
	req, err := a.confirms.Confirm(ic.arg, ic.actor.ID)
	if err != nil {
		return a.answerError(ic, err)
	}
	monitoring.PendingConfirmations.Set(float64(a.confirms.Len()))

	res, err := a.tickets.Close(ic.GuildID, req.ChannelID, ic.actor)
	if err != nil {
		a.Error("Error closing order ticket",
			slog.String(logging.KeyChannel, req.ChannelID),
			slog.String(logging.KeyError, err.Error()),
		)
	}
	if !res.Success {
		if err == nil {
			ic.rejected = true
		}
		return a.update(ic, res.Message)
	}

	if err := a.update(ic, res.Message); err != nil {
		return err
	}

	now := time.Now()
	_, err = a.client.SendMessage(req.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title: a.msgs.T("order_closed_title"),
			Description: a.msgs.T("order_closed_body",
				"user", ic.actor.Mention(),
				"time", fmt.Sprintf("<t:%d:F>", now.Unix()),
			),
			Color:     a.cfg.SuccessColor,
			Footer:    &discordgo.MessageEmbedFooter{Text: a.msgs.T("order_closed_footer")},
			Timestamp: now.UTC().Format(time.RFC3339),
		}},
	})
	if err != nil {
		a.Warn("Order closed notice not sent", slog.String(logging.KeyChannel, req.ChannelID), slog.String(logging.KeyError, err.Error()))
	}
	return nil
}

func cancelCloseButton(a *App, ic *interaction) error {
	if _, err := a.confirms.Cancel(ic.arg, ic.actor.ID); err != nil {
		return a.answerError(ic, err)
	}
	monitoring.PendingConfirmations.Set(float64(a.confirms.Len()))
	return a.update(ic, a.msgs.T("confirm_close_cancelled"))
}
