package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/embeds"
	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
	"github.com/Jacobbrewer1/ticketeer/pkg/permissions"
	"github.com/Jacobbrewer1/ticketeer/pkg/tickets"
)

var errNoResponder = errors.New("no responder configured")

func (a *App) respond(ic *interaction, resp *discordgo.InteractionResponse) error {
	if a.responder == nil {
		return errNoResponder
	}
	if err := a.responder.Respond(ic.Interaction, resp); err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}
	ic.responded = true
	return nil
}

// reply answers with an ephemeral message.
func (a *App) reply(ic *interaction, content string) error {
	return a.respond(ic, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// replyEmbed answers with ephemeral embeds.
func (a *App) replyEmbed(ic *interaction, e ...*discordgo.MessageEmbed) error {
	return a.respond(ic, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: e,
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

// replyFile answers with an ephemeral message carrying one file.
func (a *App) replyFile(ic *interaction, content, name string, data []byte) error {
	return a.respond(ic, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
			Files: []*discordgo.File{{
				Name:        name,
				ContentType: "application/json",
				Reader:      bytes.NewReader(data),
			}},
		},
	})
}

// update replaces the message the clicked button belongs to.
func (a *App) update(ic *interaction, content string, e ...*discordgo.MessageEmbed) error {
	if e == nil {
		e = make([]*discordgo.MessageEmbed, 0)
	}
	return a.respond(ic, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Embeds:     e,
			Components: make([]discordgo.MessageComponent, 0),
		},
	})
}

// replyResult answers with the message of a ticket operation. A failed operation is logged,
// its message already tells the member what went wrong.
func (a *App) replyResult(ic *interaction, res tickets.Result, err error) error {
	if err != nil {
		a.Error("Ticket operation failed",
			slog.String(logging.KeyCommand, ic.label()),
			slog.String(logging.KeyChannel, ic.ChannelID),
			slog.String(logging.KeyError, err.Error()),
		)
	}
	if !res.Success && err == nil {
		ic.rejected = true
	}
	return a.reply(ic, res.Message)
}

// replyComposerError turns an error of the composer into a reply. Errors it does not know
// are returned for the generic failure path.
func (a *App) replyComposerError(ic *interaction, err error, name string) error {
	var (
		ve      *embeds.ValidationError
		missing *permissions.MissingError
	)
	switch {
	case errors.As(err, &ve):
		return a.reply(ic, a.msgs.T("embed_invalid", "reason", ve.Error()))
	case errors.As(err, &missing):
		return a.reply(ic, a.msgs.T("bot_missing_permissions", "reason", missing.Error()))
	case errors.Is(err, embeds.ErrMessageNotFound):
		return a.reply(ic, a.msgs.T("embed_not_found"))
	case errors.Is(err, embeds.ErrNotBotMessage), errors.Is(err, embeds.ErrNoEmbed):
		return a.reply(ic, a.msgs.T("error_with_reason", "reason", err.Error()))
	case errors.Is(err, embeds.ErrTemplateNotFound):
		return a.reply(ic, a.msgs.T("template_not_found", "name", name))
	case errors.Is(err, embeds.ErrTemplateExists):
		return a.reply(ic, a.msgs.T("template_exists", "name", name))
	case errors.Is(err, embeds.ErrTemplateDenied):
		ic.rejected = true
		return a.reply(ic, a.msgs.T("template_delete_denied"))
	case errors.Is(err, embeds.ErrNotProduct):
		return a.reply(ic, a.msgs.T("product_not_found"))
	}
	return err
}

func channelMention(id string) string {
	return "<#" + id + ">"
}

func userMention(id string) string {
	return "<@" + id + ">"
}

func roleMention(id string) string {
	return "<@&" + id + ">"
}

func yesNo(a *App, v bool) string {
	if v {
		return a.msgs.T("answer_yes")
	}
	return a.msgs.T("answer_no")
}
