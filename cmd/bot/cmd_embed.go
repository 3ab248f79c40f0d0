package main

import (
	"github.com/Jacobbrewer1/ticketeer/pkg/embeds"
)

func basicOptions(o options) embeds.BasicOptions {
	return embeds.BasicOptions{
		Title:       o.String("title"),
		Description: o.String("description"),
		Color:       o.String("color"),
		Thumbnail:   o.String("thumbnail"),
		Image:       o.String("image"),
		Footer:      o.String("footer"),
	}
}

func embedCreate(a *App, ic *interaction) error {
	channelID := ic.channel("channel")
	if _, err := a.embeds.CreateBasic(channelID, ic.actor.ID, basicOptions(ic.opts)); err != nil {
		return a.replyComposerError(ic, err, "")
	}
	return a.reply(ic, a.msgs.T("embed_created", "channel", channelMention(channelID)))
}

func embedAdvanced(a *App, ic *interaction) error {
	channelID := ic.channel("channel")
	_, err := a.embeds.CreateAdvanced(channelID, ic.actor.ID, embeds.AdvancedOptions{
		Title:       ic.opts.String("title"),
		Description: ic.opts.String("description"),
		Color:       ic.opts.String("color"),
		Fields:      ic.opts.String("fields"),
		Author:      ic.opts.String("author"),
		AuthorIcon:  ic.opts.String("author_icon"),
		Footer:      ic.opts.String("footer"),
		FooterIcon:  ic.opts.String("footer_icon"),
		Thumbnail:   ic.opts.String("thumbnail"),
		Image:       ic.opts.String("image"),
		Timestamp:   ic.opts.Bool("timestamp"),
	})
	if err != nil {
		return a.replyComposerError(ic, err, "")
	}
	return a.reply(ic, a.msgs.T("embed_created", "channel", channelMention(channelID)))
}

func embedTemplate(a *App, ic *interaction) error {
	channelID := ic.channel("channel")
	name := ic.opts.String("type")
	if _, err := a.embeds.CreateFromTemplate(channelID, ic.actor.ID, name, ic.opts.String("title"), ic.opts.String("content")); err != nil {
		return a.replyComposerError(ic, err, name)
	}
	return a.reply(ic, a.msgs.T("embed_created", "channel", channelMention(channelID)))
}

func embedEdit(a *App, ic *interaction) error {
	_, err := a.embeds.Edit(ic.ChannelID, ic.opts.String("message_id"), embeds.EditOptions{
		Title:       ic.opts.String("title"),
		Description: ic.opts.String("description"),
		Color:       ic.opts.String("color"),
	})
	if err != nil {
		return a.replyComposerError(ic, err, "")
	}
	return a.reply(ic, a.msgs.T("embed_updated"))
}

func embedSave(a *App, ic *interaction) error {
	name := ic.opts.String("name")
	if err := a.embeds.SaveTemplate(name, ic.actor.ID, basicOptions(ic.opts)); err != nil {
		return a.replyComposerError(ic, err, name)
	}
	return a.reply(ic, a.msgs.T("template_saved", "name", name))
}

func embedLoad(a *App, ic *interaction) error {
	channelID := ic.channel("channel")
	name := ic.opts.String("name")
	if _, err := a.embeds.LoadTemplate(channelID, ic.actor.ID, name); err != nil {
		return a.replyComposerError(ic, err, name)
	}
	return a.reply(ic, a.msgs.T("embed_created", "channel", channelMention(channelID)))
}

func embedList(a *App, ic *interaction) error {
	return a.replyEmbed(ic, a.embeds.ListEmbed())
}

func embedDelete(a *App, ic *interaction) error {
	name := ic.opts.String("name")
	if err := a.embeds.DeleteTemplate(name, ic.actor.Member); err != nil {
		return a.replyComposerError(ic, err, name)
	}
	return a.reply(ic, a.msgs.T("template_deleted", "name", name))
}

func embedStats(a *App, ic *interaction) error {
	return a.replyEmbed(ic, a.embeds.StatsEmbed())
}
