package main

import (
	"github.com/Jacobbrewer1/ticketeer/pkg/embeds"
)

// productDeleteConfirmation must be typed to delete a product.
const productDeleteConfirmation = "DELETE"

func productOptions(o options) embeds.ProductOptions {
	return embeds.ProductOptions{
		Name:         o.String("name"),
		Category:     o.String("category"),
		Price:        o.String("price"),
		Description:  o.String("description"),
		Image:        o.String("image"),
		Thumbnail:    o.String("thumbnail"),
		Color:        o.String("color"),
		OrderChannel: o.String("order_channel"),
	}
}

func productCreate(a *App, ic *interaction) error {
	channelID := ic.channel("channel")
	o := productOptions(ic.opts)
	if _, err := a.embeds.CreateProduct(channelID, ic.actor.ID, o); err != nil {
		return a.replyComposerError(ic, err, o.Name)
	}
	return a.reply(ic, a.msgs.T("product_created", "name", o.Name, "channel", channelMention(channelID)))
}

func productEdit(a *App, ic *interaction) error {
	o := productOptions(ic.opts)
	if o == (embeds.ProductOptions{}) {
		return a.reply(ic, a.msgs.T("product_edit_nothing"))
	}

	if _, err := a.embeds.EditProduct(ic.opts.String("message_id"), o); err != nil {
		return a.replyComposerError(ic, err, o.Name)
	}
	return a.reply(ic, a.msgs.T("product_updated"))
}

func productList(a *App, ic *interaction) error {
	return a.replyEmbed(ic, a.embeds.ProductListEmbed(a.embeds.ListProducts(), ic.opts.Bool("detail")))
}

func productDelete(a *App, ic *interaction) error {
	if ic.opts.String("confirm") != productDeleteConfirmation {
		return a.reply(ic, a.msgs.T("product_delete_confirm"))
	}

	name, err := a.embeds.DeleteProduct(ic.opts.String("message_id"), ic.actor.ID)
	if err != nil {
		return a.replyComposerError(ic, err, "")
	}
	return a.reply(ic, a.msgs.T("product_deleted", "name", name))
}
