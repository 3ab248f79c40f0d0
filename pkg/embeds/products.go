package embeds

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
	"github.com/Jacobbrewer1/ticketeer/pkg/platform"
)

const (
	// ProductBuyButtonID is the custom id of the buy button on a product.
	ProductBuyButtonID = "product_buy"

	// ProductCSButtonID is the custom id of the contact support button on a product.
	ProductCSButtonID = "product_cs"

	productListDetailLimit = 10
)

// orderChannelNames are channel names used for ordering when no channel contains both "order" and "ticket".
var orderChannelNames = []string{"order-ticket", "orders", "pemesanan", "beli"}

// ProductOptions are the inputs of a product embed. On edit, empty values keep the current content.
type ProductOptions struct {
	Name         string
	Category     string
	Price        string
	Description  string
	Image        string
	Thumbnail    string
	Color        string
	OrderChannel string
}

func (c *Composer) validateProduct(o ProductOptions) (int, error) {
	switch {
	case strings.TrimSpace(o.Name) == "":
		return 0, &ValidationError{Field: "name", Reason: "is required"}
	case strings.TrimSpace(o.Category) == "":
		return 0, &ValidationError{Field: "category", Reason: "is required"}
	case strings.TrimSpace(o.Price) == "":
		return 0, &ValidationError{Field: "price", Reason: "is required"}
	}
	if err := checkLength("name", o.Name, c.cfg.Limits.Title); err != nil {
		return 0, err
	}
	if err := checkLength("description", o.Description, c.cfg.Limits.Description); err != nil {
		return 0, err
	}
	if err := ValidateURL("image", o.Image); err != nil {
		return 0, err
	}
	if err := ValidateURL("thumbnail", o.Thumbnail); err != nil {
		return 0, err
	}
	return colorOr(o.Color, c.cfg.ProductColor)
}

func (c *Composer) productEmbed(cfg entities.EmbedConfig) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title: "🛒 " + cfg.Product.Name,
		Color: cfg.Color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: c.msgs.T("product_field_category"), Value: cfg.Product.Category, Inline: true},
			{Name: c.msgs.T("product_field_price"), Value: cfg.Product.Price, Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: c.msgs.T("product_footer")},
		Timestamp: c.timestamp(),
	}
	if cfg.Description != "" {
		e.Description = c.msgs.T("product_description_header") + "\n" + cfg.Description
	}
	if cfg.Thumbnail != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: cfg.Thumbnail}
	}
	if cfg.Image != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: cfg.Image}
	}
	return e
}

func (c *Composer) productButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    c.msgs.T("product_buy_button"),
				Style:    discordgo.SuccessButton,
				CustomID: ProductBuyButtonID,
			},
			discordgo.Button{
				Label:    c.msgs.T("product_cs_button"),
				Style:    discordgo.PrimaryButton,
				CustomID: ProductCSButtonID,
			},
		}},
	}
}

// CreateProduct posts a product with buy and contact support buttons.
func (c *Composer) CreateProduct(channelID, authorID string, o ProductOptions) (*discordgo.Message, error) {
	color, err := c.validateProduct(o)
	if err != nil {
		return nil, err
	}
	if err := c.canSend(channelID); err != nil {
		return nil, err
	}

	cfg := entities.EmbedConfig{
		Kind:        entities.EmbedKindProduct,
		Description: o.Description,
		Color:       color,
		Image:       o.Image,
		Thumbnail:   o.Thumbnail,
		Product: &entities.Product{
			Name:         o.Name,
			Category:     o.Category,
			Price:        o.Price,
			OrderChannel: o.OrderChannel,
		},
	}
	cfg.Title = "🛒 " + o.Name

	return c.post(channelID, authorID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{c.productEmbed(cfg)},
		Components: c.productButtons(),
	}, cfg)
}

// product loads the record of a live product.
func (c *Composer) product(messageID string) (*entities.EmbedRecord, error) {
	r, err := c.store.GetEmbed(messageID)
	if errors.Is(err, dataaccess.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", messageID, ErrNotProduct)
	} else if err != nil {
		return nil, fmt.Errorf("error getting product: %w", err)
	}
	if !r.IsProduct() {
		return nil, fmt.Errorf("%s: %w", messageID, ErrNotProduct)
	}
	return r, nil
}

// EditProduct merges o into a product and re-renders it. The buttons are left in place.
func (c *Composer) EditProduct(messageID string, o ProductOptions) (*entities.EmbedRecord, error) {
	r, err := c.product(messageID)
	if err != nil {
		return nil, err
	}
	if _, err := c.fetchOwn(r.ChannelID, messageID); err != nil {
		return nil, err
	}

	cfg := r.Config.Copy()
	merged := ProductOptions{
		Name:         pick(o.Name, cfg.Product.Name),
		Category:     pick(o.Category, cfg.Product.Category),
		Price:        pick(o.Price, cfg.Product.Price),
		Description:  pick(o.Description, cfg.Description),
		Image:        pick(o.Image, cfg.Image),
		Thumbnail:    pick(o.Thumbnail, cfg.Thumbnail),
		OrderChannel: pick(o.OrderChannel, cfg.Product.OrderChannel),
	}
	color, err := c.validateProduct(merged)
	if err != nil {
		return nil, err
	}
	if o.Color == "" {
		color = cfg.Color
	} else if color, err = ValidateHexColor(o.Color); err != nil {
		return nil, err
	}

	cfg.Title = "🛒 " + merged.Name
	cfg.Description = merged.Description
	cfg.Image = merged.Image
	cfg.Thumbnail = merged.Thumbnail
	cfg.Color = color
	cfg.Product = &entities.Product{
		Name:         merged.Name,
		Category:     merged.Category,
		Price:        merged.Price,
		OrderChannel: merged.OrderChannel,
	}

	if _, err := c.client.EditMessageEmbed(r.ChannelID, messageID, c.productEmbed(cfg)); err != nil {
		return nil, fmt.Errorf("error editing product: %w", err)
	}

	updated, err := c.store.UpdateEmbed(messageID, cfg)
	if err != nil {
		return nil, fmt.Errorf("error updating product record: %w", err)
	}
	return updated, nil
}

// ListProducts lists the live products, newest first.
func (c *Composer) ListProducts() []*entities.EmbedRecord {
	products := make([]*entities.EmbedRecord, 0)
	for _, r := range c.store.ListEmbeds() {
		if r.IsProduct() {
			products = append(products, r)
		}
	}
	return products
}

// ProductListEmbed renders products as a short list, or with details for the first ten.
func (c *Composer) ProductListEmbed(products []*entities.EmbedRecord, details bool) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:     c.msgs.T("product_list_title"),
		Color:     c.cfg.ProductColor,
		Timestamp: c.timestamp(),
	}
	if len(products) == 0 {
		e.Description = c.msgs.T("product_list_empty")
		return e
	}

	if !details {
		lines := make([]string, 0, len(products))
		for i, p := range products {
			lines = append(lines, c.msgs.T("product_list_entry",
				"index", strconv.Itoa(i+1),
				"name", p.Config.Product.Name,
				"price", p.Config.Product.Price,
				"id", p.MessageID,
			))
		}
		e.Description = truncate(strings.Join(lines, "\n"), c.cfg.Limits.Description)
		e.Footer = &discordgo.MessageEmbedFooter{Text: c.msgs.T("product_list_footer", "count", strconv.Itoa(len(products)))}
		return e
	}

	shown := products
	if len(shown) > productListDetailLimit {
		shown = shown[:productListDetailLimit]
		e.Footer = &discordgo.MessageEmbedFooter{Text: c.msgs.T("product_list_more",
			"shown", strconv.Itoa(productListDetailLimit),
			"total", strconv.Itoa(len(products)),
		)}
	}

	entries := make([]string, 0, len(shown))
	for i, p := range shown {
		edits := ""
		if p.EditedCount > 0 {
			edits = c.msgs.T("product_list_edits", "count", strconv.Itoa(p.EditedCount))
		}
		entries = append(entries, c.msgs.T("product_list_detail",
			"index", strconv.Itoa(i+1),
			"name", p.Config.Product.Name,
			"id", p.MessageID,
			"category", p.Config.Product.Category,
			"price", p.Config.Product.Price,
			"created", fmt.Sprintf("<t:%d:R>", p.CreatedAt.Unix()),
			"edits", edits,
		))
	}
	e.Description = truncate(strings.Join(entries, "\n\n"), c.cfg.Limits.Description)
	return e
}

// DeleteProduct removes the product message and marks its record deleted. It returns the product name.
func (c *Composer) DeleteProduct(messageID, deletedBy string) (string, error) {
	r, err := c.product(messageID)
	if err != nil {
		return "", err
	}

	msg, err := c.client.Message(r.ChannelID, messageID)
	switch {
	case platform.IsNotFound(err):
		// Already gone, only the record is left to update.
	case err != nil:
		return "", fmt.Errorf("error getting product message: %w", err)
	case msg.Author == nil || msg.Author.ID != c.client.BotUserID():
		return "", ErrNotBotMessage
	default:
		if err := c.client.DeleteMessage(r.ChannelID, messageID); err != nil && !platform.IsNotFound(err) {
			return "", fmt.Errorf("error deleting product message: %w", err)
		}
	}

	if err := c.store.MarkEmbedDeleted(messageID, deletedBy); err != nil {
		return "", fmt.Errorf("error marking product deleted: %w", err)
	}
	return r.Config.Product.Name, nil
}

// ResolveOrderChannel finds where buyers of a product should go: the product's own
// order channel, else a channel whose name mentions both "order" and "ticket", else a
// commonly used order channel name. An empty id means a ticket should be opened instead.
func (c *Composer) ResolveOrderChannel(guildID, messageID string) (string, error) {
	if r, err := c.product(messageID); err == nil && r.Config.Product.OrderChannel != "" {
		ch, err := c.client.Channel(r.Config.Product.OrderChannel)
		if err == nil {
			return ch.ID, nil
		} else if !platform.IsNotFound(err) {
			return "", fmt.Errorf("error getting order channel: %w", err)
		}
	}

	channels, err := c.client.GuildChannels(guildID)
	if err != nil {
		return "", fmt.Errorf("error listing channels: %w", err)
	}

	for _, ch := range channels {
		name := strings.ToLower(ch.Name)
		if strings.Contains(name, "order") && strings.Contains(name, "ticket") {
			return ch.ID, nil
		}
	}
	for _, ch := range channels {
		name := strings.ToLower(ch.Name)
		for _, candidate := range orderChannelNames {
			if name == candidate {
				return ch.ID, nil
			}
		}
	}
	return "", nil
}

func pick(v, current string) string {
	if v != "" {
		return v
	}
	return current
}
