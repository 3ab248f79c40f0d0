// Package embeds builds the rich messages the bot posts: basic, advanced, templated
// and product embeds. Every message it posts is recorded in the store.
package embeds

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
	"github.com/Jacobbrewer1/ticketeer/pkg/messages"
	"github.com/Jacobbrewer1/ticketeer/pkg/permissions"
	"github.com/Jacobbrewer1/ticketeer/pkg/platform"
)

var (
	// ErrMessageNotFound is returned when the message to edit does not exist.
	ErrMessageNotFound = errors.New("message not found")

	// ErrNotBotMessage is returned when the message was not posted by the bot.
	ErrNotBotMessage = errors.New("only messages posted by this bot can be edited")

	// ErrNoEmbed is returned when the message has no embed.
	ErrNoEmbed = errors.New("message does not contain an embed")

	// ErrTemplateNotFound is returned for an unknown custom template.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrTemplateExists is returned when saving a template under a taken name.
	ErrTemplateExists = errors.New("template already exists")

	// ErrTemplateDenied is returned when someone other than the creator or a manager deletes a template.
	ErrTemplateDenied = errors.New("only the creator or an admin can delete this template")

	// ErrNotProduct is returned when a message id does not name a live product.
	ErrNotProduct = errors.New("product not found")
)

// Store is the part of the persistence store the composer needs.
type Store interface {
	dataaccess.EmbedDal
	dataaccess.TemplateDal
	SettingString(category, key string) string
}

// Config configures a Composer.
type Config struct {
	Limits Limits

	DefaultColor int
	ProductColor int
	SuccessColor int
	WarningColor int
	ErrorColor   int
}

// Composer builds, posts and records embeds.
type Composer struct {
	l      *slog.Logger
	client platform.Client
	store  Store
	perms  *permissions.Evaluator
	msgs   *messages.Catalog
	cfg    Config
	now    func() time.Time
}

// NewComposer creates a new Composer.
func NewComposer(
	l *slog.Logger,
	client platform.Client,
	store Store,
	perms *permissions.Evaluator,
	msgs *messages.Catalog,
	cfg Config,
) *Composer {
	if cfg.Limits == (Limits{}) {
		cfg.Limits = DefaultLimits
	}
	return &Composer{
		l:      l.With(slog.String(logging.KeyDal, "embeds")),
		client: client,
		store:  store,
		perms:  perms,
		msgs:   msgs,
		cfg:    cfg,
		now:    time.Now,
	}
}

// BasicOptions are the inputs of a basic embed and of a custom template.
type BasicOptions struct {
	Title       string
	Description string
	Color       string
	Thumbnail   string
	Image       string
	Footer      string
}

// AdvancedOptions are the inputs of an advanced embed. Fields uses the
// "name|value|inline;..." format.
type AdvancedOptions struct {
	Title       string
	Description string
	Color       string
	Fields      string
	Author      string
	AuthorIcon  string
	Footer      string
	FooterIcon  string
	Thumbnail   string
	Image       string
	Timestamp   bool
}

// EditOptions are the parts of an embed an edit may replace. Empty values keep the current content.
type EditOptions struct {
	Title       string
	Description string
	Color       string
}

func (c *Composer) validateBasic(o BasicOptions, requireDescription bool) (int, error) {
	if o.Title == "" {
		return 0, &ValidationError{Field: "title", Reason: "is required"}
	}
	if requireDescription && o.Description == "" {
		return 0, &ValidationError{Field: "description", Reason: "is required"}
	}
	if err := checkLength("title", o.Title, c.cfg.Limits.Title); err != nil {
		return 0, err
	}
	if err := checkLength("description", o.Description, c.cfg.Limits.Description); err != nil {
		return 0, err
	}
	if err := ValidateURL("thumbnail", o.Thumbnail); err != nil {
		return 0, err
	}
	if err := ValidateURL("image", o.Image); err != nil {
		return 0, err
	}
	return colorOr(o.Color, c.cfg.DefaultColor)
}

// canSend fails with a *permissions.MissingError when the bot cannot post in channelID.
func (c *Composer) canSend(channelID string) error {
	perms, err := c.client.BotChannelPermissions(channelID)
	if err != nil {
		return fmt.Errorf("error getting bot channel permissions: %w", err)
	}
	return permissions.CanBotSendMessages(perms)
}

// post sends the embed and records it. A failed record is logged, the message stays posted.
func (c *Composer) post(channelID, authorID string, data *discordgo.MessageSend, cfg entities.EmbedConfig) (*discordgo.Message, error) {
	msg, err := c.client.SendMessage(channelID, data)
	if err != nil {
		return nil, fmt.Errorf("error sending embed: %w", err)
	}

	if _, err := c.store.SaveEmbed(msg.ID, cfg, authorID, channelID); err != nil {
		c.l.Warn("Embed not recorded",
			slog.String(logging.KeyChannel, channelID),
			slog.String("message_id", msg.ID),
			slog.String(logging.KeyError, err.Error()),
		)
	}
	return msg, nil
}

func (c *Composer) timestamp() string {
	return c.now().UTC().Format(time.RFC3339)
}

func basicEmbed(cfg entities.EmbedConfig) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       cfg.Title,
		Description: cfg.Description,
		Color:       cfg.Color,
	}
	if cfg.Thumbnail != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: cfg.Thumbnail}
	}
	if cfg.Image != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: cfg.Image}
	}
	if cfg.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: cfg.Footer, IconURL: cfg.FooterIcon}
	}
	return e
}

// CreateBasic posts a title, description, media and footer embed.
func (c *Composer) CreateBasic(channelID, authorID string, o BasicOptions) (*discordgo.Message, error) {
	color, err := c.validateBasic(o, true)
	if err != nil {
		return nil, err
	}
	if err := c.canSend(channelID); err != nil {
		return nil, err
	}

	cfg := entities.EmbedConfig{
		Kind:        entities.EmbedKindBasic,
		Title:       o.Title,
		Description: o.Description,
		Color:       color,
		Thumbnail:   o.Thumbnail,
		Image:       o.Image,
		Footer:      o.Footer,
	}
	return c.post(channelID, authorID, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{basicEmbed(cfg)}}, cfg)
}

// CreateAdvanced posts an embed with fields, an author block and an optional timestamp.
func (c *Composer) CreateAdvanced(channelID, authorID string, o AdvancedOptions) (*discordgo.Message, error) {
	color, err := c.validateBasic(BasicOptions{
		Title:       o.Title,
		Description: o.Description,
		Color:       o.Color,
		Thumbnail:   o.Thumbnail,
		Image:       o.Image,
	}, false)
	if err != nil {
		return nil, err
	}
	if err := ValidateURL("author icon", o.AuthorIcon); err != nil {
		return nil, err
	}
	if err := ValidateURL("footer icon", o.FooterIcon); err != nil {
		return nil, err
	}
	fields, err := ParseFields(o.Fields, c.cfg.Limits)
	if err != nil {
		return nil, err
	}
	if err := c.canSend(channelID); err != nil {
		return nil, err
	}

	cfg := entities.EmbedConfig{
		Kind:        entities.EmbedKindAdvanced,
		Title:       o.Title,
		Description: o.Description,
		Color:       color,
		Thumbnail:   o.Thumbnail,
		Image:       o.Image,
		Footer:      o.Footer,
		FooterIcon:  o.FooterIcon,
		Author:      o.Author,
		AuthorIcon:  o.AuthorIcon,
		Fields:      fields,
		Timestamp:   o.Timestamp,
	}

	e := basicEmbed(cfg)
	for _, f := range fields {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	if o.Author != "" {
		e.Author = &discordgo.MessageEmbedAuthor{Name: o.Author, IconURL: o.AuthorIcon}
	}
	if o.Timestamp {
		e.Timestamp = c.timestamp()
	}

	return c.post(channelID, authorID, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{e}}, cfg)
}

// fetchOwn loads a message the bot posted that carries an embed.
func (c *Composer) fetchOwn(channelID, messageID string) (*discordgo.Message, error) {
	msg, err := c.client.Message(channelID, messageID)
	if platform.IsNotFound(err) {
		return nil, fmt.Errorf("%s: %w", messageID, ErrMessageNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("error getting message: %w", err)
	}

	if msg.Author == nil || msg.Author.ID != c.client.BotUserID() {
		return nil, ErrNotBotMessage
	}
	if len(msg.Embeds) == 0 {
		return nil, ErrNoEmbed
	}
	return msg, nil
}

// Edit replaces the title, description or color of an embed the bot posted and counts the edit.
func (c *Composer) Edit(channelID, messageID string, o EditOptions) (*discordgo.Message, error) {
	msg, err := c.fetchOwn(channelID, messageID)
	if err != nil {
		return nil, err
	}

	if err := checkLength("title", o.Title, c.cfg.Limits.Title); err != nil {
		return nil, err
	}
	if err := checkLength("description", o.Description, c.cfg.Limits.Description); err != nil {
		return nil, err
	}

	edited := *msg.Embeds[0]
	if o.Title != "" {
		edited.Title = o.Title
	}
	if o.Description != "" {
		edited.Description = o.Description
	}
	if o.Color != "" {
		color, err := ValidateHexColor(o.Color)
		if err != nil {
			return nil, err
		}
		edited.Color = color
	}

	updated, err := c.client.EditMessageEmbed(channelID, messageID, &edited)
	if err != nil {
		return nil, fmt.Errorf("error editing embed: %w", err)
	}

	record, err := c.store.GetEmbed(messageID)
	if errors.Is(err, dataaccess.ErrNotFound) {
		return updated, nil
	} else if err != nil {
		return nil, fmt.Errorf("error getting embed record: %w", err)
	}

	cfg := record.Config.Copy()
	cfg.Title = edited.Title
	cfg.Description = edited.Description
	cfg.Color = edited.Color
	if _, err := c.store.UpdateEmbed(messageID, cfg); err != nil {
		return nil, fmt.Errorf("error updating embed record: %w", err)
	}
	return updated, nil
}
