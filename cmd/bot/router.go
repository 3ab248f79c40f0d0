package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/embeds"
	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
	"github.com/Jacobbrewer1/ticketeer/pkg/messages"
	"github.com/Jacobbrewer1/ticketeer/pkg/permissions"
	"github.com/Jacobbrewer1/ticketeer/pkg/platform"
	"github.com/Jacobbrewer1/ticketeer/pkg/tickets"
)

const (
	// attachmentTimeout bounds the download of a restore attachment.
	attachmentTimeout = 15 * time.Second

	// maxAttachmentSize is the largest backup file that is read.
	maxAttachmentSize = 8 << 20
)

var errUnknownSubcommand = errors.New("unknown subcommand")

// commandProcessor handles one slash subcommand or button.
type commandProcessor func(a *App, ic *interaction) error

// commandController picks the processor for a subcommand.
type commandController func(sub string) (commandProcessor, error)

// responder answers interactions on the platform.
type responder interface {
	Respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error

	// EditResponse replaces the original response with content and drops its embeds and components.
	EditResponse(i *discordgo.Interaction, content string) error
}

type sessionResponder struct {
	s *discordgo.Session
}

func (r *sessionResponder) Respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return r.s.InteractionRespond(i, resp)
}

func (r *sessionResponder) EditResponse(i *discordgo.Interaction, content string) error {
	components := make([]discordgo.MessageComponent, 0)
	attached := make([]*discordgo.MessageEmbed, 0)
	_, err := r.s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &components,
		Embeds:     &attached,
	})
	return err
}

// attachmentFetcher downloads the file behind an attachment URL.
type attachmentFetcher func(ctx context.Context, url string) ([]byte, error)

func httpFetcher(c *http.Client) attachmentFetcher {
	return func(ctx context.Context, url string) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("error creating request: %w", err)
		}

		resp, err := c.Do(req)
		if err != nil {
			return nil, fmt.Errorf("error downloading attachment: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("error downloading attachment: unexpected status %s", resp.Status)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxAttachmentSize))
	}
}

// options are the values of a command or subcommand keyed by option name.
type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func newOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) options {
	o := make(options, len(opts))
	for _, opt := range opts {
		if opt != nil {
			o[opt.Name] = opt
		}
	}
	return o
}

// String returns a string, channel, user, role or attachment option. Missing options are empty.
func (o options) String(name string) string {
	opt, ok := o[name]
	if !ok {
		return ""
	}
	s, _ := opt.Value.(string)
	return strings.TrimSpace(s)
}

func (o options) Bool(name string) bool {
	opt, ok := o[name]
	if !ok {
		return false
	}
	b, _ := opt.Value.(bool)
	return b
}

// interaction is one routed interaction and the member that triggered it.
type interaction struct {
	*discordgo.Interaction

	// name is the command name or the button id.
	name string
	sub  string
	opts options

	// arg is the part of a button custom id after the colon.
	arg string

	resolved *discordgo.ApplicationCommandInteractionDataResolved

	actor tickets.Requester

	// responded is set once the interaction was answered.
	responded bool

	// rejected is set when the member was denied.
	rejected bool
}

func (ic *interaction) label() string {
	if ic.sub != "" {
		return ic.name + " " + ic.sub
	}
	return ic.name
}

// channel returns the channel option called name, or the channel the interaction came from.
func (ic *interaction) channel(name string) string {
	if id := ic.opts.String(name); id != "" {
		return id
	}
	return ic.ChannelID
}

// attachmentURL returns the URL of the attachment option called name.
func (ic *interaction) attachmentURL(name string) string {
	id := ic.opts.String(name)
	if id == "" || ic.resolved == nil {
		return ""
	}
	if att, ok := ic.resolved.Attachments[id]; ok && att != nil {
		return att.URL
	}
	return ""
}

func subcommands(table map[string]commandProcessor) commandController {
	return func(sub string) (commandProcessor, error) {
		p, ok := table[sub]
		if !ok {
			return nil, fmt.Errorf("%w: %q", errUnknownSubcommand, sub)
		}
		return p, nil
	}
}

func single(p commandProcessor) commandController {
	return func(string) (commandProcessor, error) {
		return p, nil
	}
}

// capability is a member check of the permission evaluator.
type capability func(*permissions.Evaluator, permissions.Member) bool

var (
	canManage     capability = (*permissions.Evaluator).CanManage
	canEditEmbeds capability = (*permissions.Evaluator).CanEditEmbeds
	canManageData capability = (*permissions.Evaluator).CanManageData
)

// guarded only runs p for members that hold c.
func guarded(c capability, p commandProcessor) commandProcessor {
	return func(a *App, ic *interaction) error {
		if !c(a.perms, ic.actor.Member) {
			ic.rejected = true
			return a.reply(ic, a.msgs.T("no_permission"))
		}
		return p(a, ic)
	}
}

func guardAll(c capability, table map[string]commandProcessor) map[string]commandProcessor {
	for name, p := range table {
		table[name] = guarded(c, p)
	}
	return table
}

// routes builds the slash command and button tables.
func routes() (map[string]commandController, map[string]commandProcessor) {
	commands := map[string]commandController{
		"ticket": subcommands(map[string]commandProcessor{
			"open":        ticketOpen,
			"close":       ticketClose,
			"rename":      ticketRename,
			"archive":     ticketArchive,
			"delete":      ticketDelete,
			"setup":       guarded(canManage, ticketSetup),
			"permissions": guarded(canManage, ticketPermissions),
			"botinfo":     guarded(canManage, ticketBotInfo),
		}),
		"role": subcommands(guardAll(canManage, map[string]commandProcessor{
			"assign": roleAssign,
			"remove": roleRemove,
		})),
		"embed": subcommands(guardAll(canEditEmbeds, map[string]commandProcessor{
			"create":   embedCreate,
			"advanced": embedAdvanced,
			"template": embedTemplate,
			"edit":     embedEdit,
			"save":     embedSave,
			"load":     embedLoad,
			"list":     embedList,
			"delete":   embedDelete,
			"stats":    embedStats,
		})),
		"data": subcommands(guardAll(canManageData, map[string]commandProcessor{
			"backup":   dataBackup,
			"restore":  dataRestore,
			"clear":    dataClear,
			"export":   dataExport,
			"info":     dataInfo,
			"settings": dataSettings,
		})),
		"product": subcommands(guardAll(canEditEmbeds, map[string]commandProcessor{
			"create": productCreate,
			"edit":   productEdit,
			"list":   productList,
			"delete": productDelete,
		})),
		"status":      single(statusCommand),
		"help":        single(helpCommand),
		"closeticket": single(guarded(canManage, closeTicketCommand)),
		"viewarchive": subcommands(guardAll(canManage, map[string]commandProcessor{
			"all":   archiveAll,
			"user":  archiveUser,
			"stats": archiveStats,
		})),
	}

	buttons := map[string]commandProcessor{
		tickets.CreateTicketButtonID: createTicketButton,
		tickets.CloseOrderButtonID:   closeOrderButton,
		confirmCloseButtonID:         confirmCloseButton,
		cancelCloseButtonID:          cancelCloseButton,
		embeds.ProductBuyButtonID:    productBuyButton,
		embeds.ProductCSButtonID:     productCSButton,
	}
	return commands, buttons
}

// handleInteraction routes a slash command or button click to its processor.
func (a *App) handleInteraction(i *discordgo.Interaction) {
	ic := &interaction{Interaction: i}

	var p commandProcessor
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		ic.name = data.Name
		ic.resolved = data.Resolved

		opts := data.Options
		if len(opts) > 0 && opts[0] != nil && opts[0].Type == discordgo.ApplicationCommandOptionSubCommand {
			ic.sub = opts[0].Name
			opts = opts[0].Options
		}
		ic.opts = newOptions(opts)

		controller, ok := a.commands[ic.name]
		if !ok {
			a.unrouted(ic, fmt.Errorf("no controller found for command %s", ic.name))
			return
		}
		var err error
		if p, err = controller(ic.sub); err != nil {
			a.unrouted(ic, err)
			return
		}
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		ic.name, ic.arg, _ = strings.Cut(data.CustomID, ":")

		var ok bool
		if p, ok = a.buttons[ic.name]; !ok {
			a.unrouted(ic, fmt.Errorf("no processor found for button %s", data.CustomID))
			return
		}
	default:
		return
	}

	if i.GuildID == "" || i.Member == nil || i.Member.User == nil {
		if err := a.reply(ic, a.msgs.T("guild_only")); err != nil {
			a.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
		}
		return
	}

	actor, err := a.requester(i)
	if err != nil {
		a.Error("Error resolving member roles",
			slog.String(logging.KeyGuild, i.GuildID),
			slog.String(logging.KeyError, err.Error()),
		)
		if err := a.reply(ic, a.msgs.T(messages.ErrUserErrorProcessing)); err != nil {
			a.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
		}
		return
	}
	ic.actor = actor

	a.run(ic.label(), ic, p)
}

func (a *App) unrouted(ic *interaction, err error) {
	a.Warn("Unroutable interaction", slog.String(logging.KeyCommand, ic.label()), slog.String(logging.KeyError, err.Error()))
	if err := a.reply(ic, a.msgs.T("unknown_interaction")); err != nil {
		a.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
	}
}

// requester resolves the member's role names from the live guild roles.
func (a *App) requester(i *discordgo.Interaction) (tickets.Requester, error) {
	roles, err := a.client.GuildRoles(i.GuildID)
	if err != nil {
		return tickets.Requester{}, fmt.Errorf("error listing roles: %w", err)
	}

	u := i.Member.User
	return tickets.Requester{
		Member: permissions.Member{
			ID:    u.ID,
			Roles: platform.RoleNames(i.Member.Roles, roles),
		},
		Username:      u.Username,
		Discriminator: u.Discriminator,
		AvatarURL:     u.AvatarURL(""),
	}, nil
}
