// Package tickets manages support ticket channels. Each ticket is a private text
// channel mirrored by a record in the store, and moves between the active, closed
// and archived groupings of a guild.
package tickets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
	"github.com/Jacobbrewer1/ticketeer/pkg/messages"
	"github.com/Jacobbrewer1/ticketeer/pkg/permissions"
	"github.com/Jacobbrewer1/ticketeer/pkg/platform"
	"github.com/Jacobbrewer1/ticketeer/pkg/throttle"
)

const (
	// CreateTicketButtonID is the custom id of the panel button.
	CreateTicketButtonID = "create_ticket"

	// CloseOrderButtonID is the custom id of the button posted in order tickets.
	CloseOrderButtonID = "close_order_ticket"

	// DefaultDeleteDelay is how long a ticket lives after a delete was acknowledged.
	DefaultDeleteDelay = 5 * time.Second

	archiveNoticeColor = 0xFFA500

	// bulkDeleteWindow is the age after which messages can no longer be bulk deleted.
	bulkDeleteWindow = 14 * 24 * time.Hour
)

// Store is the part of the persistence store the manager needs.
type Store interface {
	dataaccess.TicketDal
	SettingString(category, key string) string
}

// Config configures a Manager.
type Config struct {
	ActiveCategory  string
	ClosedCategory  string
	ArchiveCategory string

	// DeleteDelay defaults to DefaultDeleteDelay.
	DeleteDelay time.Duration

	DefaultColor int
	ProductColor int
	SuccessColor int
}

// Requester is the member acting on a ticket.
type Requester struct {
	permissions.Member

	Username      string
	Discriminator string
	AvatarURL     string
}

// Tag returns the display tag of the requester.
func (r Requester) Tag() string {
	if hasDiscriminator(r.Discriminator) {
		return r.Username + "#" + r.Discriminator
	}
	return r.Username
}

// Mention returns the mention markup for the requester.
func (r Requester) Mention() string {
	return "<@" + r.ID + ">"
}

// Result is the outcome of a ticket operation as shown to the requester.
// Denials and failures both have Success false.
type Result struct {
	Success   bool
	Message   string
	ChannelID string
}

// Manager runs the ticket lifecycle against the chat platform and the store.
type Manager struct {
	l       *slog.Logger
	client  platform.Client
	store   Store
	perms   *permissions.Evaluator
	msgs    *messages.Catalog
	limiter *throttle.Keyed
	cfg     Config
	now     func() time.Time

	pending sync.WaitGroup
}

// NewManager creates a new Manager. A nil limiter disables creation throttling.
func NewManager(
	l *slog.Logger,
	client platform.Client,
	store Store,
	perms *permissions.Evaluator,
	msgs *messages.Catalog,
	limiter *throttle.Keyed,
	cfg Config,
) *Manager {
	if cfg.DeleteDelay <= 0 {
		cfg.DeleteDelay = DefaultDeleteDelay
	}
	return &Manager{
		l:       l.With(slog.String(logging.KeyDal, "tickets")),
		client:  client,
		store:   store,
		perms:   perms,
		msgs:    msgs,
		limiter: limiter,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (m *Manager) deny(key string, pairs ...string) Result {
	return Result{Message: m.msgs.T(key, pairs...)}
}

func (m *Manager) fail(key string, err error) Result {
	return Result{Message: m.msgs.T(key, "reason", err.Error())}
}

func (m *Manager) ok(key string, pairs ...string) Result {
	return Result{Success: true, Message: m.msgs.T(key, pairs...)}
}

// Categories looks up the three ticket groupings of a guild. Missing groupings have an empty id.
func (m *Manager) Categories(guildID string) (permissions.Categories, error) {
	channels, err := m.client.GuildChannels(guildID)
	if err != nil {
		return permissions.Categories{}, fmt.Errorf("error listing channels: %w", err)
	}

	cats := permissions.Categories{}
	for _, ch := range channels {
		if ch.Type != discordgo.ChannelTypeGuildCategory {
			continue
		}
		switch ch.Name {
		case m.cfg.ActiveCategory:
			cats.Active = ch.ID
		case m.cfg.ClosedCategory:
			cats.Closed = ch.ID
		case m.cfg.ArchiveCategory:
			cats.Archive = ch.ID
		}
	}
	return cats, nil
}

// PrepareCategories returns the three ticket groupings, creating any that are missing.
func (m *Manager) PrepareCategories(guildID string) (permissions.Categories, error) {
	cats, err := m.Categories(guildID)
	if err != nil {
		return cats, err
	}

	create := func(id *string, name string) error {
		if *id != "" {
			return nil
		}
		ch, err := m.client.CreateChannel(guildID, discordgo.GuildChannelCreateData{
			Name: name,
			Type: discordgo.ChannelTypeGuildCategory,
		})
		if err != nil {
			return fmt.Errorf("error creating category %s: %w", name, err)
		}
		m.l.Info("Ticket category created",
			slog.String(logging.KeyGuild, guildID),
			slog.String("name", name),
		)
		*id = ch.ID
		return nil
	}

	if err := create(&cats.Active, m.cfg.ActiveCategory); err != nil {
		return cats, err
	}
	if err := create(&cats.Closed, m.cfg.ClosedCategory); err != nil {
		return cats, err
	}
	if err := create(&cats.Archive, m.cfg.ArchiveCategory); err != nil {
		return cats, err
	}
	return cats, nil
}

// botCanManage checks the bot may manage ticket channels, in channelID when it is set.
// A nil error with a non empty string is a denial naming the missing permissions.
func (m *Manager) botCanManage(guildID, channelID string) (string, error) {
	guildPerms, err := m.client.BotGuildPermissions(guildID)
	if err != nil {
		return "", fmt.Errorf("error getting bot permissions: %w", err)
	}

	var channelPerms *int64
	if channelID != "" {
		perms, err := m.client.BotChannelPermissions(channelID)
		if err != nil {
			return "", fmt.Errorf("error getting bot channel permissions: %w", err)
		}
		channelPerms = &perms
	}

	err = permissions.CanBotManageTickets(guildPerms, channelPerms)
	if err == nil {
		return "", nil
	}
	var missing *permissions.MissingError
	if errors.As(err, &missing) {
		return strings.Join(missing.Names, ", "), nil
	}
	return "", err
}

// SetupPanel posts the create ticket panel in a channel, first clearing the recent
// messages there when the bot may.
func (m *Manager) SetupPanel(channelID string) (Result, error) {
	ch, err := m.client.Channel(channelID)
	if err != nil {
		return m.fail("panel_failed", err), fmt.Errorf("error getting channel: %w", err)
	}

	missing, err := m.botCanManage(ch.GuildID, ch.ID)
	if err != nil {
		return m.fail("panel_failed", err), err
	} else if missing != "" {
		return m.deny("bot_missing_permissions", "reason", missing), nil
	}

	m.clearRecent(ch.ID)

	_, err = m.client.SendMessage(ch.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       m.msgs.T("panel_title"),
			Description: m.msgs.T("panel_description"),
			Color:       m.cfg.DefaultColor,
			Footer:      &discordgo.MessageEmbedFooter{Text: m.msgs.T("panel_footer")},
		}},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    m.msgs.T("panel_button"),
					Style:    discordgo.PrimaryButton,
					CustomID: CreateTicketButtonID,
				},
			}},
		},
	})
	if err != nil {
		return m.fail("panel_failed", err), fmt.Errorf("error sending panel: %w", err)
	}

	return m.ok("panel_created", "channel", channelMention(ch.ID)), nil
}

// clearRecent bulk deletes the last messages of a channel that are young enough to be bulk deleted.
func (m *Manager) clearRecent(channelID string) {
	perms, err := m.client.BotChannelPermissions(channelID)
	if err != nil || !permissions.Has(perms, permissions.CapManageMessages) {
		return
	}

	msgs, err := m.client.ChannelMessages(channelID, 100)
	if err != nil {
		m.l.Warn("Could not read channel messages", slog.String(logging.KeyChannel, channelID), slog.String(logging.KeyError, err.Error()))
		return
	}

	cutoff := m.now().Add(-bulkDeleteWindow)
	ids := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Timestamp.After(cutoff) {
			ids = append(ids, msg.ID)
		}
	}
	if len(ids) == 0 {
		return
	}

	if err := m.client.BulkDeleteMessages(channelID, ids); err != nil {
		m.l.Warn("Could not clear channel messages", slog.String(logging.KeyChannel, channelID), slog.String(logging.KeyError, err.Error()))
	}
}

// Create opens a ticket of type t for the requester.
func (m *Manager) Create(guildID string, r Requester, t entities.TicketType) (Result, error) {
	l := m.l.With(slog.String(logging.KeyGuild, guildID), slog.String(logging.KeyUser, r.ID))

	t, err := entities.ParseTicketType(string(t))
	if err != nil {
		return m.fail("ticket_create_failed", err), err
	}

	if m.limiter != nil && !m.limiter.Allow(r.ID) {
		return m.deny("ticket_rate_limited"), nil
	}

	cats, err := m.PrepareCategories(guildID)
	if err != nil {
		return m.fail("ticket_create_failed", err), err
	}

	channels, err := m.client.GuildChannels(guildID)
	if err != nil {
		return m.fail("ticket_create_failed", err), fmt.Errorf("error listing channels: %w", err)
	}
	for _, ch := range channels {
		if ch.ParentID == cats.Active && ch.Topic == r.ID &&
			(t == entities.TicketTypeGeneral || strings.Contains(ch.Name, string(t))) {
			return m.deny("ticket_exists", "type", string(t), "channel", channelMention(ch.ID)), nil
		}
	}

	missing, err := m.botCanManage(guildID, "")
	if err != nil {
		return m.fail("ticket_create_failed", err), err
	} else if missing != "" {
		return m.deny("bot_missing_permissions", "reason", missing), nil
	}

	overwrites, err := m.ticketOverwrites(guildID, r.ID, t)
	if err != nil {
		return m.fail("ticket_create_failed", err), err
	}

	name := ChannelName(t, r.Username, r.Discriminator, r.ID)
	ch, err := m.client.CreateChannel(guildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                r.ID,
		ParentID:             cats.Active,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		return m.fail("ticket_create_failed", err), fmt.Errorf("error creating ticket channel: %w", err)
	}

	welcome := &discordgo.MessageSend{
		Content: r.Mention(),
		Embeds:  []*discordgo.MessageEmbed{m.welcomeEmbed(r, ch.ID, t)},
	}
	if t == entities.TicketTypeOrder {
		welcome.Components = []discordgo.MessageComponent{m.closeOrderRow()}
	}
	if _, err := m.client.SendMessage(ch.ID, welcome); err != nil {
		return m.fail("ticket_create_failed", err), fmt.Errorf("error sending welcome message: %w", err)
	}

	err = m.store.SaveTicket(&entities.Ticket{
		ChannelID:   ch.ID,
		GuildID:     guildID,
		CreatorID:   r.ID,
		CreatorTag:  r.Tag(),
		ChannelName: name,
		Type:        t,
	})
	if err != nil {
		l.Warn("Ticket not recorded", slog.String(logging.KeyChannel, ch.ID), slog.String(logging.KeyError, err.Error()))
	}

	l.Info("Ticket created", slog.String(logging.KeyChannel, ch.ID), slog.String("type", string(t)))
	res := m.ok("ticket_created", "type", string(t), "channel", channelMention(ch.ID))
	res.ChannelID = ch.ID
	return res, nil
}

// ticketOverwrites hides the channel from everyone except the creator, the bot and
// the staff roles of the ticket type.
func (m *Manager) ticketOverwrites(guildID, creatorID string, t entities.TicketType) ([]*discordgo.PermissionOverwrite, error) {
	roles, err := m.client.GuildRoles(guildID)
	if err != nil {
		return nil, fmt.Errorf("error listing roles: %w", err)
	}

	member := int64(discordgo.PermissionViewChannel | discordgo.PermissionSendMessages |
		discordgo.PermissionAttachFiles | discordgo.PermissionReadMessageHistory)

	overwrites := []*discordgo.PermissionOverwrite{
		{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		{ID: creatorID, Type: discordgo.PermissionOverwriteTypeMember, Allow: member},
		{
			ID:    m.client.BotUserID(),
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: member | discordgo.PermissionManageChannels | discordgo.PermissionEmbedLinks,
		},
	}

	for _, name := range m.perms.TicketStaffRoles(t) {
		id, ok := platform.RoleIDByName(roles, name)
		if !ok {
			m.l.Debug("Staff role not found", slog.String(logging.KeyGuild, guildID), slog.String("role", name))
			continue
		}
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    id,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: member,
		})
	}
	return overwrites, nil
}

// ticketChannel loads the channel an operation runs in. A nil channel with a nil
// error means it is not a ticket channel.
func (m *Manager) ticketChannel(guildID, channelID string) (*discordgo.Channel, permissions.Categories, error) {
	ch, err := m.client.Channel(channelID)
	if err != nil {
		return nil, permissions.Categories{}, fmt.Errorf("error getting channel: %w", err)
	}
	cats, err := m.Categories(guildID)
	if err != nil {
		return nil, cats, err
	}
	if !permissions.IsTicketChannel(ch.ParentID, cats) {
		return nil, cats, nil
	}
	return ch, cats, nil
}

// Close closes the ticket in channelID and archives it in the same step.
func (m *Manager) Close(guildID, channelID string, actor Requester) (Result, error) {
	ch, cats, err := m.ticketChannel(guildID, channelID)
	if err != nil {
		return m.fail("ticket_close_failed", err), err
	} else if ch == nil {
		return m.deny("not_ticket_channel"), nil
	}

	if !m.perms.CanManage(actor.Member) {
		return m.deny("admin_only"), nil
	}
	if ch.ParentID != cats.Active {
		return m.deny("ticket_already_closed"), nil
	}

	missing, err := m.botCanManage(guildID, ch.ID)
	if err != nil {
		return m.fail("ticket_close_failed", err), err
	} else if missing != "" {
		return m.deny("bot_missing_permissions", "reason", missing), nil
	}

	if err := m.moveToArchive(ch, cats); err != nil {
		return m.fail("ticket_close_failed", err), err
	}

	// The record follows the channel out of the active grouping.
	if _, err := m.store.AutoArchiveTicket(ch.ID, actor.ID); err != nil {
		m.l.Warn("Ticket record not archived",
			slog.String(logging.KeyChannel, ch.ID),
			slog.String(logging.KeyError, err.Error()),
		)
	}

	if creatorID := ch.Topic; creatorID != "" {
		if err := m.revokeSend(ch, creatorID); err != nil {
			m.l.Warn("Creator can still write in the closed ticket",
				slog.String(logging.KeyChannel, ch.ID),
				slog.String(logging.KeyUser, creatorID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	}

	m.notice(ch.ID, "archive_auto_title", "archive_auto_body", archiveNoticeColor, actor)
	m.l.Info("Ticket closed",
		slog.String(logging.KeyGuild, guildID),
		slog.String(logging.KeyChannel, ch.ID),
		slog.String(logging.KeyUser, actor.ID),
	)
	return m.ok("ticket_closed"), nil
}

// Archive moves a closed ticket into the archive grouping.
func (m *Manager) Archive(guildID, channelID string, actor Requester) (Result, error) {
	ch, cats, err := m.ticketChannel(guildID, channelID)
	if err != nil {
		return m.fail("ticket_archive_failed", err), err
	} else if ch == nil {
		return m.deny("not_ticket_channel"), nil
	}

	if !m.perms.CanManage(actor.Member) {
		return m.deny("admin_only"), nil
	}

	ticket, err := m.store.GetTicket(ch.ID)
	if errors.Is(err, dataaccess.ErrNotFound) || (err == nil && ticket.Bucket != entities.BucketClosed) {
		return m.deny("ticket_not_closed"), nil
	} else if err != nil {
		return m.fail("ticket_archive_failed", err), err
	}

	missing, err := m.botCanManage(guildID, ch.ID)
	if err != nil {
		return m.fail("ticket_archive_failed", err), err
	} else if missing != "" {
		return m.deny("bot_missing_permissions", "reason", missing), nil
	}

	if err := m.moveToArchive(ch, cats); err != nil {
		return m.fail("ticket_archive_failed", err), err
	}

	if _, err := m.store.ArchiveTicket(ch.ID, actor.ID); err != nil {
		return m.fail("ticket_archive_failed", err), fmt.Errorf("error archiving ticket record: %w", err)
	}

	m.notice(ch.ID, "archive_manual_title", "archive_manual_body", m.cfg.SuccessColor, actor)
	return m.ok("ticket_archived"), nil
}

func (m *Manager) moveToArchive(ch *discordgo.Channel, cats permissions.Categories) error {
	_, err := m.client.EditChannel(ch.ID, &discordgo.ChannelEdit{
		Name:     ArchivedName(ch.Name),
		ParentID: cats.Archive,
	})
	if err != nil {
		return fmt.Errorf("error moving channel to archive: %w", err)
	}
	return nil
}

// revokeSend stops the creator from posting while leaving the rest of their overwrite as is.
func (m *Manager) revokeSend(ch *discordgo.Channel, creatorID string) error {
	var allow, deny int64
	for _, o := range ch.PermissionOverwrites {
		if o.ID == creatorID {
			allow, deny = o.Allow, o.Deny
			break
		}
	}
	allow &^= discordgo.PermissionSendMessages
	deny |= discordgo.PermissionSendMessages

	if err := m.client.SetChannelPermission(ch.ID, creatorID, discordgo.PermissionOverwriteTypeMember, allow, deny); err != nil {
		return fmt.Errorf("error revoking send permission: %w", err)
	}
	return nil
}

func (m *Manager) notice(channelID, titleKey, bodyKey string, color int, actor Requester) {
	now := m.now()
	_, err := m.client.SendMessage(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       m.msgs.T(titleKey),
			Description: m.msgs.T(bodyKey, "user", actor.Mention(), "time", discordTimestamp(now)),
			Color:       color,
			Footer:      &discordgo.MessageEmbedFooter{Text: m.msgs.T("archive_footer")},
			Timestamp:   now.UTC().Format(time.RFC3339),
		}},
	})
	if err != nil {
		m.l.Warn("Archive notice not sent", slog.String(logging.KeyChannel, channelID), slog.String(logging.KeyError, err.Error()))
	}
}

// Rename renames the ticket in channelID. The name is lowercased and every character
// outside a-z, 0-9 and '-' becomes '-'.
func (m *Manager) Rename(guildID, channelID string, actor Requester, name string) (Result, error) {
	ch, _, err := m.ticketChannel(guildID, channelID)
	if err != nil {
		return m.fail("ticket_rename_failed", err), err
	} else if ch == nil {
		return m.deny("not_ticket_channel"), nil
	}

	if !m.perms.CanRenameTicket(actor.Member, ch.Topic) {
		return m.deny("ticket_rename_denied"), nil
	}

	missing, err := m.botCanManage(guildID, ch.ID)
	if err != nil {
		return m.fail("ticket_rename_failed", err), err
	} else if missing != "" {
		return m.deny("bot_missing_permissions", "reason", missing), nil
	}

	sanitized := SanitizeName(name)
	if strings.Trim(sanitized, "-") == "" {
		return m.deny("ticket_rename_failed", "reason", "empty name"), nil
	}

	if _, err := m.client.EditChannel(ch.ID, &discordgo.ChannelEdit{Name: sanitized}); err != nil {
		return m.fail("ticket_rename_failed", err), fmt.Errorf("error renaming channel: %w", err)
	}
	return m.ok("ticket_renamed", "name", sanitized), nil
}

// Delete schedules the ticket channel for deletion after the configured delay. The
// deletion stops early if ctx is cancelled. A failed deletion is reported to the log channel.
func (m *Manager) Delete(ctx context.Context, guildID, channelID string, actor Requester) (Result, error) {
	ch, _, err := m.ticketChannel(guildID, channelID)
	if err != nil {
		return m.fail("ticket_delete_failed", err), err
	} else if ch == nil {
		return m.deny("not_ticket_channel"), nil
	}

	if !m.perms.CanManage(actor.Member) {
		return m.deny("admin_only"), nil
	}

	missing, err := m.botCanManage(guildID, ch.ID)
	if err != nil {
		return m.fail("ticket_delete_failed", err), err
	} else if missing != "" {
		return m.deny("bot_missing_permissions", "reason", missing), nil
	}

	m.pending.Add(1)
	go func() {
		defer m.pending.Done()

		timer := time.NewTimer(m.cfg.DeleteDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			m.l.Warn("Ticket deletion abandoned", slog.String(logging.KeyChannel, ch.ID))
			return
		case <-timer.C:
		}

		m.deleteChannel(guildID, ch, actor)
	}()

	seconds := strconv.Itoa(int(m.cfg.DeleteDelay.Round(time.Second) / time.Second))
	return m.ok("ticket_delete_scheduled", "seconds", seconds), nil
}

func (m *Manager) deleteChannel(guildID string, ch *discordgo.Channel, actor Requester) {
	l := m.l.With(
		slog.String(logging.KeyGuild, guildID),
		slog.String(logging.KeyChannel, ch.ID),
		slog.String(logging.KeyUser, actor.ID),
	)

	err := m.client.DeleteChannel(ch.ID)
	if err == nil {
		l.Info("Ticket deleted", slog.String("name", ch.Name), slog.String("creator_id", ch.Topic))
		m.closeDeleted(l, ch.ID, actor)
		return
	}
	l.Error("Error deleting ticket", slog.String(logging.KeyError, err.Error()))

	logChannel, err2 := m.logChannel(guildID)
	if err2 != nil {
		l.Error("Could not find a log channel", slog.String(logging.KeyError, err2.Error()))
		return
	} else if logChannel == "" {
		return
	}

	_, err2 = m.client.SendMessage(logChannel, &discordgo.MessageSend{
		Content: m.msgs.T("ticket_delete_failed_log", "name", ch.Name, "reason", err.Error()),
	})
	if err2 != nil {
		l.Error("Could not send error log", slog.String(logging.KeyError, err2.Error()))
	}
}

// closeDeleted moves the record of a deleted channel out of the active bucket. Closed
// and archived records are kept as they are.
func (m *Manager) closeDeleted(l *slog.Logger, channelID string, actor Requester) {
	t, err := m.store.GetTicket(channelID)
	if err != nil || t.Bucket != entities.BucketActive {
		return
	}
	if _, err := m.store.CloseTicket(channelID, actor.ID); err != nil {
		l.Warn("Deleted ticket still recorded as active", slog.String(logging.KeyError, err.Error()))
	}
}

// logChannel is the configured log channel, else a channel named bot-logs or general.
func (m *Manager) logChannel(guildID string) (string, error) {
	if id := m.store.SettingString(entities.SettingsTickets, "log_channel"); id != "" {
		return id, nil
	}

	channels, err := m.client.GuildChannels(guildID)
	if err != nil {
		return "", fmt.Errorf("error listing channels: %w", err)
	}
	fallback := ""
	for _, ch := range channels {
		switch ch.Name {
		case "bot-logs":
			return ch.ID, nil
		case "general":
			if fallback == "" {
				fallback = ch.ID
			}
		}
	}
	return fallback, nil
}

// Wait blocks until every scheduled deletion has finished.
func (m *Manager) Wait() {
	m.pending.Wait()
}

func channelMention(id string) string {
	return "<#" + id + ">"
}

func discordTimestamp(t time.Time) string {
	return fmt.Sprintf("<t:%d:F>", t.Unix())
}
