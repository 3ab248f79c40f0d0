package platform

import (
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/permissions"
)

// Session adapts a discordgo session to Client.
type Session struct {
	s *discordgo.Session
}

// NewSession wraps s.
func NewSession(s *discordgo.Session) *Session {
	return &Session{s: s}
}

var _ Client = (*Session)(nil)

func (c *Session) BotUserID() string {
	if c.s.State != nil && c.s.State.User != nil {
		return c.s.State.User.ID
	}
	return ""
}

func (c *Session) Guild(guildID string) (*discordgo.Guild, error) {
	if c.s.State != nil {
		if g, err := c.s.State.Guild(guildID); err == nil {
			return g, nil
		}
	}
	return c.s.Guild(guildID)
}

func (c *Session) Channel(channelID string) (*discordgo.Channel, error) {
	return c.s.Channel(channelID)
}

func (c *Session) GuildChannels(guildID string) ([]*discordgo.Channel, error) {
	return c.s.GuildChannels(guildID)
}

func (c *Session) GuildRoles(guildID string) ([]*discordgo.Role, error) {
	return c.s.GuildRoles(guildID)
}

func (c *Session) CreateChannel(guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error) {
	return c.s.GuildChannelCreateComplex(guildID, data)
}

func (c *Session) EditChannel(channelID string, data *discordgo.ChannelEdit) (*discordgo.Channel, error) {
	return c.s.ChannelEditComplex(channelID, data)
}

func (c *Session) SetChannelPermission(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64) error {
	return c.s.ChannelPermissionSet(channelID, targetID, targetType, allow, deny)
}

func (c *Session) DeleteChannel(channelID string) error {
	_, err := c.s.ChannelDelete(channelID)
	return err
}

func (c *Session) SendMessage(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	return c.s.ChannelMessageSendComplex(channelID, data)
}

func (c *Session) Message(channelID, messageID string) (*discordgo.Message, error) {
	return c.s.ChannelMessage(channelID, messageID)
}

func (c *Session) EditMessageEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return c.s.ChannelMessageEditComplex(discordgo.NewMessageEdit(channelID, messageID).SetEmbed(embed))
}

func (c *Session) DeleteMessage(channelID, messageID string) error {
	return c.s.ChannelMessageDelete(channelID, messageID)
}

func (c *Session) ChannelMessages(channelID string, limit int) ([]*discordgo.Message, error) {
	return c.s.ChannelMessages(channelID, limit, "", "", "")
}

func (c *Session) BulkDeleteMessages(channelID string, messageIDs []string) error {
	return c.s.ChannelMessagesBulkDelete(channelID, messageIDs)
}

func (c *Session) AddMemberRole(guildID, userID, roleID string) error {
	return c.s.GuildMemberRoleAdd(guildID, userID, roleID)
}

func (c *Session) RemoveMemberRole(guildID, userID, roleID string) error {
	return c.s.GuildMemberRoleRemove(guildID, userID, roleID)
}

func (c *Session) BotGuildPermissions(guildID string) (int64, error) {
	botID := c.BotUserID()

	g, err := c.Guild(guildID)
	if err != nil {
		return 0, fmt.Errorf("error getting guild: %w", err)
	}

	m, err := c.s.GuildMember(guildID, botID)
	if err != nil {
		return 0, fmt.Errorf("error getting bot member: %w", err)
	}

	roles, err := c.GuildRoles(guildID)
	if err != nil {
		return 0, fmt.Errorf("error getting guild roles: %w", err)
	}

	return permissions.GuildPermissions(guildID, g.OwnerID, botID, m.Roles, roles), nil
}

func (c *Session) BotChannelPermissions(channelID string) (int64, error) {
	perms, err := c.s.UserChannelPermissions(c.BotUserID(), channelID)
	if err != nil {
		return 0, fmt.Errorf("error getting channel permissions: %w", err)
	}
	return perms, nil
}
