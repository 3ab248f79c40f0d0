// Package platform narrows the Discord session down to the calls the bot makes.
package platform

import (
	"errors"
	"net/http"

	"github.com/Jacobbrewer1/discordgo"
)

// Client is the subset of the chat platform the components depend on.
type Client interface {
	// BotUserID returns the id of the bot user.
	BotUserID() string

	Guild(guildID string) (*discordgo.Guild, error)
	Channel(channelID string) (*discordgo.Channel, error)
	GuildChannels(guildID string) ([]*discordgo.Channel, error)
	GuildRoles(guildID string) ([]*discordgo.Role, error)

	CreateChannel(guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error)
	EditChannel(channelID string, data *discordgo.ChannelEdit) (*discordgo.Channel, error)
	SetChannelPermission(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64) error
	DeleteChannel(channelID string) error

	SendMessage(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)
	Message(channelID, messageID string) (*discordgo.Message, error)
	EditMessageEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
	DeleteMessage(channelID, messageID string) error
	ChannelMessages(channelID string, limit int) ([]*discordgo.Message, error)
	BulkDeleteMessages(channelID string, messageIDs []string) error

	AddMemberRole(guildID, userID, roleID string) error
	RemoveMemberRole(guildID, userID, roleID string) error

	// BotGuildPermissions returns the bot's guild level permission bits.
	BotGuildPermissions(guildID string) (int64, error)

	// BotChannelPermissions returns the bot's permission bits in a channel.
	BotChannelPermissions(channelID string) (int64, error)
}

// IsNotFound reports whether err is a REST error for a missing message, channel or role.
func IsNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeUnknownRole:
			return true
		}
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}

// RoleNames maps role ids to role names, skipping ids that are not in roles.
func RoleNames(roleIDs []string, roles []*discordgo.Role) []string {
	byID := make(map[string]string, len(roles))
	for _, r := range roles {
		if r != nil {
			byID[r.ID] = r.Name
		}
	}

	names := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// RoleIDByName returns the id of the first role called name.
func RoleIDByName(roles []*discordgo.Role, name string) (string, bool) {
	for _, r := range roles {
		if r != nil && r.Name == name {
			return r.ID, true
		}
	}
	return "", false
}
