package permissions

import (
	"fmt"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
)

// Capability is a single permission bit with its display name.
type Capability struct {
	Bit  int64
	Name string
}

var (
	CapViewChannel        = Capability{Bit: discordgo.PermissionViewChannel, Name: "View Channel"}
	CapSendMessages       = Capability{Bit: discordgo.PermissionSendMessages, Name: "Send Messages"}
	CapManageChannels     = Capability{Bit: discordgo.PermissionManageChannels, Name: "Manage Channels"}
	CapManageRoles        = Capability{Bit: discordgo.PermissionManageRoles, Name: "Manage Roles"}
	CapReadMessageHistory = Capability{Bit: discordgo.PermissionReadMessageHistory, Name: "Read Message History"}
	CapManageMessages     = Capability{Bit: discordgo.PermissionManageMessages, Name: "Manage Messages"}
	CapAdministrator      = Capability{Bit: discordgo.PermissionAdministrator, Name: "Administrator"}
)

// BotCapabilities is the fixed set reported by CheckBot.
var BotCapabilities = []Capability{
	CapViewChannel,
	CapSendMessages,
	CapManageChannels,
	CapManageRoles,
	CapReadMessageHistory,
	CapManageMessages,
	CapAdministrator,
}

var (
	ticketServerCapabilities  = []Capability{CapManageChannels, CapManageRoles, CapSendMessages}
	ticketChannelCapabilities = []Capability{CapManageChannels, CapSendMessages, CapViewChannel}
	sendCapabilities          = []Capability{CapSendMessages, CapViewChannel}
)

// Has reports whether perms grants c. Administrator grants everything.
func Has(perms int64, c Capability) bool {
	if perms&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return perms&c.Bit == c.Bit
}

// Report lists which capabilities are present and which are missing.
type Report struct {
	Present []Capability
	Missing []Capability
}

// MissingNames returns the names of the missing capabilities.
func (r Report) MissingNames() []string {
	names := make([]string, 0, len(r.Missing))
	for _, c := range r.Missing {
		names = append(names, c.Name)
	}
	return names
}

func check(perms int64, caps []Capability) Report {
	r := Report{}
	for _, c := range caps {
		if Has(perms, c) {
			r.Present = append(r.Present, c)
		} else {
			r.Missing = append(r.Missing, c)
		}
	}
	return r
}

// BotReport is the result of CheckBot.
type BotReport struct {
	Server  Report
	Channel *Report
}

// CheckBot reports the fixed capability set for the bot's guild permissions and,
// when given, its permissions in a channel.
func CheckBot(guildPerms int64, channelPerms *int64) BotReport {
	r := BotReport{Server: check(guildPerms, BotCapabilities)}
	if channelPerms != nil {
		c := check(*channelPerms, BotCapabilities)
		r.Channel = &c
	}
	return r
}

// MissingError names the capabilities the bot lacks.
type MissingError struct {
	// Scope is "server" or "channel".
	Scope string
	Names []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("bot missing %s permissions: %s", e.Scope, strings.Join(e.Names, ", "))
}

// CanBotManageTickets fails closed when the bot lacks any capability needed to manage
// ticket channels. Channel permissions are only checked when given.
func CanBotManageTickets(guildPerms int64, channelPerms *int64) error {
	if r := check(guildPerms, ticketServerCapabilities); len(r.Missing) > 0 {
		return &MissingError{Scope: "server", Names: r.MissingNames()}
	}
	if channelPerms != nil {
		if r := check(*channelPerms, ticketChannelCapabilities); len(r.Missing) > 0 {
			return &MissingError{Scope: "channel", Names: r.MissingNames()}
		}
	}
	return nil
}

// CanBotSendMessages fails when the bot cannot view or post in a channel.
func CanBotSendMessages(channelPerms int64) error {
	if r := check(channelPerms, sendCapabilities); len(r.Missing) > 0 {
		return &MissingError{Scope: "channel", Names: r.MissingNames()}
	}
	return nil
}

// GuildPermissions computes a member's guild level permission bits from the @everyone
// role (whose id is the guild id) and the member's own roles.
func GuildPermissions(guildID, ownerID, userID string, memberRoles []string, roles []*discordgo.Role) int64 {
	if ownerID != "" && userID == ownerID {
		return discordgo.PermissionAll
	}

	held := make(map[string]struct{}, len(memberRoles))
	for _, id := range memberRoles {
		held[id] = struct{}{}
	}

	var perms int64
	for _, r := range roles {
		if r == nil {
			continue
		}
		if _, ok := held[r.ID]; ok || r.ID == guildID {
			perms |= r.Permissions
		}
	}

	if perms&discordgo.PermissionAdministrator != 0 {
		return discordgo.PermissionAll
	}
	return perms
}
