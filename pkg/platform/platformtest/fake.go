// Package platformtest provides an in-memory platform.Client for tests.
package platformtest

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/platform"
)

// BotID is the user id of the fake bot.
const BotID = "bot"

// Fake is a single guild held in memory.
type Fake struct {
	mu sync.Mutex

	GuildID string
	OwnerID string

	channels    map[string]*discordgo.Channel
	roles       []*discordgo.Role
	messages    map[string][]*discordgo.Message
	memberRoles map[string][]string
	deleted     []string

	guildPerms          int64
	channelPerms        map[string]int64
	defaultChannelPerms int64

	failures map[string]error
	nextID   int
}

var _ platform.Client = (*Fake)(nil)

// New creates a guild where the bot holds every permission.
func New(guildID string) *Fake {
	return &Fake{
		GuildID:             guildID,
		OwnerID:             "guild-owner",
		channels:            make(map[string]*discordgo.Channel),
		messages:            make(map[string][]*discordgo.Message),
		memberRoles:         make(map[string][]string),
		guildPerms:          discordgo.PermissionAll,
		channelPerms:        make(map[string]int64),
		defaultChannelPerms: discordgo.PermissionAll,
		failures:            make(map[string]error),
		nextID:              100,
	}
}

func (f *Fake) id() string {
	f.nextID++
	return strconv.Itoa(f.nextID)
}

// Fail makes every later call of method return err. A nil err clears it.
func (f *Fake) Fail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failures, method)
		return
	}
	f.failures[method] = err
}

// SetGuildPermissions sets the bot's guild permission bits.
func (f *Fake) SetGuildPermissions(perms int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.guildPerms = perms
}

// SetChannelPermissions sets the bot's permission bits in one channel.
func (f *Fake) SetChannelPermissions(channelID string, perms int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channelPerms[channelID] = perms
}

// AddRole adds a guild role and returns its id.
func (f *Fake) AddRole(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id()
	f.roles = append(f.roles, &discordgo.Role{ID: id, Name: name})
	return id
}

// AddChannel adds a channel and returns its id.
func (f *Fake) AddChannel(name string, typ discordgo.ChannelType, parentID, topic string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id()
	f.channels[id] = &discordgo.Channel{ID: id, GuildID: f.GuildID, Name: name, Type: typ, ParentID: parentID, Topic: topic}
	return id
}

// AddMessage posts a message authored by authorID and returns it.
func (f *Fake) AddMessage(channelID, authorID string, embeds ...*discordgo.MessageEmbed) *discordgo.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := &discordgo.Message{ID: f.id(), ChannelID: channelID, Author: &discordgo.User{ID: authorID}, Embeds: embeds}
	f.messages[channelID] = append(f.messages[channelID], m)
	return m
}

// ChannelByName returns the first channel called name.
func (f *Fake) ChannelByName(name string) (*discordgo.Channel, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.sortedChannels() {
		if ch.Name == name {
			c := *ch
			return &c, true
		}
	}
	return nil, false
}

// MessagesIn returns the messages posted in a channel, oldest first.
func (f *Fake) MessagesIn(channelID string) []*discordgo.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*discordgo.Message(nil), f.messages[channelID]...)
}

// Deleted returns the ids of the deleted channels.
func (f *Fake) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

// MemberRoles returns the role ids a user was given.
func (f *Fake) MemberRoles(userID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.memberRoles[userID]...)
}

func (f *Fake) sortedChannels() []*discordgo.Channel {
	list := make([]*discordgo.Channel, 0, len(f.channels))
	for _, ch := range f.channels {
		list = append(list, ch)
	}
	sort.Slice(list, func(i, j int) bool {
		a, _ := strconv.Atoi(list[i].ID)
		b, _ := strconv.Atoi(list[j].ID)
		return a < b
	})
	return list
}

func (f *Fake) failure(method string) error {
	return f.failures[method]
}

func notFound(code int) error {
	return &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: code, Message: "not found"}}
}

func (f *Fake) BotUserID() string {
	return BotID
}

func (f *Fake) Guild(guildID string) (*discordgo.Guild, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("Guild"); err != nil {
		return nil, err
	}
	return &discordgo.Guild{ID: f.GuildID, Name: "Test Guild", OwnerID: f.OwnerID, MemberCount: 3, Roles: f.roles}, nil
}

func (f *Fake) Channel(channelID string) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("Channel"); err != nil {
		return nil, err
	}
	ch, ok := f.channels[channelID]
	if !ok {
		return nil, notFound(discordgo.ErrCodeUnknownChannel)
	}
	c := *ch
	c.PermissionOverwrites = append([]*discordgo.PermissionOverwrite(nil), ch.PermissionOverwrites...)
	return &c, nil
}

func (f *Fake) GuildChannels(string) ([]*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("GuildChannels"); err != nil {
		return nil, err
	}
	list := make([]*discordgo.Channel, 0, len(f.channels))
	for _, ch := range f.sortedChannels() {
		c := *ch
		list = append(list, &c)
	}
	return list, nil
}

func (f *Fake) GuildRoles(string) ([]*discordgo.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("GuildRoles"); err != nil {
		return nil, err
	}
	return append([]*discordgo.Role(nil), f.roles...), nil
}

func (f *Fake) CreateChannel(guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("CreateChannel"); err != nil {
		return nil, err
	}
	id := f.id()
	ch := &discordgo.Channel{
		ID:                   id,
		GuildID:              guildID,
		Name:                 data.Name,
		Type:                 data.Type,
		Topic:                data.Topic,
		ParentID:             data.ParentID,
		PermissionOverwrites: data.PermissionOverwrites,
	}
	f.channels[id] = ch
	c := *ch
	return &c, nil
}

func (f *Fake) EditChannel(channelID string, data *discordgo.ChannelEdit) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("EditChannel"); err != nil {
		return nil, err
	}
	ch, ok := f.channels[channelID]
	if !ok {
		return nil, notFound(discordgo.ErrCodeUnknownChannel)
	}
	if data.Name != "" {
		ch.Name = data.Name
	}
	if data.ParentID != "" {
		ch.ParentID = data.ParentID
	}
	if data.Topic != "" {
		ch.Topic = data.Topic
	}
	c := *ch
	return &c, nil
}

func (f *Fake) SetChannelPermission(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("SetChannelPermission"); err != nil {
		return err
	}
	ch, ok := f.channels[channelID]
	if !ok {
		return notFound(discordgo.ErrCodeUnknownChannel)
	}
	for _, o := range ch.PermissionOverwrites {
		if o.ID == targetID {
			o.Type, o.Allow, o.Deny = targetType, allow, deny
			return nil
		}
	}
	ch.PermissionOverwrites = append(ch.PermissionOverwrites, &discordgo.PermissionOverwrite{ID: targetID, Type: targetType, Allow: allow, Deny: deny})
	return nil
}

func (f *Fake) DeleteChannel(channelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("DeleteChannel"); err != nil {
		return err
	}
	if _, ok := f.channels[channelID]; !ok {
		return notFound(discordgo.ErrCodeUnknownChannel)
	}
	delete(f.channels, channelID)
	delete(f.messages, channelID)
	f.deleted = append(f.deleted, channelID)
	return nil
}

func (f *Fake) SendMessage(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("SendMessage"); err != nil {
		return nil, err
	}
	if _, ok := f.channels[channelID]; !ok {
		return nil, notFound(discordgo.ErrCodeUnknownChannel)
	}
	m := &discordgo.Message{
		ID:         f.id(),
		ChannelID:  channelID,
		Content:    data.Content,
		Author:     &discordgo.User{ID: BotID},
		Embeds:     data.Embeds,
		Components: data.Components,
	}
	f.messages[channelID] = append(f.messages[channelID], m)
	return m, nil
}

func (f *Fake) findMessage(channelID, messageID string) (*discordgo.Message, int) {
	for i, m := range f.messages[channelID] {
		if m.ID == messageID {
			return m, i
		}
	}
	return nil, -1
}

func (f *Fake) Message(channelID, messageID string) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("Message"); err != nil {
		return nil, err
	}
	m, _ := f.findMessage(channelID, messageID)
	if m == nil {
		return nil, notFound(discordgo.ErrCodeUnknownMessage)
	}
	c := *m
	return &c, nil
}

func (f *Fake) EditMessageEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("EditMessageEmbed"); err != nil {
		return nil, err
	}
	m, _ := f.findMessage(channelID, messageID)
	if m == nil {
		return nil, notFound(discordgo.ErrCodeUnknownMessage)
	}
	if m.Author == nil || m.Author.ID != BotID {
		return nil, fmt.Errorf("cannot edit a message authored by another user")
	}
	m.Embeds = []*discordgo.MessageEmbed{embed}
	c := *m
	return &c, nil
}

func (f *Fake) DeleteMessage(channelID, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("DeleteMessage"); err != nil {
		return err
	}
	_, i := f.findMessage(channelID, messageID)
	if i < 0 {
		return notFound(discordgo.ErrCodeUnknownMessage)
	}
	f.messages[channelID] = append(f.messages[channelID][:i], f.messages[channelID][i+1:]...)
	return nil
}

func (f *Fake) ChannelMessages(channelID string, limit int) ([]*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("ChannelMessages"); err != nil {
		return nil, err
	}
	msgs := f.messages[channelID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]*discordgo.Message(nil), msgs...), nil
}

func (f *Fake) BulkDeleteMessages(channelID string, messageIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("BulkDeleteMessages"); err != nil {
		return err
	}
	remove := make(map[string]struct{}, len(messageIDs))
	for _, id := range messageIDs {
		remove[id] = struct{}{}
	}
	kept := f.messages[channelID][:0]
	for _, m := range f.messages[channelID] {
		if _, ok := remove[m.ID]; !ok {
			kept = append(kept, m)
		}
	}
	f.messages[channelID] = kept
	return nil
}

func (f *Fake) AddMemberRole(_, userID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("AddMemberRole"); err != nil {
		return err
	}
	f.memberRoles[userID] = append(f.memberRoles[userID], roleID)
	return nil
}

func (f *Fake) RemoveMemberRole(_, userID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("RemoveMemberRole"); err != nil {
		return err
	}
	kept := f.memberRoles[userID][:0]
	for _, id := range f.memberRoles[userID] {
		if id != roleID {
			kept = append(kept, id)
		}
	}
	f.memberRoles[userID] = kept
	return nil
}

func (f *Fake) BotGuildPermissions(string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("BotGuildPermissions"); err != nil {
		return 0, err
	}
	return f.guildPerms, nil
}

func (f *Fake) BotChannelPermissions(channelID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("BotChannelPermissions"); err != nil {
		return 0, err
	}
	if perms, ok := f.channelPerms[channelID]; ok {
		return perms, nil
	}
	return f.defaultChannelPerms, nil
}
