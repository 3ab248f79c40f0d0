package tickets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
	"github.com/Jacobbrewer1/ticketeer/pkg/messages"
	"github.com/Jacobbrewer1/ticketeer/pkg/permissions"
	"github.com/Jacobbrewer1/ticketeer/pkg/platform/platformtest"
	"github.com/Jacobbrewer1/ticketeer/pkg/throttle"
	"github.com/stretchr/testify/require"
)

const testGuild = "guild"

var (
	alice = Requester{Member: permissions.Member{ID: "1000001234"}, Username: "Alice"}
	bob   = Requester{Member: permissions.Member{ID: "2000005678"}, Username: "Bob"}
	admin = Requester{Member: permissions.Member{ID: "9000000001", Roles: []string{"Admin"}}, Username: "Boss"}
)

type fixture struct {
	m     *Manager
	fake  *platformtest.Fake
	store *dataaccess.Store
	roles map[string]string
}

func newFixture(t *testing.T, limiter *throttle.Keyed) *fixture {
	t.Helper()

	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	fake := platformtest.New(testGuild)
	roles := map[string]string{}
	for _, name := range []string{"Admin", "Seller", "Buyer", "Support"} {
		roles[name] = fake.AddRole(name)
	}

	store := dataaccess.NewStore(l, t.TempDir())
	store.Load()

	msgs, err := messages.NewCatalog("en")
	require.NoError(t, err)

	perms := permissions.NewEvaluator(permissions.Config{
		OwnerIDs:    []string{"owner"},
		AdminRole:   "Admin",
		SellerRole:  "Seller",
		BuyerRole:   "Buyer",
		SupportRole: "Support",
	})

	m := NewManager(l, fake, store, perms, msgs, limiter, Config{
		ActiveCategory:  "Active Tickets",
		ClosedCategory:  "Closed Tickets",
		ArchiveCategory: "Archived Tickets",
		DeleteDelay:     10 * time.Millisecond,
		DefaultColor:    0x00AE86,
		ProductColor:    0xFF6B6B,
		SuccessColor:    0x2ECC71,
	})
	return &fixture{m: m, fake: fake, store: store, roles: roles}
}

func (f *fixture) create(t *testing.T, r Requester, typ entities.TicketType) string {
	t.Helper()
	res, err := f.m.Create(testGuild, r, typ)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	require.NotEmpty(t, res.ChannelID)
	return res.ChannelID
}

func overwriteFor(ch *discordgo.Channel, id string) *discordgo.PermissionOverwrite {
	for _, o := range ch.PermissionOverwrites {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func TestManager_PrepareCategoriesIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)

	first, err := f.m.PrepareCategories(testGuild)
	require.NoError(t, err)
	require.NotEmpty(t, first.Active)
	require.NotEmpty(t, first.Closed)
	require.NotEmpty(t, first.Archive)

	second, err := f.m.PrepareCategories(testGuild)
	require.NoError(t, err)
	require.Equal(t, first, second)

	ch, ok := f.fake.ChannelByName("Active Tickets")
	require.True(t, ok)
	require.Equal(t, discordgo.ChannelTypeGuildCategory, ch.Type)
}

func TestManager_CreateTwoUsersThenDuplicate(t *testing.T) {
	f := newFixture(t, nil)

	aliceID := f.create(t, alice, entities.TicketTypeGeneral)
	bobID := f.create(t, bob, entities.TicketTypeGeneral)
	require.NotEqual(t, aliceID, bobID)

	cats, err := f.m.Categories(testGuild)
	require.NoError(t, err)

	ch, err := f.fake.Channel(aliceID)
	require.NoError(t, err)
	require.Equal(t, "ticket-alice-1234", ch.Name)
	require.Equal(t, alice.ID, ch.Topic)
	require.Equal(t, cats.Active, ch.ParentID)

	res, err := f.m.Create(testGuild, alice, entities.TicketTypeGeneral)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "You already have an active general ticket: <#"+aliceID+">", res.Message)

	require.Len(t, f.store.AllTickets(), 2)
	require.Equal(t, 2, f.store.TicketStatistics().TotalCreated)

	ticket, err := f.store.GetTicket(aliceID)
	require.NoError(t, err)
	require.Equal(t, entities.BucketActive, ticket.Bucket)
	require.Equal(t, "Alice", ticket.CreatorTag)
	require.Equal(t, testGuild, ticket.GuildID)
}

func TestManager_CreateOverwrites(t *testing.T) {
	f := newFixture(t, nil)
	id := f.create(t, alice, entities.TicketTypeGeneral)

	ch, err := f.fake.Channel(id)
	require.NoError(t, err)

	everyone := overwriteFor(ch, testGuild)
	require.NotNil(t, everyone)
	require.Equal(t, int64(discordgo.PermissionViewChannel), everyone.Deny)

	creator := overwriteFor(ch, alice.ID)
	require.NotNil(t, creator)
	require.NotZero(t, creator.Allow&discordgo.PermissionSendMessages)
	require.NotZero(t, creator.Allow&discordgo.PermissionReadMessageHistory)
	require.NotZero(t, creator.Allow&discordgo.PermissionAttachFiles)

	require.NotNil(t, overwriteFor(ch, platformtest.BotID))
	for _, role := range []string{"Admin", "Seller", "Support"} {
		require.NotNil(t, overwriteFor(ch, f.roles[role]), role)
	}
	require.Nil(t, overwriteFor(ch, f.roles["Buyer"]))

	msgs := f.fake.MessagesIn(id)
	require.Len(t, msgs, 1)
	require.Equal(t, "<@"+alice.ID+">", msgs[0].Content)
	require.Len(t, msgs[0].Embeds, 1)
	require.Equal(t, "🎫 Ticket Created", msgs[0].Embeds[0].Title)
	require.Empty(t, msgs[0].Components)
}

func TestManager_CreateOrderTicket(t *testing.T) {
	f := newFixture(t, nil)
	f.create(t, alice, entities.TicketTypeGeneral)

	// An active general ticket does not block an order ticket.
	id := f.create(t, alice, entities.TicketTypeOrder)

	ch, err := f.fake.Channel(id)
	require.NoError(t, err)
	require.Equal(t, "order-alice-1234", ch.Name)
	require.NotNil(t, overwriteFor(ch, f.roles["Seller"]))
	require.NotNil(t, overwriteFor(ch, f.roles["Admin"]))
	require.Nil(t, overwriteFor(ch, f.roles["Support"]))

	msgs := f.fake.MessagesIn(id)
	require.Len(t, msgs, 1)
	require.Equal(t, 0xFF6B6B, msgs[0].Embeds[0].Color)
	require.Len(t, msgs[0].Components, 1)
	row, ok := msgs[0].Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	button, ok := row.Components[0].(discordgo.Button)
	require.True(t, ok)
	require.Equal(t, CloseOrderButtonID, button.CustomID)

	res, err := f.m.Create(testGuild, alice, entities.TicketTypeOrder)
	require.NoError(t, err)
	require.False(t, res.Success)
}

func TestManager_CreateDenials(t *testing.T) {
	t.Run("bot missing permissions", func(t *testing.T) {
		f := newFixture(t, nil)
		f.fake.SetGuildPermissions(int64(discordgo.PermissionSendMessages))

		res, err := f.m.Create(testGuild, alice, entities.TicketTypeGeneral)
		require.NoError(t, err)
		require.False(t, res.Success)
		require.Equal(t, "The bot is missing required permissions: Manage Channels, Manage Roles", res.Message)
		require.Empty(t, f.store.AllTickets())
	})

	t.Run("rate limited", func(t *testing.T) {
		f := newFixture(t, throttle.NewKeyed(time.Hour, 1))
		f.create(t, alice, entities.TicketTypeGeneral)

		res, err := f.m.Create(testGuild, alice, entities.TicketTypeCS)
		require.NoError(t, err)
		require.False(t, res.Success)
		require.Equal(t, "You are opening tickets too quickly, please wait a moment.", res.Message)

		f.create(t, bob, entities.TicketTypeGeneral)
	})

	t.Run("channel create fails", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.m.PrepareCategories(testGuild)
		require.NoError(t, err)
		f.fake.Fail("CreateChannel", errors.New("boom"))

		res, err := f.m.Create(testGuild, alice, entities.TicketTypeGeneral)
		require.Error(t, err)
		require.False(t, res.Success)
		require.Contains(t, res.Message, "boom")
	})
}

func TestManager_CloseThenCloseAgainFails(t *testing.T) {
	f := newFixture(t, nil)
	id := f.create(t, alice, entities.TicketTypeGeneral)

	res, err := f.m.Close(testGuild, id, admin)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	cats, err := f.m.Categories(testGuild)
	require.NoError(t, err)

	ch, err := f.fake.Channel(id)
	require.NoError(t, err)
	require.Equal(t, "archived-alice-1234", ch.Name)
	require.Equal(t, cats.Archive, ch.ParentID)

	creator := overwriteFor(ch, alice.ID)
	require.NotNil(t, creator)
	require.Zero(t, creator.Allow&discordgo.PermissionSendMessages)
	require.NotZero(t, creator.Deny&discordgo.PermissionSendMessages)
	require.NotZero(t, creator.Allow&discordgo.PermissionViewChannel)

	ticket, err := f.store.GetTicket(id)
	require.NoError(t, err)
	require.Equal(t, entities.BucketArchived, ticket.Bucket)
	require.True(t, ticket.AutoArchived)
	require.Equal(t, *ticket.ClosedAt, *ticket.ArchivedAt)
	require.Equal(t, admin.ID, ticket.ClosedBy)

	msgs := f.fake.MessagesIn(id)
	require.Len(t, msgs, 2)
	require.Equal(t, archiveNoticeColor, msgs[1].Embeds[0].Color)

	res, err = f.m.Close(testGuild, id, admin)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "This ticket has already been closed and archived.", res.Message)

	stats := f.store.TicketStatistics()
	require.Equal(t, 1, stats.TotalClosed)
	require.Equal(t, 1, stats.TotalArchived)
}

func TestManager_CloseRevokeFailureStillArchivesRecord(t *testing.T) {
	f := newFixture(t, nil)
	id := f.create(t, alice, entities.TicketTypeGeneral)
	f.fake.Fail("SetChannelPermission", errors.New("missing access"))

	res, err := f.m.Close(testGuild, id, admin)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	ticket, err := f.store.GetTicket(id)
	require.NoError(t, err)
	require.Equal(t, entities.BucketArchived, ticket.Bucket)

	res, err = f.m.Close(testGuild, id, admin)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, 1, f.store.TicketStatistics().TotalArchived)
}

func TestManager_CloseDenials(t *testing.T) {
	f := newFixture(t, nil)
	id := f.create(t, alice, entities.TicketTypeGeneral)
	general := f.fake.AddChannel("general", discordgo.ChannelTypeGuildText, "", "")

	tests := []struct {
		name      string
		channelID string
		actor     Requester
		want      string
	}{
		{"outside a ticket channel", general, admin, "This command must be run inside a ticket channel."},
		{"creator is not an admin", id, alice, "Only admins can do this."},
		{"stranger", id, bob, "Only admins can do this."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.m.Close(testGuild, tt.channelID, tt.actor)
			require.NoError(t, err)
			require.False(t, res.Success)
			require.Equal(t, tt.want, res.Message)
		})
	}

	ticket, err := f.store.GetTicket(id)
	require.NoError(t, err)
	require.Equal(t, entities.BucketActive, ticket.Bucket)
}

func TestManager_CloseBotMissingChannelPermissions(t *testing.T) {
	f := newFixture(t, nil)
	id := f.create(t, alice, entities.TicketTypeGeneral)
	f.fake.SetChannelPermissions(id, int64(discordgo.PermissionViewChannel))

	res, err := f.m.Close(testGuild, id, admin)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "The bot is missing required permissions: Manage Channels, Send Messages", res.Message)
}

func TestManager_Archive(t *testing.T) {
	f := newFixture(t, nil)
	id := f.create(t, alice, entities.TicketTypeGeneral)

	res, err := f.m.Archive(testGuild, id, admin)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "Only closed tickets can be archived manually.", res.Message)

	_, err = f.store.CloseTicket(id, admin.ID)
	require.NoError(t, err)

	res, err = f.m.Archive(testGuild, id, alice)
	require.NoError(t, err)
	require.False(t, res.Success)

	res, err = f.m.Archive(testGuild, id, admin)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	ticket, err := f.store.GetTicket(id)
	require.NoError(t, err)
	require.Equal(t, entities.BucketArchived, ticket.Bucket)
	require.False(t, ticket.AutoArchived)
	require.Equal(t, admin.ID, ticket.ArchivedBy)

	ch, err := f.fake.Channel(id)
	require.NoError(t, err)
	require.Equal(t, "archived-alice-1234", ch.Name)

	msgs := f.fake.MessagesIn(id)
	require.Equal(t, 0x2ECC71, msgs[len(msgs)-1].Embeds[0].Color)
}

func TestManager_Rename(t *testing.T) {
	f := newFixture(t, nil)
	id := f.create(t, alice, entities.TicketTypeGeneral)

	tests := []struct {
		name    string
		actor   Requester
		newName string
		success bool
		want    string
	}{
		{"creator", alice, "My Ticket!", true, "my-ticket-"},
		{"staff", Requester{Member: permissions.Member{ID: "3", Roles: []string{"Support"}}}, "Refund 42", true, "refund-42"},
		{"stranger", bob, "mine now", false, "ticket-alice-1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.success {
				_, err := f.fake.EditChannel(id, &discordgo.ChannelEdit{Name: "ticket-alice-1234"})
				require.NoError(t, err)
			}

			res, err := f.m.Rename(testGuild, id, tt.actor, tt.newName)
			require.NoError(t, err)
			require.Equal(t, tt.success, res.Success, res.Message)

			ch, err := f.fake.Channel(id)
			require.NoError(t, err)
			require.Equal(t, tt.want, ch.Name)
		})
	}
}

func TestManager_Delete(t *testing.T) {
	f := newFixture(t, nil)
	id := f.create(t, alice, entities.TicketTypeGeneral)

	res, err := f.m.Delete(context.Background(), testGuild, id, alice)
	require.NoError(t, err)
	require.False(t, res.Success)

	res, err = f.m.Delete(context.Background(), testGuild, id, admin)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	require.Contains(t, res.Message, "will be deleted")

	require.Eventually(t, func() bool {
		return len(f.fake.Deleted()) == 1
	}, time.Second, 5*time.Millisecond)
	f.m.Wait()
	require.Equal(t, []string{id}, f.fake.Deleted())

	ticket, err := f.store.GetTicket(id)
	require.NoError(t, err)
	require.Equal(t, entities.BucketClosed, ticket.Bucket)
	require.Equal(t, admin.ID, ticket.ClosedBy)
	require.Zero(t, f.store.Info().Counts.ActiveTickets)
}

func TestManager_DeleteKeepsArchivedRecord(t *testing.T) {
	f := newFixture(t, nil)
	id := f.create(t, alice, entities.TicketTypeGeneral)

	res, err := f.m.Close(testGuild, id, admin)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	res, err = f.m.Delete(context.Background(), testGuild, id, admin)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	f.m.Wait()

	ticket, err := f.store.GetTicket(id)
	require.NoError(t, err)
	require.Equal(t, entities.BucketArchived, ticket.Bucket)
}

func TestManager_DeleteCancelled(t *testing.T) {
	f := newFixture(t, nil)
	id := f.create(t, alice, entities.TicketTypeGeneral)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := f.m.Delete(ctx, testGuild, id, admin)
	require.NoError(t, err)
	require.True(t, res.Success)

	f.m.Wait()
	require.Empty(t, f.fake.Deleted())
}

func TestManager_DeleteFailureIsReported(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(f *fixture) string
		wantReport bool
	}{
		{
			name: "configured log channel",
			setup: func(f *fixture) string {
				f.fake.AddChannel("bot-logs", discordgo.ChannelTypeGuildText, "", "")
				id := f.fake.AddChannel("audit", discordgo.ChannelTypeGuildText, "", "")
				f.store.UpdateSettings(entities.SettingsTickets, map[string]any{"log_channel": id})
				return id
			},
			wantReport: true,
		},
		{
			name: "bot-logs before general",
			setup: func(f *fixture) string {
				f.fake.AddChannel("general", discordgo.ChannelTypeGuildText, "", "")
				return f.fake.AddChannel("bot-logs", discordgo.ChannelTypeGuildText, "", "")
			},
			wantReport: true,
		},
		{
			name: "general",
			setup: func(f *fixture) string {
				return f.fake.AddChannel("general", discordgo.ChannelTypeGuildText, "", "")
			},
			wantReport: true,
		},
		{
			name:  "nowhere to report",
			setup: func(*fixture) string { return "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			id := f.create(t, alice, entities.TicketTypeGeneral)
			logID := tt.setup(f)
			f.fake.Fail("DeleteChannel", errors.New("boom"))

			res, err := f.m.Delete(context.Background(), testGuild, id, admin)
			require.NoError(t, err)
			require.True(t, res.Success)
			f.m.Wait()

			require.Empty(t, f.fake.Deleted())
			if !tt.wantReport {
				return
			}
			msgs := f.fake.MessagesIn(logID)
			require.Len(t, msgs, 1)
			require.Equal(t, "⚠️ Failed to delete ticket ticket-alice-1234: boom", msgs[0].Content)
		})
	}
}

func TestManager_SetupPanel(t *testing.T) {
	f := newFixture(t, nil)
	id := f.fake.AddChannel("support", discordgo.ChannelTypeGuildText, "", "")

	recent := f.fake.AddMessage(id, "someone")
	recent.Timestamp = time.Now().Add(-time.Hour)
	old := f.fake.AddMessage(id, "someone")
	old.Timestamp = time.Now().Add(-30 * 24 * time.Hour)

	res, err := f.m.SetupPanel(id)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	msgs := f.fake.MessagesIn(id)
	require.Len(t, msgs, 2)
	require.Equal(t, old.ID, msgs[0].ID)

	panel := msgs[1]
	require.Equal(t, "🎫 Create a Support Ticket", panel.Embeds[0].Title)
	row, ok := panel.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	button, ok := row.Components[0].(discordgo.Button)
	require.True(t, ok)
	require.Equal(t, CreateTicketButtonID, button.CustomID)
}

func TestManager_SetupPanelWithoutManageMessagesKeepsHistory(t *testing.T) {
	f := newFixture(t, nil)
	id := f.fake.AddChannel("support", discordgo.ChannelTypeGuildText, "", "")
	f.fake.SetChannelPermissions(id, int64(discordgo.PermissionViewChannel|discordgo.PermissionSendMessages|discordgo.PermissionManageChannels))

	recent := f.fake.AddMessage(id, "someone")
	recent.Timestamp = time.Now()

	res, err := f.m.SetupPanel(id)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	require.Len(t, f.fake.MessagesIn(id), 2)
}
