package embeds

import (
	"errors"
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
	"github.com/Jacobbrewer1/ticketeer/pkg/messages"
	"github.com/Jacobbrewer1/ticketeer/pkg/permissions"
	"github.com/Jacobbrewer1/ticketeer/pkg/platform/platformtest"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	c       *Composer
	fake    *platformtest.Fake
	store   *dataaccess.Store
	channel string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	fake := platformtest.New("guild")
	store := dataaccess.NewStore(l, t.TempDir())
	store.Load()

	msgs, err := messages.NewCatalog("en")
	require.NoError(t, err)

	perms := permissions.NewEvaluator(permissions.Config{OwnerIDs: []string{"owner"}, AdminRole: "Admin"})
	c := NewComposer(l, fake, store, perms, msgs, Config{
		DefaultColor: 0x00AE86,
		ProductColor: 0xFF6B6B,
		SuccessColor: 0x2ECC71,
		WarningColor: 0xF39C12,
		ErrorColor:   0xE74C3C,
	})

	return &fixture{
		c:       c,
		fake:    fake,
		store:   store,
		channel: fake.AddChannel("announcements", discordgo.ChannelTypeGuildText, "", ""),
	}
}

func TestComposer_CreateBasic(t *testing.T) {
	f := newFixture(t)

	msg, err := f.c.CreateBasic(f.channel, "u1", BasicOptions{
		Title:       "Hello",
		Description: "World",
		Thumbnail:   "https://example.com/t.png",
		Footer:      "foot",
	})
	require.NoError(t, err)

	e := msg.Embeds[0]
	require.Equal(t, "Hello", e.Title)
	require.Equal(t, 0x00AE86, e.Color)
	require.Equal(t, "https://example.com/t.png", e.Thumbnail.URL)
	require.Nil(t, e.Image)
	require.Equal(t, "foot", e.Footer.Text)

	r, err := f.store.GetEmbed(msg.ID)
	require.NoError(t, err)
	require.Equal(t, entities.EmbedKindBasic, r.Config.Kind)
	require.Equal(t, "u1", r.AuthorID)
	require.Equal(t, f.channel, r.ChannelID)
	require.Equal(t, 1, f.store.EmbedStatistics().TotalCreated)
}

func TestComposer_CreateBasicValidation(t *testing.T) {
	f := newFixture(t)

	long := make([]byte, 257)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name  string
		opts  BasicOptions
		field string
	}{
		{"missing title", BasicOptions{Description: "d"}, "title"},
		{"title too long", BasicOptions{Title: string(long), Description: "d"}, "title"},
		{"bad color", BasicOptions{Title: "t", Description: "d", Color: "red"}, "color"},
		{"bad image", BasicOptions{Title: "t", Description: "d", Image: "not a url"}, "image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.c.CreateBasic(f.channel, "u1", tt.opts)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), err)
			require.Equal(t, tt.field, verr.Field)
		})
	}
	require.Empty(t, f.fake.MessagesIn(f.channel))
}

func TestComposer_CreateBasicBotCannotSend(t *testing.T) {
	f := newFixture(t)
	f.fake.SetChannelPermissions(f.channel, int64(discordgo.PermissionViewChannel))

	_, err := f.c.CreateBasic(f.channel, "u1", BasicOptions{Title: "t", Description: "d"})
	var missing *permissions.MissingError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, []string{"Send Messages"}, missing.Names)
}

func TestComposer_CreateAdvanced(t *testing.T) {
	f := newFixture(t)

	msg, err := f.c.CreateAdvanced(f.channel, "u1", AdvancedOptions{
		Title:     "Patch notes",
		Color:     "3498db",
		Fields:    "A|1|true;B|2|false",
		Author:    "Team",
		Timestamp: true,
	})
	require.NoError(t, err)

	e := msg.Embeds[0]
	require.Equal(t, 0x3498DB, e.Color)
	require.Len(t, e.Fields, 2)
	require.Equal(t, "A", e.Fields[0].Name)
	require.True(t, e.Fields[0].Inline)
	require.Equal(t, "Team", e.Author.Name)
	require.NotEmpty(t, e.Timestamp)

	r, err := f.store.GetEmbed(msg.ID)
	require.NoError(t, err)
	require.Equal(t, entities.EmbedKindAdvanced, r.Config.Kind)
	require.Len(t, r.Config.Fields, 2)
	require.True(t, r.Config.Timestamp)
}

func TestComposer_CreateFromTemplate(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		preset    string
		title     string
		wantTitle string
		wantColor int
		wantName  string
	}{
		{"announcement", "announcement", "", "📢 Important Announcement", 0x3498DB, "announcement"},
		{"success uses config color", "success", "", "✅ Success", 0x2ECC71, "success"},
		{"title override", "rules", "House rules", "House rules", 0x34495E, "rules"},
		{"unknown falls back to info", "nope", "", "ℹ️ Information", 0x9B59B6, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := f.c.CreateFromTemplate(f.channel, "u1", tt.preset, tt.title, "")
			require.NoError(t, err)
			require.Equal(t, tt.wantTitle, msg.Embeds[0].Title)
			require.Equal(t, tt.wantColor, msg.Embeds[0].Color)

			r, err := f.store.GetEmbed(msg.ID)
			require.NoError(t, err)
			require.Equal(t, entities.EmbedKindTemplate, r.Config.Kind)
			require.Equal(t, tt.wantName, r.Config.Template)
		})
	}

	require.Len(t, f.c.Presets(), len(PresetNames))
}

func TestComposer_EditCountsEdits(t *testing.T) {
	f := newFixture(t)

	msg, err := f.c.CreateBasic(f.channel, "u1", BasicOptions{Title: "Old", Description: "Body"})
	require.NoError(t, err)

	_, err = f.c.Edit(f.channel, msg.ID, EditOptions{Title: "New", Color: "E74C3C"})
	require.NoError(t, err)

	got := f.fake.MessagesIn(f.channel)[0].Embeds[0]
	require.Equal(t, "New", got.Title)
	require.Equal(t, "Body", got.Description)
	require.Equal(t, 0xE74C3C, got.Color)

	r, err := f.store.GetEmbed(msg.ID)
	require.NoError(t, err)
	require.Equal(t, 1, r.EditedCount)
	require.Equal(t, "New", r.Config.Title)
	require.Equal(t, 0xE74C3C, r.Config.Color)
	require.NotNil(t, r.LastEdited)
	require.Equal(t, 1, f.store.EmbedStatistics().TotalEdited)
}

func TestComposer_EditErrors(t *testing.T) {
	f := newFixture(t)
	foreign := f.fake.AddMessage(f.channel, "someone", &discordgo.MessageEmbed{Title: "x"})
	plain := f.fake.AddMessage(f.channel, platformtest.BotID)

	tests := []struct {
		name      string
		messageID string
		want      error
	}{
		{"missing message", "404", ErrMessageNotFound},
		{"not posted by the bot", foreign.ID, ErrNotBotMessage},
		{"no embed", plain.ID, ErrNoEmbed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.c.Edit(f.channel, tt.messageID, EditOptions{Title: "t"})
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestComposer_EditUnrecordedMessage(t *testing.T) {
	f := newFixture(t)
	m := f.fake.AddMessage(f.channel, platformtest.BotID, &discordgo.MessageEmbed{Title: "x"})

	_, err := f.c.Edit(f.channel, m.ID, EditOptions{Description: "y"})
	require.NoError(t, err)
	require.Equal(t, 0, f.store.EmbedStatistics().TotalEdited)
}

func TestComposer_Templates(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.c.SaveTemplate("Promo", "u1", BasicOptions{Title: "Sale", Description: "50% off", Color: "FF0000"}))
	require.ErrorIs(t, f.c.SaveTemplate("promo", "u2", BasicOptions{Title: "t", Description: "d"}), ErrTemplateExists)

	msg, err := f.c.LoadTemplate(f.channel, "u2", "PROMO")
	require.NoError(t, err)
	require.Equal(t, "Sale", msg.Embeds[0].Title)
	require.Equal(t, 0xFF0000, msg.Embeds[0].Color)

	_, err = f.c.LoadTemplate(f.channel, "u2", "missing")
	require.ErrorIs(t, err, ErrTemplateNotFound)

	list := f.c.ListEmbed()
	require.Contains(t, list.Fields[0].Value, "**Promo** - created by <@u1>")

	require.ErrorIs(t, f.c.DeleteTemplate("promo", permissions.Member{ID: "u2"}), ErrTemplateDenied)
	require.NoError(t, f.c.DeleteTemplate("promo", permissions.Member{ID: "u2", Roles: []string{"Admin"}}))
	require.ErrorIs(t, f.c.DeleteTemplate("promo", permissions.Member{ID: "u1"}), ErrTemplateNotFound)

	require.NoError(t, f.c.SaveTemplate("mine", "u1", BasicOptions{Title: "t", Description: "d"}))
	require.NoError(t, f.c.DeleteTemplate("mine", permissions.Member{ID: "u1"}))
	require.Empty(t, f.store.ListTemplates())
}

func TestComposer_StatsEmbed(t *testing.T) {
	f := newFixture(t)

	e := f.c.StatsEmbed()
	require.Contains(t, e.Fields[0].Value, "Never")

	_, err := f.c.CreateBasic(f.channel, "u1", BasicOptions{Title: "t", Description: "d"})
	require.NoError(t, err)

	e = f.c.StatsEmbed()
	require.Contains(t, e.Fields[0].Value, "Total: **1**")
	require.Contains(t, e.Fields[0].Value, "<t:")
}
