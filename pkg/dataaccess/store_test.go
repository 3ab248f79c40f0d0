package dataaccess

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jacobbrewer1/ticketeer/pkg/custom"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
	"github.com/stretchr/testify/require"
)

// newTestStore returns a store over a temp dir whose clock advances a minute per call.
func newTestStore(t *testing.T, dir string) *Store {
	t.Helper()

	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	s := NewStore(l, dir)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	s.now = func() custom.Datetime {
		calls++
		return custom.NewDatetime(base.Add(time.Duration(calls) * time.Minute))
	}
	return s
}

func TestStore_LoadMissingFilesUsesDefaults(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	s.Load()

	b := s.Backup()
	require.Equal(t, defaultEmbeds(), b.Embeds)
	require.Equal(t, defaultTickets(), b.Tickets)
	require.Equal(t, defaultTemplates(), b.Templates)
	require.Equal(t, defaultSettings(), b.Settings)
	require.Equal(t, "1.0", b.Version)
}

func TestStore_LoadCorruptFileUsesDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tickets.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "embeds.json"), []byte(`{"saved_embeds":null}`), 0o644))

	s := newTestStore(t, dir)
	s.Load()

	b := s.Backup()
	require.Equal(t, defaultTickets(), b.Tickets)
	require.NotNil(t, b.Embeds.SavedEmbeds)
	require.Empty(t, b.Embeds.SavedEmbeds)
}

func TestStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir)
	s.Load()

	_, err := s.SaveEmbed("m1", entities.EmbedConfig{
		Kind:        entities.EmbedKindAdvanced,
		Title:       "Hello",
		Description: "World",
		Color:       0x00AE86,
		Fields:      []entities.EmbedField{{Name: "A", Value: "1", Inline: true}},
		Timestamp:   true,
	}, "u1", "c1")
	require.NoError(t, err)
	_, err = s.UpdateEmbed("m1", entities.EmbedConfig{Kind: entities.EmbedKindBasic, Title: "Edited"})
	require.NoError(t, err)

	require.NoError(t, s.SaveTicket(&entities.Ticket{ChannelID: "t1", CreatorID: "u1", CreatorTag: "one", ChannelName: "ticket-one-0001"}))
	require.NoError(t, s.SaveTicket(&entities.Ticket{ChannelID: "t2", CreatorID: "u2", Type: entities.TicketTypeOrder}))
	require.NoError(t, s.SaveTicket(&entities.Ticket{ChannelID: "t3", CreatorID: "u3", Type: entities.TicketTypeCS}))
	_, err = s.AutoArchiveTicket("t1", "admin")
	require.NoError(t, err)
	_, err = s.CloseTicket("t2", "admin")
	require.NoError(t, err)

	color := 0xFF0000
	require.NoError(t, s.SaveTemplate(&entities.Template{Name: "Promo", Title: "Sale", Description: "Now", Color: &color, AuthorID: "u1"}))
	s.UpdateSettings(entities.SettingsTickets, map[string]any{"log_channel": "logs", "inactive_hours": float64(48)})

	want := s.Backup()

	reloaded := newTestStore(t, dir)
	reloaded.Load()
	got := reloaded.Backup()
	got.Timestamp = want.Timestamp

	require.Equal(t, want, got)
}

func TestStore_SaveFailureKeepsMemory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(dir, []byte("x"), 0o644))

	s := newTestStore(t, dir)
	require.False(t, s.Save(DocumentTickets))

	require.NoError(t, s.SaveTicket(&entities.Ticket{ChannelID: "t1", CreatorID: "u1"}))
	got, err := s.GetTicket("t1")
	require.NoError(t, err)
	require.Equal(t, entities.BucketActive, got.Bucket)
	require.Error(t, s.Ping())
}

func TestStore_Autosave(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.StartAutosave(ctx, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		for _, doc := range Documents {
			if _, err := os.Stat(s.Path(doc)); err != nil {
				return false
			}
		}
		return true
	}, time.Second, 10*time.Millisecond)
}

func TestStore_Settings(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	merged := s.UpdateSettings(entities.SettingsEmbedDefaults, map[string]any{"color": "FF0000"})
	require.Equal(t, "FF0000", merged["color"])
	require.Equal(t, "Powered by Discord Bot", merged["footer_text"])
	require.Equal(t, true, merged["timestamp"])

	fresh := s.UpdateSettings("custom", map[string]any{"a": "b"})
	require.Equal(t, map[string]any{"a": "b"}, fresh)
	require.Equal(t, "b", s.SettingString("custom", "a"))
	require.Empty(t, s.SettingString(entities.SettingsTickets, "log_channel"))
	require.Empty(t, s.Settings("missing"))
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	require.NoError(t, s.SaveTicket(&entities.Ticket{ChannelID: "t1"}))
	_, err := s.SaveEmbed("m1", entities.EmbedConfig{Kind: entities.EmbedKindBasic}, "u1", "c1")
	require.NoError(t, err)

	require.NoError(t, s.Clear("tickets"))
	require.Empty(t, s.AllTickets())
	require.Len(t, s.ListEmbeds(), 1)

	require.NoError(t, s.Clear(ClearAll))
	require.Empty(t, s.ListEmbeds())
	require.Equal(t, entities.EmbedStatistics{}, s.EmbedStatistics())

	require.Error(t, s.Clear("everything"))
}

func TestStore_BackupAndRestore(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	require.NoError(t, s.SaveTicket(&entities.Ticket{ChannelID: "t1", CreatorID: "u1"}))
	snapshot := s.Backup()

	require.NoError(t, s.Clear(ClearAll))
	require.Empty(t, s.AllTickets())

	require.NoError(t, s.Restore(snapshot))
	got, err := s.GetTicket("t1")
	require.NoError(t, err)
	require.Equal(t, "u1", got.CreatorID)
	require.Equal(t, 1, s.TicketStatistics().TotalCreated)

	require.Error(t, s.Restore(&Backup{}))
	require.Error(t, s.Restore(nil))
}

func TestStore_Info(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	require.NoError(t, s.SaveTicket(&entities.Ticket{ChannelID: "t1"}))
	require.NoError(t, s.SaveTemplate(&entities.Template{Name: "x"}))

	info := s.Info()
	require.Len(t, info.Files, 4)
	require.Equal(t, 1, info.Counts.ActiveTickets)
	require.Equal(t, 1, info.Counts.CustomTemplates)
	require.Equal(t, 3, info.Counts.SettingGroups)
	require.Positive(t, info.TotalSize())

	bytes, err := s.Export(DocumentTickets)
	require.NoError(t, err)
	require.Contains(t, string(bytes), `"active_tickets"`)
}

func TestParseDocument(t *testing.T) {
	for _, doc := range Documents {
		got, err := ParseDocument(doc.String())
		require.NoError(t, err)
		require.Equal(t, doc, got)
	}
	_, err := ParseDocument("all")
	require.Error(t, err)
}

func TestStore_LoadTakesBucketFromDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tickets.json"), []byte(`{
		"active_tickets": {
			"c1": {"channel_id": "c1", "creator_id": "u1", "type": "general"},
			"c2": {"channel_id": "c2", "creator_id": "u2", "type": "order", "category": "bogus"},
			"c3": null
		},
		"closed_tickets": {},
		"archived_tickets": {
			"c4": {"creator_id": "u4", "type": "cs", "category": "active"}
		},
		"statistics": {"total_created": 3}
	}`), 0o644))

	s := newTestStore(t, dir)
	s.Load()

	got, err := s.GetTicket("c4")
	require.NoError(t, err)
	require.Equal(t, entities.BucketArchived, got.Bucket)
	require.Equal(t, "c4", got.ChannelID)

	_, err = s.AutoArchiveTicket("c2", "admin")
	require.NoError(t, err)
	require.True(t, s.Save(DocumentTickets))

	bytes, err := os.ReadFile(filepath.Join(dir, "tickets.json"))
	require.NoError(t, err)
	require.Contains(t, string(bytes), `"c2"`)

	reloaded := newTestStore(t, dir)
	reloaded.Load()
	got, err = reloaded.GetTicket("c1")
	require.NoError(t, err)
	require.Equal(t, entities.BucketActive, got.Bucket)
	got, err = reloaded.GetTicket("c2")
	require.NoError(t, err)
	require.Equal(t, entities.BucketArchived, got.Bucket)
	require.Len(t, reloaded.AllTickets(), 3)

	_, err = reloaded.Export(DocumentTickets)
	require.NoError(t, err)
	require.Positive(t, reloaded.Info().TotalSize())
}

func TestStore_RestoreTakesBucketFromDocument(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	require.NoError(t, s.Restore(&Backup{Tickets: &TicketsDocument{
		ActiveTickets: map[string]*entities.Ticket{"c1": {ChannelID: "c1", CreatorID: "u1"}},
	}}))

	got, err := s.GetTicket("c1")
	require.NoError(t, err)
	require.Equal(t, entities.BucketActive, got.Bucket)
	require.True(t, s.SaveAll())
}

func TestStore_LoadLegacyEmbeds(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "embeds.json"), []byte(`{
		"saved_embeds": {
			"m1": {
				"message_id": "m1",
				"config": {"title": "Hi", "description": "There", "color": "00AE86", "type": "basic"},
				"author_id": "u1",
				"channel_id": "c1",
				"created_at": "2024-01-01T00:00:00.000Z",
				"edited_count": 0
			},
			"m2": {
				"message_id": "m2",
				"config": {"nama": "Nitro", "jenis": "Digital", "harga": "10", "deskripsi": "d", "warna": null, "type": "product"},
				"author_id": "u1",
				"channel_id": "c1",
				"created_at": "2024-01-01T00:00:00.000Z",
				"edited_count": 0
			},
			"m3": {
				"message_id": "m3",
				"config": {"title": "Plain", "description": "x", "color": null, "type": "basic"},
				"author_id": "u1",
				"channel_id": "c1",
				"created_at": "2024-01-01T00:00:00.000Z",
				"edited_count": 0
			}
		},
		"templates": {},
		"statistics": {"total_created": 3, "total_edited": 0, "last_created": null}
	}`), 0o644))

	s := newTestStore(t, dir)
	s.Load()

	require.Len(t, s.ListEmbeds(), 3)
	require.Equal(t, 3, s.EmbedStatistics().TotalCreated)

	got, err := s.GetEmbed("m1")
	require.NoError(t, err)
	require.Equal(t, 0x00AE86, got.Config.Color)

	got, err = s.GetEmbed("m2")
	require.NoError(t, err)
	require.True(t, got.IsProduct())
	require.Equal(t, "Nitro", got.Config.Product.Name)

	_, err = s.SaveEmbed("m4", entities.EmbedConfig{Kind: entities.EmbedKindBasic, Title: "new"}, "u2", "c1")
	require.NoError(t, err)

	reloaded := newTestStore(t, dir)
	reloaded.Load()
	require.Len(t, reloaded.ListEmbeds(), 4)
}
