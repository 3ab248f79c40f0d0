package dataaccess

import (
	"testing"

	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
	"github.com/stretchr/testify/require"
)

func TestStore_AutoArchiveTicket(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	require.NoError(t, s.SaveTicket(&entities.Ticket{ChannelID: "c1", CreatorID: "u1"}))

	got, err := s.AutoArchiveTicket("c1", "admin")
	require.NoError(t, err)
	require.Equal(t, entities.BucketArchived, got.Bucket)
	require.True(t, got.AutoArchived)
	require.NotNil(t, got.ClosedAt)
	require.Equal(t, *got.ClosedAt, *got.ArchivedAt)
	require.Equal(t, "admin", got.ClosedBy)

	require.Equal(t, entities.TicketStatistics{TotalCreated: 1, TotalClosed: 1, TotalArchived: 1}, s.TicketStatistics())

	// Archived tickets never move again.
	_, err = s.AutoArchiveTicket("c1", "admin")
	require.ErrorIs(t, err, ErrInvalidTransition)
	_, err = s.CloseTicket("c1", "admin")
	require.ErrorIs(t, err, ErrInvalidTransition)
	_, err = s.ArchiveTicket("c1", "admin")
	require.ErrorIs(t, err, ErrInvalidTransition)

	require.Equal(t, entities.TicketStatistics{TotalCreated: 1, TotalClosed: 1, TotalArchived: 1}, s.TicketStatistics())
}

func TestStore_ManualArchivePath(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	require.NoError(t, s.SaveTicket(&entities.Ticket{ChannelID: "c1", CreatorID: "u1"}))

	// Only closed tickets can be archived manually.
	_, err := s.ArchiveTicket("c1", "admin")
	require.ErrorIs(t, err, ErrInvalidTransition)

	closed, err := s.CloseTicket("c1", "mod")
	require.NoError(t, err)
	require.Equal(t, entities.BucketClosed, closed.Bucket)
	require.Nil(t, closed.ArchivedAt)

	archived, err := s.ArchiveTicket("c1", "admin")
	require.NoError(t, err)
	require.Equal(t, entities.BucketArchived, archived.Bucket)
	require.False(t, archived.AutoArchived)
	require.Equal(t, "mod", archived.ClosedBy)
	require.Equal(t, "admin", archived.ArchivedBy)
	require.True(t, archived.ArchivedAt.Time().After(archived.ClosedAt.Time()))

	require.Equal(t, entities.TicketStatistics{TotalCreated: 1, TotalClosed: 1, TotalArchived: 1}, s.TicketStatistics())
	require.Len(t, s.ArchivedTickets(), 1)
}

func TestStore_TicketErrors(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	_, err := s.CloseTicket("missing", "admin")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetTicket("missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.Error(t, s.SaveTicket(&entities.Ticket{}))
	require.NoError(t, s.SaveTicket(&entities.Ticket{ChannelID: "c1"}))
	require.ErrorIs(t, s.SaveTicket(&entities.Ticket{ChannelID: "c1"}), ErrDuplicate)

	// A saved ticket is always active, whatever the caller passed.
	require.NoError(t, s.SaveTicket(&entities.Ticket{ChannelID: "c2", Bucket: entities.BucketArchived}))
	got, err := s.GetTicket("c2")
	require.NoError(t, err)
	require.Equal(t, entities.BucketActive, got.Bucket)
	require.Equal(t, entities.TicketTypeGeneral, got.Type)
}

func TestStore_TicketsByCreator(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	require.NoError(t, s.SaveTicket(&entities.Ticket{ChannelID: "c1", CreatorID: "u1"}))
	require.NoError(t, s.SaveTicket(&entities.Ticket{ChannelID: "c2", CreatorID: "u2"}))
	require.NoError(t, s.SaveTicket(&entities.Ticket{ChannelID: "c3", CreatorID: "u1", Type: entities.TicketTypeOrder}))
	_, err := s.AutoArchiveTicket("c1", "admin")
	require.NoError(t, err)

	got := s.TicketsByCreator("u1")
	require.Len(t, got, 2)
	require.Equal(t, "c3", got[0].ChannelID)
	require.Equal(t, entities.BucketActive, got[0].Bucket)
	require.Equal(t, "c1", got[1].ChannelID)
	require.Equal(t, entities.BucketArchived, got[1].Bucket)

	require.Len(t, s.AllTickets(), 3)
	require.Empty(t, s.TicketsByCreator("nobody"))
}

func TestStore_GetTicketReturnsCopy(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	require.NoError(t, s.SaveTicket(&entities.Ticket{ChannelID: "c1", CreatorID: "u1"}))

	got, err := s.GetTicket("c1")
	require.NoError(t, err)
	got.CreatorID = "changed"

	again, err := s.GetTicket("c1")
	require.NoError(t, err)
	require.Equal(t, "u1", again.CreatorID)
}
