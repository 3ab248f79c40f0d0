package dataaccess

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/Jacobbrewer1/ticketeer/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
)

// TicketDal is the ticket half of the store.
type TicketDal interface {
	// SaveTicket records a new active ticket.
	SaveTicket(ticket *entities.Ticket) error

	// CloseTicket moves an active ticket to the closed bucket.
	CloseTicket(channelID, closedBy string) (*entities.Ticket, error)

	// ArchiveTicket moves a closed ticket to the archived bucket.
	ArchiveTicket(channelID, archivedBy string) (*entities.Ticket, error)

	// AutoArchiveTicket moves an active ticket straight to the archived bucket.
	AutoArchiveTicket(channelID, closedBy string) (*entities.Ticket, error)

	// GetTicket gets a ticket from any bucket.
	GetTicket(channelID string) (*entities.Ticket, error)

	// AllTickets lists every ticket, newest first.
	AllTickets() []*entities.Ticket

	// ArchivedTickets lists the archived tickets, newest first.
	ArchivedTickets() []*entities.Ticket

	// TicketsByCreator lists the tickets opened by a user, newest first.
	TicketsByCreator(creatorID string) []*entities.Ticket

	// TicketStatistics returns the ticket counters.
	TicketStatistics() entities.TicketStatistics
}

var _ TicketDal = (*Store)(nil)

func (s *Store) SaveTicket(ticket *entities.Ticket) error {
	if ticket == nil || ticket.ChannelID == "" {
		return fmt.Errorf("ticket channel id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("save_ticket")

	if _, b := s.findTicket(ticket.ChannelID); b != 0 {
		return fmt.Errorf("ticket %s is %s: %w", ticket.ChannelID, b, ErrDuplicate)
	}

	t := ticket.Copy()
	t.Bucket = entities.BucketActive
	if t.Type == "" {
		t.Type = entities.TicketTypeGeneral
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	s.tickets.ActiveTickets[t.ChannelID] = t
	s.tickets.Statistics.TotalCreated++

	s.persist(DocumentTickets)
	return nil
}

func (s *Store) CloseTicket(channelID, closedBy string) (*entities.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("close_ticket")

	t, err := s.moveTicket(channelID, entities.BucketActive, entities.BucketClosed)
	if err != nil {
		return nil, err
	}
	t.ClosedAt = s.now().Ptr()
	t.ClosedBy = closedBy
	s.tickets.Statistics.TotalClosed++

	s.persist(DocumentTickets)
	return t.Copy(), nil
}

func (s *Store) ArchiveTicket(channelID, archivedBy string) (*entities.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("archive_ticket")

	t, err := s.moveTicket(channelID, entities.BucketClosed, entities.BucketArchived)
	if err != nil {
		return nil, err
	}
	t.ArchivedAt = s.now().Ptr()
	t.ArchivedBy = archivedBy
	t.AutoArchived = false
	s.tickets.Statistics.TotalArchived++

	s.persist(DocumentTickets)
	return t.Copy(), nil
}

func (s *Store) AutoArchiveTicket(channelID, closedBy string) (*entities.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("auto_archive_ticket")

	t, err := s.moveTicket(channelID, entities.BucketActive, entities.BucketArchived)
	if err != nil {
		return nil, err
	}
	now := s.now()
	t.ClosedAt = now.Ptr()
	t.ClosedBy = closedBy
	t.ArchivedAt = now.Ptr()
	t.ArchivedBy = closedBy
	t.AutoArchived = true
	s.tickets.Statistics.TotalClosed++
	s.tickets.Statistics.TotalArchived++

	s.persist(DocumentTickets)
	return t.Copy(), nil
}

// moveTicket moves a ticket between buckets. The caller must hold the lock.
func (s *Store) moveTicket(channelID string, from, to entities.Bucket) (*entities.Ticket, error) {
	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("%s to %s: %w", from, to, ErrInvalidTransition)
	}

	t, ok := s.tickets.bucket(from)[channelID]
	if !ok {
		if _, b := s.findTicket(channelID); b != 0 {
			return nil, fmt.Errorf("ticket %s is %s, not %s: %w", channelID, b, from, ErrInvalidTransition)
		}
		return nil, fmt.Errorf("ticket %s: %w", channelID, ErrNotFound)
	}

	delete(s.tickets.bucket(from), channelID)
	t.Bucket = to
	s.tickets.bucket(to)[channelID] = t

	monitoring.TicketTransitions.WithLabelValues(from.String(), to.String()).Inc()
	s.l.Debug("Ticket moved",
		slog.String("channel_id", channelID),
		slog.String("from", from.String()),
		slog.String("to", to.String()),
	)
	return t, nil
}

// findTicket looks the ticket up in every bucket. The caller must hold the lock.
func (s *Store) findTicket(channelID string) (*entities.Ticket, entities.Bucket) {
	for _, b := range entities.Buckets {
		if t, ok := s.tickets.bucket(b)[channelID]; ok {
			return t, b
		}
	}
	return nil, 0
}

func (s *Store) GetTicket(channelID string) (*entities.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("get_ticket")

	t, b := s.findTicket(channelID)
	if b == 0 {
		return nil, fmt.Errorf("ticket %s: %w", channelID, ErrNotFound)
	}
	c := t.Copy()
	c.Bucket = b
	return c, nil
}

func (s *Store) AllTickets() []*entities.Ticket {
	return s.listTickets(func(*entities.Ticket) bool { return true }, entities.Buckets...)
}

func (s *Store) ArchivedTickets() []*entities.Ticket {
	return s.listTickets(func(*entities.Ticket) bool { return true }, entities.BucketArchived)
}

func (s *Store) TicketsByCreator(creatorID string) []*entities.Ticket {
	return s.listTickets(func(t *entities.Ticket) bool { return t.CreatorID == creatorID }, entities.Buckets...)
}

func (s *Store) listTickets(keep func(*entities.Ticket) bool, buckets ...entities.Bucket) []*entities.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("list_tickets")

	list := make([]*entities.Ticket, 0)
	for _, b := range buckets {
		for _, t := range s.tickets.bucket(b) {
			if !keep(t) {
				continue
			}
			c := t.Copy()
			c.Bucket = b
			list = append(list, c)
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		ti, tj := list[i].CreatedAt.Time(), list[j].CreatedAt.Time()
		if ti.Equal(tj) {
			return list[i].ChannelID > list[j].ChannelID
		}
		return ti.After(tj)
	})
	return list
}

func (s *Store) TicketStatistics() entities.TicketStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickets.Statistics
}
