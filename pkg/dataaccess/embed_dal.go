package dataaccess

import (
	"fmt"
	"sort"

	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
)

// EmbedDal is the embed half of the store.
type EmbedDal interface {
	// SaveEmbed records a message the bot posted.
	SaveEmbed(messageID string, cfg entities.EmbedConfig, authorID, channelID string) (*entities.EmbedRecord, error)

	// UpdateEmbed replaces the configuration of a recorded message and counts the edit.
	UpdateEmbed(messageID string, cfg entities.EmbedConfig) (*entities.EmbedRecord, error)

	// GetEmbed gets a recorded message.
	GetEmbed(messageID string) (*entities.EmbedRecord, error)

	// ListEmbeds lists every recorded message, newest first.
	ListEmbeds() []*entities.EmbedRecord

	// MarkEmbedDeleted flags a record whose message was removed.
	MarkEmbedDeleted(messageID, deletedBy string) error

	// EmbedStatistics returns the embed counters.
	EmbedStatistics() entities.EmbedStatistics
}

var _ EmbedDal = (*Store)(nil)

func (s *Store) SaveEmbed(messageID string, cfg entities.EmbedConfig, authorID, channelID string) (*entities.EmbedRecord, error) {
	if messageID == "" {
		return nil, fmt.Errorf("message id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("save_embed")

	if _, ok := s.embeds.SavedEmbeds[messageID]; ok {
		return nil, fmt.Errorf("embed %s: %w", messageID, ErrDuplicate)
	}

	now := s.now()
	r := &entities.EmbedRecord{
		MessageID: messageID,
		Config:    cfg.Copy(),
		AuthorID:  authorID,
		ChannelID: channelID,
		CreatedAt: now,
	}
	s.embeds.SavedEmbeds[messageID] = r
	s.embeds.Statistics.TotalCreated++
	s.embeds.Statistics.LastCreated = now.Ptr()

	s.persist(DocumentEmbeds)
	return r.Copy(), nil
}

func (s *Store) UpdateEmbed(messageID string, cfg entities.EmbedConfig) (*entities.EmbedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("update_embed")

	r, ok := s.embeds.SavedEmbeds[messageID]
	if !ok {
		return nil, fmt.Errorf("embed %s: %w", messageID, ErrNotFound)
	}

	r.Config = cfg.Copy()
	r.EditedCount++
	r.LastEdited = s.now().Ptr()
	s.embeds.Statistics.TotalEdited++

	s.persist(DocumentEmbeds)
	return r.Copy(), nil
}

func (s *Store) GetEmbed(messageID string) (*entities.EmbedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("get_embed")

	r, ok := s.embeds.SavedEmbeds[messageID]
	if !ok {
		return nil, fmt.Errorf("embed %s: %w", messageID, ErrNotFound)
	}
	return r.Copy(), nil
}

func (s *Store) ListEmbeds() []*entities.EmbedRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("list_embeds")

	list := make([]*entities.EmbedRecord, 0, len(s.embeds.SavedEmbeds))
	for _, r := range s.embeds.SavedEmbeds {
		list = append(list, r.Copy())
	}
	sort.SliceStable(list, func(i, j int) bool {
		ti, tj := list[i].CreatedAt.Time(), list[j].CreatedAt.Time()
		if ti.Equal(tj) {
			return list[i].MessageID > list[j].MessageID
		}
		return ti.After(tj)
	})
	return list
}

func (s *Store) MarkEmbedDeleted(messageID, deletedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("delete_embed")

	r, ok := s.embeds.SavedEmbeds[messageID]
	if !ok {
		return fmt.Errorf("embed %s: %w", messageID, ErrNotFound)
	}
	r.Deleted = true
	r.DeletedBy = deletedBy
	r.DeletedAt = s.now().Ptr()

	s.persist(DocumentEmbeds)
	return nil
}

func (s *Store) EmbedStatistics() entities.EmbedStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := s.embeds.Statistics
	if stats.LastCreated != nil {
		stats.LastCreated = stats.LastCreated.Ptr()
	}
	return stats
}
