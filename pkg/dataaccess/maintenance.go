package dataaccess

import (
	"fmt"
	"log/slog"
)

// ClearAll is the Clear kind that resets every document.
const ClearAll = "all"

// FileInfo describes one persisted document.
type FileInfo struct {
	Document Document
	Path     string
	Size     int64
}

// Counts are the number of records held per document.
type Counts struct {
	SavedEmbeds     int
	ActiveTickets   int
	ClosedTickets   int
	ArchivedTickets int
	CustomTemplates int
	SettingGroups   int
}

// Info summarises the store.
type Info struct {
	Dir    string
	Files  []FileInfo
	Counts Counts
}

// TotalSize is the summed size of every document.
func (i *Info) TotalSize() int64 {
	var total int64
	for _, f := range i.Files {
		total += f.Size
	}
	return total
}

// Info returns the serialized size and record counts of every document.
func (s *Store) Info() *Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := &Info{
		Dir:   s.dir,
		Files: make([]FileInfo, 0, len(Documents)),
		Counts: Counts{
			SavedEmbeds:     len(s.embeds.SavedEmbeds),
			ActiveTickets:   len(s.tickets.ActiveTickets),
			ClosedTickets:   len(s.tickets.ClosedTickets),
			ArchivedTickets: len(s.tickets.ArchivedTickets),
			CustomTemplates: len(s.templates.CustomTemplates),
			SettingGroups:   len(s.settings),
		},
	}

	for _, doc := range Documents {
		fi := FileInfo{Document: doc, Path: s.Path(doc)}
		if bytes, err := s.marshal(doc); err == nil {
			fi.Size = int64(len(bytes))
		}
		info.Files = append(info.Files, fi)
	}
	return info
}

// Backup returns a deep copy of every document stamped with the current time.
func (s *Store) Backup() *Backup {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("backup")

	return &Backup{
		Timestamp: s.now(),
		Version:   backupVersion,
		Embeds:    s.embeds.copy(),
		Tickets:   s.tickets.copy(),
		Templates: s.templates.copy(),
		Settings:  copySettings(s.settings),
	}
}

// Restore replaces every document present in b and writes them to disk.
// Documents missing from the backup are left untouched.
func (s *Store) Restore(b *Backup) error {
	if b == nil {
		return fmt.Errorf("backup is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("restore")

	restored := make([]Document, 0, len(Documents))
	if b.Embeds != nil {
		s.embeds = b.Embeds.copy()
		s.embeds.normalize()
		restored = append(restored, DocumentEmbeds)
	}
	if b.Tickets != nil {
		tickets := b.Tickets.copy()
		tickets.normalize()
		s.tickets = tickets
		restored = append(restored, DocumentTickets)
	}
	if b.Templates != nil {
		s.templates = b.Templates.copy()
		s.templates.normalize()
		restored = append(restored, DocumentTemplates)
	}
	if b.Settings != nil {
		s.settings = copySettings(b.Settings)
		restored = append(restored, DocumentSettings)
	}

	if len(restored) == 0 {
		return fmt.Errorf("backup holds no documents")
	}

	for _, doc := range restored {
		s.persist(doc)
	}
	s.l.Info("Restored backup", slog.String("version", b.Version), slog.Int("documents", len(restored)))
	return nil
}

// Clear resets one document, or every document for ClearAll, to its default skeleton.
func (s *Store) Clear(kind string) error {
	var docs []Document
	if kind == ClearAll {
		docs = Documents
	} else {
		doc, err := ParseDocument(kind)
		if err != nil {
			return err
		}
		docs = []Document{doc}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("clear")

	for _, doc := range docs {
		switch doc {
		case DocumentEmbeds:
			s.embeds = defaultEmbeds()
		case DocumentTickets:
			s.tickets = defaultTickets()
		case DocumentTemplates:
			s.templates = defaultTemplates()
		case DocumentSettings:
			s.settings = defaultSettings()
		}
		s.persist(doc)
	}
	s.l.Warn("Cleared data", slog.String("kind", kind))
	return nil
}

// Export returns the pretty printed JSON of a document.
func (s *Store) Export(doc Document) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marshal(doc)
}
