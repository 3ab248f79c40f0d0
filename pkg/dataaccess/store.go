package dataaccess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Jacobbrewer1/ticketeer/pkg/custom"
	"github.com/Jacobbrewer1/ticketeer/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
)

const storeDalName = "file_store"

// DefaultAutosaveInterval is how often every document is written when no interval is configured.
const DefaultAutosaveInterval = 5 * time.Minute

// Store owns the four persisted documents. Every read and mutation happens under
// a single lock and every mutation is written through to disk before it returns.
type Store struct {
	// l is the logger.
	l *slog.Logger

	// dir is the directory the documents live in.
	dir string

	// now is the clock used for timestamps.
	now func() custom.Datetime

	mu        sync.Mutex
	embeds    *EmbedsDocument
	tickets   *TicketsDocument
	templates *TemplatesDocument
	settings  entities.Settings
}

// NewStore creates a store over dir with every document set to its default skeleton.
// Call Load to read the documents from disk.
func NewStore(logger *slog.Logger, dir string) *Store {
	return &Store{
		l:         logger.With(slog.String(logging.KeyDal, storeDalName)),
		dir:       dir,
		now:       custom.Now,
		embeds:    defaultEmbeds(),
		tickets:   defaultTickets(),
		templates: defaultTemplates(),
		settings:  defaultSettings(),
	}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path of a document.
func (s *Store) Path(doc Document) string {
	return filepath.Join(s.dir, doc.FileName())
}

// Load reads every document from disk. A missing or unparsable file leaves the
// default skeleton in place; parse failures are logged and are never fatal.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	embeds := defaultEmbeds()
	if s.read(DocumentEmbeds, embeds) {
		embeds.normalize()
	} else {
		embeds = defaultEmbeds()
	}
	s.embeds = embeds

	tickets := defaultTickets()
	if s.read(DocumentTickets, tickets) {
		tickets.normalize()
	} else {
		tickets = defaultTickets()
	}
	s.tickets = tickets

	templates := defaultTemplates()
	if s.read(DocumentTemplates, templates) {
		templates.normalize()
	} else {
		templates = defaultTemplates()
	}
	s.templates = templates

	settings := defaultSettings()
	if !s.read(DocumentSettings, &settings) || settings == nil {
		settings = defaultSettings()
	}
	s.settings = settings

	s.l.Info("Loaded data from disk", slog.String("dir", s.dir))
}

// read decodes a document file into v. It reports false when the file is absent or invalid.
func (s *Store) read(doc Document, v any) bool {
	bytes, err := os.ReadFile(s.Path(doc))
	if errors.Is(err, os.ErrNotExist) {
		s.l.Debug("Document not found, using default", slog.String("document", doc.String()))
		return false
	} else if err != nil {
		s.l.Error("Error reading document, using default",
			slog.String("document", doc.String()),
			slog.String(logging.KeyError, err.Error()),
		)
		return false
	}

	if err := json.Unmarshal(bytes, v); err != nil {
		s.l.Error("Error parsing document, using default",
			slog.String("document", doc.String()),
			slog.String(logging.KeyError, err.Error()),
		)
		return false
	}
	return true
}

// Save writes a document to disk. It reports whether the write succeeded.
func (s *Store) Save(doc Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(doc)
}

// SaveAll writes every document to disk. It reports whether all writes succeeded.
func (s *Store) SaveAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := true
	for _, doc := range Documents {
		if !s.persist(doc) {
			ok = false
		}
	}
	return ok
}

// StartAutosave writes every document on each tick of interval until ctx is done.
func (s *Store) StartAutosave(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if s.SaveAll() {
					s.l.Debug("Autosave completed")
				} else {
					s.l.Warn("Autosave completed with errors")
				}
			}
		}
	}()
}

// document returns the in-memory value of doc. The caller must hold the lock.
func (s *Store) document(doc Document) any {
	switch doc {
	case DocumentEmbeds:
		return s.embeds
	case DocumentTickets:
		return s.tickets
	case DocumentTemplates:
		return s.templates
	case DocumentSettings:
		return s.settings
	}
	return nil
}

func (s *Store) marshal(doc Document) ([]byte, error) {
	v := s.document(doc)
	if v == nil {
		return nil, fmt.Errorf("unknown document %s", doc)
	}
	return json.MarshalIndent(v, "", "  ")
}

// persist writes doc to disk. The caller must hold the lock.
func (s *Store) persist(doc Document) bool {
	t := prometheus.NewTimer(monitoring.FileStoreLatency.WithLabelValues(doc.String()))
	defer t.ObserveDuration()

	if err := s.write(doc); err != nil {
		monitoring.FileStoreWrites.WithLabelValues(doc.String(), "error").Inc()
		s.l.Error("Error saving document",
			slog.String("document", doc.String()),
			slog.String(logging.KeyError, err.Error()),
		)
		return false
	}
	monitoring.FileStoreWrites.WithLabelValues(doc.String(), "ok").Inc()
	return true
}

func (s *Store) write(doc Document) error {
	bytes, err := s.marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshalling document: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("error creating data directory: %w", err)
	}

	// Write to a sibling file first so a failed write never truncates the document.
	tmp := s.Path(doc) + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o644); err != nil {
		return fmt.Errorf("error writing document: %w", err)
	}
	if err := os.Rename(tmp, s.Path(doc)); err != nil {
		return fmt.Errorf("error replacing document: %w", err)
	}
	return nil
}

// Ping checks that the data directory is writable.
func (s *Store) Ping() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("error creating data directory: %w", err)
	}
	f, err := os.CreateTemp(s.dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("data directory is not writable: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing probe file: %w", err)
	}
	return os.Remove(name)
}

func (s *Store) count(operation string) {
	monitoring.FileStoreOperations.WithLabelValues(storeDalName, operation).Inc()
}
