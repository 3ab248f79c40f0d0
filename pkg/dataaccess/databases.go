package dataaccess

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a record with the same key already exists.
	ErrDuplicate = errors.New("record already exists")

	// ErrInvalidTransition is returned when a ticket cannot move between the requested buckets.
	ErrInvalidTransition = errors.New("invalid ticket transition")
)

// mongoDatabase is the database backups are written to.
const mongoDatabase = "ticketeer"

// Document identifies one of the four persisted documents.
type Document int

const (
	DocumentEmbeds Document = iota + 1
	DocumentTickets
	DocumentTemplates
	DocumentSettings
)

// Documents lists every persisted document.
var Documents = []Document{DocumentEmbeds, DocumentTickets, DocumentTemplates, DocumentSettings}

func (d Document) String() string {
	switch d {
	case DocumentEmbeds:
		return "embeds"
	case DocumentTickets:
		return "tickets"
	case DocumentTemplates:
		return "templates"
	case DocumentSettings:
		return "settings"
	}
	return fmt.Sprintf("document(%d)", int(d))
}

// FileName is the name of the file the document is stored in.
func (d Document) FileName() string {
	return d.String() + ".json"
}

// ParseDocument returns the document called s.
func ParseDocument(s string) (Document, error) {
	for _, d := range Documents {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown document %q", s)
}
