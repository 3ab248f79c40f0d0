package dataaccess

import (
	"github.com/Jacobbrewer1/ticketeer/pkg/custom"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
)

// EmbedsDocument is the persisted form of embeds.json.
type EmbedsDocument struct {
	SavedEmbeds map[string]*entities.EmbedRecord `json:"saved_embeds" bson:"saved_embeds"`
	Templates   map[string]any                   `json:"templates" bson:"templates"`
	Statistics  entities.EmbedStatistics         `json:"statistics" bson:"statistics"`
}

// TicketsDocument is the persisted form of tickets.json.
type TicketsDocument struct {
	ActiveTickets   map[string]*entities.Ticket `json:"active_tickets" bson:"active_tickets"`
	ClosedTickets   map[string]*entities.Ticket `json:"closed_tickets" bson:"closed_tickets"`
	ArchivedTickets map[string]*entities.Ticket `json:"archived_tickets" bson:"archived_tickets"`
	Statistics      entities.TicketStatistics   `json:"statistics" bson:"statistics"`
}

// TemplatesDocument is the persisted form of templates.json.
type TemplatesDocument struct {
	CustomTemplates map[string]*entities.Template `json:"custom_templates" bson:"custom_templates"`
	UserTemplates   map[string]any                `json:"user_templates" bson:"user_templates"`
}

// Backup is a full snapshot of every document.
type Backup struct {
	Timestamp custom.Datetime    `json:"timestamp" bson:"timestamp"`
	Version   string             `json:"version" bson:"version"`
	Embeds    *EmbedsDocument    `json:"embeds" bson:"embeds"`
	Tickets   *TicketsDocument   `json:"tickets" bson:"tickets"`
	Templates *TemplatesDocument `json:"templates" bson:"templates"`
	Settings  entities.Settings  `json:"settings" bson:"settings"`
}

// backupVersion is stamped on every snapshot.
const backupVersion = "1.0"

func defaultEmbeds() *EmbedsDocument {
	return &EmbedsDocument{
		SavedEmbeds: make(map[string]*entities.EmbedRecord),
		Templates:   make(map[string]any),
	}
}

func defaultTickets() *TicketsDocument {
	return &TicketsDocument{
		ActiveTickets:   make(map[string]*entities.Ticket),
		ClosedTickets:   make(map[string]*entities.Ticket),
		ArchivedTickets: make(map[string]*entities.Ticket),
	}
}

func defaultTemplates() *TemplatesDocument {
	return &TemplatesDocument{
		CustomTemplates: make(map[string]*entities.Template),
		UserTemplates:   make(map[string]any),
	}
}

// defaultSettings only holds values that survive a JSON round trip unchanged.
func defaultSettings() entities.Settings {
	return entities.Settings{
		entities.SettingsGuild: {},
		entities.SettingsEmbedDefaults: {
			"color":       "00AE86",
			"footer_text": "Powered by Discord Bot",
			"timestamp":   true,
		},
		entities.SettingsTickets: {
			"auto_close_inactive": false,
			"inactive_hours":      float64(24),
			"log_channel":         nil,
		},
	}
}

func (d *EmbedsDocument) normalize() {
	if d.SavedEmbeds == nil {
		d.SavedEmbeds = make(map[string]*entities.EmbedRecord)
	}
	if d.Templates == nil {
		d.Templates = make(map[string]any)
	}
}

func (d *TicketsDocument) normalize() {
	if d.ActiveTickets == nil {
		d.ActiveTickets = make(map[string]*entities.Ticket)
	}
	if d.ClosedTickets == nil {
		d.ClosedTickets = make(map[string]*entities.Ticket)
	}
	if d.ArchivedTickets == nil {
		d.ArchivedTickets = make(map[string]*entities.Ticket)
	}

	// The map holding a record is its bucket, whatever the record says.
	for _, b := range entities.Buckets {
		m := d.bucket(b)
		for id, t := range m {
			if t == nil {
				delete(m, id)
				continue
			}
			t.Bucket = b
			if t.ChannelID == "" {
				t.ChannelID = id
			}
		}
	}
}

func (d *TemplatesDocument) normalize() {
	if d.CustomTemplates == nil {
		d.CustomTemplates = make(map[string]*entities.Template)
	}
	if d.UserTemplates == nil {
		d.UserTemplates = make(map[string]any)
	}
}

// bucket returns the map holding the tickets of b.
func (d *TicketsDocument) bucket(b entities.Bucket) map[string]*entities.Ticket {
	switch b {
	case entities.BucketActive:
		return d.ActiveTickets
	case entities.BucketClosed:
		return d.ClosedTickets
	case entities.BucketArchived:
		return d.ArchivedTickets
	}
	return nil
}

func (d *EmbedsDocument) copy() *EmbedsDocument {
	c := &EmbedsDocument{
		SavedEmbeds: make(map[string]*entities.EmbedRecord, len(d.SavedEmbeds)),
		Templates:   make(map[string]any, len(d.Templates)),
		Statistics:  d.Statistics,
	}
	if d.Statistics.LastCreated != nil {
		c.Statistics.LastCreated = d.Statistics.LastCreated.Ptr()
	}
	for k, v := range d.SavedEmbeds {
		c.SavedEmbeds[k] = v.Copy()
	}
	for k, v := range d.Templates {
		c.Templates[k] = v
	}
	return c
}

func (d *TicketsDocument) copy() *TicketsDocument {
	c := defaultTickets()
	c.Statistics = d.Statistics
	for _, b := range entities.Buckets {
		dst := c.bucket(b)
		for k, v := range d.bucket(b) {
			dst[k] = v.Copy()
		}
	}
	return c
}

func (d *TemplatesDocument) copy() *TemplatesDocument {
	c := &TemplatesDocument{
		CustomTemplates: make(map[string]*entities.Template, len(d.CustomTemplates)),
		UserTemplates:   make(map[string]any, len(d.UserTemplates)),
	}
	for k, v := range d.CustomTemplates {
		c.CustomTemplates[k] = v.Copy()
	}
	for k, v := range d.UserTemplates {
		c.UserTemplates[k] = v
	}
	return c
}

func copySettings(s entities.Settings) entities.Settings {
	c := make(entities.Settings, len(s))
	for category, values := range s {
		inner := make(map[string]any, len(values))
		for k, v := range values {
			inner[k] = v
		}
		c[category] = inner
	}
	return c
}
