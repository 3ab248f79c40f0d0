package entities

import "github.com/Jacobbrewer1/ticketeer/pkg/custom"

// Template is a user saved embed template.
type Template struct {
	Name        string          `json:"name" bson:"name"`
	Title       string          `json:"title" bson:"title"`
	Description string          `json:"description" bson:"description"`
	Color       *int            `json:"color,omitempty" bson:"color,omitempty"`
	Thumbnail   string          `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Image       string          `json:"image,omitempty" bson:"image,omitempty"`
	Footer      string          `json:"footer,omitempty" bson:"footer,omitempty"`
	AuthorID    string          `json:"author_id" bson:"author_id"`
	CreatedAt   custom.Datetime `json:"created_at" bson:"created_at"`
}

// Copy returns a deep copy of the template.
func (t *Template) Copy() *Template {
	if t == nil {
		return nil
	}
	c := *t
	if t.Color != nil {
		col := *t.Color
		c.Color = &col
	}
	return &c
}

// Settings maps a settings category to its options.
type Settings map[string]map[string]any

const (
	SettingsGuild         = "guild_settings"
	SettingsEmbedDefaults = "embed_defaults"
	SettingsTickets       = "ticket_settings"
)
