package entities

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Jacobbrewer1/ticketeer/pkg/custom"
)

// EmbedKind is the composer that produced an embed.
type EmbedKind string

const (
	EmbedKindBasic    EmbedKind = "basic"
	EmbedKindAdvanced EmbedKind = "advanced"
	EmbedKindTemplate EmbedKind = "template"
	EmbedKindProduct  EmbedKind = "product"
)

// EmbedField is a single name/value pair of an embed.
type EmbedField struct {
	Name   string `json:"name" bson:"name"`
	Value  string `json:"value" bson:"value"`
	Inline bool   `json:"inline" bson:"inline"`
}

// Product holds the product specific attributes of a product embed.
type Product struct {
	Name         string `json:"name" bson:"name"`
	Category     string `json:"category" bson:"category"`
	Price        string `json:"price" bson:"price"`
	OrderChannel string `json:"order_channel,omitempty" bson:"order_channel,omitempty"`
}

// EmbedConfig is the configuration an embed was built from.
type EmbedConfig struct {
	Kind        EmbedKind    `json:"type" bson:"type"`
	Title       string       `json:"title,omitempty" bson:"title,omitempty"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Color       int          `json:"color" bson:"color"`
	URL         string       `json:"url,omitempty" bson:"url,omitempty"`
	Image       string       `json:"image,omitempty" bson:"image,omitempty"`
	Thumbnail   string       `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Footer      string       `json:"footer,omitempty" bson:"footer,omitempty"`
	FooterIcon  string       `json:"footer_icon,omitempty" bson:"footer_icon,omitempty"`
	Author      string       `json:"author,omitempty" bson:"author,omitempty"`
	AuthorIcon  string       `json:"author_icon,omitempty" bson:"author_icon,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty" bson:"fields,omitempty"`
	Timestamp   bool         `json:"timestamp" bson:"timestamp"`

	// Template is the name of the preset a templated embed was built from.
	Template string `json:"template,omitempty" bson:"template,omitempty"`

	Product *Product `json:"product,omitempty" bson:"product,omitempty"`
}

// legacyProduct holds the flat product keys older records were written with.
type legacyProduct struct {
	Name         string `json:"nama"`
	Category     string `json:"jenis"`
	Price        string `json:"harga"`
	Description  string `json:"deskripsi"`
	Image        string `json:"gambar"`
	Color        string `json:"warna"`
	OrderChannel string `json:"order_channel"`
}

// UnmarshalJSON accepts the color as a number, a hex string or null, and lifts the
// flat product keys of older records into Product.
func (c *EmbedConfig) UnmarshalJSON(data []byte) error {
	type plain EmbedConfig
	aux := struct {
		*plain
		Color json.RawMessage `json:"color"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Color = decodeColor(aux.Color)

	if c.Kind != EmbedKindProduct || c.Product != nil {
		return nil
	}
	var old legacyProduct
	if err := json.Unmarshal(data, &old); err != nil {
		return err
	}
	if old.Name == "" {
		return nil
	}
	c.Product = &Product{
		Name:         old.Name,
		Category:     old.Category,
		Price:        old.Price,
		OrderChannel: old.OrderChannel,
	}
	if c.Description == "" {
		c.Description = old.Description
	}
	if c.Image == "" {
		c.Image = old.Image
	}
	if c.Color == 0 {
		c.Color = parseHexColor(old.Color)
	}
	if c.Title == "" {
		c.Title = "🛒 " + old.Name
	}
	return nil
}

// decodeColor reads a stored color. Null, absent and unreadable values are 0.
func decodeColor(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return parseHexColor(s)
	}
	return 0
}

func parseHexColor(s string) int {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "#"), "0x")
	v, err := strconv.ParseInt(s, 16, 32)
	if err != nil || v < 0 || v > 0xFFFFFF {
		return 0
	}
	return int(v)
}

// EmbedRecord is the stored provenance of a message the bot posted.
type EmbedRecord struct {
	MessageID   string           `json:"message_id" bson:"message_id"`
	Config      EmbedConfig      `json:"config" bson:"config"`
	AuthorID    string           `json:"author_id" bson:"author_id"`
	ChannelID   string           `json:"channel_id" bson:"channel_id"`
	CreatedAt   custom.Datetime  `json:"created_at" bson:"created_at"`
	EditedCount int              `json:"edited_count" bson:"edited_count"`
	LastEdited  *custom.Datetime `json:"last_edited,omitempty" bson:"last_edited,omitempty"`

	// Deleted marks a record whose message was removed. The record itself is kept.
	Deleted   bool             `json:"deleted,omitempty" bson:"deleted,omitempty"`
	DeletedBy string           `json:"deleted_by,omitempty" bson:"deleted_by,omitempty"`
	DeletedAt *custom.Datetime `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// IsProduct reports whether the record describes a live product.
func (r *EmbedRecord) IsProduct() bool {
	return r.Config.Kind == EmbedKindProduct && r.Config.Product != nil && !r.Deleted
}

// Copy returns a deep copy of the record.
func (r *EmbedRecord) Copy() *EmbedRecord {
	if r == nil {
		return nil
	}
	c := *r
	c.Config = r.Config.Copy()
	if r.LastEdited != nil {
		c.LastEdited = r.LastEdited.Ptr()
	}
	if r.DeletedAt != nil {
		c.DeletedAt = r.DeletedAt.Ptr()
	}
	return &c
}

// Copy returns a deep copy of the configuration.
func (c EmbedConfig) Copy() EmbedConfig {
	if c.Fields != nil {
		c.Fields = append([]EmbedField(nil), c.Fields...)
	}
	if c.Product != nil {
		p := *c.Product
		c.Product = &p
	}
	return c
}

// EmbedStatistics are the running counters of the embeds document.
type EmbedStatistics struct {
	TotalCreated int              `json:"total_created" bson:"total_created"`
	TotalEdited  int              `json:"total_edited" bson:"total_edited"`
	LastCreated  *custom.Datetime `json:"last_created" bson:"last_created"`
}

// TicketStatistics are the running counters of the tickets document.
type TicketStatistics struct {
	TotalCreated  int `json:"total_created" bson:"total_created"`
	TotalClosed   int `json:"total_closed" bson:"total_closed"`
	TotalArchived int `json:"total_archived" bson:"total_archived"`
}
