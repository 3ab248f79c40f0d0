package entities

import (
	"fmt"

	"github.com/Jacobbrewer1/ticketeer/pkg/custom"
)

// TicketType is the kind of ticket a user opened.
type TicketType string

const (
	TicketTypeGeneral TicketType = "general"
	TicketTypeOrder   TicketType = "order"
	TicketTypeCS      TicketType = "cs"
)

// ParseTicketType returns the ticket type for s. An empty string is a general ticket.
func ParseTicketType(s string) (TicketType, error) {
	switch TicketType(s) {
	case "", TicketTypeGeneral:
		return TicketTypeGeneral, nil
	case TicketTypeOrder:
		return TicketTypeOrder, nil
	case TicketTypeCS, "support":
		return TicketTypeCS, nil
	}
	return "", fmt.Errorf("unknown ticket type %q", s)
}

// Prefix is the channel name prefix used for tickets of this type.
func (t TicketType) Prefix() string {
	if t == TicketTypeGeneral || t == "" {
		return "ticket"
	}
	return string(t)
}

// Bucket is the lifecycle state of a ticket.
type Bucket int

const (
	BucketActive Bucket = iota + 1
	BucketClosed
	BucketArchived
)

// Buckets lists every bucket in lifecycle order.
var Buckets = []Bucket{BucketActive, BucketClosed, BucketArchived}

func (b Bucket) String() string {
	switch b {
	case BucketActive:
		return "active"
	case BucketClosed:
		return "closed"
	case BucketArchived:
		return "archived"
	}
	return fmt.Sprintf("bucket(%d)", int(b))
}

// CanTransitionTo reports whether a ticket in b may move to next.
// Tickets only ever move forward: active to closed or archived, closed to archived.
func (b Bucket) CanTransitionTo(next Bucket) bool {
	switch b {
	case BucketActive:
		return next == BucketClosed || next == BucketArchived
	case BucketClosed:
		return next == BucketArchived
	case BucketArchived:
		return false
	}
	return false
}

func (b Bucket) MarshalText() ([]byte, error) {
	switch b {
	case BucketActive, BucketClosed, BucketArchived:
		return []byte(b.String()), nil
	}
	return nil, fmt.Errorf("invalid bucket %d", int(b))
}

// UnmarshalText never fails. An unknown value leaves the zero bucket; the document
// holding the ticket decides where it belongs.
func (b *Bucket) UnmarshalText(text []byte) error {
	switch string(text) {
	case "active":
		*b = BucketActive
	case "closed":
		*b = BucketClosed
	case "archived":
		*b = BucketArchived
	default:
		*b = 0
	}
	return nil
}

// Ticket is the stored record of a support ticket channel.
type Ticket struct {
	// ChannelID is the ID of the ticket channel. It is the key of the record.
	ChannelID string `json:"channel_id" bson:"channel_id"`

	// GuildID is the ID of the guild the ticket belongs to.
	GuildID string `json:"guild_id,omitempty" bson:"guild_id,omitempty"`

	// CreatorID is the ID of the user that opened the ticket.
	CreatorID string `json:"creator_id" bson:"creator_id"`

	// CreatorTag is the display tag of the user that opened the ticket.
	CreatorTag string `json:"creator_tag" bson:"creator_tag"`

	// ChannelName is the name the channel was created with.
	ChannelName string `json:"channel_name" bson:"channel_name"`

	Type TicketType `json:"type" bson:"type"`

	// Bucket is the lifecycle state the ticket is in.
	Bucket Bucket `json:"category" bson:"category"`

	CreatedAt custom.Datetime `json:"created_at" bson:"created_at"`

	ClosedAt *custom.Datetime `json:"closed_at,omitempty" bson:"closed_at,omitempty"`
	ClosedBy string           `json:"closed_by,omitempty" bson:"closed_by,omitempty"`

	ArchivedAt *custom.Datetime `json:"archived_at,omitempty" bson:"archived_at,omitempty"`
	ArchivedBy string           `json:"archived_by,omitempty" bson:"archived_by,omitempty"`

	// AutoArchived is set when the ticket went from active to archived in one step.
	AutoArchived bool `json:"auto_archived" bson:"auto_archived"`
}

// Copy returns a deep copy of the ticket.
func (t *Ticket) Copy() *Ticket {
	if t == nil {
		return nil
	}
	c := *t
	if t.ClosedAt != nil {
		c.ClosedAt = t.ClosedAt.Ptr()
	}
	if t.ArchivedAt != nil {
		c.ArchivedAt = t.ArchivedAt.Ptr()
	}
	return &c
}
