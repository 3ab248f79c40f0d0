package custom

import (
	"bytes"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Datetime represents a datetime stored with second precision in UTC.
type Datetime time.Time

// Now returns the current time as a Datetime.
func Now() Datetime {
	return NewDatetime(time.Now())
}

// NewDatetime truncates t to whole seconds in UTC so that it survives an RFC3339 round trip unchanged.
func NewDatetime(t time.Time) Datetime {
	return Datetime(t.UTC().Truncate(time.Second))
}

// Time returns the underlying time.
func (d Datetime) Time() time.Time {
	return time.Time(d)
}

// Ptr returns a pointer to a copy of d.
func (d Datetime) Ptr() *Datetime {
	return &d
}

// IsZero reports whether d is the zero time.
func (d Datetime) IsZero() bool {
	return time.Time(d).IsZero()
}

// Unix returns the unix seconds of d.
func (d Datetime) Unix() int64 {
	return time.Time(d).Unix()
}

// MarshalJSON implements the json.Marshaler interface.
func (d Datetime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf(`%q`, time.Time(d).UTC().Format(time.RFC3339))), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Datetime) UnmarshalJSON(text []byte) error {
	text = bytes.TrimSpace(text)
	if bytes.Equal(text, []byte("null")) || len(text) == 0 {
		*d = Datetime{}
		return nil
	}
	text = bytes.Trim(text, `"`)

	t, err := time.Parse(time.RFC3339, string(text))
	if err != nil {
		return fmt.Errorf("invalid datetime %q: %w", text, err)
	}
	*d = NewDatetime(t)
	return nil
}

func (d Datetime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if d.IsZero() {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(time.Time(d).UTC().Format(time.RFC3339))
}

func (d *Datetime) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bson.TypeNull || len(data) == 0 {
		*d = Datetime{}
		return nil
	}

	raw := bson.RawValue{Type: t, Value: data}
	str, ok := raw.StringValueOK()
	if !ok {
		return fmt.Errorf("invalid datetime bson type %s", t)
	}

	parsed, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return fmt.Errorf("invalid datetime: %s", str)
	}
	*d = NewDatetime(parsed)
	return nil
}

// String implements the fmt.Stringer interface.
func (d Datetime) String() string {
	return time.Time(d).Format(time.RFC3339)
}
