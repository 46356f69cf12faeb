package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reserved field names managed by the gateway.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"

	keyID = "_id"
)

// Fields holds caller-owned document values. Values read back from the store
// are normalised to string, int32, int64, float64, bool, time.Time, []any,
// map[string]any or nil.
type Fields map[string]any

// Document is a schema-less record with gateway-managed identity and timestamps.
type Document struct {
	ID        ID
	CreatedAt time.Time
	UpdatedAt time.Time
	Fields    Fields
}

// String returns the string value of key, or "" when absent or not a string.
func (d *Document) String(key string) string {
	s, _ := d.Fields[key].(string)
	return s
}

// Bool returns the boolean value of key, false when absent.
func (d *Document) Bool(key string) bool {
	b, _ := d.Fields[key].(bool)
	return b
}

// Strings returns the string elements of a list field; non-string elements are skipped.
func (d *Document) Strings(key string) []string {
	out := []string{}
	switch v := d.Fields[key].(type) {
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, v...)
	}
	return out
}

// Has reports whether key is present (even when its value is nil).
func (d *Document) Has(key string) bool {
	_, ok := d.Fields[key]
	return ok
}

// MarshalJSON renders the document as a flat object with a string id.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Fields)+3)
	for k, v := range d.Fields {
		out[k] = v
	}
	out[FieldID] = d.ID.String()
	out[FieldCreatedAt] = d.CreatedAt
	out[FieldUpdatedAt] = d.UpdatedAt
	return json.Marshal(out)
}

// userFields copies f without the keys the gateway owns.
func userFields(f Fields, drop ...string) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	delete(out, FieldID)
	delete(out, keyID)
	for _, k := range drop {
		delete(out, k)
	}
	return out
}

// roundTrip passes f through the BSON codec so in-memory values take the same
// shape they would after a store round trip.
func roundTrip(f Fields) (Fields, error) {
	if len(f) == 0 {
		return Fields{}, nil
	}
	b, err := bson.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	out := make(Fields, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out, nil
}

// fromRaw converts a decoded store record into a Document.
func fromRaw(raw bson.M) (*Document, error) {
	oid, ok := raw[keyID].(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("document has non-ObjectID _id %T", raw[keyID])
	}
	d := &Document{ID: ID{oid: oid}, Fields: make(Fields, len(raw))}
	for k, v := range raw {
		switch k {
		case keyID:
		case FieldCreatedAt:
			d.CreatedAt = asTime(v)
		case FieldUpdatedAt:
			d.UpdatedAt = asTime(v)
		default:
			d.Fields[k] = normalize(v)
		}
	}
	return d, nil
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	}
	return time.Time{}
}

func normalize(v any) any {
	switch t := v.(type) {
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Null, primitive.Undefined:
		return nil
	}
	return v
}
