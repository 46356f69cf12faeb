package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID identifies a document within its collection. The zero value is not a
// valid identifier.
type ID struct {
	oid primitive.ObjectID
}

// NewID allocates a fresh identifier.
func NewID() ID { return ID{oid: primitive.NewObjectID()} }

// ParseID decodes the 24-character hex form produced by String.
func ParseID(s string) (ID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return ID{oid: oid}, nil
}

func (id ID) String() string { return id.oid.Hex() }

// IsZero reports whether id was never assigned.
func (id ID) IsZero() bool { return id.oid.IsZero() }

// Less orders ids by allocation (insertion) order.
func (id ID) Less(o ID) bool {
	return bytes.Compare(id.oid[:], o.oid[:]) < 0
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *ID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
