package store

import (
	"context"
	"time"
)

// Gateway is a collection-agnostic access layer over a document store.
//
// Absent documents are reported as a nil document or a false flag, never as an
// error. Implementations return ErrStoreUnavailable when no connection exists
// and ErrInvalidIdentifier for malformed ids.
type Gateway interface {
	Create(ctx context.Context, collection string, fields Fields) (ID, error)
	Get(ctx context.Context, collection, id string) (*Document, error)
	List(ctx context.Context, collection string, opts ListOptions) ([]*Document, error)
	Update(ctx context.Context, collection, id string, fields Fields) (bool, error)
	Delete(ctx context.Context, collection, id string) (bool, error)
}

// Inspector is implemented by gateways that can describe the backing store.
type Inspector interface {
	Collections(ctx context.Context) ([]string, error)
}

// ListOptions narrows a List call. Filter entries must all match exactly;
// Limit <= 0 means unlimited.
type ListOptions struct {
	Filter Fields
	Limit  int
}

// CreatedAtPolicy decides whether a caller-supplied created_at survives Create.
type CreatedAtPolicy int

const (
	// HonorCreatedAt keeps a caller-supplied created_at and stamps otherwise.
	HonorCreatedAt CreatedAtPolicy = iota
	// StampCreatedAt always stamps the current time.
	StampCreatedAt
)

// ParseCreatedAtPolicy maps "honor" / "stamp" to a policy.
func ParseCreatedAtPolicy(s string) (CreatedAtPolicy, bool) {
	switch s {
	case "", "honor":
		return HonorCreatedAt, true
	case "stamp":
		return StampCreatedAt, true
	}
	return HonorCreatedAt, false
}

// Options configure a gateway implementation.
type Options struct {
	CreatedAt CreatedAtPolicy
	Clock     *Clock
}

func (o Options) clock() *Clock {
	if o.Clock == nil {
		return defaultClock
	}
	return o.Clock
}

// stampCreate returns the fields to insert plus the effective timestamps.
func (o Options) stampCreate(fields Fields) (Fields, time.Time, time.Time) {
	doc := userFields(fields, FieldCreatedAt, FieldUpdatedAt)
	now := o.clock().Now()
	created, updated := now, now
	if o.CreatedAt == HonorCreatedAt {
		if t, ok := callerTime(fields[FieldCreatedAt]); ok {
			created = t
			if created.After(updated) {
				updated = created
			}
		}
	}
	return doc, created, updated
}

// stampUpdate returns the $set payload for a partial update. Callers keep
// updated_at at or after the document's own created_at.
func (o Options) stampUpdate(fields Fields) (Fields, time.Time) {
	set := userFields(fields, FieldCreatedAt, FieldUpdatedAt)
	now := o.clock().Now()
	return set, now
}

// callerTime accepts a time.Time, *time.Time or an RFC 3339 string.
func callerTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed.UTC().Truncate(time.Millisecond), true
		}
	case time.Time:
		if !t.IsZero() {
			return t.UTC().Truncate(time.Millisecond), true
		}
	case *time.Time:
		if t != nil && !t.IsZero() {
			return t.UTC().Truncate(time.Millisecond), true
		}
	}
	return time.Time{}, false
}
