package store

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"
)

// MemoryGateway keeps documents in process memory. It follows the same
// contract as MongoGateway and backs unit tests and STORE_DRIVER=memory.
type MemoryGateway struct {
	opts Options

	mu          sync.RWMutex
	collections map[string]map[ID]*Document
}

func NewMemoryGateway(opts Options) *MemoryGateway {
	return &MemoryGateway{opts: opts, collections: make(map[string]map[ID]*Document)}
}

func (m *MemoryGateway) Create(ctx context.Context, collection string, fields Fields) (ID, error) {
	if collection == "" {
		return ID{}, ErrInvalidCollection
	}
	doc, created, updated := m.opts.stampCreate(fields)
	stored, err := roundTrip(doc)
	if err != nil {
		return ID{}, err
	}
	id := NewID()

	m.mu.Lock()
	defer m.mu.Unlock()
	col, ok := m.collections[collection]
	if !ok {
		col = make(map[ID]*Document)
		m.collections[collection] = col
	}
	col[id] = &Document{ID: id, CreatedAt: created, UpdatedAt: updated, Fields: stored}
	return id, nil
}

func (m *MemoryGateway) Get(ctx context.Context, collection, id string) (*Document, error) {
	if collection == "" {
		return nil, ErrInvalidCollection
	}
	key, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.collections[collection][key]
	if !ok {
		return nil, nil
	}
	return cloneDocument(d), nil
}

func (m *MemoryGateway) List(ctx context.Context, collection string, opts ListOptions) ([]*Document, error) {
	if collection == "" {
		return nil, ErrInvalidCollection
	}
	filter, err := m.compileFilter(opts.Filter)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	out := []*Document{}
	for _, d := range m.collections[collection] {
		if filter(d) {
			out = append(out, cloneDocument(d))
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID.Less(out[j].ID)
	})
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *MemoryGateway) Update(ctx context.Context, collection, id string, fields Fields) (bool, error) {
	if collection == "" {
		return false, ErrInvalidCollection
	}
	key, err := ParseID(id)
	if err != nil {
		return false, err
	}
	set, now := m.opts.stampUpdate(fields)
	stored, err := roundTrip(set)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.collections[collection][key]
	if !ok {
		return false, nil
	}
	for k, v := range stored {
		d.Fields[k] = v
	}
	if now.Before(d.CreatedAt) {
		now = d.CreatedAt
	}
	d.UpdatedAt = now
	return true, nil
}

func (m *MemoryGateway) Delete(ctx context.Context, collection, id string) (bool, error) {
	if collection == "" {
		return false, ErrInvalidCollection
	}
	key, err := ParseID(id)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	col := m.collections[collection]
	if _, ok := col[key]; !ok {
		return false, nil
	}
	delete(col, key)
	return true, nil
}

// Collections lists collections that currently hold documents.
func (m *MemoryGateway) Collections(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.collections))
	for name, col := range m.collections {
		if len(col) > 0 {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemoryGateway) compileFilter(f Fields) (func(*Document) bool, error) {
	if len(f) == 0 {
		return func(*Document) bool { return true }, nil
	}
	var (
		byID   *ID
		times  = map[string]time.Time{}
		values = Fields{}
	)
	for k, v := range f {
		switch k {
		case FieldID, keyID:
			s, _ := v.(string)
			id, err := ParseID(s)
			if err != nil {
				return nil, err
			}
			byID = &id
		case FieldCreatedAt, FieldUpdatedAt:
			t, _ := callerTime(v)
			times[k] = t
		default:
			values[k] = v
		}
	}
	want, err := roundTrip(values)
	if err != nil {
		return nil, err
	}
	return func(d *Document) bool {
		if byID != nil && d.ID != *byID {
			return false
		}
		if t, ok := times[FieldCreatedAt]; ok && !d.CreatedAt.Equal(t) {
			return false
		}
		if t, ok := times[FieldUpdatedAt]; ok && !d.UpdatedAt.Equal(t) {
			return false
		}
		for k, v := range want {
			got, ok := d.Fields[k]
			if !ok || !reflect.DeepEqual(got, v) {
				return false
			}
		}
		return true
	}, nil
}

func cloneDocument(d *Document) *Document {
	fields := make(Fields, len(d.Fields))
	for k, v := range d.Fields {
		fields[k] = normalize(v)
	}
	return &Document{ID: d.ID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt, Fields: fields}
}
