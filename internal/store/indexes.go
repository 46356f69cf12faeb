package store

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// IndexSpec names a secondary index. A field prefixed with "-" is descending.
type IndexSpec struct {
	Collection string
	Fields     []string
}

// Indexer is implemented by gateways backed by a store with secondary indexes.
type Indexer interface {
	EnsureIndexes(ctx context.Context, specs []IndexSpec) error
}

// EnsureIndexes creates specs on g when it supports indexes; otherwise it is a no-op.
func EnsureIndexes(ctx context.Context, g Gateway, specs []IndexSpec) error {
	for {
		switch v := g.(type) {
		case *instrumented:
			g = v.next
			continue
		case Indexer:
			return v.EnsureIndexes(ctx, specs)
		}
		return nil
	}
}

// EnsureIndexes creates any missing index. Creating an existing index is a no-op on the server.
func (g *MongoGateway) EnsureIndexes(ctx context.Context, specs []IndexSpec) error {
	byCollection := map[string][]mongo.IndexModel{}
	var order []string
	for _, s := range specs {
		if s.Collection == "" || len(s.Fields) == 0 {
			return fmt.Errorf("index spec %+v: %w", s, ErrInvalidCollection)
		}
		keys := bson.D{}
		for _, f := range s.Fields {
			dir := 1
			if strings.HasPrefix(f, "-") {
				f, dir = f[1:], -1
			}
			if f == FieldID {
				f = keyID
			}
			keys = append(keys, bson.E{Key: f, Value: dir})
		}
		if _, seen := byCollection[s.Collection]; !seen {
			order = append(order, s.Collection)
		}
		byCollection[s.Collection] = append(byCollection[s.Collection], mongo.IndexModel{Keys: keys})
	}
	for _, name := range order {
		if _, err := g.db.Collection(name).Indexes().CreateMany(ctx, byCollection[name]); err != nil {
			return classify("create indexes on "+name, err)
		}
	}
	return nil
}
