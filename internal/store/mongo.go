package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoGateway implements Gateway over a MongoDB database. Collections are
// addressed by name on every call; the driver owns pooling and concurrency.
type MongoGateway struct {
	db   *mongo.Database
	opts Options
}

func NewMongoGateway(db *mongo.Database, opts Options) *MongoGateway {
	return &MongoGateway{db: db, opts: opts}
}

func (g *MongoGateway) col(name string) (*mongo.Collection, error) {
	if name == "" {
		return nil, ErrInvalidCollection
	}
	return g.db.Collection(name), nil
}

func (g *MongoGateway) Create(ctx context.Context, collection string, fields Fields) (ID, error) {
	col, err := g.col(collection)
	if err != nil {
		return ID{}, err
	}
	doc, created, updated := g.opts.stampCreate(fields)
	id := NewID()
	rec := bson.M{keyID: id.oid, FieldCreatedAt: created, FieldUpdatedAt: updated}
	for k, v := range doc {
		rec[k] = v
	}
	if _, err := col.InsertOne(ctx, rec); err != nil {
		return ID{}, classify("insert", err)
	}
	return id, nil
}

func (g *MongoGateway) Get(ctx context.Context, collection, id string) (*Document, error) {
	col, err := g.col(collection)
	if err != nil {
		return nil, err
	}
	key, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	var raw bson.M
	if err := col.FindOne(ctx, bson.M{keyID: key.oid}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, classify("find one", err)
	}
	return fromRaw(raw)
}

func (g *MongoGateway) List(ctx context.Context, collection string, opts ListOptions) ([]*Document, error) {
	col, err := g.col(collection)
	if err != nil {
		return nil, err
	}
	filter, err := mongoFilter(opts.Filter)
	if err != nil {
		return nil, err
	}
	findOpts := options.Find().SetSort(bson.D{{Key: FieldUpdatedAt, Value: -1}, {Key: keyID, Value: 1}})
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	cur, err := col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, classify("find", err)
	}
	defer cur.Close(ctx)

	out := []*Document{}
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", collection, err)
		}
		d, err := fromRaw(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := cur.Err(); err != nil {
		return nil, classify("cursor", err)
	}
	return out, nil
}

func (g *MongoGateway) Update(ctx context.Context, collection, id string, fields Fields) (bool, error) {
	col, err := g.col(collection)
	if err != nil {
		return false, err
	}
	key, err := ParseID(id)
	if err != nil {
		return false, err
	}
	set, now := g.opts.stampUpdate(fields)
	// pipeline form so updated_at never drops below the stored created_at;
	// user values are wrapped in $literal to keep "$..." strings inert
	payload := bson.M{FieldUpdatedAt: bson.M{"$max": bson.A{now, "$" + FieldCreatedAt}}}
	for k, v := range set {
		payload[k] = bson.M{"$literal": v}
	}
	pipeline := mongo.Pipeline{{{Key: "$set", Value: payload}}}
	res, err := col.UpdateOne(ctx, bson.M{keyID: key.oid}, pipeline)
	if err != nil {
		return false, classify("update", err)
	}
	return res.MatchedCount > 0, nil
}

func (g *MongoGateway) Delete(ctx context.Context, collection, id string) (bool, error) {
	col, err := g.col(collection)
	if err != nil {
		return false, err
	}
	key, err := ParseID(id)
	if err != nil {
		return false, err
	}
	res, err := col.DeleteOne(ctx, bson.M{keyID: key.oid})
	if err != nil {
		return false, classify("delete", err)
	}
	return res.DeletedCount > 0, nil
}

func (g *MongoGateway) Collections(ctx context.Context) ([]string, error) {
	names, err := g.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, classify("list collections", err)
	}
	sort.Strings(names)
	return names, nil
}

func mongoFilter(f Fields) (bson.M, error) {
	filter := bson.M{}
	for k, v := range f {
		switch k {
		case FieldID, keyID:
			s, _ := v.(string)
			id, err := ParseID(s)
			if err != nil {
				return nil, err
			}
			filter[keyID] = id.oid
		default:
			filter[k] = v
		}
	}
	return filter, nil
}

// classify maps driver connectivity failures onto ErrStoreUnavailable and
// wraps everything else with the failed operation.
func classify(op string, err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("mongo %s: %w", op, err)
}
