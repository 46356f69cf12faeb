package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deardiary/deardiary/backend/go-services/internal/config"
	"github.com/deardiary/deardiary/backend/go-services/internal/store"
	"github.com/deardiary/deardiary/backend/go-services/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri).SetAppName("deardiary-notes").SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// backoff between connection attempts; tests shorten it.
var initialBackoff = time.Second

// Open builds the process-wide document gateway from configuration.
//
// A missing DATABASE_URL or DATABASE_NAME yields the unavailable gateway
// without attempting a connection. Connection failures are retried with
// exponential backoff and then also degrade to the unavailable gateway.
// The returned close func releases the client and is safe to call always.
func Open(ctx context.Context, cfg *config.Config) (store.Gateway, func(context.Context)) {
	noop := func(context.Context) {}
	policy, _ := store.ParseCreatedAtPolicy(cfg.Store.CreatedAtPolicy)
	opts := store.Options{CreatedAt: policy}

	if cfg.Store.Driver == config.DriverMemory {
		logger.Warnf("using in-memory document store; data is lost on restart")
		return store.Instrumented(store.NewMemoryGateway(opts)), noop
	}
	if !cfg.MongoDB.Configured() {
		logger.Warnf("DATABASE_URL/DATABASE_NAME not set; document store unavailable")
		return store.Instrumented(store.Unavailable(fmt.Errorf("DATABASE_URL and DATABASE_NAME must be set"))), noop
	}

	attempts := cfg.MongoDB.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := initialBackoff
	var client *mongo.Client
	var errConn error
retry:
	for attempt := 1; attempt <= attempts; attempt++ {
		client, errConn = ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if errConn == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, attempts, errConn)
		if attempt < attempts {
			select {
			case <-ctx.Done():
				errConn = fmt.Errorf("connect aborted: %w", ctx.Err())
				break retry
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}
	if errConn != nil {
		logger.Errorf("could not connect to MongoDB after %d attempts: %v", attempts, errConn)
		return store.Instrumented(store.Unavailable(errConn)), noop
	}

	logger.Infof("connected to MongoDB database %q", cfg.MongoDB.Database)
	g := store.NewMongoGateway(client.Database(cfg.MongoDB.Database), opts)
	return store.Instrumented(g), func(ctx context.Context) { _ = client.Disconnect(ctx) }
}
