package storage

import (
	"context"
	"io"
	"time"

	"github.com/sony/gobreaker"

	"github.com/deardiary/deardiary/backend/go-services/pkg/logger"
)

// ObjectStore is the subset of MinIOStorage used for export archiving.
type ObjectStore interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	DownloadFile(ctx context.Context, key string) (io.ReadCloser, error)
	GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// Breaker guards an ObjectStore with a circuit breaker so an unreachable
// object store fails fast instead of delaying every export.
type Breaker struct {
	next ObjectStore
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker trips after at least 5 calls in a 30s window with a 60% failure
// rate and lets a trial call through after cooldown.
func WithBreaker(next ObjectStore, name string, cooldown time.Duration) *Breaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("object store breaker %s: %s -> %s", name, from, to)
		},
	}
	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *Breaker) UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.UploadFile(ctx, key, reader, size, contentType)
	})
	return err
}

func (b *Breaker) DownloadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.DownloadFile(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	return v.(io.ReadCloser), nil
}

func (b *Breaker) GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.GetPresignedURL(ctx, key, expires)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// State reports the breaker state ("closed", "open" or "half-open").
func (b *Breaker) State() string { return b.cb.State().String() }
