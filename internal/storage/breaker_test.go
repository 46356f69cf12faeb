package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
)

type flakyStore struct {
	calls int
	fail  bool
}

func (f *flakyStore) UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	f.calls++
	if f.fail {
		return errors.New("connection refused")
	}
	return nil
}

func (f *flakyStore) DownloadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("connection refused")
	}
	return io.NopCloser(strings.NewReader("%PDF-1.3")), nil
}

func (f *flakyStore) GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	f.calls++
	if f.fail {
		return "", errors.New("connection refused")
	}
	return "https://minio.local/" + key, nil
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	next := &flakyStore{fail: true}
	b := WithBreaker(next, "exports", 50*time.Millisecond)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.Error(t, b.UploadFile(ctx, "k", strings.NewReader("x"), 1, "application/pdf"))
	}
	require.Equal(t, "open", b.State())

	err := b.UploadFile(ctx, "k", strings.NewReader("x"), 1, "application/pdf")
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	require.Equal(t, 5, next.calls)

	// after the cooldown one trial call is let through and closes the breaker on success
	next.fail = false
	time.Sleep(80 * time.Millisecond)
	u, err := b.GetPresignedURL(ctx, "exports/a.pdf", time.Hour)
	require.NoError(t, err)
	require.Equal(t, "https://minio.local/exports/a.pdf", u)
	require.Equal(t, "closed", b.State())

	rc, err := b.DownloadFile(ctx, "exports/a.pdf")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.3", string(body))
}
