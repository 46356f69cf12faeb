package store

import (
	"context"
	"fmt"
)

// unavailable is the degraded gateway used when the store was never
// configured or could not be reached at startup.
type unavailable struct {
	err error
}

// Unavailable returns a Gateway whose every operation fails with
// ErrStoreUnavailable. reason, when non-nil, is included in the message.
func Unavailable(reason error) Gateway {
	err := ErrStoreUnavailable
	if reason != nil {
		err = fmt.Errorf("%w: %v", ErrStoreUnavailable, reason)
	}
	return unavailable{err: err}
}

// IsAvailable reports whether g can reach a store.
func IsAvailable(g Gateway) bool {
	for {
		switch v := g.(type) {
		case unavailable:
			return false
		case *instrumented:
			g = v.next
		default:
			return true
		}
	}
}

func (u unavailable) Create(context.Context, string, Fields) (ID, error) { return ID{}, u.err }

func (u unavailable) Get(context.Context, string, string) (*Document, error) { return nil, u.err }

func (u unavailable) List(context.Context, string, ListOptions) ([]*Document, error) {
	return nil, u.err
}

func (u unavailable) Update(context.Context, string, string, Fields) (bool, error) { return false, u.err }

func (u unavailable) Delete(context.Context, string, string) (bool, error) { return false, u.err }

func (u unavailable) Collections(context.Context) ([]string, error) { return nil, u.err }
