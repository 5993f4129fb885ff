package store

import (
	"context"
	"errors"
)

// RetryOnConflict reruns fn while it fails with ErrConflict, up to attempts
// times in total. fn must be a complete unit of work (normally one
// Transaction) so a rerun starts from freshly read state.
func RetryOnConflict(ctx context.Context, attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); !errors.Is(err, ErrConflict) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return err
}

// Atomically runs fn in one transaction on gw and reruns the whole
// transaction on ErrConflict.
func Atomically(ctx context.Context, gw Gateway, attempts int, fn func(tx Gateway) error) error {
	return RetryOnConflict(ctx, attempts, func() error {
		return gw.Transaction(ctx, fn)
	})
}
