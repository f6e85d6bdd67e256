// Package kvutil holds helpers for NATS JetStream key-value buckets.
package kvutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// DefaultMaxAttempts is used when EnsureBucket is given a non-positive attempt count.
const DefaultMaxAttempts = 3

// EnsureBucket opens the bucket named in cfg, creating it if needed.
//
// Several engines may share one bucket, so a concurrent create is expected:
// ErrBucketExists falls back to opening the bucket, and other failures are
// retried with exponential backoff (10ms, 20ms, 40ms, ...).
//
// Parameters:
//   - ctx: Bounds the whole operation including backoff waits
//   - js: JetStream context
//   - cfg: Bucket configuration used on create
//   - maxAttempts: Attempts before giving up (DefaultMaxAttempts if <= 0)
//
// Returns:
//   - jetstream.KeyValue: The bucket handle
//   - error: Last failure wrapped with the bucket name
//
// Example:
//
//	kv, err := kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
//	    Bucket:  "fitforge-snapshots",
//	    History: 5,
//	}, 0)
func EnsureBucket(
	ctx context.Context,
	js jetstream.JetStream,
	cfg jetstream.KeyValueConfig,
	maxAttempts int,
) (jetstream.KeyValue, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var lastErr error
	for attempt := range maxAttempts {
		kv, err := js.CreateKeyValue(ctx, cfg)
		switch {
		case err == nil:
			return kv, nil
		case errors.Is(err, jetstream.ErrBucketExists):
			kv, err = js.KeyValue(ctx, cfg.Bucket)
			if err == nil {
				return kv, nil
			}
			lastErr = fmt.Errorf("open existing bucket: %w", err)
		default:
			lastErr = err
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("ensure bucket %s: %w", cfg.Bucket, ctx.Err())
		}
		if attempt == maxAttempts-1 {
			break
		}

		backoff := time.Duration(10<<attempt) * time.Millisecond //nolint:gosec // attempt is small
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("ensure bucket %s: %w", cfg.Bucket, ctx.Err())
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("ensure bucket %s after %d attempts: %w", cfg.Bucket, maxAttempts, lastErr)
}
