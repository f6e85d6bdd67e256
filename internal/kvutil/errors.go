package kvutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/fitforge/fitforge/types"
)

// IsConnectivityError reports whether err is caused by the NATS connection
// rather than by the request itself: timeouts, no servers, disconnects and
// JetStream requests that got no response.
//
// Parameters:
//   - err: Error to check
//
// Returns:
//   - bool: true if the error indicates a connectivity issue
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, types.ErrStoreUnavailable) ||
		errors.Is(err, nats.ErrTimeout) ||
		errors.Is(err, nats.ErrNoServers) ||
		errors.Is(err, nats.ErrDisconnected) ||
		errors.Is(err, nats.ErrConnectionClosed) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "i/o timeout")
}

// Wrap annotates err with op and, for connectivity failures, with
// types.ErrStoreUnavailable so callers can branch on it.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsConnectivityError(err) && !errors.Is(err, types.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w: %w", op, types.ErrStoreUnavailable, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
