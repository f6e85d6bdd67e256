package types

import "context"

// SnapshotStore persists encoded engine snapshots under a name.
//
// Implementations:
//   - store.File: one file per snapshot on an afero filesystem
//   - store.KV: NATS JetStream key-value bucket
type SnapshotStore interface {
	// Put writes the snapshot bytes, replacing any previous entry.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads the snapshot bytes.
	//
	// Returns ErrSnapshotNotFound when name has no entry.
	Get(ctx context.Context, name string) ([]byte, error)
}
