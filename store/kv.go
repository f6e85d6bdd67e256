package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/zeebo/xxh3"

	"github.com/fitforge/fitforge/internal/kvutil"
	"github.com/fitforge/fitforge/types"
)

// DefaultKVBucket is the bucket used when KVConfig.Bucket is empty.
const DefaultKVBucket = "fitforge-snapshots"

// KVConfig configures the JetStream key-value store.
type KVConfig struct {
	// Bucket is the KV bucket name.
	Bucket string

	// History is the number of revisions kept per key (default 5).
	History uint8

	// Replicas is the bucket replication factor (default 1).
	Replicas int

	// Storage selects file or memory storage (default file).
	Storage jetstream.StorageType

	// MaxAttempts bounds bucket creation retries.
	MaxAttempts int
}

// KV stores snapshots in a NATS JetStream key-value bucket.
//
// A write is skipped when its content matches this store's last write for
// the key and the bucket still holds that revision. A peer write in between
// moves the revision, so the next Put goes through.
type KV struct {
	kv      jetstream.KeyValue
	written *xsync.Map[string, lastWrite]
}

type lastWrite struct {
	digest   uint64
	revision uint64
}

var _ types.SnapshotStore = (*KV)(nil)

// NewKV opens (or creates) the bucket and returns a store on it.
//
// Parameters:
//   - ctx: Bounds bucket creation
//   - js: JetStream context
//   - cfg: Bucket settings
//
// Returns:
//   - *KV: The store
//   - error: Bucket creation error
func NewKV(ctx context.Context, js jetstream.JetStream, cfg KVConfig) (*KV, error) {
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultKVBucket
	}
	if cfg.History == 0 {
		cfg.History = 5
	}
	if cfg.Replicas <= 0 {
		cfg.Replicas = 1
	}

	kv, err := kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket:      cfg.Bucket,
		Description: "fitforge allocation snapshots",
		History:     cfg.History,
		Replicas:    cfg.Replicas,
		Storage:     cfg.Storage,
	}, cfg.MaxAttempts)
	if err != nil {
		return nil, err
	}

	return &KV{kv: kv, written: xsync.NewMap[string, lastWrite]()}, nil
}

// Bucket returns the underlying bucket name.
func (s *KV) Bucket() string {
	return s.kv.Bucket()
}

// Put writes data under name unless the bucket already holds this store's
// identical last write.
func (s *KV) Put(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}

	digest := xxh3.Hash(data)
	if last, ok := s.written.Load(name); ok && last.digest == digest {
		current, err := s.Revision(ctx, name)
		if err != nil {
			return err
		}
		if current == last.revision {
			return nil
		}
	}

	rev, err := s.kv.Put(ctx, name, data)
	if err != nil {
		return kvutil.Wrap("put snapshot "+name, err)
	}
	s.written.Store(name, lastWrite{digest: digest, revision: rev})

	return nil
}

// Get reads the latest revision for name.
func (s *KV) Get(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	entry, err := s.kv.Get(ctx, name)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", types.ErrSnapshotNotFound, name)
	}
	if err != nil {
		return nil, kvutil.Wrap("get snapshot "+name, err)
	}

	return entry.Value(), nil
}

// Revision returns the current revision number for name, or 0 if absent.
func (s *KV) Revision(ctx context.Context, name string) (uint64, error) {
	entry, err := s.kv.Get(ctx, name)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, kvutil.Wrap("get snapshot "+name, err)
	}

	return entry.Revision(), nil
}
