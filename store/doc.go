// Package store provides types.SnapshotStore implementations.
//
// Available stores:
//   - File: one "<name>.ffas" file per snapshot on an afero filesystem
//   - KV: entries in a NATS JetStream key-value bucket
//
// Both stores hold opaque bytes; encoding lives in the snapshot package.
//
// Example:
//
//	st := store.NewFile(afero.NewOsFs(), "./snapshots")
//	if err := engine.SaveTo(ctx, st, "weekly"); err != nil {
//	    log.Fatal(err)
//	}
package store
