package kvutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	fftest "github.com/fitforge/fitforge/testing"
)

func TestEnsureBucket(t *testing.T) {
	_, nc := fftest.StartEmbeddedNATS(t)
	js := fftest.NewJetStream(t, nc)

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel()

	cfg := jetstream.KeyValueConfig{Bucket: "snapshots", History: 1}

	t.Run("creates missing bucket", func(t *testing.T) {
		kv, err := EnsureBucket(ctx, js, cfg, 0)
		require.NoError(t, err)
		require.Equal(t, "snapshots", kv.Bucket())
	})

	t.Run("opens existing bucket", func(t *testing.T) {
		kv, err := EnsureBucket(ctx, js, cfg, 1)
		require.NoError(t, err)

		_, err = kv.Put(ctx, "state", []byte("x"))
		require.NoError(t, err)

		again, err := EnsureBucket(ctx, js, cfg, 1)
		require.NoError(t, err)
		entry, err := again.Get(ctx, "state")
		require.NoError(t, err)
		require.Equal(t, []byte("x"), entry.Value())
	})

	t.Run("concurrent callers share one bucket", func(t *testing.T) {
		const callers = 8
		shared := jetstream.KeyValueConfig{Bucket: "shared", History: 1}

		var wg sync.WaitGroup
		errs := make([]error, callers)
		for i := range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = EnsureBucket(ctx, js, shared, 5)
			}()
		}
		wg.Wait()

		for i, err := range errs {
			require.NoError(t, err, "caller %d", i)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, ccancel := context.WithCancel(t.Context())
		ccancel()

		_, err := EnsureBucket(cctx, js, jetstream.KeyValueConfig{Bucket: "never"}, 3)
		require.Error(t, err)
	})
}
