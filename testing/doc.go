// Package testing provides test helpers for fitforge and its adapters.
//
// It follows the net/http/httptest convention of shipping test support in a
// dedicated package:
//
//   - StartEmbeddedNATS: in-process NATS server with JetStream, for the KV
//     snapshot store
//   - NewJetStream: JetStream handle bound to a test connection
//   - NewTestLogger: types.Logger that writes through t.Logf
//   - SampleSetup: a small, well-known 3×3 problem
//
// Example:
//
//	import fftest "github.com/fitforge/fitforge/testing"
//
//	func TestStore(t *testing.T) {
//	    _, nc := fftest.StartEmbeddedNATS(t)
//	    js := fftest.NewJetStream(t, nc)
//	    // ...
//	}
package testing
