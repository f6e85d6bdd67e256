package types

import (
	"fmt"
	"strings"
)

// Algorithm identifies one of the built-in solver variants.
type Algorithm int

const (
	// AlgorithmILP is the capacitated integer-optimal assignment solver.
	AlgorithmILP Algorithm = iota + 1

	// AlgorithmGS is the deferred-acceptance stable matcher.
	AlgorithmGS
)

// Algorithms lists every supported variant in a stable order.
var Algorithms = []Algorithm{AlgorithmILP, AlgorithmGS}

// String returns the tag recorded in allocation history.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmILP:
		return "ILP"
	case AlgorithmGS:
		return "GS"
	default:
		return "Unknown"
	}
}

// Valid reports whether a is one of the supported variants.
func (a Algorithm) Valid() bool {
	return a == AlgorithmILP || a == AlgorithmGS
}

// ParseAlgorithm converts a tag such as "ILP" or "gs" into an Algorithm.
//
// Parameters:
//   - s: Algorithm tag (case-insensitive)
//
// Returns:
//   - Algorithm: Parsed algorithm
//   - error: ErrUnknownAlgorithm if the tag is not recognised
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ILP":
		return AlgorithmILP, nil
	case "GS":
		return AlgorithmGS, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}

	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed

	return nil
}
