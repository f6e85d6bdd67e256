package solver

import "errors"

// ErrUnknownObjective indicates an objective name outside the supported set.
var ErrUnknownObjective = errors.New("unknown objective")
