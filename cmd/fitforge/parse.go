package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fitforge/fitforge/types"
)

// parseCapacity parses "project=capacity".
func parseCapacity(s string) (project, capacity int, err error) {
	left, right, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, fmt.Errorf("capacity %q: want project=capacity", s)
	}
	if project, err = strconv.Atoi(strings.TrimSpace(left)); err != nil {
		return 0, 0, fmt.Errorf("capacity %q: bad project: %w", s, err)
	}
	if capacity, err = strconv.Atoi(strings.TrimSpace(right)); err != nil {
		return 0, 0, fmt.Errorf("capacity %q: bad capacity: %w", s, err)
	}

	return project, capacity, nil
}

// parsePairing parses "team:project".
func parsePairing(s string) (types.Pairing, error) {
	left, right, ok := strings.Cut(s, ":")
	if !ok {
		return types.Pairing{}, fmt.Errorf("pairing %q: want team:project", s)
	}
	team, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return types.Pairing{}, fmt.Errorf("pairing %q: bad team: %w", s, err)
	}
	project, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return types.Pairing{}, fmt.Errorf("pairing %q: bad project: %w", s, err)
	}

	return types.Pairing{Team: team, Project: project}, nil
}
