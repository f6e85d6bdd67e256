package store

import (
	"fmt"
	"regexp"

	"github.com/fitforge/fitforge/types"
)

// validName matches names usable both as file names and as KV keys.
var validName = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.=-]*$`)

func checkName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: invalid snapshot name %q", types.ErrValidation, name)
	}

	return nil
}
