package source

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/fitforge/fitforge/types"
)

// YAMLFile reads a setup document from a filesystem on every LoadSetup.
//
// Document layout:
//
//	teamNames: [Falcon, Heron]
//	projectNames: [Billing, Search]
//	impact:     [[3, 1], [1, 3]]
//	capability: [[1, 1], [1, 1]]
//	preference: [[1, 0], [0, 1]]
type YAMLFile struct {
	fs   afero.Fs
	path string
}

var _ types.SetupSource = (*YAMLFile)(nil)

// NewYAMLFile creates a source reading path from fsys.
func NewYAMLFile(fsys afero.Fs, path string) *YAMLFile {
	return &YAMLFile{fs: fsys, path: path}
}

// LoadSetup reads and decodes the document. Unknown keys are rejected.
// Shape checks are left to Engine.Initialise.
func (y *YAMLFile) LoadSetup(ctx context.Context) (types.Setup, error) {
	if err := ctx.Err(); err != nil {
		return types.Setup{}, err
	}

	f, err := y.fs.Open(y.path)
	if err != nil {
		return types.Setup{}, fmt.Errorf("open setup %s: %w", y.path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var setup types.Setup
	if err := dec.Decode(&setup); err != nil {
		return types.Setup{}, fmt.Errorf("decode setup %s: %w", y.path, err)
	}

	return setup, nil
}
