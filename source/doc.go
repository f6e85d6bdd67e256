// Package source provides types.SetupSource implementations.
//
// Setup sources supply the impact, capability and preference matrices plus
// team and project names for Engine.Initialise:
//
//   - Static: a setup held in memory
//   - YAMLFile: a YAML document read from an afero filesystem
//
// Custom sources only need to satisfy types.SetupSource.
package source
