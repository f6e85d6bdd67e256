package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/fitforge/fitforge"
	"github.com/fitforge/fitforge/snapshot"
	"github.com/fitforge/fitforge/source"
	"github.com/fitforge/fitforge/store"
	"github.com/fitforge/fitforge/types"
)

func newSolveCmd() *cli.Command {
	return &cli.Command{
		Name:    "solve",
		Usage:   "Run a solver over a YAML setup",
		Aliases: []string{"s"},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "setup",
				Required: true,
				Usage:    "specify the input setup.yaml",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "specify an engine config.yaml",
			},
			&cli.StringFlag{
				Name:  "algorithm",
				Value: types.AlgorithmILP.String(),
				Usage: "specify the solver (ILP or GS)",
			},
			&cli.StringSliceFlag{
				Name:  "capacity",
				Usage: "set a project capacity as project=capacity (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "allocate",
				Usage: "force a pairing as team:project (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "reject",
				Usage: "reject a pairing as team:project (repeatable)",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "write a snapshot; a directory gets a timestamped file name",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "write a timestamped snapshot into the config's snapshot.dir",
			},
			&cli.StringFlag{
				Name:  "nats",
				Usage: "also store the snapshot in a JetStream KV bucket at this NATS URL",
			},
			&cli.StringFlag{
				Name:  "name",
				Value: "latest",
				Usage: "snapshot key used with --nats",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: func(c *cli.Context) error {
			alg, err := types.ParseAlgorithm(c.String("algorithm"))
			if err != nil {
				return err
			}

			cfg := fitforge.DefaultConfig()
			if path := c.String("config"); path != "" {
				if cfg, err = fitforge.LoadConfig(afero.NewOsFs(), path); err != nil {
					return err
				}
			}
			cfg.InitialAlgorithm = fitforge.InitialAlgorithmNone

			eng, err := fitforge.NewEngine(&cfg, fitforge.WithLogger(fitforge.NewTextLogger(os.Stderr, c.Bool("debug"))))
			if err != nil {
				return err
			}
			if err := eng.InitialiseFrom(c.Context, source.NewYAMLFile(afero.NewOsFs(), c.String("setup"))); err != nil {
				return err
			}
			if err := applyConstraints(eng, c.StringSlice("capacity"), c.StringSlice("allocate"), c.StringSlice("reject")); err != nil {
				return err
			}

			set, err := eng.RunAlgorithm(c.Context, alg)
			if err != nil {
				return err
			}
			if err := printRun(c.App.Writer, eng, set); err != nil {
				return err
			}

			fsys := afero.NewOsFs()
			if out := c.String("out"); out != "" {
				dir, name := outTarget(fsys, out)
				path, err := writeSnapshot(c.Context, eng, fsys, dir, name)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, "snapshot written to", path)
			}
			if c.Bool("save") {
				path, err := writeSnapshot(c.Context, eng, fsys, cfg.Snapshot.Dir, timestampedName())
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, "snapshot written to", path)
			}
			if url := c.String("nats"); url != "" {
				if err := storeSnapshot(c.Context, eng, url, cfg.Snapshot.KVBucket, c.String("name")); err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "snapshot stored in bucket %s as %s\n", cfg.Snapshot.KVBucket, c.String("name"))
			}

			return nil
		},
	}
}

// applyConstraints applies capacities first so that forced pairings can use them.
func applyConstraints(eng *fitforge.Engine, capacities, allocations, rejections []string) error {
	var errs []error
	for _, s := range capacities {
		project, capacity, err := parseCapacity(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if res := eng.SetProjectCapacity(project, capacity); !res.Success {
			errs = append(errs, fmt.Errorf("capacity %s: %s", s, res.Message))
		}
	}
	for _, s := range allocations {
		p, err := parsePairing(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if res := eng.SetAllocation(p.Team, p.Project); !res.Success {
			errs = append(errs, fmt.Errorf("allocate %s: %s", p, res.Message))
		}
	}
	for _, s := range rejections {
		p, err := parsePairing(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if res := eng.SetRejection(p.Team, p.Project); !res.Success {
			errs = append(errs, fmt.Errorf("reject %s: %s", p, res.Message))
		}
	}

	return errors.Join(errs...)
}

// outTarget splits out into a store directory and snapshot name. An existing
// directory gets a timestamped name.
func outTarget(fsys afero.Fs, out string) (string, string) {
	if isDir, err := afero.IsDir(fsys, out); err == nil && isDir {
		return out, timestampedName()
	}

	return filepath.Dir(out), strings.TrimSuffix(filepath.Base(out), snapshot.Extension)
}

func timestampedName() string {
	return strings.TrimSuffix(snapshot.Filename(time.Now()), snapshot.Extension)
}

// writeSnapshot saves through a file store and returns the written path.
func writeSnapshot(ctx context.Context, eng *fitforge.Engine, fsys afero.Fs, dir, name string) (string, error) {
	st := store.NewFile(fsys, dir)
	if err := eng.SaveTo(ctx, st, name); err != nil {
		return "", err
	}

	return st.Path(name), nil
}

func storeSnapshot(ctx context.Context, eng *fitforge.Engine, url, bucket, name string) error {
	nc, err := nats.Connect(url, nats.Name("fitforge-cli"))
	if err != nil {
		return fmt.Errorf("connect %s: %w", url, err)
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	kv, err := store.NewKV(ctx, js, store.KVConfig{Bucket: bucket})
	if err != nil {
		return err
	}

	return eng.SaveTo(ctx, kv, name)
}
