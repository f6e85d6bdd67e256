package fitforge

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/fitforge/fitforge/internal/history"
	"github.com/fitforge/fitforge/internal/state"
	"github.com/fitforge/fitforge/snapshot"
	"github.com/fitforge/fitforge/types"
)

// Save writes the complete engine state as a two-line snapshot.
//
// Parameters:
//   - w: Destination
//
// Returns:
//   - error: Encoding or write error
func (e *Engine) Save(w io.Writer) error {
	data, err := e.encode()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		e.logger.Error("snapshot save failed", "error", err)
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}

func (e *Engine) encode() ([]byte, error) {
	e.mu.RLock()
	doc := e.m.document()
	e.mu.RUnlock()

	data, err := snapshot.Marshal(doc)
	if err != nil {
		e.logger.Error("snapshot save failed", "error", err)
		return nil, err
	}

	return data, nil
}

// Load replaces the engine state with a snapshot.
//
// The new state is fully decoded and validated before it is swapped in; on
// any error the current state is left untouched.
//
// Parameters:
//   - r: Snapshot source
//
// Returns:
//   - error: ErrFormat for malformed input, or a read error
func (e *Engine) Load(r io.Reader) error {
	doc, err := snapshot.Decode(r)
	if err != nil {
		e.logger.Error("snapshot load failed", "error", err)
		return err
	}

	m, err := modelFromDocument(doc)
	if err != nil {
		e.logger.Error("snapshot load failed", "error", err)
		return err
	}

	e.mu.Lock()
	from := e.m.stage
	e.m = m
	e.generation++
	size := m.history.Len()
	ev := e.notifier.Next(types.EventLoaded, 0, 0, 0)
	e.mu.Unlock()

	e.metrics.RecordHistorySize(size)
	e.logger.Info("snapshot loaded", "stage", m.stage.String(), "runs", size)
	e.notifier.Publish(ev)
	e.stageChanged(context.Background(), from, m.stage)

	return nil
}

// SaveTo encodes the state and stores it under name.
//
// Example:
//
//	st := store.NewFile(afero.NewOsFs(), cfg.Snapshot.Dir)
//	err := eng.SaveTo(ctx, st, "weekly")
func (e *Engine) SaveTo(ctx context.Context, st SnapshotStore, name string) error {
	if st == nil {
		return ErrSnapshotStoreRequired
	}

	data, err := e.encode()
	if err != nil {
		return err
	}
	if err := st.Put(ctx, name, data); err != nil {
		e.logger.Error("snapshot store put failed", "name", name, "error", err)
		e.reportError(ctx, err)

		return err
	}

	return nil
}

// LoadFrom reads the snapshot stored under name and loads it.
//
// Returns:
//   - error: ErrSnapshotStoreRequired, ErrSnapshotNotFound, ErrFormat, or a
//     store error; the current state is untouched on failure
func (e *Engine) LoadFrom(ctx context.Context, st SnapshotStore, name string) error {
	if st == nil {
		return ErrSnapshotStoreRequired
	}

	data, err := st.Get(ctx, name)
	if err != nil {
		e.logger.Error("snapshot store get failed", "name", name, "error", err)
		return err
	}

	return e.Load(bytes.NewReader(data))
}

// document converts the model to its persisted form. Caller holds the lock.
func (m *model) document() snapshot.Document {
	doc := snapshot.Document{
		InitialImpact:     types.CloneRows(m.initial.Impact),
		InitialCapability: types.CloneRows(m.initial.Capability),
		InitialPreference: types.CloneRows(m.initial.Preference),
		TeamNames:         append([]string(nil), m.current.TeamNames...),
		ProjectNames:      append([]string(nil), m.current.ProjectNames...),
		Impact:            types.CloneRows(m.current.Impact),
		Capability:        types.CloneRows(m.current.Capability),
		Preference:        types.CloneRows(m.current.Preference),
		CapabilityScalar:  m.capScalar,
		PreferenceScalar:  m.prefScalar,
		History:           m.history.All(),
		Stage:             m.stage,
	}
	if m.alloc == nil {
		return doc
	}

	doc.Capacities = m.alloc.Capacities()
	doc.Rejections = m.alloc.Rejections()
	doc.Allocations = make([]types.Pairing, m.alloc.Teams())
	for i, p := range m.alloc.Allocation() {
		doc.Allocations[i] = types.Pairing{Team: i + 1, Project: p}
	}

	return doc
}

// modelFromDocument rebuilds a model and re-checks every invariant.
func modelFromDocument(doc snapshot.Document) (*model, error) {
	if doc.Stage == StageAwaitingInput {
		return emptyModel(), nil
	}

	h, err := history.Restore(doc.History)
	if err != nil {
		return nil, err
	}

	m := &model{
		stage: StageOperational,
		initial: types.Setup{
			Impact:       types.CloneRows(doc.InitialImpact),
			Capability:   types.CloneRows(doc.InitialCapability),
			Preference:   types.CloneRows(doc.InitialPreference),
			TeamNames:    append([]string(nil), doc.TeamNames...),
			ProjectNames: append([]string(nil), doc.ProjectNames...),
		},
		current: types.Setup{
			Impact:       types.CloneRows(doc.Impact),
			Capability:   types.CloneRows(doc.Capability),
			Preference:   types.CloneRows(doc.Preference),
			TeamNames:    append([]string(nil), doc.TeamNames...),
			ProjectNames: append([]string(nil), doc.ProjectNames...),
		},
		capScalar:  doc.CapabilityScalar,
		prefScalar: doc.PreferenceScalar,
		history:    h,
	}
	if err := m.recalculate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	allocation := make([]int, len(doc.Allocations))
	for i, a := range doc.Allocations {
		allocation[i] = a.Project
	}
	alloc, err := state.Restore(m.benefit.Rows(), m.benefit.Cols(), allocation, doc.Capacities, doc.Rejections)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	m.alloc = alloc

	return m, nil
}
