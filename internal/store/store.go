// Package store holds the current diagram and serializes every change to it.
package store

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/hurou927/erm-core/internal/integrity"
	"github.com/hurou927/erm-core/internal/mapper"
	"github.com/hurou927/erm-core/internal/schema"
)

// ErrStaleLoad is returned by Load when a newer load was installed first.
var ErrStaleLoad = errors.New("store: superseded by a newer load")

// Snapshot is an immutable view of the diagram. Mutators never modify a
// snapshot that has been handed out; they build and swap in a new one.
type Snapshot struct {
	Settings      schema.Settings
	Tables        []*schema.Table
	Relationships []*schema.Relationship
	ColumnGroups  []*schema.ColumnGroup
	VDiagrams     []*schema.VirtualDiagram

	// TablesVersion and RelationshipsVersion count bulk replacements.
	TablesVersion        uint64
	RelationshipsVersion uint64

	// Generation is the load generation the diagram came from, 0 before
	// any load.
	Generation uint64
	// Source is the identifier of the loaded diagram.
	Source string
	Loaded bool
}

// Store is the diagram aggregate root.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
	gen  uint64 // last generation handed out, guarded by mu

	subsMu sync.Mutex
	subs   []*subscriber

	logger *slog.Logger
}

type subscriber struct {
	fn func(Snapshot)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
		snap: Snapshot{
			Tables:        []*schema.Table{},
			Relationships: []*schema.Relationship{},
			ColumnGroups:  []*schema.ColumnGroup{},
			VDiagrams:     []*schema.VirtualDiagram{},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Subscribe registers fn to be called with every new snapshot. Calls happen
// after the swap, outside the store lock, in subscription order.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	sub := &subscriber{fn: fn}
	s.subsMu.Lock()
	s.subs = append(s.subs, sub)
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			s.subs = slices.DeleteFunc(s.subs, func(x *subscriber) bool { return x == sub })
		})
	}
}

// SetSettings replaces the settings.
func (s *Store) SetSettings(settings schema.Settings) {
	s.apply("settings", func(next *Snapshot) error {
		next.Settings = settings
		return nil
	})
}

// SetViewMode changes only the view mode.
func (s *Store) SetViewMode(mode schema.ViewMode) {
	s.apply("view mode", func(next *Snapshot) error {
		next.Settings.ViewMode = mode
		return nil
	})
}

// SetTables replaces all tables and bumps TablesVersion.
func (s *Store) SetTables(tables []*schema.Table) {
	s.apply("tables", func(next *Snapshot) error {
		next.Tables = tables
		next.TablesVersion++
		return nil
	})
}

// UpdateTable replaces the table whose physical name is previous with table,
// rewriting relationship references on a rename. An empty previous means the
// name is unchanged. When the table no longer exists nothing changes and an
// error matching integrity.ErrNotFound is returned.
func (s *Store) UpdateTable(table *schema.Table, previous string) error {
	if previous == "" {
		previous = table.PhysicalName
	}
	err := s.apply("table", func(next *Snapshot) error {
		res, err := integrity.UpdateTableAndRef(next.Tables, next.Relationships, table, previous)
		if err != nil {
			return err
		}
		next.Tables = res.Tables
		next.Relationships = res.Relationships
		return nil
	})
	if err != nil {
		s.logger.Warn("table update skipped", "table", previous, "error", err)
	}
	return err
}

// SetRelationships replaces all relationships and bumps RelationshipsVersion.
func (s *Store) SetRelationships(relationships []*schema.Relationship) {
	s.apply("relationships", func(next *Snapshot) error {
		next.Relationships = relationships
		next.RelationshipsVersion++
		return nil
	})
}

// UpdateRelationship replaces the relationship named previous. An empty
// previous means the name is unchanged.
func (s *Store) UpdateRelationship(rel *schema.Relationship, previous string) error {
	if previous == "" {
		previous = rel.Name
	}
	err := s.apply("relationship", func(next *Snapshot) error {
		rels, err := integrity.UpdateRelation(next.Relationships, rel, previous)
		if err != nil {
			return err
		}
		next.Relationships = rels
		return nil
	})
	if err != nil {
		s.logger.Warn("relationship update skipped", "relationship", previous, "error", err)
	}
	return err
}

// SetColumnGroups replaces the column groups.
func (s *Store) SetColumnGroups(groups []*schema.ColumnGroup) {
	s.apply("column groups", func(next *Snapshot) error {
		next.ColumnGroups = groups
		return nil
	})
}

// SetVDiagrams replaces the virtual diagrams.
func (s *Store) SetVDiagrams(vdiagrams []*schema.VirtualDiagram) {
	s.apply("vdiagrams", func(next *Snapshot) error {
		next.VDiagrams = vdiagrams
		return nil
	})
}

// Install replaces the whole diagram at once. It supersedes any load still
// in flight.
func (s *Store) Install(d *mapper.Diagram, source string) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()
	// A fresh generation can never be stale.
	_ = s.install(d, source, gen)
}

func (s *Store) install(d *mapper.Diagram, source string, gen uint64) error {
	return s.apply("diagram", func(next *Snapshot) error {
		if next.Generation > gen {
			return ErrStaleLoad
		}
		next.Settings = d.Settings
		next.Tables = d.Tables
		next.Relationships = d.Relationships
		next.ColumnGroups = d.ColumnGroups
		next.VDiagrams = d.VDiagrams
		next.TablesVersion++
		next.RelationshipsVersion++
		next.Generation = gen
		next.Source = source
		next.Loaded = true
		return nil
	})
}

// apply computes the next snapshot from a copy of the current one and swaps
// it in. When fn fails the current snapshot is kept.
func (s *Store) apply(what string, fn func(next *Snapshot) error) error {
	s.mu.Lock()
	next := s.snap
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.snap = next
	s.mu.Unlock()

	s.logger.Debug("snapshot replaced", "change", what,
		"tables", len(next.Tables),
		"relationships", len(next.Relationships),
		"tables_version", next.TablesVersion,
		"relationships_version", next.RelationshipsVersion,
	)
	s.notify(next)
	return nil
}

func (s *Store) notify(snap Snapshot) {
	s.subsMu.Lock()
	subs := slices.Clone(s.subs)
	s.subsMu.Unlock()
	for _, sub := range subs {
		sub.fn(snap)
	}
}
