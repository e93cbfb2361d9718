package sheet

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/ecoone/campus/core"
)

// Row is one mirrored record, keyed by schema column name.
type Row map[string]string

func (r Row) Get(column string) string { return r[column] }

// Mirror holds an in-process snapshot of every registered table. All reads in
// the application go through the mirror; a snapshot only changes on an
// explicit LoadAll or Refresh, so reads may be stale until the controlling
// flow asks for one.
type Mirror struct {
	mu    sync.RWMutex
	reg   *Registry
	store Store
	log   core.Logger

	snapshots map[string][]Row
}

func NewMirror(reg *Registry, store Store, log core.Logger) *Mirror {
	return &Mirror{
		reg:       reg,
		store:     store,
		log:       log,
		snapshots: make(map[string][]Row),
	}
}

// LoadAll fetches every registered table's full row set and replaces each
// snapshot wholesale. A rate-limited table is replaced with an empty snapshot
// and logged; other tables keep loading independently.
func (m *Mirror) LoadAll() error {
	for _, table := range m.reg.Tables() {
		if err := m.Refresh(table); err != nil {
			return err
		}
	}
	return nil
}

// Refresh re-fetches and replaces exactly one table's snapshot.
func (m *Mirror) Refresh(table string) error {
	cols, err := m.reg.Columns(table)
	if err != nil {
		return err
	}

	raw, err := m.store.ReadAllRows(table)
	if err != nil {
		if errors.Cause(err) == ErrRateLimited {
			m.log.Warn("rate limit exceeded while reading " + table + ", substituting empty snapshot")
			m.replace(table, []Row{})
			return nil
		}
		return errors.Wrap(err, "reading all rows of "+table)
	}

	rows := make([]Row, 0, len(raw))
	if len(raw) > 1 {
		for _, values := range raw[1:] { // skip header
			rows = append(rows, rowFromValues(cols, values))
		}
	}
	m.replace(table, rows)
	return nil
}

// Snapshot returns the current snapshot for the table. The returned rows must
// be treated as read-only; an unloaded table yields no rows.
func (m *Mirror) Snapshot(table string) ([]Row, error) {
	if _, err := m.reg.Columns(table); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshots[table], nil
}

func (m *Mirror) replace(table string, rows []Row) {
	m.mu.Lock()
	m.snapshots[table] = rows
	m.mu.Unlock()
}

// rowFromValues zips store values with the schema columns, padding missing
// trailing cells with "" and ignoring extras beyond the schema width.
func rowFromValues(cols, values []string) Row {
	row := make(Row, len(cols))
	for i, col := range cols {
		if i < len(values) {
			row[col] = values[i]
		} else {
			row[col] = ""
		}
	}
	return row
}
