package sheet

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrRowWidth    = errors.New("row width does not match table schema")
	ErrBadPosition = errors.New("row position out of range")
)

// Gateway is the only write path to the store. Every successful mutation is
// followed by a synchronous refresh of the affected table's mirror snapshot
// before the call returns; other tables are left untouched.
//
// Row positions are zero-based offsets into the mirror snapshot current at
// call time. A position computed before somebody else moved or deleted the
// row silently addresses the wrong cell; callers must recompute positions
// (FindPosition) immediately before mutating.
type Gateway struct {
	mu     sync.Mutex // serializes all mutations
	reg    *Registry
	store  Store
	mirror *Mirror
}

func NewGateway(reg *Registry, store Store, mirror *Mirror) *Gateway {
	return &Gateway{reg: reg, store: store, mirror: mirror}
}

func (g *Gateway) Mirror() *Mirror { return g.mirror }

// AppendRow appends values as the new last row of the table. The values must
// match the table schema in count and order.
func (g *Gateway) AppendRow(table string, values []string) error {
	cols, err := g.reg.Columns(table)
	if err != nil {
		return err
	}
	if len(values) != len(cols) {
		return errors.Wrap(ErrRowWidth, table)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err = g.store.AppendRow(table, values); err != nil {
		return errors.Wrap(err, "appending row to "+table)
	}
	return g.mirror.Refresh(table)
}

// UpdateCell sets one cell of the row at the given mirror position. The store
// address is pos+2: one-based, plus one for the header row.
func (g *Gateway) UpdateCell(table string, pos int, column, value string) error {
	if pos < 0 {
		return errors.Wrap(ErrBadPosition, table)
	}
	colIdx, err := g.reg.ColumnIndex(table, column)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err = g.store.UpdateCell(table, pos+2, colIdx+1, value); err != nil {
		return errors.Wrap(err, "updating "+table+"."+column)
	}
	return g.mirror.Refresh(table)
}

// DeleteRow removes exactly one row at the given mirror position.
func (g *Gateway) DeleteRow(table string, pos int) error {
	if pos < 0 {
		return errors.Wrap(ErrBadPosition, table)
	}
	if _, err := g.reg.Columns(table); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.DeleteRow(table, pos+2); err != nil {
		return errors.Wrap(err, "deleting row from "+table)
	}
	return g.mirror.Refresh(table)
}
