// Package inmem provides an in-memory table store, used in tests and as the
// default dev backend so the app runs without Google quota or a database.
package inmem

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/ecoone/campus/core/sheet"
)

type Store struct {
	mu     sync.RWMutex
	order  []string
	tables map[string][][]string // raw rows including the header; row pos-1 indexes the slice

	readErrs map[string]error // injected ReadAllRows failures, for tests
}

var _ sheet.Store = (*Store)(nil)

func Open() *Store {
	return &Store{
		tables:   make(map[string][][]string),
		readErrs: make(map[string]error),
	}
}

// FailReadsWith makes every subsequent ReadAllRows on the table return err.
// Pass nil to heal the table again.
func (s *Store) FailReadsWith(table string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.readErrs, table)
		return
	}
	s.readErrs[table] = err
}

func (s *Store) ListTables() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...), nil
}

func (s *Store) CreateTable(name string, columns []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[name]; ok {
		return errors.Errorf("table %s already exists", name)
	}
	s.order = append(s.order, name)
	s.tables[name] = [][]string{copyRow(columns)}
	return nil
}

func (s *Store) ReadHeader(table string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.get(table)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return copyRow(rows[0]), nil
}

func (s *Store) ReadAllRows(table string) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err, ok := s.readErrs[table]; ok {
		return nil, err
	}
	rows, err := s.get(table)
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = copyRow(row)
	}
	return out, nil
}

func (s *Store) AppendRow(table string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.get(table)
	if err != nil {
		return err
	}
	s.tables[table] = append(rows, copyRow(values))
	return nil
}

func (s *Store) InsertRow(table string, values []string, pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.get(table)
	if err != nil {
		return err
	}
	if pos < 1 || pos > len(rows)+1 {
		return errors.Errorf("inserting %s row %d: out of range", table, pos)
	}
	idx := pos - 1
	rows = append(rows, nil)
	copy(rows[idx+1:], rows[idx:])
	rows[idx] = copyRow(values)
	s.tables[table] = rows
	return nil
}

func (s *Store) UpdateCell(table string, row, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.get(table)
	if err != nil {
		return err
	}
	if row < 1 || row > len(rows) {
		return errors.Errorf("updating %s row %d: out of range", table, row)
	}
	cells := rows[row-1]
	// grow the row when the cell sits right of its last value
	for len(cells) < col {
		cells = append(cells, "")
	}
	cells[col-1] = value
	rows[row-1] = cells
	return nil
}

func (s *Store) DeleteRow(table string, pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.get(table)
	if err != nil {
		return err
	}
	if pos < 1 || pos > len(rows) {
		return errors.Errorf("deleting %s row %d: out of range", table, pos)
	}
	s.tables[table] = append(rows[:pos-1], rows[pos:]...)
	return nil
}

func (s *Store) get(table string) ([][]string, error) {
	rows, ok := s.tables[table]
	if !ok {
		return nil, errors.Wrap(sheet.ErrTableNotFound, table)
	}
	return rows, nil
}

func copyRow(row []string) []string {
	return append([]string(nil), row...)
}
