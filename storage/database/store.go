// Package database backs the table store with PostgreSQL. Rows are kept as
// text arrays so the store stays schema-agnostic; the registry owns column
// meaning, exactly as with the spreadsheet backend.
package database

import (
	"database/sql"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/ecoone/campus/core"
	"github.com/ecoone/campus/core/sheet"
)

const schema = `
CREATE TABLE IF NOT EXISTS sheet_tabs (
	name TEXT PRIMARY KEY,
	ord  SERIAL
);
CREATE TABLE IF NOT EXISTS sheet_rows (
	tab   TEXT NOT NULL REFERENCES sheet_tabs (name),
	pos   INT  NOT NULL,
	cells TEXT[] NOT NULL
);
CREATE INDEX IF NOT EXISTS sheet_rows_tab_pos_idx ON sheet_rows (tab, pos);
`

type Store struct {
	db *sqlx.DB
}

var _ sheet.Store = (*Store)(nil)

// Open connects, waits for the database to come up and ensures the schema.
func Open(conf *core.Config) (*Store, error) {
	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(conf.Database.User, conf.Database.Password),
		Host:     conf.Database.Address(),
		Path:     conf.Database.Name,
		RawQuery: q.Encode(),
	}
	db, err := sqlx.Open("postgres", u.String())
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(db); err != nil {
		return nil, errors.Wrap(sheet.ErrStoreNotFound, err.Error())
	}
	if _, err = db.Exec(schema); err != nil {
		return nil, errors.Wrap(err, "ensuring schema")
	}
	return &Store{db: db}, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) ListTables() ([]string, error) {
	var names []string
	if err := s.db.Select(&names, `SELECT name FROM sheet_tabs ORDER BY ord`); err != nil {
		return nil, errors.Wrap(err, "listing tables")
	}
	return names, nil
}

func (s *Store) CreateTable(name string, columns []string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.Exec(`INSERT INTO sheet_tabs (name) VALUES ($1)`, name); err != nil {
		return errors.Wrap(err, "creating table "+name)
	}
	if _, err = tx.Exec(
		`INSERT INTO sheet_rows (tab, pos, cells) VALUES ($1, 1, $2)`,
		name, pq.Array(columns),
	); err != nil {
		return errors.Wrap(err, "writing header for "+name)
	}
	return tx.Commit()
}

func (s *Store) ReadHeader(table string) ([]string, error) {
	if err := s.checkTable(s.db, table); err != nil {
		return nil, err
	}
	var cells pq.StringArray
	err := s.db.QueryRow(`SELECT cells FROM sheet_rows WHERE tab = $1 AND pos = 1`, table).Scan(&cells)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading header")
	}
	return []string(cells), nil
}

func (s *Store) ReadAllRows(table string) ([][]string, error) {
	if err := s.checkTable(s.db, table); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT cells FROM sheet_rows WHERE tab = $1 ORDER BY pos`, table)
	if err != nil {
		return nil, errors.Wrap(err, "reading rows")
	}
	defer func() { _ = rows.Close() }()

	var all [][]string
	for rows.Next() {
		var cells pq.StringArray
		if err = rows.Scan(&cells); err != nil {
			return nil, errors.Wrap(err, "scanning row")
		}
		all = append(all, []string(cells))
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "reading rows")
	}
	return all, nil
}

func (s *Store) AppendRow(table string, values []string) error {
	if err := s.checkTable(s.db, table); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO sheet_rows (tab, pos, cells)
		 SELECT $1, COALESCE(MAX(pos), 0) + 1, $2 FROM sheet_rows WHERE tab = $1`,
		table, pq.Array(values),
	)
	return errors.Wrap(err, "appending row")
}

func (s *Store) InsertRow(table string, values []string, pos int) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	if err = s.checkTable(tx, table); err != nil {
		return err
	}
	if _, err = tx.Exec(
		`UPDATE sheet_rows SET pos = pos + 1 WHERE tab = $1 AND pos >= $2`, table, pos,
	); err != nil {
		return errors.Wrap(err, "shifting rows")
	}
	if _, err = tx.Exec(
		`INSERT INTO sheet_rows (tab, pos, cells) VALUES ($1, $2, $3)`,
		table, pos, pq.Array(values),
	); err != nil {
		return errors.Wrap(err, "inserting row")
	}
	return tx.Commit()
}

func (s *Store) UpdateCell(table string, row, col int, value string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	if err = s.checkTable(tx, table); err != nil {
		return err
	}
	var cells pq.StringArray
	err = tx.QueryRow(
		`SELECT cells FROM sheet_rows WHERE tab = $1 AND pos = $2 FOR UPDATE`, table, row,
	).Scan(&cells)
	if err != nil {
		return errors.Errorf("%s: no row at %d", table, row)
	}
	// grow short rows so the target cell exists
	for len(cells) < col {
		cells = append(cells, "")
	}
	cells[col-1] = value

	if _, err = tx.Exec(
		`UPDATE sheet_rows SET cells = $3 WHERE tab = $1 AND pos = $2`,
		table, row, pq.Array([]string(cells)),
	); err != nil {
		return errors.Wrap(err, "updating cell")
	}
	return tx.Commit()
}

func (s *Store) DeleteRow(table string, pos int) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	if err = s.checkTable(tx, table); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM sheet_rows WHERE tab = $1 AND pos = $2`, table, pos)
	if err != nil {
		return errors.Wrap(err, "deleting row")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Errorf("%s: no row at %d", table, pos)
	}
	if _, err = tx.Exec(
		`UPDATE sheet_rows SET pos = pos - 1 WHERE tab = $1 AND pos > $2`, table, pos,
	); err != nil {
		return errors.Wrap(err, "shifting rows")
	}
	return tx.Commit()
}

func (s *Store) checkTable(q interface {
	Get(dest interface{}, query string, args ...interface{}) error
}, table string) error {
	var exists bool
	err := q.Get(&exists, `SELECT EXISTS (SELECT 1 FROM sheet_tabs WHERE name = $1)`, table)
	if err != nil {
		return errors.Wrap(err, "checking table")
	}
	if !exists {
		return errors.Wrap(sheet.ErrTableNotFound, table)
	}
	return nil
}
