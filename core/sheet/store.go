package sheet

import "github.com/pkg/errors"

var (
	// fatal at startup
	ErrAuthenticationFailed = errors.New("store authentication failed")
	ErrStoreNotFound        = errors.New("store not found or not shared with this account")

	ErrTableNotFound = errors.New("table not found")
	// ErrRateLimited is recoverable on reads: the mirror substitutes an empty
	// snapshot and carries on.
	ErrRateLimited = errors.New("store rate limit exceeded")
)

// Store is an authorized handle to the remote table store.
//
// Row and column positions are one-based raw store coordinates: row 1 is the
// header row. ReadAllRows returns raw rows including the header.
type Store interface {
	ListTables() ([]string, error)
	CreateTable(name string, columns []string) error
	ReadHeader(table string) ([]string, error)
	ReadAllRows(table string) ([][]string, error)
	AppendRow(table string, values []string) error
	InsertRow(table string, values []string, pos int) error
	UpdateCell(table string, row, col int, value string) error
	DeleteRow(table string, pos int) error
}
