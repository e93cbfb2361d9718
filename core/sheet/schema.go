package sheet

import (
	"github.com/pkg/errors"
)

// Registered table names.
const (
	TableUsers          = "users"
	TableStudents       = "students"
	TableFaculty        = "faculty"
	TableRequests       = "requests"
	TablePayments       = "payments"
	TableNotifications  = "notifications"
	TableRecentActivity = "recent_activity"
)

var (
	ErrUnknownTable  = errors.New("unknown table")
	ErrUnknownColumn = errors.New("unknown column")
)

// Registry is the static mapping from table name to its ordered column list.
// It is the single source of truth for store-side headers and for translating
// column names to cell positions.
type Registry struct {
	order   []string
	columns map[string][]string
}

// NewRegistry returns the registry for all application tables.
func NewRegistry() *Registry {
	r := &Registry{columns: make(map[string][]string)}
	r.register(TableUsers, []string{"username", "password", "role", "email", "phone"})
	r.register(TableStudents, []string{
		"username", "name", "department", "email", "phone", "attendance_percentage",
		"tution_fee_status", "hostel_fee_status", "exam_fee_status", "transport_fee_status",
		"books_issued", "hostel_room",
	})
	r.register(TableFaculty, []string{"username", "name", "department", "email", "phone"})
	r.register(TableRequests, []string{"username", "role", "request_type", "details", "status", "timestamp"})
	r.register(TablePayments, []string{"username", "fee_type", "amount", "date", "status"})
	r.register(TableNotifications, []string{"notification", "date"})
	r.register(TableRecentActivity, []string{"username", "role", "action", "timestamp"})
	return r
}

func (r *Registry) register(name string, cols []string) {
	r.order = append(r.order, name)
	r.columns[name] = cols
}

// Tables returns all registered table names in registration order.
func (r *Registry) Tables() []string {
	return r.order
}

// Columns returns the ordered column list for the given table.
func (r *Registry) Columns(table string) ([]string, error) {
	cols, ok := r.columns[table]
	if !ok {
		return nil, errors.Wrap(ErrUnknownTable, table)
	}
	return cols, nil
}

// ColumnIndex translates a column name to its zero-based position in the table schema.
func (r *Registry) ColumnIndex(table, column string) (int, error) {
	cols, err := r.Columns(table)
	if err != nil {
		return 0, err
	}
	for i, col := range cols {
		if col == column {
			return i, nil
		}
	}
	return 0, errors.Wrap(ErrUnknownColumn, table+"."+column)
}

// EnsureHeaders makes the store-side header of every registered table equal to
// the registry's column list: missing tables are created, and a mismatching
// header row is deleted and reinserted at row 1.
func (r *Registry) EnsureHeaders(store Store) error {
	for _, table := range r.order {
		cols := r.columns[table]

		header, err := store.ReadHeader(table)
		if err != nil {
			if errors.Cause(err) == ErrTableNotFound {
				if err = store.CreateTable(table, cols); err != nil {
					return errors.Wrap(err, "creating table "+table)
				}
				continue
			}
			return errors.Wrap(err, "reading header of "+table)
		}

		if headersEqual(header, cols) {
			continue
		}
		if len(header) > 0 {
			if err = store.DeleteRow(table, 1); err != nil {
				return errors.Wrap(err, "deleting bad header of "+table)
			}
		}
		if err = store.InsertRow(table, cols, 1); err != nil {
			return errors.Wrap(err, "inserting header of "+table)
		}
	}
	return nil
}

func headersEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
