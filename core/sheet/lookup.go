package sheet

// FindPosition scans the current snapshot for the first row whose keyColumn
// equals keyValue and returns its zero-based position. The match is exact; it
// is on callers to pre-normalize case and whitespace where needed. The second
// return is false when no row matches or the table is unknown.
func (m *Mirror) FindPosition(table, keyColumn, keyValue string) (int, bool) {
	rows, err := m.Snapshot(table)
	if err != nil {
		return -1, false
	}
	for i, row := range rows {
		if row.Get(keyColumn) == keyValue {
			return i, true
		}
	}
	return -1, false
}
