// Package gsheets backs the table store with a Google Sheets spreadsheet:
// one worksheet per table, row 1 the header.
package gsheets

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ecoone/campus/core"
	coresheet "github.com/ecoone/campus/core/sheet"
)

// new worksheet dimensions
const (
	defaultRows = 500
	defaultCols = 20
)

type Store struct {
	svc           *sheets.Service
	spreadsheetID string

	order    []string
	sheetIDs map[string]int64 // worksheet id by title
}

var _ coresheet.Store = (*Store)(nil)

// Open authorizes against the spreadsheet and loads its worksheet index.
// Credential selection order: inline JSON payload first, credential file
// second; absence of both is fatal.
func Open(conf *core.Config) (*Store, error) {
	data, err := credentials(conf.Sheets)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	jwtConf, err := jwtConfigFromJSON(data)
	if err != nil {
		return nil, errors.Wrap(coresheet.ErrAuthenticationFailed, err.Error())
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConf.Client(ctx)))
	if err != nil {
		return nil, errors.Wrap(err, "creating sheets client")
	}

	s := &Store{
		svc:           svc,
		spreadsheetID: conf.Sheets.SpreadsheetID,
		sheetIDs:      make(map[string]int64),
	}
	if err = s.loadIndex(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) loadIndex() error {
	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Do()
	if err != nil {
		return mapErr(err)
	}
	s.order = s.order[:0]
	for _, ws := range meta.Sheets {
		if ws.Properties == nil {
			continue
		}
		s.order = append(s.order, ws.Properties.Title)
		s.sheetIDs[ws.Properties.Title] = ws.Properties.SheetId
	}
	return nil
}

func (s *Store) ListTables() ([]string, error) {
	return append([]string(nil), s.order...), nil
}

func (s *Store) CreateTable(name string, columns []string) error {
	resp, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: name,
					GridProperties: &sheets.GridProperties{
						RowCount:    defaultRows,
						ColumnCount: defaultCols,
					},
				},
			},
		}},
	}).Do()
	if err != nil {
		return mapErr(err)
	}
	for _, reply := range resp.Replies {
		if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			s.order = append(s.order, name)
			s.sheetIDs[name] = reply.AddSheet.Properties.SheetId
		}
	}
	return s.writeRow(name, columns, 1)
}

func (s *Store) ReadHeader(table string) ([]string, error) {
	if _, ok := s.sheetIDs[table]; !ok {
		return nil, errors.Wrap(coresheet.ErrTableNotFound, table)
	}
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rangeRef(table, "1:1")).Do()
	if err != nil {
		return nil, mapErr(err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	return toStrings(resp.Values[0]), nil
}

func (s *Store) ReadAllRows(table string) ([][]string, error) {
	if _, ok := s.sheetIDs[table]; !ok {
		return nil, errors.Wrap(coresheet.ErrTableNotFound, table)
	}
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rangeRef(table, "A:ZZ")).Do()
	if err != nil {
		return nil, mapErr(err)
	}
	rows := make([][]string, len(resp.Values))
	for i, raw := range resp.Values {
		rows[i] = toStrings(raw)
	}
	return rows, nil
}

func (s *Store) AppendRow(table string, values []string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{toCells(values)}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, rangeRef(table, "A1"), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Do()
	return mapErr(err)
}

func (s *Store) InsertRow(table string, values []string, pos int) error {
	sheetID, ok := s.sheetIDs[table]
	if !ok {
		return errors.Wrap(coresheet.ErrTableNotFound, table)
	}
	_, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			InsertDimension: &sheets.InsertDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(pos - 1),
					EndIndex:   int64(pos),
				},
			},
		}},
	}).Do()
	if err != nil {
		return mapErr(err)
	}
	return s.writeRow(table, values, pos)
}

func (s *Store) UpdateCell(table string, row, col int, value string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	ref := rangeRef(table, fmt.Sprintf("%s%d", colName(col), row))
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, ref, vr).
		ValueInputOption("RAW").
		Do()
	return mapErr(err)
}

func (s *Store) DeleteRow(table string, pos int) error {
	sheetID, ok := s.sheetIDs[table]
	if !ok {
		return errors.Wrap(coresheet.ErrTableNotFound, table)
	}
	_, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(pos - 1),
					EndIndex:   int64(pos),
				},
			},
		}},
	}).Do()
	return mapErr(err)
}

func (s *Store) writeRow(table string, values []string, pos int) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{toCells(values)}}
	ref := rangeRef(table, fmt.Sprintf("A%d", pos))
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, ref, vr).
		ValueInputOption("RAW").
		Do()
	return mapErr(err)
}

// mapErr translates Google API failures into the store error taxonomy.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusTooManyRequests:
			return errors.Wrap(coresheet.ErrRateLimited, gerr.Message)
		case http.StatusUnauthorized:
			return errors.Wrap(coresheet.ErrAuthenticationFailed, gerr.Message)
		case http.StatusForbidden:
			for _, item := range gerr.Errors {
				if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
					return errors.Wrap(coresheet.ErrRateLimited, gerr.Message)
				}
			}
			return errors.Wrap(coresheet.ErrStoreNotFound, gerr.Message)
		case http.StatusNotFound:
			return errors.Wrap(coresheet.ErrStoreNotFound, gerr.Message)
		}
	}
	return err
}

func rangeRef(table, cells string) string {
	return "'" + table + "'!" + cells
}

// colName converts a one-based column position to its A1 letter form.
func colName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func toStrings(raw []interface{}) []string {
	row := make([]string, len(raw))
	for i, cell := range raw {
		if cell == nil {
			continue
		}
		row[i] = fmt.Sprint(cell)
	}
	return row
}
