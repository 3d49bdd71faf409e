package sheets

import (
	"context"
	"fmt"
	"strings"

	"repair_desk/internal/datastore"

	"github.com/rs/zerolog/log"
)

var _ datastore.Table = (*Table)(nil)

// valuesAPI is the subset of Client that Table needs.
type valuesAPI interface {
	ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error)
	AppendRows(ctx context.Context, spreadsheetID, range_, inputOption string, rows [][]interface{}) error
	UpdateRange(ctx context.Context, spreadsheetID, range_, inputOption string, values [][]interface{}) error
}

// Table is one worksheet of one spreadsheet, addressed by 1-based row and
// column positions.
type Table struct {
	api           valuesAPI
	spreadsheetID string
	sheetName     string
}

// Open binds the client to a worksheet after checking that the tab exists.
func Open(ctx context.Context, client *Client, spreadsheetID, sheetName string) (*Table, error) {
	log.Debug().
		Str("spreadsheet_id", spreadsheetID).
		Str("sheet", sheetName).
		Msg("Opening worksheet")

	ok, err := client.SheetExists(ctx, spreadsheetID, sheetName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("worksheet %q not found in spreadsheet %s", sheetName, spreadsheetID)
	}
	return newTable(client, spreadsheetID, sheetName), nil
}

func newTable(api valuesAPI, spreadsheetID, sheetName string) *Table {
	return &Table{
		api:           api,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}
}

// AppendRow adds cells as a new row after the last non-empty row.
func (t *Table) AppendRow(ctx context.Context, cells []string) error {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	// RAW keeps timestamps and names exactly as written.
	return t.api.AppendRows(ctx, t.spreadsheetID, t.sheetRange(), InputRaw, [][]interface{}{row})
}

// ReadAllRows returns every row of the worksheet, header included. The API
// omits trailing empty cells, so every row is padded with "" to the width
// of the widest row.
func (t *Table) ReadAllRows(ctx context.Context) ([][]string, error) {
	values, err := t.api.ReadSheet(ctx, t.spreadsheetID, t.sheetRange())
	if err != nil {
		return nil, err
	}

	width := 0
	for _, v := range values {
		width = max(width, len(v))
	}

	rows := make([][]string, len(values))
	for i, v := range values {
		row := make([]string, width)
		for j := range v {
			row[j] = extractStringField(v, j)
		}
		rows[i] = row
	}
	log.Debug().Int("rows", len(rows)).Msg("Retrieved sheet rows")
	return rows, nil
}

// UpdateCell overwrites a single cell.
func (t *Table) UpdateCell(ctx context.Context, row, col int, value string) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell position row=%d col=%d", row, col)
	}
	cellRange := fmt.Sprintf("%s!%s%d", t.quotedSheet(), ColumnLetter(col), row)
	return t.api.UpdateRange(ctx, t.spreadsheetID, cellRange, InputRaw, [][]interface{}{{value}})
}

func (t *Table) sheetRange() string {
	return t.quotedSheet()
}

func (t *Table) quotedSheet() string {
	return "'" + strings.ReplaceAll(t.sheetName, "'", "''") + "'"
}

// ColumnLetter converts a 1-based column number to its A1 letters.
func ColumnLetter(col int) string {
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return string(letters)
}

// extractStringField safely extracts a string field from a row at the given index
func extractStringField(row []interface{}, index int) string {
	if len(row) > index && row[index] != nil {
		return fmt.Sprintf("%v", row[index])
	}
	return ""
}
