package sheets

import (
	"context"
	"errors"
	"testing"

	"repair_desk/internal/repair"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appendCall struct {
	Range  string
	Option string
	Rows   [][]interface{}
}

type updateCall struct {
	Range  string
	Option string
	Values [][]interface{}
}

type fakeValues struct {
	ReadRanges  []string
	ReadValues  [][]interface{}
	ReadErr     error
	AppendCalls []appendCall
	UpdateCalls []updateCall
	WriteErr    error
}

func (f *fakeValues) ReadSheet(_ context.Context, _, range_ string) ([][]interface{}, error) {
	f.ReadRanges = append(f.ReadRanges, range_)
	return f.ReadValues, f.ReadErr
}

func (f *fakeValues) AppendRows(_ context.Context, _, range_, inputOption string, rows [][]interface{}) error {
	f.AppendCalls = append(f.AppendCalls, appendCall{Range: range_, Option: inputOption, Rows: rows})
	return f.WriteErr
}

func (f *fakeValues) UpdateRange(_ context.Context, _, range_, inputOption string, values [][]interface{}) error {
	f.UpdateCalls = append(f.UpdateCalls, updateCall{Range: range_, Option: inputOption, Values: values})
	return f.WriteErr
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{6, "F"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{703, "AAA"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ColumnLetter(tt.col), "column %d", tt.col)
	}
}

func TestAppendRow(t *testing.T) {
	api := &fakeValues{}
	table := newTable(api, "sheet-id", "設備報修")

	err := table.AppendRow(context.Background(), []string{"a", "b", "c", "d", "e", "f"})
	require.NoError(t, err)

	require.Len(t, api.AppendCalls, 1)
	call := api.AppendCalls[0]
	assert.Equal(t, "'設備報修'", call.Range)
	assert.Equal(t, InputRaw, call.Option)
	assert.Equal(t, [][]interface{}{{"a", "b", "c", "d", "e", "f"}}, call.Rows)
}

func TestReadAllRowsStringifiesCells(t *testing.T) {
	api := &fakeValues{
		ReadValues: [][]interface{}{
			{"時間", "姓名"},
			{"2025-01-01 08:00:00", 42.0, nil},
		},
	}
	table := newTable(api, "sheet-id", "Repairs")

	rows, err := table.ReadAllRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"時間", "姓名", ""},
		{"2025-01-01 08:00:00", "42", ""},
	}, rows)
	assert.Equal(t, []string{"'Repairs'"}, api.ReadRanges)
}

func TestReadAllRowsPadsTrailingBlankCells(t *testing.T) {
	api := &fakeValues{
		ReadValues: [][]interface{}{
			{"時間戳記", "報修人", "地點", "問題描述", "協辦老師", "狀態"},
			{"2025-01-01 08:00:00", "王小明", "301教室", "投影機無法開機", "無指定"},
			{"2025-01-02 09:00:00"},
		},
	}
	table := newTable(api, "sheet-id", "設備報修")

	rows, err := table.ReadAllRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Len(t, row, 6)
	}
	assert.Equal(t, []string{"2025-01-01 08:00:00", "王小明", "301教室", "投影機無法開機", "無指定", ""}, rows[1])
	assert.Equal(t, []string{"2025-01-02 09:00:00", "", "", "", "", ""}, rows[2])

	tasks := repair.ParseTasks(rows)
	require.Len(t, tasks, 2)
	assert.Equal(t, 2, tasks[0].RowIndex)
	assert.Equal(t, "王小明", tasks[0].ReporterName)
	assert.Empty(t, tasks[0].Status)
}

func TestReadAllRowsError(t *testing.T) {
	api := &fakeValues{ReadErr: errors.New("boom")}
	table := newTable(api, "sheet-id", "Repairs")

	rows, err := table.ReadAllRows(context.Background())
	assert.Error(t, err)
	assert.Nil(t, rows)
}

func TestUpdateCell(t *testing.T) {
	api := &fakeValues{}
	table := newTable(api, "sheet-id", "Bob's Sheet")

	require.NoError(t, table.UpdateCell(context.Background(), 2, 6, "已完成"))

	require.Len(t, api.UpdateCalls, 1)
	call := api.UpdateCalls[0]
	assert.Equal(t, "'Bob''s Sheet'!F2", call.Range)
	assert.Equal(t, InputRaw, call.Option)
	assert.Equal(t, [][]interface{}{{"已完成"}}, call.Values)
}

func TestUpdateCellRejectsInvalidPosition(t *testing.T) {
	api := &fakeValues{}
	table := newTable(api, "sheet-id", "Repairs")

	assert.Error(t, table.UpdateCell(context.Background(), 0, 6, "x"))
	assert.Error(t, table.UpdateCell(context.Background(), 2, 0, "x"))
	assert.Empty(t, api.UpdateCalls)
}
