package datastore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSuccess(t *testing.T) {
	mem := NewMemory([]string{"h"})
	calls := 0
	a := Connect(context.Background(), func(context.Context) (Table, error) {
		calls++
		return mem, nil
	})

	assert.True(t, a.Available())
	assert.NoError(t, a.Err())
	assert.Equal(t, 1, calls)

	table, err := a.Table()
	require.NoError(t, err)
	assert.Same(t, mem, table)
}

func TestConnectFailureStaysUnavailable(t *testing.T) {
	cause := errors.New("bad credentials")
	a := Connect(context.Background(), func(context.Context) (Table, error) {
		return nil, cause
	})

	assert.False(t, a.Available())
	assert.Equal(t, cause, a.Err())

	table, err := a.Table()
	assert.Nil(t, table)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "bad credentials")
}

func TestConnectNilTable(t *testing.T) {
	a := Connect(context.Background(), func(context.Context) (Table, error) {
		return nil, nil
	})
	assert.False(t, a.Available())
	assert.Error(t, a.Err())
}

func TestNilAdapter(t *testing.T) {
	var a *Adapter
	assert.False(t, a.Available())
	_, err := a.Table()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestUnavailableDefaultsCause(t *testing.T) {
	a := Unavailable(nil)
	assert.False(t, a.Available())
	assert.Error(t, a.Err())
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory([]string{"a", "b"})

	require.NoError(t, m.AppendRow(ctx, []string{"1", "2"}))
	require.NoError(t, m.UpdateCell(ctx, 2, 2, "x"))

	rows, err := m.ReadAllRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "x"}}, rows)

	// Returned rows are copies.
	rows[1][0] = "mutated"
	again, _ := m.ReadAllRows(ctx)
	assert.Equal(t, "1", again[1][0])
}

func TestMemoryUpdateGrows(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	require.NoError(t, m.UpdateCell(ctx, 3, 2, "v"))
	rows, _ := m.ReadAllRows(ctx)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"", "v"}, rows[2])
}

func TestMemoryUpdateInvalid(t *testing.T) {
	m := NewMemory(nil)
	assert.Error(t, m.UpdateCell(context.Background(), 0, 1, "v"))
	assert.Error(t, m.UpdateCell(context.Background(), 1, 0, "v"))
}
