package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-table-reservation/internal/model"
)

func TestSeatManifest_Flatten(t *testing.T) {
	m := model.SeatManifest{
		{TableID: 1, SeatIDs: []uint64{3, 1, 3}},
		{TableID: 2, SeatIDs: []uint64{0, 1, 5}},
	}
	assert.Equal(t, []uint64{3, 1, 5}, m.Flatten())
	assert.False(t, m.IsEmpty())

	assert.Empty(t, model.SeatManifest{}.Flatten())
	assert.True(t, model.SeatManifest{{TableID: 1, SeatIDs: []uint64{0}}}.IsEmpty())
}

func TestSeatManifest_Normalize(t *testing.T) {
	m := model.SeatManifest{
		{TableID: 1, SeatIDs: []uint64{1, 0, 2}},
		{TableID: 2, SeatIDs: nil},
		{TableID: 3, SeatIDs: []uint64{0}},
	}
	n := m.Normalize()
	require.Len(t, n, 1)
	assert.Equal(t, uint64(1), n[0].TableID)
	assert.Equal(t, []uint64{1, 2}, n[0].SeatIDs)
}

func TestSeatManifest_Remove(t *testing.T) {
	m := model.SeatManifest{
		{TableID: 1, SeatIDs: []uint64{1, 2, 3}},
		{TableID: 2, SeatIDs: []uint64{4, 5}},
	}
	kept, removed, removedIDs := m.Remove(model.SeatManifest{
		{TableID: 1, SeatIDs: []uint64{2}},
		{TableID: 2, SeatIDs: []uint64{4, 5}},
		{TableID: 9, SeatIDs: []uint64{7}}, // unknown table: ignored
	})

	require.Len(t, kept, 1)
	assert.Equal(t, []uint64{1, 3}, kept[0].SeatIDs)

	require.Len(t, removed, 2)
	assert.Equal(t, []uint64{2}, removed[0].SeatIDs)
	assert.Equal(t, []uint64{4, 5}, removed[1].SeatIDs)
	assert.Equal(t, []uint64{2, 4, 5}, removedIDs)
}

func TestSeatManifest_RemoveAll(t *testing.T) {
	m := model.SeatManifest{{TableID: 1, SeatIDs: []uint64{1, 2}}}
	kept, removed, removedIDs := m.Remove(m)
	assert.Empty(t, kept)
	require.Len(t, removed, 1)
	assert.Equal(t, []uint64{1, 2}, removedIDs)
}

func TestSeatManifest_RemoveSameSeatIDDifferentTable(t *testing.T) {
	// Seat ids are only matched within their own table entry.
	m := model.SeatManifest{
		{TableID: 1, SeatIDs: []uint64{7}},
		{TableID: 2, SeatIDs: []uint64{7}},
	}
	kept, _, removedIDs := m.Remove(model.SeatManifest{
		{TableID: 2, SeatIDs: []uint64{7}},
	})
	require.Len(t, kept, 1)
	assert.Equal(t, uint64(1), kept[0].TableID)
	assert.Equal(t, []uint64{7}, removedIDs)
}

func TestSeatManifest_ScanStructured(t *testing.T) {
	var m model.SeatManifest
	err := m.Scan([]byte(`[{"table_id":3,"seat_ids":[10,11]}]`))
	require.NoError(t, err)
	require.Len(t, m, 1)
	assert.Equal(t, uint64(3), m[0].TableID)
	assert.Equal(t, []uint64{10, 11}, m[0].SeatIDs)
}

func TestSeatManifest_ScanLegacyString(t *testing.T) {
	// Older rows stored the manifest double-encoded: a JSON string
	// whose contents are the JSON array.
	var m model.SeatManifest
	err := m.Scan([]byte(`"[{\"table_id\":3,\"seat_ids\":[10]}]"`))
	require.NoError(t, err)
	require.Len(t, m, 1)
	assert.Equal(t, []uint64{10}, m[0].SeatIDs)
}

func TestSeatManifest_ScanNilAndEmpty(t *testing.T) {
	var m model.SeatManifest
	require.NoError(t, m.Scan(nil))
	assert.Nil(t, m)

	require.NoError(t, m.Scan([]byte{}))
	assert.Nil(t, m)

	assert.Error(t, m.Scan(42))
	assert.Error(t, m.Scan([]byte(`{broken`)))
}

func TestSeatManifest_ValueAlwaysStructured(t *testing.T) {
	m := model.SeatManifest{
		{TableID: 1, SeatIDs: []uint64{1, 0}},
		{TableID: 2, SeatIDs: nil},
	}
	v, err := m.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"table_id":1,"seat_ids":[1]}]`, string(v.([]byte)))

	// Round trip through Value and Scan preserves the claim set.
	var back model.SeatManifest
	require.NoError(t, back.Scan(v))
	assert.Equal(t, []uint64{1}, back.Flatten())
}
