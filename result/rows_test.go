package result

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowAccessors(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r := NewRow(map[string]any{
		"id":      int64(7),
		"name":    "ann",
		"score":   "9.5",
		"active":  int64(1),
		"flag":    "true",
		"created": at,
		"updated": "2024-05-01 10:00:00",
		"nothing": nil,
	})

	assert.Equal(t, int64(7), r.Int("id").Int64)
	assert.Equal(t, "7", r.String("id").String)
	assert.Equal(t, "ann", r.String("name").String)
	assert.Equal(t, 9.5, r.Float("score").Float64)
	assert.True(t, r.Bool("active").Bool)
	assert.True(t, r.Bool("flag").Bool)
	assert.True(t, r.Time("created").Time.Equal(at))
	assert.True(t, r.Time("updated").Time.Equal(at))

	assert.False(t, r.String("nothing").Valid)
	assert.False(t, r.Int("name").Valid)
	assert.False(t, r.Int("missing").Valid)
	assert.False(t, r.Time("name").Valid)
	assert.False(t, r.Has("missing"))
	assert.True(t, r.Has("nothing"))

	v, ok := r.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "ann", v)
}

func TestRowMapIsCopy(t *testing.T) {
	r := NewRow(map[string]any{"id": 1})
	m := r.Map()
	m["id"] = 2
	v, _ := r.Get("id")
	assert.Equal(t, 1, v)
}

func TestRowMarshalJSON(t *testing.T) {
	b, err := json.Marshal(NewRow(map[string]any{"id": 1, "name": "ann"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"ann"}`, string(b))
}

type colsRecord struct{ cols Columns }

func (c colsRecord) Columns() Columns { return c.cols }

func TestRowsMaps(t *testing.T) {
	rows := &Rows{Shape: RowAsRecord, Items: []any{
		map[string]any{"id": 1},
		NewRow(map[string]any{"id": 2}),
		colsRecord{cols: Columns{"id": 3}},
	}}
	maps := rows.Maps()
	require.Len(t, maps, 3)
	assert.Equal(t, 3, maps[2]["id"])
	objs := rows.Objects()
	assert.Equal(t, int64(2), objs[1].Int("id").Int64)

	var empty *Rows
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Maps())
}

func TestShapeValid(t *testing.T) {
	assert.True(t, RowAsArray.Valid())
	assert.True(t, RowAsArrayObject.Valid())
	assert.True(t, RowAsRecord.Valid())
	assert.False(t, Shape("row_as_array").Valid())
}
