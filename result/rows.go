package result

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/guregu/null/v5"
)

type Rows struct {
	Shape Shape
	Items []any
}

func (r *Rows) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Items)
}

// First returns the first item, or nil when there are no rows.
func (r *Rows) First() any {
	if r.Len() == 0 {
		return nil
	}
	return r.Items[0]
}

// Maps returns every item as a plain column map regardless of shape.
func (r *Rows) Maps() []map[string]any {
	if r == nil {
		return nil
	}
	out := make([]map[string]any, 0, len(r.Items))
	for _, item := range r.Items {
		switch v := item.(type) {
		case map[string]any:
			out = append(out, v)
		case Columns:
			out = append(out, v)
		case interface{ Map() map[string]any }:
			out = append(out, v.Map())
		case interface{ Columns() Columns }:
			out = append(out, v.Columns())
		}
	}
	return out
}

// Objects returns the items as *Row values; records and maps are wrapped.
func (r *Rows) Objects() []*Row {
	maps := r.Maps()
	out := make([]*Row, len(maps))
	for i, m := range maps {
		out[i] = NewRow(m)
	}
	return out
}

// Row is a scanned row with attribute-style typed access.
type Row struct {
	values map[string]any
}

func NewRow(values map[string]any) *Row {
	if values == nil {
		values = make(map[string]any)
	}
	return &Row{values: values}
}

func (r *Row) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r *Row) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Map returns a copy of the row values.
func (r *Row) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

func (r *Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.values)
}

func (r *Row) String(name string) null.String {
	switch v := r.values[name].(type) {
	case nil:
		return null.NewString("", false)
	case string:
		return null.StringFrom(v)
	case []byte:
		return null.StringFrom(string(v))
	case time.Time:
		return null.StringFrom(v.Format(time.RFC3339))
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return null.NewString("", false)
		}
		return null.StringFrom(strings.Trim(string(b), `"`))
	}
}

func (r *Row) Int(name string) null.Int {
	switch v := r.values[name].(type) {
	case int64:
		return null.IntFrom(v)
	case int:
		return null.IntFrom(int64(v))
	case int32:
		return null.IntFrom(int64(v))
	case uint64:
		return null.IntFrom(int64(v))
	case float64:
		return null.IntFrom(int64(v))
	case bool:
		if v {
			return null.IntFrom(1)
		}
		return null.IntFrom(0)
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return null.IntFrom(n)
		}
	}
	return null.NewInt(0, false)
}

func (r *Row) Float(name string) null.Float {
	switch v := r.values[name].(type) {
	case float64:
		return null.FloatFrom(v)
	case float32:
		return null.FloatFrom(float64(v))
	case int64:
		return null.FloatFrom(float64(v))
	case int:
		return null.FloatFrom(float64(v))
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return null.FloatFrom(f)
		}
	}
	return null.NewFloat(0, false)
}

func (r *Row) Bool(name string) null.Bool {
	switch v := r.values[name].(type) {
	case bool:
		return null.BoolFrom(v)
	case int64:
		return null.BoolFrom(v != 0)
	case int:
		return null.BoolFrom(v != 0)
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return null.BoolFrom(b)
		}
	}
	return null.NewBool(false, false)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (r *Row) Time(name string) null.Time {
	switch v := r.values[name].(type) {
	case time.Time:
		return null.TimeFrom(v)
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				return null.TimeFrom(t)
			}
		}
	}
	return null.NewTime(time.Time{}, false)
}
