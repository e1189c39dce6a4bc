// Package result is the per-record query helper: it renders finder SQL from the
// adapter's clause template, binds parameters and shapes the returned rows.
package result

import (
	"github.com/iamdanielyin/dbrec/adapter"
)

// Shape selects how returned rows are presented. The values are wire-stable.
type Shape string

const (
	// RowAsArray yields map[string]any rows.
	RowAsArray Shape = "ROW_AS_ARRAY"
	// RowAsArrayObject yields *Row values with typed attribute access.
	RowAsArrayObject Shape = "ROW_AS_ARRAYOBJECT"
	// RowAsRecord yields rows materialized into the caller's record type.
	RowAsRecord Shape = "ROW_AS_RECORD"
)

func (s Shape) Valid() bool {
	switch s {
	case RowAsArray, RowAsArrayObject, RowAsRecord:
		return true
	}
	return false
}

// Columns maps column names to values.
type Columns map[string]any

// FindOptions narrows a FindBy call.
type FindOptions struct {
	Select []string `json:"select,omitempty" msgpack:"select,omitempty"`
	Order  string   `json:"order,omitempty" msgpack:"order,omitempty"`
	Limit  int      `json:"limit,omitempty" msgpack:"limit,omitempty"`
	Offset int      `json:"offset,omitempty" msgpack:"offset,omitempty"`
}

// Binding is everything a helper is constructed with.
type Binding struct {
	Adapter     adapter.Adapter
	Table       string
	PrimaryKeys []string
	Columns     Columns
	// Materialize turns a scanned row into a record for RowAsRecord.
	Materialize func(cols Columns) (any, error)
}

// Helper is the contract records delegate their finders to.
type Helper interface {
	SetColumns(cols Columns)
	Columns() Columns
	FindByID(id any, as Shape) (*Rows, error)
	FindBy(cols Columns, opts *FindOptions, as Shape) (*Rows, error)
	Execute(sql string, params any, as Shape) (*Rows, error)
	Query(sql string, as Shape) (*Rows, error)
	GetTotal(cols Columns, as Shape) (int, error)
}

// Factory builds a helper for a binding.
type Factory func(b Binding) Helper
