package dbrec

import (
	"github.com/iamdanielyin/dbrec/result"
)

type (
	Shape       = result.Shape
	Columns     = result.Columns
	FindOptions = result.FindOptions
	Rows        = result.Rows
	Row         = result.Row
)

const (
	RowAsArray       = result.RowAsArray
	RowAsArrayObject = result.RowAsArrayObject
	RowAsRecord      = result.RowAsRecord
)

// Record is embedded by user types to make them database records.
//
//	type User struct {
//		dbrec.Record
//		ID   int64  `db:"id"`
//		Name string `db:"name"`
//	}
type Record struct {
	class       string
	ns          *Namespace
	table       string
	prefix      string
	primaryKeys []string
	result      result.Helper
}

func (r *Record) base() *Record {
	return r
}

// Entity is satisfied by *T for any T embedding Record.
type Entity[T any] interface {
	*T
	base() *Record
}

// Class returns the registry class name the record was built for.
func (r *Record) Class() string {
	return r.class
}

// Result returns the helper the record delegates its queries to.
func (r *Record) Result() result.Helper {
	return r.result
}

// Columns returns the record's current column values.
func (r *Record) Columns() Columns {
	if r.result == nil {
		return nil
	}
	return r.result.Columns()
}

func (r *Record) PrimaryKeys() []string {
	if len(r.primaryKeys) == 0 {
		return []string{"id"}
	}
	return append([]string(nil), r.primaryKeys...)
}

func (r *Record) SetPrimaryKeys(keys []string) *Record {
	r.primaryKeys = append([]string(nil), keys...)
	return r
}
