package dbrec

import (
	"github.com/iamdanielyin/dbrec/parser"
)

// TableNamer overrides the table derived from the class name.
type TableNamer interface {
	TableName() string
}

// TablePrefixer supplies a table prefix, separator included.
type TablePrefixer interface {
	TablePrefix() string
}

// PrimaryKeyer supplies the primary key columns; "id" otherwise.
type PrimaryKeyer interface {
	PrimaryKeyColumns() []string
}

func (r *Record) Table() string {
	return r.table
}

func (r *Record) Prefix() string {
	return r.prefix
}

// FullTable is the prefix followed by the table, with no separator added.
func (r *Record) FullTable() string {
	return r.prefix + r.table
}

func (r *Record) SetTable(table string) *Record {
	r.table = table
	return r
}

func (r *Record) SetPrefix(prefix string) *Record {
	r.prefix = prefix
	return r
}

// SetTableFromClassName derives the table from the unqualified class name,
// e.g. "app/models.UserProfile" becomes "user_profiles".
func (r *Record) SetTableFromClassName(class string) *Record {
	return r.SetTable(parser.Table(Unqualify(class)))
}

// bindTable resolves the table in order: explicit name, TableName hook, class name.
func bindTable(r *Record, entity any, explicit string) {
	switch {
	case explicit != "":
		r.SetTable(explicit)
	default:
		if tn, ok := entity.(TableNamer); ok && tn.TableName() != "" {
			r.SetTable(tn.TableName())
			return
		}
		r.SetTableFromClassName(r.class)
	}
}
