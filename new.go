package dbrec

import (
	"github.com/iamdanielyin/dbrec/result"
)

// New builds a record of type T. A WithAdapter option is registered against
// T's class first; the record then resolves its connection, binds its table
// and hands the binding to the namespace's result factory.
func New[T any, PT Entity[T]](opts ...Option) (PT, error) {
	o := newOptions(opts)
	class := ClassOf[T]()
	if o.adapter != nil {
		o.ns.SetDB(class, o.adapter, "", false)
	}
	db, err := o.ns.DB(class)
	if err != nil {
		return nil, err
	}

	e := PT(new(T))
	r := e.base()
	r.class = class
	r.ns = o.ns
	if pk, ok := any(e).(PrimaryKeyer); ok {
		if keys := pk.PrimaryKeyColumns(); len(keys) > 0 {
			r.SetPrimaryKeys(keys)
		}
	}
	if tp, ok := any(e).(TablePrefixer); ok {
		r.SetPrefix(tp.TablePrefix())
	}
	bindTable(r, e, o.table)

	factory := o.ns.resultFactory()
	b := result.Binding{
		Adapter:     db,
		Table:       r.FullTable(),
		PrimaryKeys: r.PrimaryKeys(),
		Columns:     o.columns,
	}
	b.Materialize = func(cols result.Columns) (any, error) {
		row := PT(new(T))
		rr := row.base()
		rr.class, rr.ns = r.class, r.ns
		rr.table, rr.prefix = r.table, r.prefix
		rr.primaryKeys = r.PrimaryKeys()
		nb := b
		nb.Columns = cols
		rr.result = factory(nb)
		rr.result.SetColumns(cols)
		if err := assignColumns(row, cols); err != nil {
			return nil, err
		}
		return row, nil
	}

	r.result = factory(b)
	if o.columns != nil {
		r.result.SetColumns(o.columns)
		if err := assignColumns(e, o.columns); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// MustNew is like New but panics on error.
func MustNew[T any, PT Entity[T]](opts ...Option) PT {
	e, err := New[T, PT](opts...)
	if err != nil {
		panic(err)
	}
	return e
}
