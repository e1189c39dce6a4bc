package dbrec

func shapeOf(as []Shape) Shape {
	if len(as) > 0 && as[0] != "" {
		return as[0]
	}
	return RowAsRecord
}

// Finder runs the static finders of T against one namespace. Every call builds
// a throwaway T and forwards to its result helper.
type Finder[T any, PT Entity[T]] struct {
	ns *Namespace
}

func Using[T any, PT Entity[T]](ns *Namespace) Finder[T, PT] {
	if ns == nil {
		ns = DefaultNamespace
	}
	return Finder[T, PT]{ns: ns}
}

func (f Finder[T, PT]) instance() (*Record, error) {
	e, err := New[T, PT](InNamespace(f.ns))
	if err != nil {
		return nil, err
	}
	return e.base(), nil
}

func (f Finder[T, PT]) FindByID(id any, as ...Shape) (*Rows, error) {
	r, err := f.instance()
	if err != nil {
		return nil, err
	}
	return r.Result().FindByID(id, shapeOf(as))
}

func (f Finder[T, PT]) FindBy(cols Columns, opts *FindOptions, as ...Shape) (*Rows, error) {
	r, err := f.instance()
	if err != nil {
		return nil, err
	}
	return r.Result().FindBy(cols, opts, shapeOf(as))
}

func (f Finder[T, PT]) FindAll(opts *FindOptions, as ...Shape) (*Rows, error) {
	return f.FindBy(nil, opts, as...)
}

func (f Finder[T, PT]) Execute(sql string, params any, as ...Shape) (*Rows, error) {
	r, err := f.instance()
	if err != nil {
		return nil, err
	}
	return r.Result().Execute(sql, params, shapeOf(as))
}

func (f Finder[T, PT]) Query(sql string, as ...Shape) (*Rows, error) {
	r, err := f.instance()
	if err != nil {
		return nil, err
	}
	return r.Result().Query(sql, shapeOf(as))
}

func (f Finder[T, PT]) GetTotal(cols Columns, as ...Shape) (int, error) {
	r, err := f.instance()
	if err != nil {
		return 0, err
	}
	return r.Result().GetTotal(cols, shapeOf(as))
}

// Records keeps the items of rows that are records of type T.
func Records[T any, PT Entity[T]](rows *Rows) []PT {
	if rows == nil {
		return nil
	}
	out := make([]PT, 0, len(rows.Items))
	for _, item := range rows.Items {
		if e, ok := item.(PT); ok {
			out = append(out, e)
		}
	}
	return out
}
