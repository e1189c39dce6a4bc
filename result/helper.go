package result

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iamdanielyin/dbrec/logger"
)

var (
	ErrNoAdapter      = errors.New("dbrec: result helper has no adapter")
	ErrUnknownShape   = errors.New("dbrec: unknown row shape")
	ErrInvalidClauses = errors.New("dbrec: invalid query clauses")
)

type parsedClauses struct {
	tmpl *template.Template
	err  error
}

// clauseCache maps clause template text to its parsed form.
var clauseCache sync.Map

func parseClauses(text string) (*template.Template, error) {
	if v, ok := clauseCache.Load(text); ok {
		p := v.(*parsedClauses)
		return p.tmpl, p.err
	}
	p := new(parsedClauses)
	p.tmpl, p.err = template.New("clauses").Funcs(sprig.FuncMap()).Parse(text)
	if p.err != nil {
		p.tmpl, p.err = nil, errors.Wrapf(ErrInvalidClauses, "%v", p.err)
	}
	v, _ := clauseCache.LoadOrStore(text, p)
	p = v.(*parsedClauses)
	return p.tmpl, p.err
}

type clauseData struct {
	Columns []string
	Table   string
	Where   string
	OrderBy string
	Limit   int
	Offset  int
	Paged   bool
}

type helper struct {
	b       Binding
	tmpl    *template.Template
	tmplErr error

	mu   sync.RWMutex
	cols Columns
}

// New is the default Factory. The binding's adapter supplies the clause template
// and the sqlx handle. Templates are parsed once per distinct text; a template
// that does not parse fails the finders with ErrInvalidClauses.
func New(b Binding) Helper {
	if len(b.PrimaryKeys) == 0 {
		b.PrimaryKeys = []string{"id"}
	}
	h := &helper{b: b}
	if b.Adapter != nil {
		h.tmpl, h.tmplErr = parseClauses(b.Adapter.QueryClauses())
	}
	h.SetColumns(b.Columns)
	return h
}

func (h *helper) SetColumns(cols Columns) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cols == nil {
		h.cols = make(Columns, len(cols))
	}
	for k, v := range cols {
		h.cols[k] = v
	}
}

func (h *helper) Columns() Columns {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(Columns, len(h.cols))
	for k, v := range h.cols {
		out[k] = v
	}
	return out
}

// FindByID matches the primary key. Composite keys take a Columns value or a
// slice with one value per key column.
func (h *helper) FindByID(id any, as Shape) (*Rows, error) {
	pks := h.b.PrimaryKeys
	var cols Columns
	switch v := id.(type) {
	case Columns:
		cols = v
	case map[string]any:
		cols = v
	case []any:
		if len(pks) == 1 {
			cols = Columns{pks[0]: v}
			break
		}
		if len(v) != len(pks) {
			return nil, errors.Errorf("dbrec: %s has %d primary key columns, got %d values", h.b.Table, len(pks), len(v))
		}
		cols = make(Columns, len(pks))
		for i, pk := range pks {
			cols[pk] = v[i]
		}
	default:
		if len(pks) != 1 {
			return nil, errors.Errorf("dbrec: %s has a composite primary key %v", h.b.Table, pks)
		}
		cols = Columns{pks[0]: id}
	}
	return h.FindBy(cols, nil, as)
}

func (h *helper) FindBy(cols Columns, opts *FindOptions, as Shape) (*Rows, error) {
	if opts == nil {
		opts = new(FindOptions)
	}
	query, args, err := h.render(cols, opts.Select, opts)
	if err != nil {
		return nil, err
	}
	return h.fetch(query, args, as)
}

// Execute runs sql with params: nil, a slice of positional values, a map of
// named values or a single scalar.
func (h *helper) Execute(sql string, params any, as Shape) (*Rows, error) {
	if h.b.Adapter == nil {
		return nil, ErrNoAdapter
	}
	var (
		args []any
		err  error
	)
	switch v := params.(type) {
	case nil:
	case []any:
		args = v
	case Columns:
		sql, args, err = sqlx.Named(sql, map[string]any(v))
	case map[string]any:
		sql, args, err = sqlx.Named(sql, v)
	default:
		args = []any{v}
	}
	if err != nil {
		return nil, errors.Wrap(err, "dbrec: bind named parameters")
	}
	if len(args) > 0 {
		if sql, args, err = sqlx.In(sql, args...); err != nil {
			return nil, errors.Wrap(err, "dbrec: expand parameters")
		}
	}
	return h.fetch(h.b.Adapter.DB().Rebind(sql), args, as)
}

func (h *helper) Query(sql string, as Shape) (*Rows, error) {
	return h.Execute(sql, nil, as)
}

// GetTotal counts the rows matching cols. The shape is accepted for symmetry
// with the finders and does not affect the count.
func (h *helper) GetTotal(cols Columns, as Shape) (int, error) {
	query, args, err := h.render(cols, []string{"COUNT(*)"}, &FindOptions{})
	if err != nil {
		return 0, err
	}
	var total int
	if err := h.b.Adapter.DB().QueryRowx(query, args...).Scan(&total); err != nil {
		return 0, errors.Wrapf(err, "dbrec: count %s", h.b.Table)
	}
	return total, nil
}

func (h *helper) quoteColumn(name string) string {
	if strings.ContainsAny(name, "(* ") {
		return name
	}
	return h.b.Adapter.QuoteIdentifier(name)
}

func (h *helper) render(cols Columns, selects []string, opts *FindOptions) (string, []any, error) {
	if h.b.Adapter == nil {
		return "", nil, ErrNoAdapter
	}
	if h.tmplErr != nil {
		return "", nil, h.tmplErr
	}
	where, attrs, err := buildWhere(h.quoteColumn, cols)
	if err != nil {
		return "", nil, err
	}
	data := clauseData{
		Table:   h.b.Adapter.QuoteIdentifier(h.b.Table),
		Where:   where,
		OrderBy: opts.Order,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		Paged:   opts.Limit > 0 || opts.Offset > 0,
	}
	for _, s := range selects {
		data.Columns = append(data.Columns, h.quoteColumn(s))
	}
	var buff bytes.Buffer
	if err := h.tmpl.Execute(&buff, data); err != nil {
		return "", nil, errors.Wrap(err, "dbrec: render query")
	}
	query := formatSQL(buff.String())
	if len(attrs) > 0 {
		if query, attrs, err = sqlx.In(query, attrs...); err != nil {
			return "", nil, errors.Wrap(err, "dbrec: expand parameters")
		}
	}
	return h.b.Adapter.DB().Rebind(query), attrs, nil
}

func (h *helper) fetch(query string, args []any, as Shape) (*Rows, error) {
	if as == "" {
		as = RowAsRecord
	}
	if !as.Valid() {
		return nil, errors.Wrapf(ErrUnknownShape, "%q", string(as))
	}
	logger.Default().WithFields(logrus.Fields{
		"table": h.b.Table,
		"sql":   query,
		"shape": string(as),
	}).Debug("dbrec: query")

	rows, err := h.b.Adapter.DB().Queryx(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "dbrec: query failed")
	}
	defer rows.Close()

	out := &Rows{Shape: as}
	for rows.Next() {
		m := make(map[string]any)
		if err := rows.MapScan(m); err != nil {
			return nil, errors.Wrap(err, "dbrec: scan row")
		}
		for k, v := range m {
			if b, ok := v.([]byte); ok {
				m[k] = string(b)
			}
		}
		item, err := h.shape(m, as)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "dbrec: read rows")
	}
	return out, nil
}

func (h *helper) shape(m map[string]any, as Shape) (any, error) {
	switch as {
	case RowAsArray:
		return m, nil
	case RowAsRecord:
		if h.b.Materialize != nil {
			return h.b.Materialize(Columns(m))
		}
	}
	return NewRow(m), nil
}

// formatSQL collapses the template's whitespace into single spaces.
func formatSQL(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
