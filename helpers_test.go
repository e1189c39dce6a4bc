package dbrec

import (
	"github.com/jmoiron/sqlx"

	"github.com/iamdanielyin/dbrec/adapter"
	"github.com/iamdanielyin/dbrec/result"
)

type stubAdapter struct {
	name string
}

func (s *stubAdapter) Family() adapter.Family          { return adapter.FamilySqlite }
func (s *stubAdapter) DriverName() string              { return "stub" }
func (s *stubAdapter) DB() *sqlx.DB                    { return nil }
func (s *stubAdapter) QuoteIdentifier(n string) string { return n }
func (s *stubAdapter) QueryClauses() string            { return "" }
func (s *stubAdapter) Close() error                    { return nil }

type recordingHelper struct {
	binding    result.Binding
	setColumns []result.Columns
	calls      []string
}

func (h *recordingHelper) SetColumns(cols result.Columns) {
	h.setColumns = append(h.setColumns, cols)
}

func (h *recordingHelper) Columns() result.Columns {
	if len(h.setColumns) == 0 {
		return nil
	}
	return h.setColumns[len(h.setColumns)-1]
}

func (h *recordingHelper) FindByID(id any, as result.Shape) (*result.Rows, error) {
	h.calls = append(h.calls, "FindByID")
	return &result.Rows{Shape: as, Items: []any{id}}, nil
}

func (h *recordingHelper) FindBy(cols result.Columns, opts *result.FindOptions, as result.Shape) (*result.Rows, error) {
	h.calls = append(h.calls, "FindBy")
	return &result.Rows{Shape: as, Items: []any{cols, opts}}, nil
}

func (h *recordingHelper) Execute(sql string, params any, as result.Shape) (*result.Rows, error) {
	h.calls = append(h.calls, "Execute")
	return &result.Rows{Shape: as, Items: []any{sql, params}}, nil
}

func (h *recordingHelper) Query(sql string, as result.Shape) (*result.Rows, error) {
	h.calls = append(h.calls, "Query")
	return &result.Rows{Shape: as, Items: []any{sql}}, nil
}

func (h *recordingHelper) GetTotal(cols result.Columns, as result.Shape) (int, error) {
	h.calls = append(h.calls, "GetTotal")
	return len(cols), nil
}

type recorder struct {
	helpers []*recordingHelper
}

func (r *recorder) factory(b result.Binding) result.Helper {
	h := &recordingHelper{binding: b}
	r.helpers = append(r.helpers, h)
	return h
}

func (r *recorder) last() *recordingHelper {
	return r.helpers[len(r.helpers)-1]
}

func recordingNamespace() (*Namespace, *recorder) {
	ns := NewNamespace("test")
	rec := &recorder{}
	ns.SetResultFactory(rec.factory)
	return ns, rec
}

type Widget struct {
	Record
}

type User struct {
	Record
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type LegacyOrder struct {
	Record
	OrderID int64 `db:"order_id"`
}

func (LegacyOrder) TableName() string           { return "orders_legacy" }
func (LegacyOrder) TablePrefix() string         { return "app_" }
func (LegacyOrder) PrimaryKeyColumns() []string { return []string{"order_id", "line"} }
