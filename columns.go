package dbrec

import (
	"database/sql"
	"reflect"
	"strings"

	"github.com/iamdanielyin/structs"
	"github.com/iancoleman/strcase"
	"github.com/jmoiron/sqlx/reflectx"
	"github.com/pkg/errors"

	"github.com/iamdanielyin/dbrec/result"
)

var fieldMapper = reflectx.NewMapperFunc("db", strcase.ToSnake)

// columnName reads a db tag: "-" skips the field, an empty name falls back to
// the snake_case field name.
func columnName(field *structs.Field) (string, bool, bool) {
	tag := field.Tag("db")
	if tag == "-" {
		return "", false, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = strcase.ToSnake(field.Name())
	}
	return name, strings.Contains(opts, "omitempty"), true
}

// ColumnsOf converts a struct or struct pointer to column values using its db
// tags. Maps are returned as Columns unchanged.
func ColumnsOf(v any) result.Columns {
	switch m := v.(type) {
	case nil:
		return nil
	case result.Columns:
		return m
	case map[string]any:
		return m
	}
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil
	}
	cols := make(result.Columns)
	for _, field := range structs.New(rv.Interface()).Fields() {
		if !field.IsExported() {
			continue
		}
		if field.IsEmbedded() {
			if field.Kind() == reflect.Ptr && field.IsZero() {
				continue
			}
			for k, val := range ColumnsOf(field.Value()) {
				cols[k] = val
			}
			continue
		}
		name, omitEmpty, ok := columnName(field)
		if !ok || (omitEmpty && field.IsZero()) {
			continue
		}
		cols[name] = field.Value()
	}
	return cols
}

// assignColumns copies column values into the matching db-tagged fields of dst.
// Unknown columns, nil values and inconvertible values are skipped.
func assignColumns(dst any, cols result.Columns) error {
	v := reflect.Indirect(reflect.ValueOf(dst))
	if v.Kind() != reflect.Struct {
		return nil
	}
	tm := fieldMapper.TypeMap(v.Type())
	for name, val := range cols {
		fi, ok := tm.Names[name]
		if !ok || val == nil || fi.Field.PkgPath != "" {
			continue
		}
		f := reflectx.FieldByIndexes(v, fi.Index)
		if !f.CanSet() {
			continue
		}
		if scanner, ok := f.Addr().Interface().(sql.Scanner); ok {
			if err := scanner.Scan(val); err != nil {
				return errors.Wrapf(err, "dbrec: assign column %s", name)
			}
			continue
		}
		rv := reflect.ValueOf(val)
		switch {
		case rv.Type().AssignableTo(f.Type()):
			f.Set(rv)
		case f.Kind() == reflect.String && rv.Kind() != reflect.String:
		case rv.Type().ConvertibleTo(f.Type()):
			f.Set(rv.Convert(f.Type()))
		}
	}
	return nil
}
