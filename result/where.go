package result

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var operators = []string{"=", "!=", "<>", ">", ">=", "<", "<=", "LIKE", "NOT LIKE", "IN", "NOT IN", "IS", "IS NOT"}

// splitKey separates "age >=" into the column and an upper-cased operator.
func splitKey(key string) (string, string, error) {
	key = strings.TrimSpace(key)
	column, op, found := strings.Cut(key, " ")
	if !found {
		return key, "", nil
	}
	op = strings.ToUpper(strings.Join(strings.Fields(op), " "))
	if !lo.Contains(operators, op) {
		return "", "", errors.Errorf("dbrec: unsupported operator %q in predicate %q", op, key)
	}
	return column, op, nil
}

func isList(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// buildWhere renders column predicates in sorted key order. List values are left
// as single "?" placeholders for sqlx.In to expand.
func buildWhere(quote func(string) string, cols Columns) (string, []any, error) {
	if len(cols) == 0 {
		return "", nil, nil
	}
	keys := lo.Keys(cols)
	sort.Strings(keys)

	var (
		clauses []string
		attrs   []any
	)
	for _, key := range keys {
		column, op, err := splitKey(key)
		if err != nil {
			return "", nil, err
		}
		name := quote(column)
		v := cols[key]
		if (op == "IN" || op == "NOT IN") && v != nil && !isList(v) {
			v = []any{v}
		}
		switch {
		case v == nil:
			if op == "!=" || op == "<>" || op == "IS NOT" {
				clauses = append(clauses, fmt.Sprintf("(%s IS NOT NULL)", name))
			} else {
				clauses = append(clauses, fmt.Sprintf("(%s IS NULL)", name))
			}
		case isList(v):
			not := op == "NOT IN" || op == "!=" || op == "<>"
			if reflect.ValueOf(v).Len() == 0 {
				if not {
					clauses = append(clauses, "(1 = 1)")
				} else {
					clauses = append(clauses, "(1 = 0)")
				}
				continue
			}
			if not {
				clauses = append(clauses, fmt.Sprintf("(%s NOT IN (?))", name))
			} else {
				clauses = append(clauses, fmt.Sprintf("(%s IN (?))", name))
			}
			attrs = append(attrs, v)
		case op == "":
			if s, ok := v.(string); ok && (strings.HasPrefix(s, "%") || strings.HasSuffix(s, "%")) {
				clauses = append(clauses, fmt.Sprintf("(%s LIKE ?)", name))
			} else {
				clauses = append(clauses, fmt.Sprintf("(%s = ?)", name))
			}
			attrs = append(attrs, v)
		default:
			clauses = append(clauses, fmt.Sprintf("(%s %s ?)", name, op))
			attrs = append(attrs, v)
		}
	}
	return strings.Join(clauses, " AND "), attrs, nil
}
