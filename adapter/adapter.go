// Package adapter builds database adapters by name and reports which adapter
// families the running binary can reach.
package adapter

import (
	"strings"

	"github.com/jmoiron/sqlx"
)

// Family is the short name of an adapter family.
type Family string

const (
	FamilyMysqli Family = "mysqli"
	FamilyOracle Family = "oracle"
	FamilyPDO    Family = "pdo"
	FamilyPgsql  Family = "pgsql"
	FamilySqlite Family = "sqlite"
	FamilySqlsrv Family = "sqlsrv"
)

// Families lists every supported family in report order.
var Families = []Family{FamilyMysqli, FamilyOracle, FamilyPDO, FamilyPgsql, FamilySqlite, FamilySqlsrv}

// PDODrivers lists the sub-drivers reported for the pdo family.
var PDODrivers = []string{"mysql", "pgsql", "sqlite", "sqlsrv"}

// Options is the opaque, driver-specific option bag handed to a constructor.
type Options map[string]any

type Adapter interface {
	Family() Family
	// DriverName is the database/sql driver name backing the adapter.
	DriverName() string
	DB() *sqlx.DB
	QuoteIdentifier(name string) string
	// QueryClauses is the text/template used to render SELECT statements.
	QueryClauses() string
	Close() error
}

type quoteStyle int

const (
	quoteBacktick quoteStyle = iota
	quoteDouble
	quoteBracket
)

// conn is the sqlx-backed core shared by the concrete adapters.
type conn struct {
	family  Family
	driver  string
	xdb     *sqlx.DB
	quote   quoteStyle
	clauses string
}

func (c *conn) Family() Family {
	return c.family
}

func (c *conn) DriverName() string {
	return c.driver
}

func (c *conn) DB() *sqlx.DB {
	return c.xdb
}

func (c *conn) QueryClauses() string {
	return c.clauses
}

func (c *conn) Close() error {
	if c.xdb == nil {
		return nil
	}
	return c.xdb.Close()
}

// QuoteIdentifier quotes each dot-separated part of name.
func (c *conn) QuoteIdentifier(name string) string {
	return quoteIdentifier(c.quote, name)
}

func quoteIdentifier(style quoteStyle, name string) string {
	if name == "" || name == "*" {
		return name
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		if p == "" || p == "*" {
			continue
		}
		switch style {
		case quoteBacktick:
			parts[i] = "`" + strings.ReplaceAll(p, "`", "``") + "`"
		case quoteBracket:
			parts[i] = "[" + strings.ReplaceAll(p, "]", "]]") + "]"
		default:
			parts[i] = `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
		}
	}
	return strings.Join(parts, ".")
}

const limitClauses = `SELECT {{if .Columns}}{{join ", " .Columns}}{{else}}*{{end}}
			FROM {{.Table}}
			{{if .Where}}
			WHERE {{.Where}}
			{{end}}
			{{if .OrderBy}}
			ORDER BY {{.OrderBy}}
			{{end}}
			{{if .Limit}}
			LIMIT {{.Limit}}{{if .Offset}} OFFSET {{.Offset}}{{end}}
			{{end}}`

const fetchClauses = `SELECT {{if .Columns}}{{join ", " .Columns}}{{else}}*{{end}}
			FROM {{.Table}}
			{{if .Where}}
			WHERE {{.Where}}
			{{end}}
			{{if .OrderBy}}
			ORDER BY {{.OrderBy}}
			{{else if .Paged}}
			ORDER BY (SELECT NULL)
			{{end}}
			{{if .Paged}}
			OFFSET {{default 0 .Offset}} ROWS{{if .Limit}} FETCH NEXT {{.Limit}} ROWS ONLY{{end}}
			{{end}}`

const oracleClauses = `SELECT {{if .Columns}}{{join ", " .Columns}}{{else}}*{{end}}
			FROM {{.Table}}
			{{if .Where}}
			WHERE {{.Where}}
			{{end}}
			{{if .OrderBy}}
			ORDER BY {{.OrderBy}}
			{{end}}
			{{if .Paged}}
			OFFSET {{default 0 .Offset}} ROWS{{if .Limit}} FETCH NEXT {{.Limit}} ROWS ONLY{{end}}
			{{end}}`

// Clauses returns the default SELECT template for a family; sub names the pdo sub-driver.
func Clauses(family Family, sub string) string {
	switch {
	case family == FamilyOracle:
		return oracleClauses
	case family == FamilySqlsrv:
		return fetchClauses
	case family == FamilyPDO && sub == "sqlsrv":
		return fetchClauses
	default:
		return limitClauses
	}
}
