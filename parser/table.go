// Package parser turns unqualified type names into table identifiers.
package parser

import (
	"strings"

	"gorm.io/gorm/schema"
)

var naming = schema.NamingStrategy{}

// Table returns the snake_case plural table name for name. Already canonical
// names are returned unchanged.
func Table(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return naming.TableName(name)
}

// WithNaming parses name with a custom gorm naming strategy, e.g. singular tables.
func WithNaming(ns schema.NamingStrategy, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return ns.TableName(name)
}
