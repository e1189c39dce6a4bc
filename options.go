package dbrec

import (
	"github.com/iamdanielyin/dbrec/adapter"
	"github.com/iamdanielyin/dbrec/result"
)

type options struct {
	ns        *Namespace
	columns   result.Columns
	adapter   adapter.Adapter
	table     string
	prefix    string
	isDefault bool
}

// Option configures New, the finders and the generic registry helpers. For
// options of the same kind the last one wins.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{ns: DefaultNamespace}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.ns == nil {
		o.ns = DefaultNamespace
	}
	return o
}

// InNamespace selects the registry; DefaultNamespace otherwise.
func InNamespace(ns *Namespace) Option {
	return func(o *options) { o.ns = ns }
}

// WithColumns sets the initial column values of a new record.
func WithColumns(cols map[string]any) Option {
	return func(o *options) { o.columns = cols }
}

// WithStruct sets the initial column values from the db-tagged fields of v.
func WithStruct(v any) Option {
	return func(o *options) { o.columns = ColumnsOf(v) }
}

// WithAdapter registers a against the record's class before it is resolved.
func WithAdapter(a adapter.Adapter) Option {
	return func(o *options) { o.adapter = a }
}

// WithTable sets an explicit table identifier.
func WithTable(name string) Option {
	return func(o *options) { o.table = name }
}

// WithPrefix also binds the adapter under a class-name prefix. Used by SetDB.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// AsDefault also binds the adapter to the default slot. Used by SetDB.
func AsDefault() Option {
	return func(o *options) { o.isDefault = true }
}
