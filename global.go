package dbrec

import (
	"github.com/iamdanielyin/dbrec/adapter"
)

// DefaultNamespace is the process-wide connection registry.
var DefaultNamespace = NewNamespace(DefaultKey)

func Connect(name string, opts adapter.Options, prefix ...string) (adapter.Adapter, error) {
	return adapter.Connect(name, opts, prefix...)
}

func Check(name string, opts adapter.Options, prefix ...string) error {
	return adapter.Check(name, opts, prefix...)
}

func Install(sql string, name string, opts adapter.Options, prefix ...string) error {
	return adapter.Install(sql, name, opts, prefix...)
}

func AvailableAdapters() adapter.Report {
	return adapter.AvailableAdapters()
}

func IsAvailable(name string) bool {
	return adapter.IsAvailable(name)
}

// SetDB binds a to T's class. WithPrefix and AsDefault add the extra keys;
// InNamespace selects the registry.
func SetDB[T any](a adapter.Adapter, opts ...Option) {
	o := newOptions(opts)
	o.ns.SetDB(ClassOf[T](), a, o.prefix, o.isDefault)
}

func HasDB[T any](opts ...Option) bool {
	return newOptions(opts).ns.HasDB(ClassOf[T]())
}

func DB[T any](opts ...Option) (adapter.Adapter, error) {
	return newOptions(opts).ns.DB(ClassOf[T]())
}

func FindByID[T any, PT Entity[T]](id any, as ...Shape) (*Rows, error) {
	return Using[T, PT](DefaultNamespace).FindByID(id, as...)
}

func FindBy[T any, PT Entity[T]](cols Columns, opts *FindOptions, as ...Shape) (*Rows, error) {
	return Using[T, PT](DefaultNamespace).FindBy(cols, opts, as...)
}

func FindAll[T any, PT Entity[T]](opts *FindOptions, as ...Shape) (*Rows, error) {
	return Using[T, PT](DefaultNamespace).FindAll(opts, as...)
}

func Execute[T any, PT Entity[T]](sql string, params any, as ...Shape) (*Rows, error) {
	return Using[T, PT](DefaultNamespace).Execute(sql, params, as...)
}

func Query[T any, PT Entity[T]](sql string, as ...Shape) (*Rows, error) {
	return Using[T, PT](DefaultNamespace).Query(sql, as...)
}

func GetTotal[T any, PT Entity[T]](cols Columns, as ...Shape) (int, error) {
	return Using[T, PT](DefaultNamespace).GetTotal(cols, as...)
}
