package dbrec

import (
	"reflect"
	"strings"
)

// BaseClass is the class name of Record itself. Registering against it also
// fills the default slot.
var BaseClass = ClassOf[Record]()

// ClassOf returns the registry class name of T: its package path, a dot and
// its type name.
func ClassOf[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// Unqualify strips a class name down to its bare type name. Namespace
// separators go first, then underscore pseudo-namespaces such as Model_User.
func Unqualify(class string) string {
	if i := strings.LastIndexAny(class, `\/.`); i >= 0 {
		class = class[i+1:]
	}
	if i := strings.LastIndex(class, "_"); i >= 0 {
		class = class[i+1:]
	}
	return class
}
