package adapter

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/iamdanielyin/dbrec/logger"
)

// DefaultPrefix is the namespace the built-in adapters are registered under.
const DefaultPrefix = "github.com/iamdanielyin/dbrec/adapter."

// Constructor builds an adapter from an option bag.
type Constructor func(opts Options) (Adapter, error)

// Factory maps qualified adapter names to constructors.
type Factory struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

func NewFactory() *Factory {
	return &Factory{ctors: make(map[string]Constructor)}
}

// ClassName lower-cases name and upper-cases its first letter.
func ClassName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

func qualify(name string, prefix []string) string {
	p := DefaultPrefix
	if len(prefix) > 0 && prefix[0] != "" {
		p = prefix[0]
	}
	return p + ClassName(name)
}

func (f *Factory) Register(prefix, name string, ctor Constructor) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctors[prefix+ClassName(name)] = ctor
}

func (f *Factory) lookup(qualified string) (Constructor, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	ctor, ok := f.ctors[qualified]
	return ctor, ok
}

// Registered returns the qualified names of every registered constructor, sorted.
func (f *Factory) Registered() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := lo.Keys(f.ctors)
	sort.Strings(names)
	return names
}

// Connect builds a new adapter for name. Every call returns a fresh adapter.
func (f *Factory) Connect(name string, opts Options, prefix ...string) (Adapter, error) {
	qualified := qualify(name, prefix)
	ctor, ok := f.lookup(qualified)
	if !ok {
		return nil, &UnavailableError{Name: qualified}
	}
	a, err := ctor(opts)
	if err != nil {
		return nil, &ConstructionError{Name: qualified, Cause: err}
	}
	if a == nil {
		return nil, &ConstructionError{Name: qualified, Cause: errors.New("constructor returned no adapter")}
	}
	logger.Default().WithFields(logrus.Fields{
		"adapter": qualified,
		"driver":  a.DriverName(),
	}).Debug("dbrec: adapter connected")
	return a, nil
}

// Check tries to build the adapter and reports why it could not be built, or nil.
// The logger is held at fatal level for the duration of the probe.
func (f *Factory) Check(name string, opts Options, prefix ...string) (err error) {
	restore := logger.Quiet()
	defer restore()

	qualified := qualify(name, prefix)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dbrec: adapter %s panicked: %v", qualified, r)
		}
	}()

	ctor, ok := f.lookup(qualified)
	if !ok {
		return &UnavailableError{Name: qualified}
	}
	a, cerr := ctor(opts)
	if cerr != nil {
		return cerr
	}
	if a != nil {
		_ = a.Close()
	}
	return nil
}

// Install is reserved for schema bootstrap. It does nothing and always returns nil.
func (f *Factory) Install(sql string, name string, opts Options, prefix ...string) error {
	return nil
}

var defaultFactory = NewFactory()

// DefaultFactory returns the factory seeded with the built-in adapters.
func DefaultFactory() *Factory {
	return defaultFactory
}

// Register adds ctor to the default factory under DefaultPrefix.
func Register(name string, ctor Constructor) {
	defaultFactory.Register(DefaultPrefix, name, ctor)
}

func Connect(name string, opts Options, prefix ...string) (Adapter, error) {
	return defaultFactory.Connect(name, opts, prefix...)
}

func Check(name string, opts Options, prefix ...string) error {
	return defaultFactory.Check(name, opts, prefix...)
}

func Install(sql string, name string, opts Options, prefix ...string) error {
	return defaultFactory.Install(sql, name, opts, prefix...)
}

// constructorOf adapts a typed constructor without leaking typed nil adapters.
func constructorOf[A Adapter](fn func(Options) (A, error)) Constructor {
	return func(opts Options) (Adapter, error) {
		a, err := fn(opts)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
}
