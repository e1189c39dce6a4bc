package dbrec

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/iamdanielyin/dbrec/adapter"
	"github.com/iamdanielyin/dbrec/logger"
	"github.com/iamdanielyin/dbrec/result"
)

// DefaultKey is the registry slot used when neither the class nor a prefix matches.
const DefaultKey = "default"

// Namespace is a connection registry. Keys are class names, class-name
// prefixes or DefaultKey, kept in insertion order.
type Namespace struct {
	Name string

	mu      sync.RWMutex
	keys    []string
	conns   map[string]adapter.Adapter
	factory result.Factory
}

func NewNamespace(name string) *Namespace {
	return &Namespace{
		Name:    name,
		keys:    []string{DefaultKey},
		conns:   map[string]adapter.Adapter{DefaultKey: nil},
		factory: result.New,
	}
}

// SetResultFactory replaces the helper factory used by records built in ns.
// A nil factory restores result.New.
func (ns *Namespace) SetResultFactory(f result.Factory) {
	if f == nil {
		f = result.New
	}
	ns.mu.Lock()
	defer ns.mu.Unlock()
	ns.factory = f
}

func (ns *Namespace) resultFactory() result.Factory {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	return ns.factory
}

// store must be called with mu held. Existing keys keep their position.
func (ns *Namespace) store(key string, a adapter.Adapter) {
	if _, ok := ns.conns[key]; !ok {
		ns.keys = append(ns.keys, key)
	}
	ns.conns[key] = a
}

// SetDB binds a under prefix (when not empty) and class. The default slot is
// also bound when isDefault is set or class is BaseClass.
func (ns *Namespace) SetDB(class string, a adapter.Adapter, prefix string, isDefault bool) {
	ns.mu.Lock()
	if prefix != "" {
		ns.store(prefix, a)
	}
	ns.store(class, a)
	asDefault := isDefault || class == BaseClass
	if asDefault {
		ns.store(DefaultKey, a)
	}
	ns.mu.Unlock()

	logger.Default().WithFields(logrus.Fields{
		"namespace": ns.Name,
		"class":     class,
		"prefix":    prefix,
		"default":   asDefault,
	}).Debug("dbrec: connection registered")
}

func (ns *Namespace) lookup(class string) adapter.Adapter {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	if a := ns.conns[class]; a != nil {
		return a
	}
	if a := ns.conns[DefaultKey]; a != nil {
		return a
	}
	var found adapter.Adapter
	for _, key := range ns.keys {
		if a := ns.conns[key]; a != nil && strings.HasPrefix(class, key) {
			found = a
		}
	}
	return found
}

// HasDB reports whether DB would succeed for class.
func (ns *Namespace) HasDB(class string) bool {
	return ns.lookup(class) != nil
}

// DB resolves the adapter for class: the exact class key, then the default
// slot, then the most recently inserted key that prefixes class.
func (ns *Namespace) DB(class string) (adapter.Adapter, error) {
	if a := ns.lookup(class); a != nil {
		return a, nil
	}
	return nil, &NoConnectionError{Class: class}
}

// Keys returns the registry keys in insertion order, DefaultKey first.
func (ns *Namespace) Keys() []string {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	return append([]string(nil), ns.keys...)
}
