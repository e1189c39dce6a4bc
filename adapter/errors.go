package adapter

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrAdapterUnavailable is matched by errors for adapter names with no registered constructor.
	ErrAdapterUnavailable = errors.New("dbrec: adapter unavailable")

	// ErrConstructionFailed is matched by errors raised while an adapter was being built.
	ErrConstructionFailed = errors.New("dbrec: adapter construction failed")

	// ErrInvalidConfiguration is matched by errors about an unusable option bag.
	ErrInvalidConfiguration = errors.New("dbrec: invalid adapter configuration")
)

// UnavailableError carries the qualified name that had no constructor.
type UnavailableError struct {
	Name string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("dbrec: the database adapter %s does not exist", e.Name)
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrAdapterUnavailable
}

// ConstructionError wraps the failure returned by an adapter constructor.
type ConstructionError struct {
	Name  string
	Cause error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("dbrec: failed to construct adapter %s: %v", e.Name, e.Cause)
}

func (e *ConstructionError) Unwrap() error {
	return e.Cause
}

func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstructionFailed
}

type ConfigurationError struct {
	Family Family
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("dbrec: invalid configuration for %s: field '%s': %s", e.Family, e.Field, e.Reason)
	}
	return fmt.Sprintf("dbrec: invalid configuration for %s: %s", e.Family, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}
