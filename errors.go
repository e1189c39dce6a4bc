package dbrec

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/iamdanielyin/dbrec/adapter"
)

var (
	// ErrNoConnection matches when no registry key resolves for a class.
	ErrNoConnection = errors.New("dbrec: no database connection")

	ErrAdapterUnavailable = adapter.ErrAdapterUnavailable
	ErrConstructionFailed = adapter.ErrConstructionFailed
)

type NoConnectionError struct {
	Class string
}

func (e *NoConnectionError) Error() string {
	return fmt.Sprintf("dbrec: no database adapter was found for %s", e.Class)
}

func (e *NoConnectionError) Is(target error) bool {
	return target == ErrNoConnection
}
