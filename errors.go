package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnhandledType matches any *UnhandledTypeError via errors.Is.
	ErrUnhandledType = errors.New("no method for classes")

	// ErrInvalidBinding is returned when a registration is malformed
	// (empty method, empty class or nil implementation).
	ErrInvalidBinding = errors.New("invalid binding")

	// ErrResultType is returned by Generic when a bound implementation
	// produced a result of the wrong Go type.
	ErrResultType = errors.New("unexpected result type")
)

// UnhandledTypeError reports a dispatch that matched no class binding and
// found no default for the method.
type UnhandledTypeError struct {
	Method  Method
	Classes []Class // Every class tried, most specific first
}

func (e *UnhandledTypeError) Error() string {
	names := make([]string, len(e.Classes))
	for i, c := range e.Classes {
		names[i] = string(c)
	}
	return fmt.Sprintf("no applicable method for %q applied to classes [%s]",
		e.Method, strings.Join(names, ", "))
}

// Is lets errors.Is(err, ErrUnhandledType) succeed.
func (e *UnhandledTypeError) Is(target error) bool {
	return target == ErrUnhandledType
}
