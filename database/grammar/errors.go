package grammar

import (
	"errors"
	"fmt"
)

// ErrDriverNotSupported matches every DriverNotSupportedError via errors.Is.
var ErrDriverNotSupported = errors.New("driver not supported")

// DriverNotSupportedError reports a driver identifier without a grammar.
// Driver holds the offending value as supplied, including non-string inputs.
type DriverNotSupportedError struct {
	Driver any
}

func (e *DriverNotSupportedError) Error() string {
	return fmt.Sprintf("driver '%v' is not supported (supported: %v)", e.Driver, Drivers())
}

// Is allows errors.Is(err, ErrDriverNotSupported).
func (e *DriverNotSupportedError) Is(target error) bool {
	return target == ErrDriverNotSupported
}
