package binding

import (
	"errors"
	"fmt"
)

var errNoLoader = errors.New("no native module loader registered")

// UnavailableError is returned by every forwarding entry point once the
// native extension failed to load (or no loader was supplied). It is never
// produced at construction time, so packages without the compiled
// extension still initialize and can fall back to the REST transport.
type UnavailableError struct {
	Cause error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("could not load the swat native extension: %v; "+
		"this is likely due to the package being installed from source rather "+
		"than being compiled; the REST interface can be used as an alternative", e.Cause)
}

func (e *UnavailableError) Unwrap() error { return e.Cause }

// ClientError carries a native client error message, decoded as UTF-8,
// verbatim. It is produced exclusively by ErrorCheck.
type ClientError struct {
	Message string
}

func (e *ClientError) Error() string { return e.Message }

// IsUnavailable reports whether err stems from a missing or unloadable
// native extension.
func IsUnavailable(err error) bool {
	var u *UnavailableError
	return errors.As(err, &u)
}
