package playlist

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingResource reports a manifest entry whose media file does not exist.
	ErrMissingResource = errors.New("missing media resource")

	// ErrEmpty reports a manifest without any track.
	ErrEmpty = errors.New("manifest has no tracks")
)

// MissingResourceError identifies the resource that could not be resolved.
// It matches ErrMissingResource with errors.Is.
type MissingResourceError struct {
	Name string
	Err  error
}

func (e *MissingResourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrMissingResource, e.Name)
	}
	return fmt.Sprintf("%s: %s: %v", ErrMissingResource, e.Name, e.Err)
}

func (e *MissingResourceError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMissingResource) true.
func (e *MissingResourceError) Is(target error) bool {
	return target == ErrMissingResource
}
