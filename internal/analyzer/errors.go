package analyzer

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrNoEntryPoints matches every *EntryPointError.
	ErrNoEntryPoints = errors.New("no entry points found")
)

// ConfigurationError reports a missing or unusable project directory. It is
// fatal and returned before any analysis starts.
type ConfigurationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Reason, e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// ManifestError reports a root manifest that is missing or does not parse.
// It is logged, never returned.
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("root manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// EntryPointError reports an empty seed set.
type EntryPointError struct {
	MiniAppRoot string
}

func (e *EntryPointError) Error() string {
	return fmt.Sprintf("no entry points found under %s: no app manifest, implicit global files or essential files", e.MiniAppRoot)
}

func (e *EntryPointError) Is(target error) bool { return target == ErrNoEntryPoints }
