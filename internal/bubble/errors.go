package bubble

import (
	"errors"
	"fmt"
)

// ErrNoHost is wrapped by the ConfigurationError returned when New is called
// without a map host.
var ErrNoHost = errors.New("map host is required")

// ConfigurationError reports a missing or unusable collaborator at
// construction time. Nothing is initialized when it is returned.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("bubble configuration: %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
