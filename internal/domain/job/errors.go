package job

import (
	"errors"
	"fmt"
)

var (
	ErrJobNotFound          = errors.New("job not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("you have already applied to this job")
)

// InvalidQueryParameterError reports a search parameter that could not be parsed.
type InvalidQueryParameterError struct {
	Field string
	Value string
}

func (e *InvalidQueryParameterError) Error() string {
	return fmt.Sprintf("invalid value %q for query parameter %s", e.Value, e.Field)
}
