package portfolio

import (
	"errors"
	"fmt"
)

var (
	ErrThemeNotFound = errors.New("portfolio: theme not found")
	ErrInvalidJobID  = errors.New("portfolio: invalid job id")
	ErrInvalidColor  = errors.New("portfolio: invalid colour")
	ErrSiteNotFound  = errors.New("portfolio: site not found")
)

// RenderError represents a failure while producing a site's files.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
