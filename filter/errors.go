package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/s0up4200/eiga/tmdb"
)

// ErrUnknownPreset is returned when a preset name is not registered
var ErrUnknownPreset = errors.New("unknown filter preset")

// CompilationError describes an expression the compiler rejected.
// Column is 1-based; 0 means the parser reported no location.
type CompilationError struct {
	Expression string
	Column     int
	Message    string
	Err        error
}

func (e *CompilationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid filter %q", e.Expression)
	if e.Column > 0 {
		fmt.Fprintf(&sb, " at column %d", e.Column)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	return sb.String()
}

func (e *CompilationError) Unwrap() error { return e.Err }

// EvaluationError is a runtime failure of a filter against one record
type EvaluationError struct {
	Expression string
	MediaID    int
	MediaType  tmdb.MediaType
	Title      string
	Err        error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("filter %q failed on %s %d (%s): %v", e.Expression, e.MediaType, e.MediaID, e.Title, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// PresetError ties a failure to the preset it came from
type PresetError struct {
	Name string
	Err  error
}

func (e *PresetError) Error() string {
	return "preset " + e.Name + ": " + e.Err.Error()
}

func (e *PresetError) Unwrap() error { return e.Err }
