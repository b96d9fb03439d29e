package analysis

import (
	"errors"
	"fmt"
)

// Error kinds the pipeline classifies failures into. They are attached
// to the concrete cause with errors.Join, so callers test with
// errors.Is and still see the underlying error in the message.
var (
	// ErrLoad marks a missing, malformed or unreadable graph file.
	ErrLoad = errors.New("graph load failed")
	// ErrOutOfMemory marks an allocation budget breach on an oversized
	// graph. Operators need to tell this apart from logic failures.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrWriteOutput marks a failure writing an output artifact.
	ErrWriteOutput = errors.New("writing output artifact failed")
)

// fatal ties a failure to its error kind and the stage that raised it.
func fatal(kind error, stage string, cause error) error {
	return fmt.Errorf("stage %s: %w", stage, errors.Join(kind, cause))
}

// Warning is a non-fatal stage diagnostic. The run completes and the
// warning travels into the report, so a failed computation stays
// distinguishable from a genuinely zero result.
type Warning struct {
	Stage   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
