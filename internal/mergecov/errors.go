package mergecov

import (
	"fmt"

	"github.com/mibar/covmerge/internal/coverage"
)

// MalformedInputError is returned when a FunctionCov has no ranges (always
// in MergeFunctions; in MergeScripts only when [Options.Strict] is set), or
// when the inputs to MergeFunctions do not share one root range. Nesting,
// ordering and bounds of the ranges are not checked: such input gives an
// unspecified result rather than this error. Untrusted callers should
// validate before merging.
type MalformedInputError struct {
	URL          string
	FunctionName string
	Range        coverage.RangeCov
	Reason       string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed coverage input: url=%q function=%q range=%+v: %s",
		e.URL, e.FunctionName, e.Range, e.Reason)
}

// InternalInvariantError describes a bug in the merge algorithm itself —
// an invariant that split, normalize, or the sweep must maintain was
// violated. No function in this module returns it or panics with it: the
// merge code performs no invariant checks.
type InternalInvariantError struct {
	Detail string
}

func (e *InternalInvariantError) Error() string {
	return fmt.Sprintf("internal invariant violation in covmerge: %s", e.Detail)
}
