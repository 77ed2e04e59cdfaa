package mergecov

// Options configures a Process or Script merge. A nil *Options (or the zero
// value) is always a valid, fully sequential, lenient configuration.
type Options struct {
	// MaxWorkers bounds how many independent Script merges (within a
	// Process merge) or Function merges (within a Script merge) run
	// concurrently. 0 or 1 means sequential — spec.md §5 describes
	// parallelism as optional; this is the opt-in. Independent merges are
	// always joined, in sorted order, before the result is assembled, so
	// output is identical regardless of MaxWorkers.
	MaxWorkers int

	// Strict makes MergeScripts (and so MergeProcesses) reject a FunctionCov
	// with zero Ranges as MalformedInput. When false (the default),
	// MergeScripts drops such a function before grouping by root range, so
	// it contributes nothing to the merged script. MergeFunctions rejects a
	// function with zero Ranges whatever Strict says.
	Strict bool
}

func (o *Options) maxWorkers() int {
	if o == nil || o.MaxWorkers < 1 {
		return 1
	}
	return o.MaxWorkers
}

func (o *Options) strict() bool {
	return o != nil && o.Strict
}
