package mergecov

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/mibar/covmerge/internal/coverage"
)

// rootKey identifies a function by its root range within one script: two
// functions sharing a rootKey are the same function position across
// inputs and are merged together.
type rootKey struct {
	start, end int
}

// MergeScripts merges a list of ScriptCov that all share one URL. Functions
// are grouped by their root (StartOffset, EndOffset); each group is merged
// with MergeFunctions. The result carries the first input's ScriptID and
// URL. Groups are processed in sorted root-range order so the output is
// deterministic regardless of opts.MaxWorkers.
func MergeScripts(scripts []coverage.ScriptCov, opts *Options) (*coverage.ScriptCov, error) {
	switch len(scripts) {
	case 0:
		return nil, nil
	case 1:
		clone := scripts[0].Clone()
		return &clone, nil
	}

	groups := make(map[rootKey][]coverage.FunctionCov)
	var order []rootKey
	seen := make(map[rootKey]bool)
	for _, s := range scripts {
		// A root range repeated within one script keeps its first function.
		inScript := make(map[rootKey]bool)
		for _, fn := range s.Functions {
			if len(fn.Ranges) == 0 {
				if opts.strict() {
					return nil, &MalformedInputError{
						URL:          s.URL,
						FunctionName: fn.FunctionName,
						Reason:       "function has no ranges",
					}
				}
				continue
			}
			root := fn.Root()
			key := rootKey{root.StartOffset, root.EndOffset}
			if inScript[key] {
				continue
			}
			inScript[key] = true
			if !seen[key] {
				seen[key] = true
				order = append(order, key)
			}
			groups[key] = append(groups[key], fn)
		}
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].start != order[j].start {
			return order[i].start < order[j].start
		}
		return order[i].end < order[j].end
	})

	merged := make([]coverage.FunctionCov, len(order))
	g := new(errgroup.Group)
	g.SetLimit(opts.maxWorkers())
	for idx, key := range order {
		idx, key := idx, key
		g.Go(func() error {
			fn, err := MergeFunctions(groups[key])
			if err != nil {
				return err
			}
			merged[idx] = *fn
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &coverage.ScriptCov{
		ScriptID:  scripts[0].ScriptID,
		URL:       scripts[0].URL,
		Functions: merged,
	}, nil
}
