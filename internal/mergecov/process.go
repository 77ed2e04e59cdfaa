package mergecov

import (
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/mibar/covmerge/internal/coverage"
)

// MergeProcesses merges a list of ProcessCov. Scripts are grouped by URL
// (the only cross-process key); each group is merged with MergeScripts.
// scriptId is then reassigned, per script, to the stringified 0-based rank
// of its URL in sorted order — deterministic regardless of input order or
// opts.MaxWorkers.
func MergeProcesses(procs []coverage.ProcessCov, opts *Options) (*coverage.ProcessCov, error) {
	switch len(procs) {
	case 0:
		return nil, nil
	case 1:
		clone := procs[0].Clone()
		return &clone, nil
	}

	groups := make(map[string][]coverage.ScriptCov)
	var urls []string
	seen := make(map[string]bool)
	for _, p := range procs {
		for _, s := range p.Result {
			if !seen[s.URL] {
				seen[s.URL] = true
				urls = append(urls, s.URL)
			}
			groups[s.URL] = append(groups[s.URL], s)
		}
	}
	sort.Strings(urls)

	merged := make([]coverage.ScriptCov, len(urls))
	g := new(errgroup.Group)
	g.SetLimit(opts.maxWorkers())
	for idx, url := range urls {
		idx, url := idx, url
		g.Go(func() error {
			sc, err := MergeScripts(groups[url], opts)
			if err != nil {
				return err
			}
			sc.ScriptID = strconv.Itoa(idx)
			merged[idx] = *sc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &coverage.ProcessCov{Result: merged}, nil
}
