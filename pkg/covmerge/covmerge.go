// Package covmerge is the public library surface for merging V8 JavaScript
// coverage reports: N independent executions' coverage of the same code,
// combined into one report whose per-range counts are the inputs' sums.
//
// Three entry points, one per nesting level:
//
//	out, err := covmerge.MergeProcesses(processes, nil)
//	out, err := covmerge.MergeScripts(scripts, nil)
//	out, err := covmerge.MergeFunctions(functions)
//
// Each returns (nil, nil) for an empty input and a structural clone for a
// single-element input. The hard part — reconciling differently-partitioned
// but always properly-nested range trees for the same function — lives in
// MergeFunctions; MergeScripts and MergeProcesses are group-and-delegate
// layers on top of it (by root range, then by URL).
//
// This package is a thin re-export of internal/mergecov, mirroring the
// teacher's internal/jsonpath + pkg/shaker split: the algorithm lives where
// it can stay unexported and free to change shape, and pkg/covmerge is the
// stable surface callers import.
package covmerge

import (
	"github.com/mibar/covmerge/internal/coverage"
	"github.com/mibar/covmerge/internal/mergecov"
)

type (
	// RangeCov is a half-open byte interval with an execution count.
	RangeCov = coverage.RangeCov

	// FunctionCov is one function's coverage: its ranges, properly nested,
	// plus its name and block-coverage flag.
	FunctionCov = coverage.FunctionCov

	// ScriptCov is one script's coverage: its id, URL, and functions.
	ScriptCov = coverage.ScriptCov

	// ProcessCov is one process's coverage: the scripts it touched.
	ProcessCov = coverage.ProcessCov

	// Options configures optional parallelism and input strictness. A nil
	// *Options is always valid: sequential and lenient.
	Options = mergecov.Options

	// MalformedInputError is returned when a FunctionCov has no ranges
	// (always for MergeFunctions, in Strict mode for MergeScripts and
	// MergeProcesses) or when MergeFunctions inputs have different root
	// ranges. Range nesting and ordering are not validated.
	MalformedInputError = mergecov.MalformedInputError

	// InternalInvariantError describes a bug in the merge algorithm; no
	// function in this module returns it or panics with it.
	InternalInvariantError = mergecov.InternalInvariantError
)

// MergeFunctions merges a set of FunctionCov that share one root
// (startOffset, endOffset) into a single normalized FunctionCov whose
// ranges are the inputs' pointwise sum.
var MergeFunctions = mergecov.MergeFunctions

// MergeScripts merges a set of ScriptCov that share one URL, grouping
// their functions by root range and delegating each group to
// MergeFunctions.
var MergeScripts = mergecov.MergeScripts

// MergeProcesses merges a set of ProcessCov, grouping their scripts by URL
// and delegating each group to MergeScripts, then renumbering scriptId by
// sorted URL rank.
var MergeProcesses = mergecov.MergeProcesses
