// Command covmerge reads one or more V8 coverage reports (ProcessCov JSON,
// as produced by Node's --experimental-test-coverage / inspector protocol)
// and writes their merge to a single ProcessCov JSON document.
//
// This binary is glue, not the merge algorithm: it is the Go analogue of
// the Node native-binding layer in the reference implementation
// (original_source/node/src/lib/native/index.rs), adapted to a standalone
// CLI since covmerge has no host runtime to bind into. All merge semantics
// live in internal/mergecov.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
