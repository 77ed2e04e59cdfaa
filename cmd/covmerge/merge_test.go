package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mibar/covmerge/internal/coverage"
)

func writeTempReport(t *testing.T, dir, name string, p coverage.ProcessCov) string {
	t.Helper()
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp report: %v", err)
	}
	return path
}

func TestMergeCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	p1 := coverage.ProcessCov{Result: []coverage.ScriptCov{
		{ScriptID: "0", URL: "/lib.js", Functions: []coverage.FunctionCov{
			{FunctionName: "lib", Ranges: []coverage.RangeCov{{StartOffset: 0, EndOffset: 9, Count: 1}}},
		}},
	}}
	p2 := coverage.ProcessCov{Result: []coverage.ScriptCov{
		{ScriptID: "0", URL: "/lib.js", Functions: []coverage.FunctionCov{
			{FunctionName: "lib", Ranges: []coverage.RangeCov{{StartOffset: 0, EndOffset: 9, Count: 2}}},
		}},
	}}

	f1 := writeTempReport(t, dir, "a.json", p1)
	f2 := writeTempReport(t, dir, "b.json", p2)
	out := filepath.Join(dir, "merged.json")

	root := newRootCmd()
	root.SetArgs([]string{"merge", f1, f2, "-o", out})
	var stderr bytes.Buffer
	root.SetErr(&stderr)
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v (stderr=%s)", err, stderr.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var merged coverage.ProcessCov
	if err := json.Unmarshal(data, &merged); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}

	if len(merged.Result) != 1 || len(merged.Result[0].Functions) != 1 {
		t.Fatalf("unexpected merged shape: %+v", merged)
	}
	if got := merged.Result[0].Functions[0].Ranges[0].Count; got != 3 {
		t.Fatalf("merged count = %d, want 3", got)
	}
}

func TestMergeCommandRequiresAtLeastOneFile(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"merge"})
	var stderr bytes.Buffer
	root.SetErr(&stderr)
	root.SetOut(&stderr)
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for missing arguments")
	}
}
