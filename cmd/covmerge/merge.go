package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mibar/covmerge/internal/coverage"
	"github.com/mibar/covmerge/internal/log"
	"github.com/mibar/covmerge/internal/mergecov"
)

func newMergeCmd() *cobra.Command {
	var (
		output  string
		pretty  bool
		workers int
		strict  bool
	)

	cmd := &cobra.Command{
		Use:   "merge <report.json> [report.json...]",
		Short: "Merge N ProcessCov JSON reports into one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			procs, err := readReports(args)
			if err != nil {
				return err
			}

			opts := &mergecov.Options{MaxWorkers: workers, Strict: strict}
			merged, err := mergecov.MergeProcesses(procs, opts)
			if err != nil {
				log.Get().Error("merge failed", zap.Error(err))
				return err
			}
			if merged == nil {
				merged = &coverage.ProcessCov{}
			}

			return writeReport(merged, output, pretty)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "pretty-print the JSON output")
	cmd.Flags().IntVar(&workers, "workers", 0, "max concurrent script/function merges (0 = sequential)")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject functions with empty ranges instead of skipping them")
	return cmd
}

func readReports(paths []string) ([]coverage.ProcessCov, error) {
	procs := make([]coverage.ProcessCov, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var p coverage.ProcessCov
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		log.Get().Info("loaded report", zap.String("path", path), zap.Int("scripts", len(p.Result)))
		procs = append(procs, p)
	}
	return procs, nil
}

func writeReport(p *coverage.ProcessCov, output string, pretty bool) error {
	var out []byte
	var err error
	if pretty {
		out, err = json.MarshalIndent(p, "", "  ")
	} else {
		out, err = json.Marshal(p)
	}
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if output == "" {
		_, err = os.Stdout.Write(append(bytes.TrimRight(out, "\n"), '\n'))
		return err
	}
	if err := os.WriteFile(output, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	log.Get().Info("wrote merged report", zap.String("path", output), zap.Int("scripts", len(p.Result)))
	return nil
}
