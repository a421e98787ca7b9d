// Command clap-go-validator is a minimal front-end over pkg/runner: it
// collects plugin paths from argv and prints a pass/fail line per test.
// Argument parsing here is deliberately bare-bones -- a full CLI (JSON
// output, --plugin-id, --test filters, colourised rendering) is an outer
// layer this module's core does not own.
package main

import (
	"fmt"
	"os"

	"github.com/baconpaul/clap-go-validator/internal/clog"
	"github.com/baconpaul/clap-go-validator/pkg/runner"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: clap-go-validator <plugin-path>...")
		os.Exit(1)
	}

	log := clog.New(os.Stderr)
	out, err := runner.Run(log, runner.Settings{Paths: os.Args[1:]})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	for _, pr := range out.Paths {
		fmt.Printf("%s\n", pr.Path)
		for _, r := range pr.Results {
			line := fmt.Sprintf("  [%s] %s", r.Status, r.Name)
			if r.Detail != "" {
				line += ": " + r.Detail
			}
			fmt.Println(line)
		}
	}
	fmt.Printf("passed=%d failed=%d skipped=%d warnings=%d\n",
		out.Tally.Passed, out.Tally.Failed, out.Tally.Skipped, out.Tally.Warnings)

	if out.Tally.HasFailures() {
		os.Exit(1)
	}
}
