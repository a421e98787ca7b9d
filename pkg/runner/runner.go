// Package runner drives a validation run: for every target path, run the
// library-level tests, load the library, check ABI compatibility, then run
// the instance-level tests for every advertised (or filtered) plugin id.
// It owns none of the CLI surface -- argument parsing, output rendering,
// and exit codes are a caller's job.
package runner

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/baconpaul/clap-go-validator/pkg/catalog"
	"github.com/baconpaul/clap-go-validator/pkg/library"
	"github.com/baconpaul/clap-go-validator/pkg/result"
)

// Settings configures one Run call. It is the seam a CLI front-end
// populates from argv; this package never parses flags itself.
type Settings struct {
	Paths        []string
	PluginID     string // empty = run against every plugin the library advertises
	TestFilter   string // empty = no filtering
	InvertFilter bool
}

// PathResult collects every TestResult produced for one input path.
type PathResult struct {
	Path    string
	Results []result.TestResult
}

// Result is the outcome of a whole Run call.
type Result struct {
	Paths []PathResult
	Tally *result.Tally
}

// ErrNoPaths is returned when Settings.Paths is empty.
var ErrNoPaths = errors.New("no plugin paths specified")

// Run executes every library- and instance-level test against every path
// in settings, subject to the configured filter.
func Run(log zerolog.Logger, settings Settings) (Result, error) {
	if len(settings.Paths) == 0 {
		return Result{}, ErrNoPaths
	}

	tally := result.NewTally()
	runLog := log.With().Str("run_id", tally.RunID.String()).Logger()

	rng := rand.New(rand.NewSource(int64(seedFromUUID(tally.RunID))))
	runLog.Debug().Int64("fuzz_seed", int64(seedFromUUID(tally.RunID))).Msg("seeded deterministic fuzz RNG for this run")

	out := Result{Tally: tally}

	for _, path := range settings.Paths {
		pr := PathResult{Path: path}
		runLog.Info().Str("path", path).Msg("validating plugin library")

		for _, tc := range catalog.LibraryTestCases() {
			if !matchesFilter(tc.Name, settings.TestFilter, settings.InvertFilter) {
				continue
			}
			r := catalog.RunLibraryTest(tc.Name, catalog.LibraryContext{Path: path, Log: runLog})
			tally.Add(r)
			pr.Results = append(pr.Results, r)
		}

		lib, err := library.Load(runLog, path)
		if err != nil {
			runLog.Error().Err(err).Str("path", path).Msg("failed to load plugin library")
			out.Paths = append(out.Paths, pr)
			continue
		}

		meta, err := lib.Metadata()
		if err != nil {
			runLog.Error().Err(err).Str("path", path).Msg("failed to read plugin library metadata")
			_ = lib.Close()
			out.Paths = append(out.Paths, pr)
			continue
		}

		if !library.IsVersionCompatible(meta.VersionMajor, meta.VersionMinor, meta.VersionRevision) {
			pr.Results = append(pr.Results, result.Skip("instance-tests", "",
				fmt.Sprintf("skipping instance tests: incompatible CLAP version %d.%d.%d",
					meta.VersionMajor, meta.VersionMinor, meta.VersionRevision)))
			tally.Add(pr.Results[len(pr.Results)-1])
			_ = lib.Close()
			out.Paths = append(out.Paths, pr)
			continue
		}

		for _, pd := range meta.Plugins {
			if settings.PluginID != "" && pd.ID != settings.PluginID {
				continue
			}
			for _, tc := range catalog.InstanceTestCases() {
				if !matchesFilter(tc.Name, settings.TestFilter, settings.InvertFilter) {
					continue
				}
				r := catalog.RunInstanceTest(tc.Name, catalog.InstanceContext{
					Lib: lib, PluginID: pd.ID, Log: runLog, Rand: rng,
				})
				tally.Add(r)
				pr.Results = append(pr.Results, r)
			}
		}

		_ = lib.Close()
		out.Paths = append(out.Paths, pr)
	}

	return out, nil
}

// seedFromUUID derives a deterministic int64 seed from a run's uuid so a
// failing run is reproducible from its logged run id alone.
func seedFromUUID(id interface{ String() string }) uint64 {
	s := id.String()
	var h uint64 = 14695981039346656037 // FNV-1a offset basis
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}
