// Package catalog holds the two fixed test tables -- library-level and
// instance-level -- and the dispatcher that runs a test by name, recovering
// a Go-level panic into a Crashed result at the boundary rather than
// letting the reference implementation's silent-swallow pattern stand.
package catalog

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/baconpaul/clap-go-validator/pkg/library"
	"github.com/baconpaul/clap-go-validator/pkg/result"
)

// LibraryContext is what a library-level test receives.
type LibraryContext struct {
	Path string
	Log  zerolog.Logger
}

// InstanceContext is what an instance-level test receives.
type InstanceContext struct {
	Lib      *library.Library
	PluginID string
	Log      zerolog.Logger
	Rand     *rand.Rand // seeded once per Run, shared by every instance test in that run
}

// LibraryTestFunc implements one library-level test.
type LibraryTestFunc func(ctx LibraryContext) result.TestResult

// InstanceTestFunc implements one instance-level test.
type InstanceTestFunc func(ctx InstanceContext) result.TestResult

type libraryEntry struct {
	result.TestCase
	run LibraryTestFunc
}

type instanceEntry struct {
	result.TestCase
	run InstanceTestFunc
}

var libraryTests []libraryEntry
var instanceTests []instanceEntry

func registerLibraryTest(name, description string, fn LibraryTestFunc) {
	libraryTests = append(libraryTests, libraryEntry{TestCase: result.TestCase{Name: name, Description: description}, run: fn})
}

func registerInstanceTest(name, description string, fn InstanceTestFunc) {
	instanceTests = append(instanceTests, instanceEntry{TestCase: result.TestCase{Name: name, Description: description}, run: fn})
}

// LibraryTestCases returns the catalog's library-level test cases, in
// registration order.
func LibraryTestCases() []result.TestCase {
	out := make([]result.TestCase, len(libraryTests))
	for i, e := range libraryTests {
		out[i] = e.TestCase
	}
	return out
}

// InstanceTestCases returns the catalog's instance-level test cases, in
// registration order.
func InstanceTestCases() []result.TestCase {
	out := make([]result.TestCase, len(instanceTests))
	for i, e := range instanceTests {
		out[i] = e.TestCase
	}
	return out
}

// RunLibraryTest dispatches a library-level test by name. A panic inside
// the test is recovered here and reported as Crashed; a genuine native
// fault (not a Go panic) still takes the process down, which remains out
// of scope for this in-process validator.
func RunLibraryTest(name string, ctx LibraryContext) result.TestResult {
	for _, e := range libraryTests {
		if e.Name != name {
			continue
		}
		return runLibraryRecovered(e, ctx)
	}
	return result.Fail(name, "", fmt.Sprintf("Test '%s' not found", name))
}

// RunInstanceTest dispatches an instance-level test by name.
func RunInstanceTest(name string, ctx InstanceContext) result.TestResult {
	for _, e := range instanceTests {
		if e.Name != name {
			continue
		}
		return runInstanceRecovered(e, ctx)
	}
	return result.Fail(name, "", fmt.Sprintf("Test '%s' not found", name))
}

func runLibraryRecovered(e libraryEntry, ctx LibraryContext) (r result.TestResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r = result.Crash(e.Name, e.Description, fmt.Sprintf("panic: %v", rec))
		}
	}()
	return e.run(ctx)
}

func runInstanceRecovered(e instanceEntry, ctx InstanceContext) (r result.TestResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r = result.Crash(e.Name, e.Description, fmt.Sprintf("panic: %v", rec))
		}
	}()
	return e.run(ctx)
}
