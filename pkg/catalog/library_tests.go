package catalog

import (
	"fmt"
	"runtime"
	"time"

	"github.com/baconpaul/clap-go-validator/pkg/clapabi"
	"github.com/baconpaul/clap-go-validator/pkg/library"
	"github.com/baconpaul/clap-go-validator/pkg/result"
)

const scanTimeBudget = 100 * time.Millisecond

func init() {
	registerLibraryTest("scan-time", "Checks that scanning a plugin's metadata does not take an excessive amount of time", testScanTime)
	registerLibraryTest("scan-rtld-now", "On Unix, checks that the plugin library has no unresolved symbols by reloading it with RTLD_NOW", testScanRTLDNow)
	registerLibraryTest("query-factory-nonexistent", "Checks that querying a nonexistent factory id returns null", testQueryFactoryNonexistent)
	registerLibraryTest("create-id-with-trailing-garbage", "Checks that creating a plugin with a mangled id is rejected", testCreateIDWithTrailingGarbage)
	registerLibraryTest("preset-discovery-crawl", "Crawls the plugin's preset discovery locations", testPresetDiscoveryCrawl)
	registerLibraryTest("preset-discovery-descriptor-consistency", "Checks preset discovery descriptor consistency", testPresetDiscoveryDescriptorConsistency)
	registerLibraryTest("preset-discovery-load", "Loads presets found via preset discovery", testPresetDiscoveryLoad)
}

func testScanTime(ctx LibraryContext) result.TestResult {
	name, desc := "scan-time", "Checks that scanning a plugin's metadata does not take an excessive amount of time"
	start := time.Now()

	lib, err := library.Load(ctx.Log, ctx.Path)
	if err != nil {
		return result.Fail(name, desc, err.Error())
	}
	defer lib.Close()

	if _, err := lib.Metadata(); err != nil {
		return result.Fail(name, desc, err.Error())
	}

	elapsed := time.Since(start)
	if elapsed > scanTimeBudget {
		return result.Warn(name, desc, fmt.Sprintf("scanning took %s, over the %s budget", elapsed, scanTimeBudget))
	}
	return result.Pass(name, desc)
}

func testScanRTLDNow(ctx LibraryContext) result.TestResult {
	name, desc := "scan-rtld-now", "On Unix, checks that the plugin library has no unresolved symbols by reloading it with RTLD_NOW"
	if runtime.GOOS == "windows" {
		return result.Skip(name, desc, "not applicable on Windows")
	}

	mod, err := clapabi.OpenModuleNow(ctx.Path)
	if err != nil {
		return result.Fail(name, desc, err.Error())
	}
	defer mod.Close()
	return result.Pass(name, desc)
}

func testQueryFactoryNonexistent(ctx LibraryContext) result.TestResult {
	name, desc := "query-factory-nonexistent", "Checks that querying a nonexistent factory id returns null"
	lib, err := library.Load(ctx.Log, ctx.Path)
	if err != nil {
		return result.Fail(name, desc, err.Error())
	}
	defer lib.Close()

	if lib.FactoryExists("com.nonexistent.factory.that.should.not.exist") {
		return result.Fail(name, desc, "get_factory() returned a non-null pointer for a factory id that should not exist")
	}
	return result.Pass(name, desc)
}

func testCreateIDWithTrailingGarbage(ctx LibraryContext) result.TestResult {
	name, desc := "create-id-with-trailing-garbage", "Checks that creating a plugin with a mangled id is rejected"
	lib, err := library.Load(ctx.Log, ctx.Path)
	if err != nil {
		return result.Fail(name, desc, err.Error())
	}
	defer lib.Close()

	meta, err := lib.Metadata()
	if err != nil {
		return result.Fail(name, desc, err.Error())
	}
	if len(meta.Plugins) == 0 {
		return result.Skip(name, desc, "library does not advertise any plugins")
	}

	mangledID := meta.Plugins[0].ID + "_GARBAGE_THAT_SHOULD_NOT_MATCH"

	// Constructing a plugin needs a host; a throwaway scratch host is
	// enough here since the created plugin (if any) is destroyed immediately.
	h, cleanup := newScratchHost(ctx.Log)
	defer cleanup()

	p, err := lib.CreatePlugin(h, mangledID)
	if err == nil {
		p.Destroy()
		return result.Fail(name, desc, "factory created a plugin for an id with trailing garbage appended")
	}
	return result.Pass(name, desc)
}

func testPresetDiscoveryCrawl(ctx LibraryContext) result.TestResult {
	return testPresetDiscoveryStub(ctx, "preset-discovery-crawl", "Crawls the plugin's preset discovery locations")
}

func testPresetDiscoveryDescriptorConsistency(ctx LibraryContext) result.TestResult {
	return testPresetDiscoveryStub(ctx, "preset-discovery-descriptor-consistency", "Checks preset discovery descriptor consistency")
}

func testPresetDiscoveryLoad(ctx LibraryContext) result.TestResult {
	return testPresetDiscoveryStub(ctx, "preset-discovery-load", "Loads presets found via preset discovery")
}

func testPresetDiscoveryStub(ctx LibraryContext, name, desc string) result.TestResult {
	lib, err := library.Load(ctx.Log, ctx.Path)
	if err != nil {
		return result.Fail(name, desc, err.Error())
	}
	defer lib.Close()

	if !lib.FactoryExists("clap.preset-discovery-factory/2") {
		return result.Skip(name, desc, "plugin does not implement the preset discovery factory")
	}
	return result.Skip(name, desc, "preset discovery is not yet implemented")
}
