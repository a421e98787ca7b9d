// Package library implements loading a CLAP plug-in binary, resolving its
// module entry point, and walking its factory -- the Go port of the
// reference validator's PluginLibrary, grounded directly on its load()/
// metadata()/factoryExists()/createPlugin() sequence.
package library

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/errwrap"
	"github.com/rs/zerolog"

	"github.com/baconpaul/clap-go-validator/pkg/clapabi"
	"github.com/baconpaul/clap-go-validator/pkg/host"
)

// Descriptor is the validator's plain-Go view of a plug-in's metadata.
type Descriptor = clapabi.DescriptorFields

// Metadata is a library's declared ABI version plus its plug-in
// descriptors, in factory order.
type Metadata struct {
	VersionMajor, VersionMinor, VersionRevision uint32
	Plugins                                     []Descriptor
}

// Library owns a loaded plug-in module for as long as any PluginInstance
// created from it is alive.
type Library struct {
	log     zerolog.Logger
	path    string
	module  *clapabi.Module
	entry   *clapabi.Entry
	factory *clapabi.Factory // cached after the first Metadata()/CreatePlugin() call, may stay nil
}

// Load opens path, resolves clap_entry, and initialises the plug-in
// module. The caller must call Close once done.
func Load(log zerolog.Logger, path string) (*Library, error) {
	start := time.Now()
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errwrap.Wrapf("could not resolve plugin path: {{err}}", err)
	}
	resolved, err := clapabi.ResolveExecutablePath(abs)
	if err != nil {
		return nil, errwrap.Wrapf("could not open bundle: {{err}}", err)
	}

	mod, err := clapabi.OpenModule(resolved)
	if err != nil {
		log.Error().Err(err).Str("path", resolved).Msg("failed to load plugin library")
		return nil, errwrap.Wrapf("could not load plugin library: {{err}}", err)
	}

	sym := mod.Symbol("clap_entry")
	if sym == nil {
		_ = mod.Close()
		return nil, fmt.Errorf("library %q does not expose a 'clap_entry' symbol", resolved)
	}
	entry := clapabi.EntryFromSymbol(sym)

	if !entry.Init(resolved) {
		_ = mod.Close()
		return nil, fmt.Errorf("plugin library %q failed to initialize", resolved)
	}

	log.Info().Str("path", resolved).Dur("duration", time.Since(start)).Msg("loaded plugin library")

	return &Library{log: log, path: resolved, module: mod, entry: entry}, nil
}

// Path returns the absolute, bundle-resolved path this library was loaded
// from.
func (l *Library) Path() string { return l.path }

// Close deinitialises the entry point and releases the module handle.
func (l *Library) Close() error {
	l.entry.Deinit()
	return l.module.Close()
}

func (l *Library) pluginFactory() (*clapabi.Factory, error) {
	if l.factory != nil {
		return l.factory, nil
	}
	f := l.entry.GetFactory(clapabi.PluginFactoryID)
	if f == nil {
		return nil, fmt.Errorf("library %q does not support the plugin factory", l.path)
	}
	l.factory = f
	return f, nil
}

// Metadata enumerates every plug-in descriptor the factory advertises. It
// is an error for two descriptors to share an id, or for any descriptor to
// be null.
func (l *Library) Metadata() (Metadata, error) {
	factory, err := l.pluginFactory()
	if err != nil {
		return Metadata{}, err
	}

	count := factory.PluginCount()
	seen := make(map[string]struct{}, count)
	plugins := make([]Descriptor, 0, count)
	for i := uint32(0); i < count; i++ {
		d := factory.PluginDescriptor(i)
		if d == nil {
			return Metadata{}, fmt.Errorf("plugin factory returned a null descriptor at index %d", i)
		}
		fields := clapabi.ReadDescriptor(d)
		if _, dup := seen[fields.ID]; dup {
			return Metadata{}, fmt.Errorf("plugin factory contains a duplicate plugin id: %q", fields.ID)
		}
		seen[fields.ID] = struct{}{}
		plugins = append(plugins, fields)
	}

	major, minor, revision := l.entry.ClapVersion()
	return Metadata{VersionMajor: major, VersionMinor: minor, VersionRevision: revision, Plugins: plugins}, nil
}

// FactoryExists reports whether entry.get_factory(id) resolves to anything.
func (l *Library) FactoryExists(id string) bool {
	return l.entry.GetFactory(id) != nil
}

// CreatePlugin constructs a plug-in instance by id against h. A nil return
// from the factory is reported as an error, never treated as a crash.
func (l *Library) CreatePlugin(h *host.Host, pluginID string) (*clapabi.Plugin, error) {
	factory, err := l.pluginFactory()
	if err != nil {
		return nil, err
	}
	p := factory.CreatePlugin(h.Native(), pluginID)
	if p == nil {
		return nil, fmt.Errorf("factory failed to create plugin %q", pluginID)
	}
	return p, nil
}

// IsVersionCompatible applies the CLAP version-compatibility rule: the
// major version must match exactly; any minor/revision is accepted once
// major lines up, matching the reference implementation's isVersionCompatible.
func IsVersionCompatible(major, minor, revision uint32) bool {
	const hostMajor = 1
	if major != hostMajor {
		return false
	}
	// 0.x before 1.x is never compatible; everything at major==1 is.
	return true
}
