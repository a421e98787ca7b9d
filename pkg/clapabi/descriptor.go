package clapabi

// #include "clap/clap.h"
import "C"

import "unsafe"

// DescriptorFields is a plain-Go snapshot of a clap_plugin_descriptor_t,
// converted once at read time so callers never hold a pointer into
// plug-in-owned memory past the call that produced it.
type DescriptorFields struct {
	ID          string
	Name        string
	Vendor      string
	URL         string
	ManualURL   string
	SupportURL  string
	Version     string
	Description string
	Features    []string
}

// ReadDescriptor converts a clap_plugin_descriptor_t to Go values. Empty C
// strings, like nil ones, map to the Go zero value -- the ABI does not
// distinguish "absent" from "empty" and neither does this reader.
func ReadDescriptor(d *Descriptor) DescriptorFields {
	return DescriptorFields{
		ID:          GoString(d.id),
		Name:        GoString(d.name),
		Vendor:      GoString(d.vendor),
		URL:         GoString(d.url),
		ManualURL:   GoString(d.manual_url),
		SupportURL:  GoString(d.support_url),
		Version:     GoString(d.version),
		Description: GoString(d.description),
		Features:    readFeatures(d.features),
	}
}

func readFeatures(features **C.char) []string {
	if features == nil {
		return nil
	}
	var out []string
	stride := unsafe.Sizeof(*features)
	for i := 0; ; i++ {
		p := *(**C.char)(unsafe.Add(unsafe.Pointer(features), uintptr(i)*stride))
		if p == nil {
			break
		}
		out = append(out, C.GoString(p))
	}
	return out
}
