//go:build darwin

package clapabi

/*
#cgo LDFLAGS: -framework CoreFoundation
#include <CoreFoundation/CoreFoundation.h>

static char *clapgo_bundle_executable_path(const char *bundlePath) {
	CFStringRef pathStr = CFStringCreateWithCString(NULL, bundlePath, kCFStringEncodingUTF8);
	if (!pathStr) return NULL;
	CFURLRef bundleURL = CFURLCreateWithFileSystemPath(NULL, pathStr, kCFURLPOSIXPathStyle, true);
	CFRelease(pathStr);
	if (!bundleURL) return NULL;
	CFBundleRef bundle = CFBundleCreate(NULL, bundleURL);
	CFRelease(bundleURL);
	if (!bundle) return NULL;
	CFURLRef execURL = CFBundleCopyExecutableURL(bundle);
	CFRelease(bundle);
	if (!execURL) return NULL;
	CFStringRef execPathStr = CFURLCopyFileSystemPath(execURL, kCFURLPOSIXPathStyle);
	CFRelease(execURL);
	if (!execPathStr) return NULL;
	CFIndex len = CFStringGetMaximumSizeForEncoding(CFStringGetLength(execPathStr), kCFStringEncodingUTF8) + 1;
	char *buf = (char *)malloc((size_t)len);
	if (!CFStringGetCString(execPathStr, buf, len, kCFStringEncodingUTF8)) {
		free(buf);
		CFRelease(execPathStr);
		return NULL;
	}
	CFRelease(execPathStr);
	return buf;
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// ResolveExecutablePath resolves a .clap bundle directory to the path of
// the Mach-O executable CoreFoundation considers its main binary. Mirrors
// the reference host's CFBundleCopyExecutableURL-based resolution exactly.
// Paths not ending in ".clap" are returned unchanged.
func ResolveExecutablePath(path string) (string, error) {
	if !isBundlePath(path) {
		return path, nil
	}
	cpath := CString(path)
	defer Free(cpath)
	out := C.clapgo_bundle_executable_path(cpath)
	if out == nil {
		return "", fmt.Errorf("could not get executable URL for bundle %q", path)
	}
	defer C.free(unsafe.Pointer(out))
	return C.GoString(out), nil
}
