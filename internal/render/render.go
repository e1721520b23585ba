// Package render formats a resolved version descriptor for its consumers.
// All renderers are pure: given a valid descriptor they cannot fail, and
// repeated calls yield byte-identical output.
package render

import (
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/fwver/internal/domain"
)

// Style selects the output format of a rendering.
type Style string

// Supported rendering styles.
const (
	// StyleCompact is the canonical display format,
	// "v<major>.<minor>.<patch>-<hash>" with a trailing "+" when dirty.
	StyleCompact Style = "compact"

	// StyleDefines emits one NAME=value line per component for injection
	// as build-time constants.
	StyleDefines Style = "defines"

	// StyleHeader emits a guard-wrapped C header with the full string and
	// the individual components.
	StyleHeader Style = "header"
)

// DirtyMarker is appended to the compact rendering when the working tree
// has uncommitted changes to tracked files.
const DirtyMarker = "+"

// headerGuard is the fixed include guard of the generated header.
const headerGuard = "__version_h"

// ParseStyle converts a user-supplied format name into a Style.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleCompact, StyleDefines, StyleHeader:
		return Style(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: %s, %s, %s)",
			s, StyleCompact, StyleDefines, StyleHeader)
	}
}

// Render dispatches over the supported styles.
func Render(d *domain.VersionDescriptor, style Style) (string, error) {
	switch style {
	case StyleCompact:
		return Compact(d), nil
	case StyleDefines:
		return Defines(d), nil
	case StyleHeader:
		return Header(d), nil
	default:
		return "", fmt.Errorf("unknown format %q", style)
	}
}

// Compact renders the canonical display string,
// e.g. "v1.0.1-a1b2c3d" or "v2.5.10-deadbee+" for a dirty tree.
func Compact(d *domain.VersionDescriptor) string {
	return fmt.Sprintf("v%d.%d.%d-%s%s", d.Major, d.Minor, d.Patch, d.CommitHash, dirtyIndex(d))
}

// Defines renders the five build-time definitions, one per line, in fixed
// order. Numeric components are unquoted; string components are quoted so
// the lines survive shell and make evaluation.
func Defines(d *domain.VersionDescriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FW_VERSION_MAJOR=%d\n", d.Major)
	fmt.Fprintf(&b, "FW_VERSION_MINOR=%d\n", d.Minor)
	fmt.Fprintf(&b, "FW_VERSION_PATCH=%d\n", d.Patch)
	fmt.Fprintf(&b, "FW_VERSION_HASH=%q\n", d.CommitHash)
	fmt.Fprintf(&b, "FW_VERSION_DIRTY_INDEX=%q\n", dirtyIndex(d))
	return b.String()
}

// Header renders the contents of a generated C header. The include guard is
// fixed so consumers can rely on it; the numeric components are emitted as
// unquoted integer literals usable in preprocessor arithmetic.
func Header(d *domain.VersionDescriptor) string {
	var b strings.Builder
	b.WriteString("/* Generated by fwver. Do not edit. */\n")
	fmt.Fprintf(&b, "#ifndef %s\n", headerGuard)
	fmt.Fprintf(&b, "#define %s\n", headerGuard)
	b.WriteString("\n")
	fmt.Fprintf(&b, "#define FW_VERSION_FULL %q\n", Compact(d))
	fmt.Fprintf(&b, "#define FW_VERSION_MAJOR %d\n", d.Major)
	fmt.Fprintf(&b, "#define FW_VERSION_MINOR %d\n", d.Minor)
	fmt.Fprintf(&b, "#define FW_VERSION_PATCH %d\n", d.Patch)
	fmt.Fprintf(&b, "#define FW_VERSION_HASH %q\n", d.CommitHash)
	fmt.Fprintf(&b, "#define FW_VERSION_DIRTY_INDEX %q\n", dirtyIndex(d))
	b.WriteString("\n")
	fmt.Fprintf(&b, "#endif /* %s */\n", headerGuard)
	return b.String()
}

// dirtyIndex returns the dirty marker alone, empty for a clean tree.
func dirtyIndex(d *domain.VersionDescriptor) string {
	if d.Dirty {
		return DirtyMarker
	}
	return ""
}
