// Package manifest collects exact versions for the packages the training
// environment depends on and renders them as a pinned manifest, one
// `name==version` line per package in a fixed order.
//
// Every version is gathered into a single registry before anything is
// rendered; a package with no collected version fails fast with a
// MissingPinError instead of surfacing later as a half-written file.
package manifest

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"
)

// The packages the manifest references, in emission order.
const (
	PrimaryPackage       = "github.com/oakmoss/kiln"
	NumericPackage       = "gorgonia.org/tensor"
	WebFrameworkPackage  = "github.com/gin-gonic/gin"
	SerializationPackage = "gopkg.in/yaml.v3"
)

// WebFrameworkVersion is the deployment web framework pin. The framework is
// not a build dependency of this module, so its version cannot be collected
// from build info; deployments that move to a newer framework update this
// constant.
const WebFrameworkVersion = "v1.9.1"

// order is the fixed emission order of manifest pins.
var order = []string{
	PrimaryPackage,
	NumericPackage,
	WebFrameworkPackage,
	SerializationPackage,
}

// Pin is one pinned package version.
type Pin struct {
	Name    string
	Version string
}

func (p Pin) String() string {
	return p.Name + "==" + p.Version
}

// Registry maps package path to collected version string.
type Registry map[string]string

// MissingPinError reports a manifest package with no collected version.
type MissingPinError struct {
	Package string
}

func (e *MissingPinError) Error() string {
	return fmt.Sprintf("manifest: no version collected for %s", e.Package)
}

// BuildInfoFunc supplies module build info. Tests substitute a fixture;
// production code uses debug.ReadBuildInfo.
type BuildInfoFunc func() (*debug.BuildInfo, bool)

// Collect builds the registry:
//   - the primary package version comes from the main module's build info
//   - the serialization and numeric package versions come from the build's
//     dependency list
//   - numericPin, when non-empty, overrides the numeric package version
//   - the web framework pin is the fixed constant
//
// Collect never fails for a missing version; absence is detected by Pins so
// the caller gets one named error per missing package at emission time.
func Collect(readBuildInfo BuildInfoFunc, numericPin string) Registry {
	if readBuildInfo == nil {
		readBuildInfo = debug.ReadBuildInfo
	}

	reg := Registry{
		WebFrameworkPackage: WebFrameworkVersion,
	}

	if bi, ok := readBuildInfo(); ok {
		if bi.Main.Path == PrimaryPackage && bi.Main.Version != "" {
			reg[PrimaryPackage] = bi.Main.Version
		}
		for _, dep := range bi.Deps {
			switch dep.Path {
			case NumericPackage, SerializationPackage:
				reg[dep.Path] = dep.Version
			}
		}
	}

	if numericPin != "" {
		reg[NumericPackage] = numericPin
	}
	return reg
}

// Pins resolves the registry into the fixed-order pin list. Every referenced
// package must have a non-empty version; the first missing one is returned as
// a MissingPinError and nothing is emitted.
func Pins(reg Registry) ([]Pin, error) {
	pins := make([]Pin, 0, len(order))
	for _, name := range order {
		v, ok := reg[name]
		if !ok || v == "" {
			return nil, &MissingPinError{Package: name}
		}
		pins = append(pins, Pin{Name: name, Version: v})
	}
	return pins, nil
}

// Render writes the pins as manifest lines.
func Render(w io.Writer, pins []Pin) error {
	var b strings.Builder
	for _, p := range pins {
		b.WriteString(p.String())
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("manifest: render: %w", err)
	}
	return nil
}
