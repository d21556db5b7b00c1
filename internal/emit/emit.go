// Package emit writes rendered manifests to their destination.
package emit

import "github.com/oakmoss/kiln/internal/manifest"

// Sink is a manifest destination.
type Sink interface {
	Write(pins []manifest.Pin) error
}
