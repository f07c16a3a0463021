// Package mode answers whether the fragment runs embedded in a host
// orchestrator or standalone.
package mode

const (
	Embedded   = "embedded"
	Standalone = "standalone"
)

// Detector holds the embedded-mode flag. The flag is fixed at
// construction and never changes afterwards.
type Detector struct {
	embedded bool
}

// New returns a Detector for an explicitly injected flag.
func New(embedded bool) Detector {
	return Detector{embedded: embedded}
}

// IsEmbedded reports whether a host orchestrator drives the fragment.
func (d Detector) IsEmbedded() bool {
	return d.embedded
}

// String returns Embedded or Standalone.
func (d Detector) String() string {
	if d.embedded {
		return Embedded
	}
	return Standalone
}
