// Package host is an in-process host orchestrator. It owns the host page,
// keeps a registry of fragment applications and drives their lifecycle
// the way a micro-frontend host does: bootstrap once, then any sequence of
// mount, update and unmount.
//
// Scenarios describe such a sequence in YAML:
//
//	steps:
//	  - op: mount
//	    props: {height: 480}
//	  - op: update
//	    props: {height: 300}
//	  - op: unmount
package host
