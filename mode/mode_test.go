package mode

import "testing"

func TestDetector(t *testing.T) {
	if New(true).IsEmbedded() != true {
		t.Error("New(true) should be embedded")
	}
	if New(false).IsEmbedded() != false {
		t.Error("New(false) should be standalone")
	}
	if New(true).String() != Embedded || New(false).String() != Standalone {
		t.Error("unexpected String()")
	}
}
