package ids

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUID(t *testing.T) {
	a, b := UUID(), UUID()
	if a == b {
		t.Fatalf("expected distinct ids, got %s twice", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("UUID() = %q is not a valid uuid: %v", a, err)
	}
}

func TestSequence(t *testing.T) {
	gen := Sequence("p")
	for _, want := range []string{"p-1", "p-2", "p-3"} {
		if got := gen(); got != want {
			t.Errorf("got %s, want %s", got, want)
		}
	}

	// Independent generators do not share a counter.
	if got := Sequence("g")(); got != "g-1" {
		t.Errorf("fresh sequence started at %s", got)
	}
}
