package principal

import (
	"context"
	"testing"
)

func TestNameFromDefaultsToSystem(t *testing.T) {
	if got := NameFrom(context.Background()); got != SystemActor {
		t.Fatalf("NameFrom = %q, want %q", got, SystemActor)
	}
}

func TestWithName(t *testing.T) {
	ctx := WithName(context.Background(), "alice")
	if got := NameFrom(ctx); got != "alice" {
		t.Fatalf("NameFrom = %q", got)
	}

	// Empty names never shadow the sentinel.
	ctx = WithName(context.Background(), "")
	if got := NameFrom(ctx); got != SystemActor {
		t.Fatalf("NameFrom = %q, want %q", got, SystemActor)
	}
}
