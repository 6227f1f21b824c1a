package app

import (
	"context"
	"reflect"
	"testing"
)

func TestCloserNames(t *testing.T) {
	noop := func(context.Context) error { return nil }
	closers := map[string]func(context.Context) error{
		"Config":      noop,
		"HTTP Server": noop,
		"Zeta":        noop,
		"Identity":    noop,
		"Alpha":       noop,
	}

	got := closerNames(closers)
	want := []string{"Identity", "Config", "Alpha", "Zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("closerNames() = %v, want %v", got, want)
	}
}
