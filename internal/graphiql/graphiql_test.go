package graphiql

import (
	"bytes"
	"strings"
	"testing"
)

func TestPageStable(t *testing.T) {
	a := Page()
	b := Page()
	if len(a) == 0 {
		t.Fatalf("empty page")
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("page content not stable across calls")
	}
	if !strings.Contains(string(a), "GraphiQL") {
		t.Fatalf("page does not look like the exploration page")
	}
}
