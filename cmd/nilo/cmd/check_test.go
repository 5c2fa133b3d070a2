package cmd

import "testing"

func TestSplitRootFlag(t *testing.T) {
	name, dir, ok := splitRootFlag("stdlib=/usr/local/nilo/lib")
	if !ok || name != "stdlib" || dir != "/usr/local/nilo/lib" {
		t.Fatalf("got (%q, %q, %v)", name, dir, ok)
	}

	if _, _, ok := splitRootFlag("no-equals-sign"); ok {
		t.Fatalf("expected ok=false for a value with no '='")
	}
}

func TestParseRootsEmpty(t *testing.T) {
	roots, err := parseRoots(nil)
	if err != nil || roots != nil {
		t.Fatalf("expected (nil, nil) for no --root flags, got (%v, %v)", roots, err)
	}
}

func TestParseRootsInvalid(t *testing.T) {
	if _, err := parseRoots([]string{"bad"}); err == nil {
		t.Fatalf("expected an error for a --root value with no '='")
	}
}
