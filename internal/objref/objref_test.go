package objref

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateReturnsEphemeralRef(t *testing.T) {
	tr := NewTracker()
	ref := tr.Create(BytesSource("a.png", []byte("png")))
	if !strings.HasPrefix(ref, Scheme) {
		t.Fatalf("ref %q should start with %q", ref, Scheme)
	}
	if !IsEphemeral(ref) {
		t.Fatal("IsEphemeral should be true for created ref")
	}
	if tr.Live() != 1 {
		t.Fatalf("expected 1 live ref, got %d", tr.Live())
	}
	if tr.Name(ref) != "a.png" {
		t.Fatalf("Name = %q, want a.png", tr.Name(ref))
	}
}

func TestCreateUniqueRefs(t *testing.T) {
	tr := NewTracker()
	a := tr.Create(BytesSource("a", nil))
	b := tr.Create(BytesSource("a", nil))
	if a == b {
		t.Fatal("two creates returned the same ref")
	}
}

func TestReleaseIdempotent(t *testing.T) {
	tr := NewTracker()
	calls := 0
	tr.OnRelease(func(string) { calls++ })

	ref := tr.Create(BytesSource("a", nil))
	if !tr.Release(ref) {
		t.Fatal("first release should report true")
	}
	if tr.Release(ref) {
		t.Fatal("second release should be a no-op")
	}
	if calls != 1 {
		t.Fatalf("expected 1 release hook call, got %d", calls)
	}
	if tr.Alive(ref) {
		t.Fatal("released ref should not be alive")
	}
}

func TestReleaseExternalURLNoop(t *testing.T) {
	tr := NewTracker()
	calls := 0
	tr.OnRelease(func(string) { calls++ })

	if tr.Release("https://example.com/a.png") {
		t.Fatal("external URL must not be released")
	}
	if tr.Release("") {
		t.Fatal("empty string must not be released")
	}
	if calls != 0 {
		t.Fatalf("expected no hook calls, got %d", calls)
	}
}

func TestReleaseUnused(t *testing.T) {
	tr := NewTracker()
	var released []string
	tr.OnRelease(func(ref string) { released = append(released, ref) })

	kept := tr.Create(BytesSource("kept", nil))
	gone := tr.Create(BytesSource("gone", nil))

	prev := map[string]struct{}{kept: {}, gone: {}, "https://x/y.png": {}}
	next := map[string]struct{}{kept: {}}

	n := tr.ReleaseUnused(prev, next)
	if n != 1 {
		t.Fatalf("expected 1 release, got %d", n)
	}
	if len(released) != 1 || released[0] != gone {
		t.Fatalf("unexpected releases: %v", released)
	}
}

// ============================================================
// Fetch
// ============================================================

func TestFetchBytes(t *testing.T) {
	tr := NewTracker()
	ref := tr.Create(BytesSource("a.bin", []byte{0, 1, 2, 255}))
	data, err := tr.Fetch(context.Background(), ref)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string([]byte{0, 1, 2, 255}) {
		t.Fatalf("unexpected data: %v", data)
	}
}

func TestFetchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	tr := NewTracker()
	ref := tr.Create(FileSource(path))
	if tr.Name(ref) != "resume.pdf" {
		t.Fatalf("Name = %q, want resume.pdf", tr.Name(ref))
	}
	data, err := tr.Fetch(context.Background(), ref)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "%PDF-1.4" {
		t.Fatalf("unexpected data: %q", data)
	}
}

func TestFetchMissingFile(t *testing.T) {
	tr := NewTracker()
	ref := tr.Create(FileSource(filepath.Join(t.TempDir(), "nope")))
	if _, err := tr.Fetch(context.Background(), ref); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFetchReleased(t *testing.T) {
	tr := NewTracker()
	ref := tr.Create(BytesSource("a", []byte("x")))
	tr.Release(ref)
	_, err := tr.Fetch(context.Background(), ref)
	if !errors.Is(err, ErrUnknownReference) {
		t.Fatalf("expected ErrUnknownReference, got %v", err)
	}
}
