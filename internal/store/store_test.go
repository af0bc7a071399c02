package store

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSessionMemory()
	if err != nil {
		t.Fatalf("new memory session: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 2 {
		t.Fatalf("expected user_version 2, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/folio.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(context.Background(), "k", Document{Body: []byte(`{}`)}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: data survives, no re-migration.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	doc, err := s2.Get(context.Background(), "k")
	if err != nil || doc == nil {
		t.Fatalf("record lost across reopen: %v", err)
	}
}

func TestNewUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	s, err := New(file)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// A regular file cannot be used as a directory.
	if _, err := New(filepath.Join(file, "nested", "folio.db")); err == nil {
		t.Fatal("expected init failure")
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Records
// ============================================================

func TestGetMissingRecord(t *testing.T) {
	s := newTestStore(t)
	doc, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if doc != nil {
		t.Fatal("expected nil document for missing key")
	}
}

func TestSetGetBinaryPayloads(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	raw := []byte{0x00, 0xFF, 0x10, 0x00, 'P', 'N', 'G'}

	err := s.Set(ctx, "portfolio-data", Document{
		Body:  []byte(`{"name":"x"}`),
		Blobs: map[string][]byte{"a": raw, "empty": {}},
	})
	if err != nil {
		t.Fatal(err)
	}

	doc, err := s.Get(ctx, "portfolio-data")
	if err != nil {
		t.Fatal(err)
	}
	if string(doc.Body) != `{"name":"x"}` {
		t.Fatalf("body = %s", doc.Body)
	}
	if !bytes.Equal(doc.Blobs["a"], raw) {
		t.Fatalf("payload changed: %v", doc.Blobs["a"])
	}
	if _, ok := doc.Blobs["empty"]; !ok {
		t.Fatal("empty payload should still be stored")
	}
}

func TestSetReplacesPayloads(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	s.Set(ctx, "k", Document{Body: []byte(`1`), Blobs: map[string][]byte{"old": []byte("x")}})
	s.Set(ctx, "k", Document{Body: []byte(`2`), Blobs: map[string][]byte{"new": []byte("y")}})

	doc, _ := s.Get(ctx, "k")
	if string(doc.Body) != "2" {
		t.Fatalf("body not replaced: %s", doc.Body)
	}
	if _, ok := doc.Blobs["old"]; ok {
		t.Fatal("stale payload survived overwrite")
	}
	if len(doc.Blobs) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(doc.Blobs))
	}
}

func TestRemoveRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	s.Set(ctx, "k", Document{Body: []byte(`{}`), Blobs: map[string][]byte{"a": []byte("x")}})
	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	doc, _ := s.Get(ctx, "k")
	if doc != nil {
		t.Fatal("record should be gone")
	}

	var n int
	s.db.QueryRow(`SELECT COUNT(*) FROM payloads`).Scan(&n)
	if n != 0 {
		t.Fatalf("expected payloads removed, %d left", n)
	}

	if err := s.Remove(ctx, "missing"); err != nil {
		t.Fatalf("removing a missing key should not fail: %v", err)
	}
}

func TestKeysIsolated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	s.Set(ctx, "a", Document{Body: []byte(`"a"`), Blobs: map[string][]byte{"p": []byte("A")}})
	s.Set(ctx, "b", Document{Body: []byte(`"b"`), Blobs: map[string][]byte{"p": []byte("B")}})

	a, _ := s.Get(ctx, "a")
	if string(a.Blobs["p"]) != "A" {
		t.Fatal("payload ids must be scoped per record key")
	}
}

func TestUpdatedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, ok, _ := s.UpdatedAt(ctx, "k"); ok {
		t.Fatal("missing key should report false")
	}
	s.Set(ctx, "k", Document{Body: []byte(`{}`)})
	ts, ok, err := s.UpdatedAt(ctx, "k")
	if err != nil || !ok || ts.IsZero() {
		t.Fatalf("UpdatedAt = %v %v %v", ts, ok, err)
	}
}

// ============================================================
// Legacy table
// ============================================================

func TestLegacyRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.GetLegacy(ctx, "portfolioData"); ok || err != nil {
		t.Fatalf("expected absent legacy value, ok=%v err=%v", ok, err)
	}
	if err := s.SetLegacy(ctx, "portfolioData", `{"name":"old"}`); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.GetLegacy(ctx, "portfolioData")
	if err != nil || !ok || v != `{"name":"old"}` {
		t.Fatalf("GetLegacy = %q %v %v", v, ok, err)
	}
	if err := s.RemoveLegacy(ctx, "portfolioData"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.GetLegacy(ctx, "portfolioData"); ok {
		t.Fatal("legacy value should be removed")
	}
}

// ============================================================
// Session store
// ============================================================

func TestSessionRoundTrip(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	if _, ok, _ := s.Get(ctx, "draft"); ok {
		t.Fatal("expected empty session")
	}
	if err := s.Set(ctx, "draft", `{"a":1}`); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "draft", `{"a":2}`); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get(ctx, "draft")
	if err != nil || !ok || v != `{"a":2}` {
		t.Fatalf("Get = %q %v %v", v, ok, err)
	}
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM session_kv`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 key, got %d", n)
	}
	s.Remove(ctx, "draft")
	if _, ok, _ := s.Get(ctx, "draft"); ok {
		t.Fatal("expected removed")
	}
}

func TestSessionAcceptsTextMentioningBlob(t *testing.T) {
	s := newTestSession(t)
	value := `{"aboutContent":"blob: storage is my hobby","skills":[{"name":"blob:storage"}]}`
	if err := s.Set(context.Background(), "draft", value); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, _ := s.Get(context.Background(), "draft"); !ok || v != value {
		t.Fatal("user text must be stored as given")
	}
}

func TestSessionRejectsBinary(t *testing.T) {
	s := newTestSession(t)
	err := s.Set(context.Background(), "draft", string([]byte{0xff, 0xfe, 0x00}))
	if !errors.Is(err, ErrBinaryValue) {
		t.Fatalf("expected ErrBinaryValue, got %v", err)
	}
}

func TestSessionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	s, err := NewSession(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Set(context.Background(), "draft", "x")
	s.Close()

	s2, err := NewSession(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	v, ok, _ := s2.Get(context.Background(), "draft")
	if !ok || v != "x" {
		t.Fatal("session value should survive a restart of the process")
	}
}

func TestCheckSessionValue(t *testing.T) {
	if err := checkSessionValue(`"blob:x"`); err != nil {
		t.Fatalf("text values are accepted, got %v", err)
	}
	if err := checkSessionValue("a\x00b"); !errors.Is(err, ErrBinaryValue) {
		t.Fatalf("expected ErrBinaryValue, got %v", err)
	}
}
