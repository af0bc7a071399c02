// Package objref tracks ephemeral object references created for uploaded
// files. A reference is a "blob:" URL that is only valid for the lifetime of
// the process; every reference handed out by Create must be released once.
package objref

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Scheme is the prefix of every locally generated reference.
const Scheme = "blob:"

var ErrUnknownReference = errors.New("unknown or released reference")

// Source is the binary data behind a reference.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

type fileSource struct {
	path string
}

// FileSource retains a file on disk. The file is read when the reference is
// fetched, not when it is created.
func FileSource(path string) Source {
	return fileSource{path: path}
}

func (f fileSource) Name() string { return filepath.Base(f.path) }

func (f fileSource) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

type bytesSource struct {
	name string
	data []byte
}

// BytesSource retains an in-memory payload, typically one read back from the
// blob store.
func BytesSource(name string, data []byte) Source {
	return bytesSource{name: name, data: data}
}

func (b bytesSource) Name() string { return b.name }

func (b bytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.data)), nil
}

// IsEphemeral reports whether ref uses the locally generated scheme.
func IsEphemeral(ref string) bool {
	return strings.HasPrefix(ref, Scheme)
}

// Tracker owns the sources behind live references.
type Tracker struct {
	mu        sync.Mutex
	live      map[string]Source
	onRelease func(ref string)
}

func NewTracker() *Tracker {
	return &Tracker{live: make(map[string]Source)}
}

// OnRelease registers fn to be called once for every reference actually
// released.
func (t *Tracker) OnRelease(fn func(ref string)) {
	t.mu.Lock()
	t.onRelease = fn
	t.mu.Unlock()
}

// Create allocates a new reference for src. The caller is responsible for
// releasing it.
func (t *Tracker) Create(src Source) string {
	ref := Scheme + "folio/" + uuid.NewString()
	t.mu.Lock()
	t.live[ref] = src
	t.mu.Unlock()
	return ref
}

// Release frees ref. It returns false when ref was already released or is
// not an ephemeral reference at all.
func (t *Tracker) Release(ref string) bool {
	if !IsEphemeral(ref) {
		return false
	}
	t.mu.Lock()
	if _, ok := t.live[ref]; !ok {
		t.mu.Unlock()
		return false
	}
	delete(t.live, ref)
	hook := t.onRelease
	t.mu.Unlock()

	if hook != nil {
		hook(ref)
	}
	return true
}

// ReleaseUnused releases every ephemeral reference in prev that no longer
// appears in next. It returns the number of references released.
func (t *Tracker) ReleaseUnused(prev, next map[string]struct{}) int {
	n := 0
	for ref := range prev {
		if _, still := next[ref]; still {
			continue
		}
		if t.Release(ref) {
			n++
		}
	}
	return n
}

// Alive reports whether ref is a live reference.
func (t *Tracker) Alive(ref string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.live[ref]
	return ok
}

// Name returns the original file name behind ref, or "" when unknown.
func (t *Tracker) Name(ref string) string {
	t.mu.Lock()
	src, ok := t.live[ref]
	t.mu.Unlock()
	if !ok {
		return ""
	}
	return src.Name()
}

// Live returns the number of unreleased references.
func (t *Tracker) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Fetch reads the full binary content behind ref.
func (t *Tracker) Fetch(ctx context.Context, ref string) ([]byte, error) {
	t.mu.Lock()
	src, ok := t.live[ref]
	t.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("fetch %s: %w", ref, ErrUnknownReference)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("open source %q: %w", src.Name(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read source %q: %w", src.Name(), err)
	}
	return data, nil
}
