// Package upload validates files picked for attachment before they are
// handed to the reference tracker.
package upload

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrTooLarge        = errors.New("file is too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)

const mb = 1 << 20

// Kind is the slot a file is attached to.
type Kind int

const (
	Image    Kind = iota // work images
	Video                // work videos, banner and page backgrounds
	Document             // resume
	Picture              // about and profile pictures, any image type
)

type rule struct {
	maxBytes int64
	types    []string // exact types, or "image/" prefixes
}

var rules = map[Kind]rule{
	Image:    {10 * mb, []string{"image/png", "image/jpeg", "image/gif", "image/webp"}},
	Video:    {50 * mb, []string{"video/mp4", "video/webm", "video/ogg", "audio/ogg", "application/ogg"}},
	Document: {10 * mb, []string{"application/pdf", "application/msword", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "text/plain"}},
	Picture:  {5 * mb, []string{"image/"}},
}

func (k Kind) String() string {
	switch k {
	case Image:
		return "image"
	case Video:
		return "video"
	case Document:
		return "document"
	case Picture:
		return "picture"
	}
	return "unknown"
}

// MaxBytes returns the size limit for k.
func (k Kind) MaxBytes() int64 { return rules[k].maxBytes }

// Info describes a validated file.
type Info struct {
	Path string
	Size int64
	MIME string
}

// Validate checks path against the size limit and content types of kind.
// The type is sniffed from the file content, not its extension.
func Validate(path string, kind Kind) (Info, error) {
	return ValidateMax(path, kind, kind.MaxBytes())
}

// ValidateMax is Validate with a caller-chosen size limit in bytes, for
// slots whose limit is part of the content (the banner background).
func ValidateMax(path string, kind Kind, maxBytes int64) (Info, error) {
	r, ok := rules[kind]
	if !ok {
		return Info{}, fmt.Errorf("validate %s: unknown kind %d", path, kind)
	}
	if maxBytes <= 0 {
		return Info{}, fmt.Errorf("validate %s: limit must be positive", path)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("stat upload: %w", err)
	}
	if fi.IsDir() {
		return Info{}, fmt.Errorf("%s is a directory: %w", path, ErrUnsupportedType)
	}
	if fi.Size() > maxBytes {
		return Info{}, fmt.Errorf("%s is %s, limit %s: %w", fi.Name(), megabytes(fi.Size()), megabytes(maxBytes), ErrTooLarge)
	}

	m, err := mimetype.DetectFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("detect type: %w", err)
	}
	if !accepts(r.types, m) {
		return Info{}, fmt.Errorf("%s (%s) for %s: %w", fi.Name(), m.String(), kind, ErrUnsupportedType)
	}
	return Info{Path: path, Size: fi.Size(), MIME: m.String()}, nil
}

// MB returns n megabytes in bytes.
func MB(n int) int64 { return int64(n) * mb }

func megabytes(n int64) string {
	return fmt.Sprintf("%.1f MB", float64(n)/mb)
}

func accepts(types []string, m *mimetype.MIME) bool {
	for _, t := range types {
		if strings.HasSuffix(t, "/") {
			for p := m; p != nil; p = p.Parent() {
				if strings.HasPrefix(p.String(), t) {
					return true
				}
			}
			continue
		}
		if m.Is(t) {
			return true
		}
	}
	return false
}
