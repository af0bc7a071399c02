package persist

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/sadopc/folio/internal/objref"
	"github.com/sadopc/folio/internal/store"
)

var errNotDataURL = errors.New("not a data URL")

// UpgradeLegacy converts a record from the legacy location, where media was
// inlined as data URLs, into the current document layout. Fields it does not
// know about are carried over untouched.
func UpgradeLegacy(value string) (store.Document, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(value), &m); err != nil {
		return store.Document{}, fmt.Errorf("parse legacy record: %w", err)
	}
	u := upgrader{blobs: make(map[string][]byte)}

	if raw, ok := m["resume"]; ok {
		var f struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		}
		if json.Unmarshal(raw, &f) == nil {
			m["resume"] = u.marshal(u.file(f.Name, f.URL))
		}
	}
	if raw, ok := m["aboutImage"]; ok {
		m["aboutImage"] = u.marshal(u.file("", u.str(raw)))
	}
	if raw, ok := m["bannerData"]; ok {
		var b map[string]json.RawMessage
		if json.Unmarshal(raw, &b) == nil && b != nil {
			if bg, ok := b["backgroundUrl"]; ok {
				b["background"] = u.marshal(u.file("", u.str(bg)))
				delete(b, "backgroundUrl")
			}
			m["bannerData"] = u.marshal(b)
		}
	}
	if raw, ok := m["pageBackground"]; ok {
		var b map[string]json.RawMessage
		if json.Unmarshal(raw, &b) == nil && b != nil {
			var typ string
			_ = json.Unmarshal(b["type"], &typ)
			if typ == "image" || typ == "video" {
				b["media"] = u.marshal(u.file("", u.str(b["value"])))
				delete(b, "value")
			}
			m["pageBackground"] = u.marshal(b)
		}
	}
	if raw, ok := m["works"]; ok {
		var works []map[string]json.RawMessage
		if json.Unmarshal(raw, &works) == nil {
			for _, w := range works {
				for _, key := range []string{"images", "videoUrls"} {
					if list, ok := w[key]; ok {
						w[key] = u.marshal(u.list(list))
					}
				}
			}
			m["works"] = u.marshal(works)
		}
	}

	if u.err != nil {
		return store.Document{}, u.err
	}
	body, err := json.Marshal(m)
	if err != nil {
		return store.Document{}, fmt.Errorf("marshal upgraded record: %w", err)
	}
	return store.Document{Body: body, Blobs: u.blobs}, nil
}

type upgrader struct {
	blobs map[string][]byte
	n     int
	err   error
}

func (u *upgrader) str(raw json.RawMessage) string {
	var s string
	_ = json.Unmarshal(raw, &s)
	return s
}

func (u *upgrader) marshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil && u.err == nil {
		u.err = fmt.Errorf("marshal legacy field: %w", err)
	}
	return b
}

// file converts one legacy reference. Data URLs become payloads, stale live
// references are dropped, anything else stays an external link.
func (u *upgrader) file(name, ref string) *File {
	switch {
	case ref == "" || objref.IsEphemeral(ref):
		return nil
	case strings.HasPrefix(ref, "data:"):
		mime, data, err := decodeDataURL(ref)
		if err != nil {
			return nil
		}
		u.n++
		if name == "" {
			name = fmt.Sprintf("legacy-%d%s", u.n, extension(mime))
		}
		id := uuid.NewString()
		u.blobs[id] = data
		return &File{Name: name, Blob: &Payload{ID: id, Size: len(data)}}
	default:
		return &File{Name: name, URL: ref}
	}
}

func (u *upgrader) list(raw json.RawMessage) []File {
	var refs []string
	_ = json.Unmarshal(raw, &refs)
	out := make([]File, 0, len(refs))
	for _, ref := range refs {
		if f := u.file("", ref); f != nil {
			out = append(out, *f)
		}
	}
	return out
}

func extension(mime string) string {
	if t := mimetype.Lookup(mime); t != nil {
		return t.Extension()
	}
	return ""
}

// decodeDataURL splits "data:<mime>[;base64],<data>".
func decodeDataURL(s string) (string, []byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return "", nil, errNotDataURL
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("decode data URL: %w", err)
		}
		return mime, data, nil
	}
	text, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL: %w", err)
	}
	return mime, []byte(text), nil
}
