package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sadopc/folio/internal/objref"
	"github.com/sadopc/folio/internal/store"
)

// ErrLiveReference means a draft still points at a session-only reference.
var ErrLiveReference = errors.New("draft holds a live reference")

// Encode splits a durable record into its JSON body and payload map.
func Encode(rec *Record) (store.Document, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return store.Document{}, fmt.Errorf("marshal record: %w", err)
	}
	doc := store.Document{Body: body, Blobs: make(map[string][]byte)}
	for _, f := range rec.files() {
		if f.Blob != nil {
			doc.Blobs[f.Blob.ID] = f.Blob.Data
		}
	}
	return doc, nil
}

// EncodeDraft renders a draft record as JSON text. It refuses records whose
// media still carry payloads or live references; text fields are not looked
// at.
func EncodeDraft(rec *Record) (string, error) {
	for _, f := range rec.files() {
		if f.Blob != nil {
			return "", fmt.Errorf("draft record holds payload for %q", f.Name)
		}
		if objref.IsEphemeral(f.URL) {
			return "", fmt.Errorf("encode draft %q: %w", f.Name, ErrLiveReference)
		}
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal draft: %w", err)
	}
	return string(body), nil
}
