package persist

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sadopc/folio/internal/objref"
	"github.com/sadopc/folio/internal/portfolio"
	"github.com/sadopc/folio/internal/store"
)

// liveState returns defaults with a few uploaded files attached.
func liveState(t *testing.T, tr *objref.Tracker) portfolio.State {
	t.Helper()
	st := portfolio.Defaults()
	st.Resume = &portfolio.FileRef{Name: "cv.pdf", URL: tr.Create(objref.BytesSource("cv.pdf", []byte("%PDF-1.4")))}
	st.AboutImage = &portfolio.FileRef{Name: "me.png", URL: tr.Create(objref.BytesSource("me.png", []byte{0x89, 'P', 'N', 'G', 0x00}))}
	st.Banner.BackgroundType = portfolio.BackgroundVideo
	st.Banner.BackgroundURL = tr.Create(objref.BytesSource("loop.mp4", []byte("mp4-bytes")))
	st.Works[0].Images = append(st.Works[0].Images, tr.Create(objref.BytesSource("shot.jpg", []byte("jpeg"))))
	return st
}

func bytesOf(t *testing.T, tr *objref.Tracker, ref string) string {
	t.Helper()
	data, err := tr.Fetch(context.Background(), ref)
	if err != nil {
		t.Fatalf("Fetch(%q): %v", ref, err)
	}
	return string(data)
}

// ==================== Durable ====================

func TestDurableRoundTrip(t *testing.T) {
	ctx := context.Background()
	tr := objref.NewTracker()
	st := liveState(t, tr)

	rec, err := NewSerializer(tr).Serialize(ctx, st, Durable)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	doc, err := Encode(rec)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(doc.Blobs) != 4 {
		t.Fatalf("expected 4 payloads, got %d", len(doc.Blobs))
	}
	if strings.Contains(string(doc.Body), objref.Scheme) {
		t.Fatal("durable body should not contain live references")
	}

	// A fresh tracker stands in for a restarted process.
	next := objref.NewTracker()
	got := NewHydrator(next, zerolog.Nop()).Hydrate(&doc)

	if got.Resume == nil || got.Resume.Name != "cv.pdf" {
		t.Fatalf("resume = %+v, want cv.pdf", got.Resume)
	}
	if bytesOf(t, next, got.Resume.URL) != "%PDF-1.4" {
		t.Fatal("resume bytes differ")
	}
	if bytesOf(t, next, got.AboutImage.URL) != string([]byte{0x89, 'P', 'N', 'G', 0x00}) {
		t.Fatal("about image bytes differ")
	}
	if got.Banner.BackgroundType != portfolio.BackgroundVideo || bytesOf(t, next, got.Banner.BackgroundURL) != "mp4-bytes" {
		t.Fatalf("banner = %+v", got.Banner)
	}
	imgs := got.Works[0].Images
	if len(imgs) != 3 {
		t.Fatalf("expected 3 images, got %d", len(imgs))
	}
	if imgs[0] != st.Works[0].Images[0] {
		t.Fatalf("external image changed: %q", imgs[0])
	}
	if bytesOf(t, next, imgs[2]) != "jpeg" {
		t.Fatal("uploaded image bytes differ")
	}
	if got.PageBackground != st.PageBackground {
		t.Fatalf("page background = %+v, want %+v", got.PageBackground, st.PageBackground)
	}
	if got.Name != st.Name || len(got.Skills) != len(st.Skills) || len(got.Profiles) != len(st.Profiles) {
		t.Fatal("scalar fields did not round-trip")
	}
	if *got.Works[0].ProfileID != 1 || got.Works[0].AspectRatio != portfolio.Ratio16x9 {
		t.Fatalf("work metadata lost: %+v", got.Works[0])
	}
	if next.Live() != 4 {
		t.Fatalf("expected 4 new refs, got %d", next.Live())
	}
}

func TestDurableFetchFailureAborts(t *testing.T) {
	tr := objref.NewTracker()
	st := liveState(t, tr)
	tr.Release(st.AboutImage.URL)

	rec, err := NewSerializer(tr).Serialize(context.Background(), st, Durable)
	if err == nil {
		t.Fatal("expected error for released reference")
	}
	if rec != nil {
		t.Fatal("no record should be returned on failure")
	}
	if !errors.Is(err, objref.ErrUnknownReference) {
		t.Fatalf("expected ErrUnknownReference, got %v", err)
	}
}

func TestDurableUsesTrackerNameForListMedia(t *testing.T) {
	tr := objref.NewTracker()
	st := liveState(t, tr)
	rec, err := NewSerializer(tr).Serialize(context.Background(), st, Durable)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	last := rec.Works[0].Images[len(rec.Works[0].Images)-1]
	if last.Name != "shot.jpg" || last.Blob == nil || last.Blob.Size != 4 {
		t.Fatalf("image file = %+v", last)
	}
}

// ==================== Draft ====================

func TestDraftHoldsNoLiveReferences(t *testing.T) {
	tr := objref.NewTracker()
	st := liveState(t, tr)

	rec, err := NewSerializer(tr).Serialize(context.Background(), st, Draft)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	body, err := EncodeDraft(rec)
	if err != nil {
		t.Fatalf("EncodeDraft: %v", err)
	}
	if strings.Contains(body, objref.Scheme) {
		t.Fatalf("draft contains a live reference: %s", body)
	}

	got := NewHydrator(objref.NewTracker(), zerolog.Nop()).HydrateDraft(body)
	if got.Resume != nil || got.AboutImage != nil {
		t.Fatal("single media should be cleared in a draft")
	}
	if got.Banner.BackgroundURL != "" {
		t.Fatalf("banner background = %q, want empty", got.Banner.BackgroundURL)
	}
	if len(got.Works[0].Images) != 2 {
		t.Fatalf("expected uploaded image dropped, got %d images", len(got.Works[0].Images))
	}
	if got.Works[0].Videos[0] != st.Works[0].Videos[0] {
		t.Fatal("external video should pass through a draft")
	}
}

func TestDraftDoesNotFetch(t *testing.T) {
	tr := objref.NewTracker()
	st := liveState(t, tr)
	tr.Release(st.Resume.URL)

	if _, err := NewSerializer(tr).Serialize(context.Background(), st, Draft); err != nil {
		t.Fatalf("draft serialize should not touch sources: %v", err)
	}
}

func TestEncodeDraftRejectsPayloads(t *testing.T) {
	tr := objref.NewTracker()
	rec, err := NewSerializer(tr).Serialize(context.Background(), liveState(t, tr), Durable)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if _, err := EncodeDraft(rec); err == nil {
		t.Fatal("expected EncodeDraft to reject a durable record")
	}
}

func TestDraftKeepsTextMentioningBlob(t *testing.T) {
	tr := objref.NewTracker()
	st := portfolio.Defaults()
	st.AboutContent = "blob: storage is my hobby"
	st.Skills = append(st.Skills, portfolio.Skill{Name: "blob:storage", Proficiency: 40})
	st.Services = append(st.Services, "blob:consulting")

	rec, err := NewSerializer(tr).Serialize(context.Background(), st, Draft)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	body, err := EncodeDraft(rec)
	if err != nil {
		t.Fatalf("EncodeDraft: %v", err)
	}
	got := NewHydrator(tr, zerolog.Nop()).HydrateDraft(body)
	if got.AboutContent != st.AboutContent {
		t.Fatalf("about content = %q", got.AboutContent)
	}
	if got.Skills[len(got.Skills)-1].Name != "blob:storage" {
		t.Fatalf("skills = %+v", got.Skills)
	}
}

func TestEncodeDraftRejectsLiveMedia(t *testing.T) {
	tr := objref.NewTracker()
	rec, err := NewSerializer(tr).Serialize(context.Background(), portfolio.Defaults(), Draft)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	rec.Resume = &File{Name: "cv.pdf", URL: tr.Create(objref.BytesSource("cv.pdf", nil))}
	if _, err := EncodeDraft(rec); !errors.Is(err, ErrLiveReference) {
		t.Fatalf("err = %v, want ErrLiveReference", err)
	}
}

// ==================== Hydrate ====================

func TestHydrateNilIsDefaults(t *testing.T) {
	got := NewHydrator(objref.NewTracker(), zerolog.Nop()).Hydrate(nil)
	if got.Name != portfolio.Defaults().Name {
		t.Fatal("nil document should hydrate to defaults")
	}
}

func TestHydrateDropsStaleReferences(t *testing.T) {
	body := `{
		"resume": {"name": "old.pdf", "url": "blob:folio/dead"},
		"works": [{"id": 9, "title": "W", "images": [
			{"url": "blob:folio/gone"},
			{"url": "https://example.com/a.png"},
			{"name": "x.png", "blob": {"id": "missing", "size": 3}}
		], "tags": []}]
	}`
	tr := objref.NewTracker()
	got := NewHydrator(tr, zerolog.Nop()).Hydrate(&store.Document{Body: []byte(body)})

	if got.Resume != nil {
		t.Fatalf("stale resume should be dropped, got %+v", got.Resume)
	}
	if len(got.Works) != 1 || len(got.Works[0].Images) != 1 {
		t.Fatalf("works = %+v", got.Works)
	}
	if got.Works[0].Images[0] != "https://example.com/a.png" {
		t.Fatalf("kept image = %q", got.Works[0].Images[0])
	}
	if tr.Live() != 0 {
		t.Fatalf("no refs should be created, got %d", tr.Live())
	}
}

func TestHydratePartialRecordDegrades(t *testing.T) {
	body := `{"name": 42, "title": "Editor", "theme": "neon", "skills": "lots", "accentColor": "#000000"}`
	got := NewHydrator(objref.NewTracker(), zerolog.Nop()).HydrateDraft(body)
	def := portfolio.Defaults()

	if got.Name != def.Name {
		t.Fatalf("Name = %q, want default", got.Name)
	}
	if got.Title != "Editor" || got.AccentColor != "#000000" {
		t.Fatal("valid fields should be kept")
	}
	if got.Theme != def.Theme {
		t.Fatalf("Theme = %q, want default", got.Theme)
	}
	if len(got.Skills) != len(def.Skills) {
		t.Fatal("skills should fall back to defaults")
	}
	if len(got.Works) != len(def.Works) {
		t.Fatal("absent works should fall back to defaults")
	}
}

func TestHydrateGarbageIsDefaults(t *testing.T) {
	got := NewHydrator(objref.NewTracker(), zerolog.Nop()).HydrateDraft("{not json")
	if got.Name != portfolio.Defaults().Name {
		t.Fatal("unparsable body should hydrate to defaults")
	}
}

func TestHydrateNullResumeClears(t *testing.T) {
	got := NewHydrator(objref.NewTracker(), zerolog.Nop()).HydrateDraft(`{"resume": null}`)
	if got.Resume != nil {
		t.Fatal("explicit null should clear the resume")
	}
}

// ==================== Legacy ====================

func TestUpgradeLegacy(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	legacy := `{
		"name": "Legacy Name",
		"resume": {"name": "cv.pdf", "url": "data:application/pdf;base64,` + base64.StdEncoding.EncodeToString([]byte("pdf")) + `"},
		"aboutImage": "` + dataURL + `",
		"bannerData": {"title": "Hi", "backgroundType": "image", "backgroundUrl": "` + dataURL + `", "backgroundMaxSize": 5},
		"pageBackground": {"type": "color", "value": "#101010"},
		"works": [{"id": 1, "title": "Old", "images": ["` + dataURL + `", "https://example.com/b.jpg", "blob:stale"], "tags": []}]
	}`

	doc, err := UpgradeLegacy(legacy)
	if err != nil {
		t.Fatalf("UpgradeLegacy: %v", err)
	}
	if len(doc.Blobs) != 4 {
		t.Fatalf("expected 4 payloads, got %d", len(doc.Blobs))
	}
	if strings.Contains(string(doc.Body), "data:") {
		t.Fatal("upgraded body still holds data URLs")
	}

	tr := objref.NewTracker()
	got := NewHydrator(tr, zerolog.Nop()).Hydrate(&doc)
	if got.Name != "Legacy Name" {
		t.Fatalf("Name = %q", got.Name)
	}
	if got.Resume == nil || got.Resume.Name != "cv.pdf" || bytesOf(t, tr, got.Resume.URL) != "pdf" {
		t.Fatalf("resume = %+v", got.Resume)
	}
	if bytesOf(t, tr, got.AboutImage.URL) != string(png) {
		t.Fatal("about image bytes differ")
	}
	if !strings.HasSuffix(got.AboutImage.Name, ".png") {
		t.Fatalf("about image name = %q, want .png extension", got.AboutImage.Name)
	}
	if got.Banner.Title != "Hi" || got.Banner.BackgroundMaxSize != 5 || got.Banner.BackgroundURL == "" {
		t.Fatalf("banner = %+v", got.Banner)
	}
	if got.PageBackground.Type != portfolio.BackgroundColor || got.PageBackground.Value != "#101010" {
		t.Fatalf("page background = %+v", got.PageBackground)
	}
	if len(got.Works) != 1 || len(got.Works[0].Images) != 2 {
		t.Fatalf("works = %+v", got.Works)
	}
	if got.Works[0].Images[1] != "https://example.com/b.jpg" {
		t.Fatalf("external image = %q", got.Works[0].Images[1])
	}
}

func TestUpgradeLegacyRejectsGarbage(t *testing.T) {
	if _, err := UpgradeLegacy("not json"); err == nil {
		t.Fatal("expected error for unparsable legacy value")
	}
}

func TestDecodeDataURLPlain(t *testing.T) {
	mime, data, err := decodeDataURL("data:text/plain;charset=utf-8,hello%20world")
	if err != nil {
		t.Fatalf("decodeDataURL: %v", err)
	}
	if mime != "text/plain" || string(data) != "hello world" {
		t.Fatalf("got %q %q", mime, data)
	}
}
