// Package draft arbitrates between the saved portfolio, the legacy record
// and the recoverable draft of an interrupted session.
package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sadopc/folio/internal/persist"
	"github.com/sadopc/folio/internal/portfolio"
	"github.com/sadopc/folio/internal/store"
)

const (
	CanonicalKey = "portfolio-data"
	DraftKey     = "portfolio-draft"
	LegacyKey    = "portfolioData"
)

var (
	ErrNotReady       = errors.New("storage is not ready")
	ErrNoSession      = errors.New("session store unavailable")
	ErrNoPendingDraft = errors.New("no pending draft")
)

type Phase int

const (
	NoDraft Phase = iota
	DraftPending
	DraftRestored
	DraftDismissed
)

func (p Phase) String() string {
	switch p {
	case DraftPending:
		return "draft-pending"
	case DraftRestored:
		return "draft-restored"
	case DraftDismissed:
		return "draft-dismissed"
	default:
		return "no-draft"
	}
}

// BlobStore is the durable store. *store.Store implements it.
type BlobStore interface {
	Get(ctx context.Context, key string) (*store.Document, error)
	Set(ctx context.Context, key string, doc store.Document) error
	Remove(ctx context.Context, key string) error
	UpdatedAt(ctx context.Context, key string) (time.Time, bool, error)
	GetLegacy(ctx context.Context, key string) (string, bool, error)
	RemoveLegacy(ctx context.Context, key string) error
}

// Ephemeral holds text values for the current session only.
type Ephemeral interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Startup is the outcome of the first load.
type Startup struct {
	State          portfolio.State
	Loaded         bool // a saved record was found
	Migrated       bool // it came from the legacy location
	DraftAvailable bool
}

type Reconciler struct {
	blobs BlobStore
	eph   Ephemeral
	ser   *persist.Serializer
	hyd   *persist.Hydrator
	log   zerolog.Logger

	mu      sync.Mutex
	phase   Phase
	pending string // draft body found at startup
}

// New returns a reconciler. A nil blobs means the durable store failed to
// initialize; a nil eph disables drafts.
func New(blobs BlobStore, eph Ephemeral, ser *persist.Serializer, hyd *persist.Hydrator, log zerolog.Logger) *Reconciler {
	return &Reconciler{blobs: blobs, eph: eph, ser: ser, hyd: hyd, log: log}
}

func (r *Reconciler) Ready() bool { return r.blobs != nil }

func (r *Reconciler) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Startup loads the saved record, migrating the legacy one when the
// canonical key is empty, and then looks for a draft. The draft is only
// offered, never applied. Read failures count as absent.
func (r *Reconciler) Startup(ctx context.Context) (Startup, error) {
	res := Startup{State: r.hyd.Hydrate(nil)}

	if r.blobs != nil {
		doc, err := r.blobs.Get(ctx, CanonicalKey)
		if err != nil {
			r.log.Warn().Err(err).Str("key", CanonicalKey).Msg("load saved portfolio")
		}
		if err == nil && doc == nil {
			migrated, err := r.Migrate(ctx)
			if err != nil {
				r.log.Warn().Err(err).Str("key", LegacyKey).Msg("legacy migration")
			}
			if migrated {
				res.Migrated = true
				if doc, err = r.blobs.Get(ctx, CanonicalKey); err != nil {
					r.log.Warn().Err(err).Str("key", CanonicalKey).Msg("load migrated portfolio")
				}
			}
		}
		if doc != nil {
			res.State = r.hyd.Hydrate(doc)
			res.Loaded = true
		}
	}

	if r.eph != nil {
		body, ok, err := r.eph.Get(ctx, DraftKey)
		if err != nil {
			r.log.Warn().Err(err).Str("key", DraftKey).Msg("load draft")
		}
		if ok {
			r.mu.Lock()
			r.phase = DraftPending
			r.pending = body
			r.mu.Unlock()
			res.DraftAvailable = true
		}
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	r.log.Info().Bool("loaded", res.Loaded).Bool("migrated", res.Migrated).
		Bool("draft", res.DraftAvailable).Msg("startup")
	return res, nil
}

// Migrate moves the legacy record into the canonical key. It does nothing
// when the canonical key already holds data or the legacy location is empty,
// so running it twice is harmless.
func (r *Reconciler) Migrate(ctx context.Context) (bool, error) {
	if r.blobs == nil {
		return false, ErrNotReady
	}
	doc, err := r.blobs.Get(ctx, CanonicalKey)
	if err != nil {
		return false, fmt.Errorf("check canonical record: %w", err)
	}
	if doc != nil {
		return false, nil
	}

	value, ok, err := r.blobs.GetLegacy(ctx, LegacyKey)
	if err != nil {
		return false, fmt.Errorf("read legacy record: %w", err)
	}
	if !ok {
		return false, nil
	}
	upgraded, err := persist.UpgradeLegacy(value)
	if err != nil {
		return false, err
	}
	if err := r.blobs.Set(ctx, CanonicalKey, upgraded); err != nil {
		return false, fmt.Errorf("write migrated record: %w", err)
	}
	if err := r.blobs.RemoveLegacy(ctx, LegacyKey); err != nil {
		// The canonical key is set now, so the next run will not migrate again.
		r.log.Warn().Err(err).Str("key", LegacyKey).Msg("remove legacy record")
	}
	r.log.Info().Int("payloads", len(upgraded.Blobs)).Msg("legacy record migrated")
	return true, nil
}

// Snapshot overwrites the draft with st. It is used by both the interval
// and the exit trigger.
func (r *Reconciler) Snapshot(ctx context.Context, st portfolio.State) error {
	if r.eph == nil {
		return ErrNoSession
	}
	rec, err := r.ser.Serialize(ctx, st, persist.Draft)
	if err != nil {
		return fmt.Errorf("serialize draft: %w", err)
	}
	body, err := persist.EncodeDraft(rec)
	if err != nil {
		return err
	}
	if err := r.eph.Set(ctx, DraftKey, body); err != nil {
		r.log.Error().Err(err).Str("key", DraftKey).Str("op", "snapshot").Msg("write draft")
		return fmt.Errorf("write draft: %w", err)
	}
	return nil
}

// Restore hydrates the draft found at startup and discards it.
func (r *Reconciler) Restore(ctx context.Context) (portfolio.State, error) {
	r.mu.Lock()
	if r.phase != DraftPending {
		r.mu.Unlock()
		return portfolio.State{}, ErrNoPendingDraft
	}
	body := r.pending
	r.phase = DraftRestored
	r.pending = ""
	r.mu.Unlock()

	st := r.hyd.HydrateDraft(body)
	r.removeDraft(ctx, "restore")
	return st, nil
}

// Dismiss discards the draft found at startup.
func (r *Reconciler) Dismiss(ctx context.Context) error {
	r.mu.Lock()
	if r.phase != DraftPending {
		r.mu.Unlock()
		return ErrNoPendingDraft
	}
	r.phase = DraftDismissed
	r.pending = ""
	r.mu.Unlock()

	r.removeDraft(ctx, "dismiss")
	return nil
}

// Save writes st as the canonical record and drops the draft it supersedes.
// On failure the previous record is left as it was.
func (r *Reconciler) Save(ctx context.Context, st portfolio.State) error {
	if r.blobs == nil {
		return ErrNotReady
	}
	rec, err := r.ser.Serialize(ctx, st, persist.Durable)
	if err != nil {
		r.log.Error().Err(err).Str("op", "save").Msg("serialize portfolio")
		return fmt.Errorf("serialize portfolio: %w", err)
	}
	doc, err := persist.Encode(rec)
	if err != nil {
		return err
	}
	if err := r.blobs.Set(ctx, CanonicalKey, doc); err != nil {
		r.log.Error().Err(err).Str("key", CanonicalKey).Str("op", "save").Msg("write portfolio")
		return fmt.Errorf("write portfolio: %w", err)
	}

	r.mu.Lock()
	if r.phase == DraftPending {
		r.phase = NoDraft
		r.pending = ""
	}
	r.mu.Unlock()
	r.removeDraft(ctx, "save")
	r.log.Info().Int("payloads", len(doc.Blobs)).Msg("portfolio saved")
	return nil
}

// SavedAt returns when the canonical record was last written, or false when
// there is none or it cannot be read.
func (r *Reconciler) SavedAt(ctx context.Context) (time.Time, bool) {
	if r.blobs == nil {
		return time.Time{}, false
	}
	at, ok, err := r.blobs.UpdatedAt(ctx, CanonicalKey)
	if err != nil {
		r.log.Warn().Err(err).Str("key", CanonicalKey).Msg("read save time")
		return time.Time{}, false
	}
	return at, ok
}

// Reset deletes the saved record and the draft.
func (r *Reconciler) Reset(ctx context.Context) error {
	if r.blobs == nil {
		return ErrNotReady
	}
	if err := r.blobs.Remove(ctx, CanonicalKey); err != nil {
		return fmt.Errorf("remove portfolio: %w", err)
	}
	r.mu.Lock()
	r.phase = NoDraft
	r.pending = ""
	r.mu.Unlock()
	r.removeDraft(ctx, "reset")
	return nil
}

func (r *Reconciler) removeDraft(ctx context.Context, op string) {
	if r.eph == nil {
		return
	}
	if err := r.eph.Remove(ctx, DraftKey); err != nil {
		r.log.Warn().Err(err).Str("key", DraftKey).Str("op", op).Msg("remove draft")
	}
}
