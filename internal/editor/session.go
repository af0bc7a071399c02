// Package editor owns the live portfolio state and is the only entry point
// the UI uses to change or persist it.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sadopc/folio/internal/draft"
	"github.com/sadopc/folio/internal/objref"
	"github.com/sadopc/folio/internal/portfolio"
	"github.com/sadopc/folio/internal/upload"
)

const (
	NoticeDraftSaved    = "Draft saved automatically"
	NoticeDraftFailed   = "Draft could not be saved. Save now to keep your edits."
	NoticeSaved         = "Portfolio saved successfully!"
	NoticeSaveFailed    = "Error saving portfolio. Please try again."
	NoticeNotReady      = "Storage is not ready. Please wait a moment and try again."
	NoticeDraftRestored = "Draft restored"
	NoticeDraftDismiss  = "Draft dismissed"
	NoticeReset         = "Portfolio reset to defaults"
)

// Notice is a transient message for the footer.
type Notice struct {
	Text    string
	IsError bool
	At      time.Time
}

type Session struct {
	rec  *draft.Reconciler
	refs *objref.Tracker
	log  zerolog.Logger
	now  func() time.Time

	mu       sync.Mutex
	state    portfolio.State
	editMode bool
	notice   Notice
	savedAt  time.Time
}

// Start runs the startup load and returns a session holding its result.
func Start(ctx context.Context, rec *draft.Reconciler, refs *objref.Tracker, log zerolog.Logger) (*Session, error) {
	res, err := rec.Startup(ctx)
	if err != nil {
		return nil, fmt.Errorf("startup: %w", err)
	}
	savedAt, _ := rec.SavedAt(ctx)
	return &Session{
		rec:     rec,
		refs:    refs,
		log:     log,
		now:     time.Now,
		state:   res.State,
		savedAt: savedAt,
	}, nil
}

// SavedAt returns when the portfolio was last saved; zero when never.
func (s *Session) SavedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savedAt
}

func (s *Session) setSavedAt(at time.Time) {
	s.mu.Lock()
	s.savedAt = at
	s.mu.Unlock()
}

// CurrentState returns a copy of the live state.
func (s *Session) CurrentState() portfolio.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// ApplyState applies patches in one step.
func (s *Session) ApplyState(patches ...portfolio.Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swap(s.state.Apply(patches...))
}

// Replace swaps in a whole new state.
func (s *Session) Replace(st portfolio.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swap(st.Clone())
}

// swap installs next and releases every live reference it no longer uses.
// Callers hold mu.
func (s *Session) swap(next portfolio.State) {
	prev := portfolio.References(s.state)
	s.state = next
	if n := s.refs.ReleaseUnused(prev, portfolio.References(next)); n > 0 {
		s.log.Debug().Int("released", n).Msg("references released")
	}
}

func (s *Session) setNotice(text string, isErr bool) {
	s.mu.Lock()
	s.notice = Notice{Text: text, IsError: isErr, At: s.now()}
	s.mu.Unlock()
}

func (s *Session) Notice() Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// ClearNotice drops the notice if it was posted at or before at.
func (s *Session) ClearNotice(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.notice.At.After(at) {
		s.notice = Notice{}
	}
}

func (s *Session) Ready() bool { return s.rec.Ready() }

func (s *Session) SetEditMode(on bool) {
	s.mu.Lock()
	s.editMode = on
	s.mu.Unlock()
}

func (s *Session) EditMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editMode
}

// DraftAvailable reports whether a draft from an earlier session awaits a
// restore or dismiss decision.
func (s *Session) DraftAvailable() bool {
	return s.rec.Phase() == draft.DraftPending
}

// SaveNow writes the current state as the saved portfolio.
func (s *Session) SaveNow(ctx context.Context) error {
	st := s.CurrentState()
	err := s.rec.Save(ctx, st)
	switch {
	case errors.Is(err, draft.ErrNotReady):
		s.setNotice(NoticeNotReady, true)
	case err != nil:
		s.setNotice(NoticeSaveFailed, true)
	default:
		at, _ := s.rec.SavedAt(ctx)
		s.setSavedAt(at)
		s.setNotice(NoticeSaved, false)
	}
	return err
}

// RequestDraftRestore replaces the live state with the pending draft.
func (s *Session) RequestDraftRestore(ctx context.Context) error {
	st, err := s.rec.Restore(ctx)
	if err != nil {
		return err
	}
	s.Replace(st)
	s.setNotice(NoticeDraftRestored, false)
	return nil
}

func (s *Session) DismissDraft(ctx context.Context) error {
	if err := s.rec.Dismiss(ctx); err != nil {
		return err
	}
	s.setNotice(NoticeDraftDismiss, false)
	return nil
}

// ResetAll returns to the default content and deletes what was stored. The
// live state is reset even when the store is unavailable.
func (s *Session) ResetAll(ctx context.Context) error {
	err := s.rec.Reset(ctx)
	s.Replace(portfolio.Defaults())
	switch {
	case errors.Is(err, draft.ErrNotReady):
		s.setNotice(NoticeNotReady, true)
	case err != nil:
		s.log.Error().Err(err).Str("op", "reset").Msg("reset portfolio")
		s.setNotice(NoticeSaveFailed, true)
	default:
		s.setSavedAt(time.Time{})
		s.setNotice(NoticeReset, false)
	}
	return err
}

// Snapshot writes a draft of the current state while edit mode is on. It
// reports whether a draft was written.
func (s *Session) Snapshot(ctx context.Context) (bool, error) {
	s.mu.Lock()
	on := s.editMode
	st := s.state.Clone()
	s.mu.Unlock()
	if !on {
		return false, nil
	}
	if err := s.rec.Snapshot(ctx, st); err != nil {
		s.log.Warn().Err(err).Str("op", "snapshot").Msg("autosave draft")
		s.setNotice(NoticeDraftFailed, true)
		return false, err
	}
	s.setNotice(NoticeDraftSaved, false)
	return true, nil
}

// SnapshotOnExit takes the final snapshot, waiting at most budget. It
// reports whether the snapshot finished in time; a late write is abandoned.
func (s *Session) SnapshotOnExit(budget time.Duration) bool {
	if !s.EditMode() {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := s.Snapshot(ctx); err != nil {
			s.log.Warn().Err(err).Msg("exit snapshot")
		}
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		s.log.Warn().Dur("budget", budget).Msg("exit snapshot abandoned")
		return false
	}
}

// AttachFile validates path for kind and returns a live reference to it.
// The reference is released automatically once the state stops using it;
// a reference that never makes it into the state must be handed to
// DiscardUpload.
func (s *Session) AttachFile(path string, kind upload.Kind) (string, error) {
	return s.AttachFileMax(path, kind, kind.MaxBytes())
}

// AttachFileMax is AttachFile with a size limit taken from the content,
// such as the banner's maximum background size.
func (s *Session) AttachFileMax(path string, kind upload.Kind, maxBytes int64) (string, error) {
	info, err := upload.ValidateMax(path, kind, maxBytes)
	if err != nil {
		return "", err
	}
	ref := s.refs.Create(objref.FileSource(info.Path))
	s.log.Debug().Str("ref", ref).Str("mime", info.MIME).Int64("size", info.Size).Msg("file attached")
	return ref, nil
}

// DiscardUpload releases ref unless the live state references it.
func (s *Session) DiscardUpload(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, used := portfolio.References(s.state)[ref]; used {
		return
	}
	s.refs.Release(ref)
}

// Name returns the original file name behind a live reference, or "" for
// anything else.
func (s *Session) Name(ref string) string { return s.refs.Name(ref) }
