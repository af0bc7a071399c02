package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/sadopc/folio/internal/config"
	"github.com/sadopc/folio/internal/draft"
	"github.com/sadopc/folio/internal/editor"
	"github.com/sadopc/folio/internal/logging"
	"github.com/sadopc/folio/internal/objref"
	"github.com/sadopc/folio/internal/persist"
	"github.com/sadopc/folio/internal/store"
	"github.com/sadopc/folio/internal/tui"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	log, logFile, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	ctx := context.Background()
	blobs, closeBlobs := openBlobStore(cfg, log)
	defer closeBlobs.Close()
	eph, closeEph := openEphemeral(ctx, cfg, log)
	defer closeEph.Close()

	refs := objref.NewTracker()
	rec := draft.New(blobs, eph, persist.NewSerializer(refs), persist.NewHydrator(refs, log), log)
	sess, err := editor.Start(ctx, rec, refs, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(sess, cfg.AutosaveInterval)
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, runErr := p.Run()
	if !sess.SnapshotOnExit(cfg.ExitBudget) {
		log.Warn().Msg("exit snapshot did not finish")
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openBlobStore opens the database. A failure leaves the editor running
// without durable storage; saves then report that storage is not ready.
func openBlobStore(cfg config.Config, log zerolog.Logger) (draft.BlobStore, io.Closer) {
	db, err := store.New(cfg.DBPath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DBPath).Msg("open database")
		return nil, nopCloser{}
	}
	return db, db
}

// openEphemeral opens the draft store: Redis when configured, otherwise
// a local file. A failure disables drafts.
func openEphemeral(ctx context.Context, cfg config.Config, log zerolog.Logger) (draft.Ephemeral, io.Closer) {
	if cfg.RedisURL != "" {
		r, err := store.NewRedisSession(ctx, cfg.RedisURL, cfg.DraftTTL)
		if err != nil {
			log.Error().Err(err).Msg("connect draft store")
			return nil, nopCloser{}
		}
		return r, r
	}
	s, err := store.NewSession(cfg.SessionPath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.SessionPath).Msg("open draft store")
		return nil, nopCloser{}
	}
	return s, s
}
