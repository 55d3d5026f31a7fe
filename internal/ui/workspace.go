package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/javiermolinar/timetabler/internal/db"
	"github.com/javiermolinar/timetabler/internal/lesson"
	"github.com/javiermolinar/timetabler/internal/persist"
	"github.com/javiermolinar/timetabler/internal/remote"
	"github.com/javiermolinar/timetabler/internal/session"
)

// workspace is one command's view of the timetable: a session hydrated from
// the local cache, plus the handles it needs to be closed.
type workspace struct {
	sess      *session.Session
	cache     db.Cache
	hasRemote bool
	logger    *slog.Logger
}

func (a *App) open(ctx context.Context) (*workspace, error) {
	return a.openWith(ctx, a.cliLogger())
}

func (a *App) openWith(ctx context.Context, logger *slog.Logger) (*workspace, error) {
	cfg := a.config
	cache, err := db.Open(ctx, db.Options{
		Backend:     cfg.Storage.CacheBackend,
		Path:        cfg.Storage.DBPath,
		RedisAddr:   cfg.Storage.RedisAddr,
		RedisPrefix: fmt.Sprintf("timetabler:%d:", cfg.Timetable.UserID),
	})
	if err != nil {
		return nil, fmt.Errorf("opening local cache: %w", err)
	}

	opts := session.Options{
		Name:        cfg.Timetable.Name,
		Description: cfg.Timetable.Description,
		Cache:       cache,
		CacheKey:    cfg.Storage.CacheKey,
		Logger:      logger,
	}
	if cfg.HasSubject() {
		opts.Subject = &lesson.Subject{
			ID:    cfg.Subject.ID,
			Name:  cfg.Subject.Name,
			Code:  cfg.Subject.Code,
			Color: cfg.Subject.Color,
		}
	}
	if cfg.HasRemote() {
		client, err := remote.New(cfg.Remote.BaseURL, cfg.Timetable.UserID, remote.WithTimeout(cfg.Remote.Timeout.Std()))
		if err != nil {
			_ = cache.Close()
			return nil, err
		}
		opts.Remote = client
	}

	ws := &workspace{
		sess:      session.New(opts),
		cache:     cache,
		hasRemote: opts.Remote != nil,
		logger:    logger,
	}
	if err := ws.sess.RestoreLocal(ctx); err != nil && !errors.Is(err, persist.ErrCacheMiss) {
		logger.Warn("ignoring unreadable local snapshot", "error", err)
	}
	return ws, nil
}

// commit writes the local snapshot and, when a remote is configured, saves
// remotely. A remote failure is reported but is not an error: the snapshot
// already holds the work.
func (ws *workspace) commit(ctx context.Context, w io.Writer) error {
	if err := ws.sess.Checkpoint(ctx); err != nil {
		return fmt.Errorf("saving locally: %w", err)
	}
	if !ws.hasRemote {
		return nil
	}
	printResult(w, "save", ws.sess.SaveNow(ctx))
	return nil
}

func (ws *workspace) close() {
	ws.sess.Dispose()
	if err := ws.cache.Close(); err != nil {
		ws.logger.Warn("closing local cache", "error", err)
	}
}

func printResult(w io.Writer, op string, res persist.Result) {
	switch {
	case res.OK():
		msg := fmt.Sprintf("%s ok", op)
		if res.ID != "" {
			msg += " (id " + res.ID + ")"
		}
		_, _ = fmt.Fprintln(w, formatStats(msg))
	case res.Fallback:
		_, _ = fmt.Fprintf(w, "%s %s\n", formatWarning(op+" failed, kept offline copy:"), res.Err)
	default:
		_, _ = fmt.Fprintf(w, "%s %s\n", formatWarning(op+" failed:"), res.Err)
	}
}
