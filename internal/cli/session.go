package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/recipebox/internal/app"
	"github.com/mesh-intelligence/recipebox/internal/logging"
	"github.com/mesh-intelligence/recipebox/internal/paths"
	"github.com/mesh-intelligence/recipebox/internal/remote"
	"github.com/mesh-intelligence/recipebox/internal/sqlite"
	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// session is one CLI invocation: the loaded configuration, the attached
// store and an App initialized from the backend.
type session struct {
	settings *settings
	log      *zap.Logger
	store    *sqlite.Backend
	sync     *remote.SyncClient
	app      *app.App
}

// printer reports the events a command does not print itself.
type printer struct {
	app.BaseListener
	w io.Writer
}

func (p *printer) Notice(msg string) {
	fmt.Fprintln(p.w, msg)
}

// withSession opens a session, runs fn and closes the session. The session
// is saved even when fn fails, since earlier mutations stand.
func withSession(cmd *cobra.Command, fn func(s *session) error) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	runErr := fn(s)
	return errors.Join(runErr, s.close())
}

func openSession(cmd *cobra.Command) (*session, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}
	st, err := decodeSettings(v, flags.dataDir)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		st.LogLevel = flags.logLevel
	}
	if err := st.Config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", paths.ConfigFile(configDir), err)
	}

	store := sqlite.NewBackend()
	if err := store.Attach(st.Config); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}
	log, err := logging.New(st.LogLevel, st.LogFile)
	if err != nil {
		store.Detach()
		return nil, err
	}

	transport := remote.NewHTTPTransport(st.Config.BackendURL, st.Config.Timeout(), store)
	s := &session{
		settings: st,
		log:      log,
		store:    store,
		sync:     remote.NewSyncClient(transport, log),
	}
	s.app = app.New(st.Config,
		remote.NewClient(transport, store, log),
		s.sync,
		app.WithLogger(log),
		app.WithListener(&printer{w: cmd.ErrOrStderr()}),
	)

	if err := s.app.Init(cmd.Context()); err != nil {
		s.release()
		return nil, err
	}

	var saved app.Session
	switch err := store.LoadJSON(sqlite.KeySession, &saved); {
	case err == nil:
		s.app.Restore(saved)
	case !errors.Is(err, types.ErrNotFound):
		log.Warn("load session", zap.Error(err))
	}
	return s, nil
}

// close saves the session, waits for pending pushes and releases the store.
func (s *session) close() error {
	err := s.store.SaveJSON(sqlite.KeySession, s.app.Snapshot())
	if err != nil {
		err = fmt.Errorf("save session: %w", err)
	}
	return errors.Join(err, s.release())
}

func (s *session) release() error {
	s.sync.Wait()
	_ = s.log.Sync()
	return s.store.Detach()
}
