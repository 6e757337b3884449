package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/aetheria/internal/catalog"
	"github.com/vovakirdan/aetheria/internal/config"
	"github.com/vovakirdan/aetheria/internal/core"
	"github.com/vovakirdan/aetheria/internal/prefs"
	"github.com/vovakirdan/aetheria/internal/session"
	"github.com/vovakirdan/aetheria/internal/storage"
)

// roomEventBuffer is the per-member roster event buffer.
const roomEventBuffer = 16

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.aetheria/host_key.
	HostKeyPath string

	// DBPath is the path to the preferences database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int

	Game    config.GameConfig
	Catalog *catalog.Catalog
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.aetheria/aetheria.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    core.DefaultConfig().TickRate,
		Game:        config.DefaultGameConfig(),
		Catalog:     catalog.Default(),
	}
}

// SSHServer serves the game over SSH. Every session joins one shared room.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	room   *session.MemoryRoom
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "aetheria-ssh",
	})
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open preferences database", "error", err)
		// Continue with per-session preferences
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		room:   session.NewMemoryRoom(roomEventBuffer),
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".aetheria", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middleware runs last-to-first: logging, then the room lease, then the app.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.roomMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

type leaseKey struct{}

// roomLease joins the shared room on behalf of one SSH session and leaves it
// when the session ends, even if the join finishes afterwards.
type roomLease struct {
	room *session.MemoryRoom

	mu       sync.Mutex
	member   *session.Member
	released bool
}

// Join implements session.Joiner.
func (l *roomLease) Join(ctx context.Context) (session.Channel, error) {
	m, err := l.room.JoinMember(ctx)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.released {
		m.Leave()
		return nil, errors.New("ssh session ended before join")
	}
	l.member = m
	return m, nil
}

func (l *roomLease) release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.released = true
	if l.member != nil {
		l.member.Leave()
	}
}

// roomMiddleware attaches a room lease to the session and releases it when
// the session ends.
func (s *SSHServer) roomMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		lease := &roomLease{room: s.room}
		sshSession.Context().SetValue(leaseKey{}, lease)
		defer lease.release()
		next(sshSession)
	}
}

// sessionPrefs loads the preferences of user, falling back to an in-memory
// store when the database is unavailable.
func (s *SSHServer) sessionPrefs(user string) *prefs.Store {
	var backend prefs.Backend = prefs.NewMemoryBackend()
	if s.store != nil {
		backend = prefs.NewSQLiteBackend(s.store, user)
	}
	store, err := prefs.Load(backend)
	if err != nil {
		s.logger.Warn("could not read preferences", "user", user, "error", err)
	}
	return store
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	var joiner session.Joiner
	if lease, ok := sshSession.Context().Value(leaseKey{}).(*roomLease); ok {
		joiner = lease
	}

	model := NewAppModel(AppOptions{
		Runtime: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: s.config.TickRate,
			Seed:     time.Now().UnixNano(),
		},
		Game:    s.config.Game,
		Catalog: s.config.Catalog,
		Prefs:   s.sessionPrefs(sshSession.User()),
		Joiner:  joiner,
		Logger:  s.logger.With("user", sshSession.User()),
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"players", s.room.Count(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "artifacts", s.config.Catalog.Len())

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.room.Close()
	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
