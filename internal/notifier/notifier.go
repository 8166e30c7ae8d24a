// Package notifier is the relay core: it couples the HTTP listener
// lifecycle, the notification surface and the optional sound trigger.
package notifier

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/notifytray/notifytray/internal/api"
	"github.com/notifytray/notifytray/internal/config"
	"github.com/notifytray/notifytray/internal/logging"
	"github.com/notifytray/notifytray/internal/sound"
	"github.com/notifytray/notifytray/internal/surface"
)

// stopGrace bounds how long Stop waits for in-flight requests.
const stopGrace = time.Second

// BindError reports that the configured port could not be bound.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string { return "bind " + e.Addr + ": " + e.Err.Error() }
func (e *BindError) Unwrap() error { return e.Err }

// Notifier is one relay instance. Configuration is immutable for its
// lifetime; a different port or icon means a new instance.
type Notifier struct {
	cfg     *config.Config
	surface *surface.Surface
	trigger sound.Trigger
	hub     *api.WSHub

	out io.Writer        // notification log line sink, stdout in production
	now func() time.Time // clock, injectable for tests

	mu  sync.Mutex // guards the lifecycle transition below
	srv *http.Server
	ln  net.Listener
}

// New assembles a notifier. The surface must already hold the default
// icon; callers validate configuration (tray support, default icon)
// before construction.
func New(cfg *config.Config, surf *surface.Surface, trigger sound.Trigger) *Notifier {
	n := &Notifier{
		cfg:     cfg,
		surface: surf,
		trigger: trigger,
		hub:     api.NewWSHub(),
		out:     os.Stdout,
		now:     time.Now,
	}
	go n.hub.Run()
	return n
}

// Start binds the listener and attaches the tray icon as one
// transition. A running notifier is stopped first, so Start doubles as
// a rebind. On bind failure the notifier stays stopped.
func (n *Notifier) Start() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.srv != nil {
		n.stopLocked()
	}

	ln, err := net.Listen("tcp", n.cfg.Address())
	if err != nil {
		return &BindError{Addr: n.cfg.Address(), Err: err}
	}

	srv := &http.Server{Handler: n.Handler()}
	n.ln = ln
	n.srv = srv

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Errorf(logging.CatHTTP, "serve: %v", err)
		}
	}()

	if err := n.surface.Attach(); err != nil {
		// The listener keeps serving; notifications degrade to log
		// lines until the tray recovers on the next Start.
		logging.Warnf(logging.CatTray, "tray attach failed: %v", err)
	}

	logging.Infof(logging.CatSystem, "listening on %s", ln.Addr())
	return nil
}

// Stop closes the listener, waits up to stopGrace for in-flight
// requests and detaches the tray icon. Calling Stop on a stopped
// notifier is a no-op.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
}

func (n *Notifier) stopLocked() {
	if n.srv == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopGrace)
	defer cancel()
	if err := n.srv.Shutdown(ctx); err != nil {
		n.srv.Close()
	}

	n.srv = nil
	n.ln = nil
	n.surface.Detach()
	logging.Info(logging.CatSystem, "stopped", nil)
}

// Running reports whether the listener is bound and serving.
func (n *Notifier) Running() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.srv != nil
}

// Addr returns the bound listener address, or "" when stopped. With
// port 0 in the configuration this is where the kernel-picked port
// shows up.
func (n *Notifier) Addr() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.ln == nil {
		return ""
	}
	return n.ln.Addr().String()
}
