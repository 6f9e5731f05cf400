package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gabrielmiguelok/validatewhatsapp/internal/logging"
)

// Manager drives a Transport through the session state machine. It reacts
// to connection events, schedules exactly one reconnect attempt per
// transient drop, and exposes one-shot readiness and death signals.
type Manager struct {
	name           string
	transport      Transport
	logger         *slog.Logger
	reconnectDelay time.Duration
	stateHook      func(State)

	mu    sync.Mutex
	state State
	timer *time.Timer

	readyOnce sync.Once
	ready     chan struct{}
	deadOnce  sync.Once
	dead      chan struct{}
	codes     chan string

	loopOnce sync.Once
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithReconnectDelay overrides the pause before a transient reconnect.
func WithReconnectDelay(d time.Duration) Option {
	return func(m *Manager) {
		m.reconnectDelay = d
	}
}

// WithStateHook registers a callback invoked on every state transition.
// Used for metrics; must not block.
func WithStateHook(hook func(State)) Option {
	return func(m *Manager) {
		m.stateHook = hook
	}
}

// NewManager creates a Manager for the named session over the given
// transport. The transport is exclusively owned by the Manager from here on.
func NewManager(name string, transport Transport, opts ...Option) *Manager {
	m := &Manager{
		name:           name,
		transport:      transport,
		logger:         logging.NewNop(),
		reconnectDelay: 5 * time.Second,
		state:          StateConnecting,
		ready:          make(chan struct{}),
		dead:           make(chan struct{}),
		codes:          make(chan string, 8),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize starts the event loop and opens the connection. It is
// idempotent: reconnect attempts re-enter the connect path, not this
// method. Only the initial connection attempt can return an error; every
// failure after that is handled through the state machine.
func (m *Manager) Initialize(ctx context.Context) error {
	m.loopOnce.Do(func() {
		go m.loop(ctx)
	})

	m.setState(StateConnecting)
	if err := m.transport.Connect(ctx); err != nil {
		return fmt.Errorf("failed to open connection for session %q: %w", m.name, err)
	}
	return nil
}

// loop consumes transport events until the channel closes or ctx ends.
// It never propagates errors; failures become state transitions.
func (m *Manager) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-m.transport.Events():
			if !ok {
				return
			}
			m.handle(ctx, ev)
		}
	}
}

func (m *Manager) handle(ctx context.Context, ev Event) {
	switch ev.Kind {
	case EventConnected:
		m.setState(StateOpen)
		m.logger.Info("session open", "session", m.name)
		m.readyOnce.Do(func() { close(m.ready) })

	case EventPairingCode:
		select {
		case m.codes <- ev.Code:
		default:
			// Presenter fell behind; drop the stale token. The transport
			// will emit a fresh one before it expires.
			m.logger.Warn("pairing code dropped", "session", m.name)
		}

	case EventLoggedOut:
		m.logger.Warn("session logged out, discard credentials and re-pair", "session", m.name)
		m.setState(StateClosedTerminal)
		m.cancelReconnect()
		m.deadOnce.Do(func() { close(m.dead) })

	case EventDisconnected:
		if m.State() == StateClosedTerminal {
			return
		}
		m.logger.Warn("connection closed", "session", m.name, "err", ev.Cause)
		m.setState(StateClosedTransient)
		m.scheduleReconnect(ctx)
	}
}

// scheduleReconnect arms a single reconnect timer. A pending timer is left
// alone so each drop produces at most one attempt.
func (m *Manager) scheduleReconnect(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateClosedTerminal || m.timer != nil {
		return
	}

	m.logger.Info("reconnect scheduled", "session", m.name, "delay", m.reconnectDelay)
	m.timer = time.AfterFunc(m.reconnectDelay, func() {
		m.mu.Lock()
		m.timer = nil
		terminal := m.state == StateClosedTerminal
		m.mu.Unlock()

		if terminal || ctx.Err() != nil {
			return
		}

		m.setState(StateConnecting)
		if err := m.transport.Connect(ctx); err != nil {
			m.logger.Warn("reconnect attempt failed", "session", m.name, "err", err)
			m.setState(StateClosedTransient)
			m.scheduleReconnect(ctx)
		}
	})
}

func (m *Manager) cancelReconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	hook := m.stateHook
	m.mu.Unlock()
	if hook != nil {
		hook(s)
	}
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsReady reports whether the connection is open right now.
func (m *Manager) IsReady() bool {
	return m.State() == StateOpen
}

// Ready returns a channel closed the first time the session reaches the
// open state. Later drops do not reopen it; use IsReady for point-in-time
// checks.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// Dead returns a channel closed when the session hits the terminal
// logged-out state.
func (m *Manager) Dead() <-chan struct{} {
	return m.dead
}

// PairingCodes returns the side channel of pairing tokens to present to the
// user. It may deliver multiple tokens before readiness.
func (m *Manager) PairingCodes() <-chan string {
	return m.codes
}

// AwaitReady blocks until the session first becomes ready, dies, or ctx
// ends.
func (m *Manager) AwaitReady(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-m.dead:
		return ErrLoggedOut
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels any pending reconnect and tears the connection down. The
// credential area is left intact so the session can resume later.
func (m *Manager) Close() {
	m.cancelReconnect()
	m.transport.Disconnect()
}
