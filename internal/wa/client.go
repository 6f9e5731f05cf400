// Package wa adapts the whatsmeow client to the session.Transport and
// session.Directory ports. It is the only package that talks to the wire
// library; everything above it sees channels and interfaces.
package wa

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types/events"

	"github.com/gabrielmiguelok/validatewhatsapp/internal/session"
)

// Client wraps one whatsmeow client plus its credential container.
type Client struct {
	wm        *whatsmeow.Client
	container *sqlstore.Container
	events    chan session.Event
	logger    *slog.Logger
}

// Open loads (or creates) the credential database for sessionName under
// storeDir and builds a disconnected client around it. whatsmeow persists
// credential updates into the container itself, so a later restart resumes
// without re-pairing.
func Open(ctx context.Context, sessionName, storeDir string, logger *slog.Logger) (*Client, error) {
	if err := EnsureStoreDir(storeDir); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(storeDir, sessionName+".db")
	container, err := sqlstore.New(ctx, "sqlite3", "file:"+dbPath+"?_foreign_keys=on", newWALogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load device credentials: %w", err)
	}

	wm := whatsmeow.NewClient(device, newWALogger(logger))
	// Reconnection policy lives in the session manager.
	wm.EnableAutoReconnect = false

	c := &Client{
		wm:        wm,
		container: container,
		events:    make(chan session.Event, 16),
		logger:    logger,
	}
	wm.AddEventHandler(c.handleEvent)

	return c, nil
}

// Connect opens the connection. For an unpaired session it first arms the
// QR channel so pairing tokens reach the side channel before readiness.
func (c *Client) Connect(ctx context.Context) error {
	if c.wm.Store.ID == nil {
		qr, err := c.wm.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("failed to request pairing channel: %w", err)
		}
		go c.forwardPairing(qr)
	}

	if err := c.wm.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	return nil
}

// Disconnect tears the socket down without logging out, keeping the
// credential area resumable.
func (c *Client) Disconnect() {
	c.wm.Disconnect()
}

// Events implements session.Transport.
func (c *Client) Events() <-chan session.Event {
	return c.events
}

// Close disconnects and releases the credential container.
func (c *Client) Close() error {
	c.wm.Disconnect()
	return c.container.Close()
}

// IsRegistered implements session.Directory by querying the network
// directory for the canonical address.
func (c *Client) IsRegistered(ctx context.Context, address string) (bool, error) {
	resp, err := c.wm.IsOnWhatsApp(ctx, []string{"+" + address})
	if err != nil {
		return false, fmt.Errorf("directory query failed: %w", err)
	}

	for _, entry := range resp {
		if entry.IsIn {
			return true, nil
		}
	}
	return false, nil
}

// handleEvent translates whatsmeow events into session events. Runs on the
// library's dispatch goroutine, so sends never block: a full channel drops
// the event rather than stalling the socket reader.
func (c *Client) handleEvent(evt any) {
	switch v := evt.(type) {
	case *events.Connected:
		c.emit(session.Event{Kind: session.EventConnected})
	case *events.LoggedOut:
		c.logger.Warn("logged out by server", "reason", v.Reason)
		c.emit(session.Event{Kind: session.EventLoggedOut})
	case *events.StreamReplaced:
		c.emit(session.Event{Kind: session.EventDisconnected, Cause: fmt.Errorf("stream replaced by another client")})
	case *events.Disconnected:
		c.emit(session.Event{Kind: session.EventDisconnected})
	case *events.PairSuccess:
		c.logger.Info("pairing accepted", "device", v.ID)
	}
}

func (c *Client) forwardPairing(qr <-chan whatsmeow.QRChannelItem) {
	for item := range qr {
		switch item.Event {
		case whatsmeow.QRChannelEventCode:
			c.emit(session.Event{Kind: session.EventPairingCode, Code: item.Code})
		case whatsmeow.QRChannelEventError:
			c.logger.Warn("pairing channel error", "err", item.Error)
		}
	}
}

func (c *Client) emit(ev session.Event) {
	select {
	case c.events <- ev:
	default:
		c.logger.Warn("event channel full, dropping event")
	}
}
