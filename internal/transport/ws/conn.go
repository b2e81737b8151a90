package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
)

// Conn is one long-lived duplex channel to the chat server. A reader
// goroutine feeds raw frames into Frames; writes are serialized. Closing the
// connection is the only cancellation primitive the protocol has.
type Conn struct {
	conn   *websocket.Conn
	log    *zerolog.Logger
	frames chan json.RawMessage

	writeMu sync.Mutex

	mu      sync.Mutex
	readErr error
	closed  bool
}

// Dial opens the socket and starts the read loop. The handshake is bounded
// by handshakeTimeout when positive; ctx bounds the lifetime of the reader.
func Dial(ctx context.Context, url string, handshakeTimeout time.Duration, logger *zerolog.Logger) (*Conn, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	dialCtx := ctx
	if handshakeTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, handshakeTimeout)
		defer cancel()
	}

	sock, _, err := websocket.Dial(dialCtx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	c := &Conn{
		conn:   sock,
		log:    logger,
		frames: make(chan json.RawMessage, 32),
	}
	go c.readLoop(ctx)
	return c, nil
}

// Frames returns the inbound frame channel. It is closed when the read loop
// stops; Err reports why.
func (c *Conn) Frames() <-chan json.RawMessage { return c.frames }

// Send writes one JSON envelope to the server.
func (c *Conn) Send(ctx context.Context, v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := wsjson.Write(ctx, c.conn, v); err != nil {
		return fmt.Errorf("write envelope: %w", err)
	}
	return nil
}

// Close performs a normal-closure handshake. Safe to call more than once.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	return c.conn.Close(websocket.StatusNormalClosure, "bye")
}

// Err reports why the read loop stopped. io.EOF means a clean close from
// either end.
func (c *Conn) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readErr
}

func (c *Conn) readLoop(ctx context.Context) {
	defer close(c.frames)

	for {
		var raw json.RawMessage
		if err := wsjson.Read(ctx, c.conn, &raw); err != nil {
			err = classifyClose(err)
			c.setErr(err)
			if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
				c.log.Warn().Err(err).Msg("ws read loop stopped")
			}
			return
		}

		select {
		case c.frames <- raw:
		case <-ctx.Done():
			c.setErr(ctx.Err())
			return
		}
	}
}

func (c *Conn) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr == nil {
		c.readErr = err
	}
}

// classifyClose maps expected shutdown statuses to io.EOF so callers treat
// them quietly.
func classifyClose(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return io.EOF
	}
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	return err
}
