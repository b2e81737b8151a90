package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/avolkov/roomwire/internal/config"
	"github.com/avolkov/roomwire/internal/core"
	"github.com/avolkov/roomwire/internal/proto"
	"github.com/avolkov/roomwire/internal/transport/ws"
)

// App wires the transport, the session state machine, and the presentation
// sink, and drives the single event loop.
type App struct {
	cfg  config.Config
	log  *zerolog.Logger
	sink core.Sink
	cmds chan *core.Command
}

// New constructs the application with provided configuration.
func New(cfg config.Config, sink core.Sink, logger *zerolog.Logger) *App {
	return &App{
		cfg:  cfg,
		log:  logger,
		sink: sink,
		cmds: make(chan *core.Command, 8),
	}
}

// Commands is the channel the front end feeds user actions into.
func (a *App) Commands() chan<- *core.Command { return a.cmds }

// Run dials the server, introduces the session, and processes inbound
// frames and user commands to completion, one at a time, until the context
/// ends or the connection drops. There is no reconnect: a dropped channel
// ends the run.
func (a *App) Run(ctx context.Context) error {
	logger := a.log.With().Str("session_id", uuid.NewString()).Logger()

	conn, err := ws.Dial(ctx, a.cfg.ServerURL, a.cfg.DialTimeout, &logger)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	sess := core.NewSession(a.cfg.Username, a.cfg.Avatar, conn, a.sink, &logger)
	if err := sess.Connect(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			sess.HandleDisconnect(ctx.Err())
			return nil
		case raw, ok := <-conn.Frames():
			if !ok {
				err := conn.Err()
				sess.HandleDisconnect(err)
				if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
					return fmt.Errorf("connection lost: %w", err)
				}
				return nil
			}
			frame, err := proto.DecodeServer(raw)
			if err != nil {
				// Malformed payloads never crash the dispatcher.
				logger.Warn().Err(err).Msg("drop malformed frame")
				continue
			}
			sess.HandleFrame(frame)
			if !sess.Connected() {
				// A fatal server error closed the channel.
				return nil
			}
		case cmd := <-a.cmds:
			if err := sess.Apply(ctx, cmd); err != nil {
				logger.Debug().Err(err).Msg("command rejected")
			}
		}
	}
}
