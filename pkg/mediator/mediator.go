// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mediator serves a single game to two players which talk to it
// over channels, answering each player's requests on their own turn.
package mediator

import (
	"context"
	"sync"
	"time"

	"github.com/notnil/chess"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/recon/pkg/game"
)

// DefaultPollInterval is how often idle loops look at the game again.
const DefaultPollInterval = 50 * time.Millisecond

// Duplex is the pair of channels between a player and the mediator.
type Duplex struct {
	ToMediator chan Request
	ToPlayer   chan Response

	once sync.Once
}

func NewDuplex() *Duplex {
	return &Duplex{
		ToMediator: make(chan Request, 1),
		ToPlayer:   make(chan Response, 1),
	}
}

// Close closes the player's side of the duplex. The player must not send
// any more requests after closing it. Closing more than once is allowed.
func (duplex *Duplex) Close() {
	duplex.once.Do(func() {
		close(duplex.ToMediator)
	})
}

// Option configures a Mediator.
type Option func(*Mediator)

// WithPollInterval sets how often an idle mediator checks the game.
func WithPollInterval(interval time.Duration) Option {
	return func(m *Mediator) {
		m.poll = interval
	}
}

// Mediator owns a game and answers the requests of both of its players.
// Nothing but the mediator's goroutine touches the game while it runs.
type Mediator struct {
	game     *game.LocalGame
	duplexes map[chess.Color]*Duplex
	ready    map[chess.Color]bool

	poll time.Duration
	done chan struct{}
}

// New creates a mediator for the given game, which must not be started.
// The game is started once both players have sent a ready request.
func New(g *game.LocalGame, options ...Option) *Mediator {
	m := &Mediator{
		game: g,
		duplexes: map[chess.Color]*Duplex{
			chess.White: NewDuplex(),
			chess.Black: NewDuplex(),
		},
		ready: make(map[chess.Color]bool),

		poll: DefaultPollInterval,
		done: make(chan struct{}),
	}

	for _, option := range options {
		option(m)
	}

	return m
}

// Duplex returns the channels of the given color's player.
func (m *Mediator) Duplex(color chess.Color) *Duplex {
	return m.duplexes[color]
}

// Peer returns a Game for the player of the given color.
func (m *Mediator) Peer(color chess.Color) *Peer {
	return NewPeer(NewChannelTransport(m.duplexes[color], m.done), m.poll)
}

// Done is closed when Run returns.
func (m *Mediator) Done() <-chan struct{} {
	return m.done
}

// Run serves requests until the game is over and both players have closed
// their duplexes, or until the context is cancelled.
func (m *Mediator) Run(ctx context.Context) error {
	defer close(m.done)

	inboxes := map[chess.Color]<-chan Request{
		chess.White: m.duplexes[chess.White].ToMediator,
		chess.Black: m.duplexes[chess.Black].ToMediator,
	}

	ticker := time.NewTicker(m.poll)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		over, _ := m.game.IsOver()
		if over && inboxes[chess.White] == nil && inboxes[chess.Black] == nil {
			logrus.Debug("mediator: both players left, shutting down")
			return nil
		}

		// serve at most one pending request per color without blocking
		served := false
		for _, color := range [2]chess.Color{chess.White, chess.Black} {
			if inboxes[color] == nil {
				continue
			}

			select {
			case request, ok := <-inboxes[color]:
				if !ok {
					inboxes[color] = nil
					break
				}

				m.serve(ctx, color, request)
				served = true
			default:
			}
		}

		if served {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case request, ok := <-inboxes[chess.White]:
			m.receive(ctx, inboxes, chess.White, request, ok)
		case request, ok := <-inboxes[chess.Black]:
			m.receive(ctx, inboxes, chess.Black, request, ok)
		case <-ticker.C:
		}
	}
}

func (m *Mediator) receive(ctx context.Context, inboxes map[chess.Color]<-chan Request, color chess.Color, request Request, ok bool) {
	if !ok {
		inboxes[color] = nil
		return
	}

	m.serve(ctx, color, request)
}

func (m *Mediator) serve(ctx context.Context, color chess.Color, request Request) {
	if request.Command == Ready && !m.ready[color] {
		m.ready[color] = true
		if m.ready[chess.White] && m.ready[chess.Black] {
			_ = m.game.Start()
		}
	}

	response := Dispatch(m.game, color, request)
	if response.Error != "" {
		logrus.WithFields(logrus.Fields{
			"color":   color,
			"command": request.Command,
			"error":   response.Error,
		}).Debug("request failed")
	}

	select {
	case m.duplexes[color].ToPlayer <- response:
	case <-ctx.Done():
	}
}
