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

package play

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/recon/pkg/game"
	"laptudirm.com/x/recon/pkg/mediator"
	"laptudirm.com/x/recon/pkg/rbc"
)

// PlayMediatedGame plays the given unstarted game between two agents, each
// in its own goroutine, talking to a mediator which owns the game.
func PlayMediatedGame(ctx context.Context, g *game.LocalGame, white, black Agent, options ...mediator.Option) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := mediator.New(g, options...)

	runErr := make(chan error, 1)
	go func() {
		runErr <- m.Run(ctx)
	}()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs *multierror.Error
	)

	agents := map[chess.Color]Agent{
		chess.White: white,
		chess.Black: black,
	}

	for color, agent := range agents {
		wg.Add(1)
		go func(color chess.Color, agent Agent) {
			defer wg.Done()

			peer := m.Peer(color)
			defer peer.Close()

			if _, err := PlayRemoteGame(peer, agent); err != nil {
				mu.Lock()
				errs = multierror.Append(errs, errors.Wrap(err, rbc.ColorName(color)))
				mu.Unlock()

				// stop the other player from waiting for its turn
				cancel()
			}
		}(color, agent)
	}

	wg.Wait()

	if err := <-runErr; err != nil && errs.ErrorOrNil() == nil {
		errs = multierror.Append(errs, errors.Wrap(err, "mediator"))
	}

	if err := errs.ErrorOrNil(); err != nil {
		logrus.WithError(err).Error("mediated game failed")
		return Result{}, err
	}

	// the mediator has returned, so the game is ours again
	result, err := resultOf(g)
	if err != nil {
		return Result{}, err
	}

	logrus.WithFields(logrus.Fields{
		"white":  g.PlayerName(chess.White),
		"black":  g.PlayerName(chess.Black),
		"result": result,
		"reason": result.Reason,
	}).Info("mediated game finished")
	return result, nil
}
