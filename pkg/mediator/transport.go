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

package mediator

import (
	"errors"
	"sync"
)

var ErrClosed = errors.New("mediator: closed")

// Transport carries a player's requests to a mediator, one at a time.
type Transport interface {
	RoundTrip(request Request) (Response, error)
	Close() error
}

// ChannelTransport is a Transport over the duplex of an in-process
// mediator.
type ChannelTransport struct {
	duplex *Duplex
	done   <-chan struct{}

	closed chan struct{}
	once   sync.Once
}

// NewChannelTransport creates a transport over the given duplex. The done
// channel is closed when the mediator stops answering.
func NewChannelTransport(duplex *Duplex, done <-chan struct{}) *ChannelTransport {
	return &ChannelTransport{
		duplex: duplex,
		done:   done,
		closed: make(chan struct{}),
	}
}

var _ Transport = (*ChannelTransport)(nil)

func (transport *ChannelTransport) RoundTrip(request Request) (Response, error) {
	// the duplex can not be written to once closed
	select {
	case <-transport.closed:
		return Response{}, ErrClosed
	default:
	}

	select {
	case transport.duplex.ToMediator <- request:
	case <-transport.done:
		return Response{}, ErrClosed
	}

	select {
	case response := <-transport.duplex.ToPlayer:
		return response, nil
	case <-transport.done:
		return Response{}, ErrClosed
	}
}

// Close tells the mediator that no more requests will be made. Later
// round trips fail with ErrClosed.
func (transport *ChannelTransport) Close() error {
	transport.once.Do(func() {
		close(transport.closed)
		transport.duplex.Close()
	})
	return nil
}
