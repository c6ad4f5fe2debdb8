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

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/notnil/chess"
	"github.com/pkg/errors"

	"laptudirm.com/x/recon/pkg/game"
	"laptudirm.com/x/recon/pkg/mediator"
	"laptudirm.com/x/recon/pkg/rbc"
)

// Client talks to the api of a Server.
type Client struct {
	URL  string // like http://localhost:8080
	HTTP *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		URL:  strings.TrimSuffix(url, "/"),
		HTTP: http.DefaultClient,
	}
}

// CreateGame asks the server to host a new game.
func (client *Client) CreateGame(ctx context.Context, config game.Config) (GameInfo, error) {
	body, err := json.Marshal(config)
	if err != nil {
		return GameInfo{}, errors.Wrap(err, "create game")
	}

	var info GameInfo
	err = client.do(ctx, http.MethodPost, "/api/games", bytes.NewReader(body), http.StatusCreated, &info)
	return info, errors.Wrap(err, "create game")
}

// ListGames lists the games hosted by the server.
func (client *Client) ListGames(ctx context.Context) ([]GameInfo, error) {
	var games []GameInfo
	err := client.do(ctx, http.MethodGet, "/api/games", nil, http.StatusOK, &games)
	return games, errors.Wrap(err, "list games")
}

// Dial connects to the given game as the player of the given color.
func (client *Client) Dial(ctx context.Context, id string, color chess.Color, poll time.Duration) (*mediator.Peer, error) {
	url := "ws" + strings.TrimPrefix(client.URL, "http") + "/api/games/" + id + "/" + rbc.ColorName(color)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			message, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, errors.Errorf("dial %s: %s: %s", url, resp.Status, strings.TrimSpace(string(message)))
		}
		return nil, errors.Wrapf(err, "dial %s", url)
	}

	return mediator.NewPeer(&Transport{conn: conn}, poll), nil
}

func (client *Client) do(ctx context.Context, method, path string, body io.Reader, status int, v any) error {
	req, err := http.NewRequestWithContext(ctx, method, client.URL+path, body)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != status {
		message, _ := io.ReadAll(resp.Body)
		return errors.Errorf("%s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(message)))
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// Transport is a mediator.Transport over a websocket connection.
type Transport struct {
	conn *websocket.Conn
}

var _ mediator.Transport = (*Transport)(nil)

func (transport *Transport) RoundTrip(request mediator.Request) (mediator.Response, error) {
	if err := transport.conn.WriteJSON(request); err != nil {
		return mediator.Response{}, errors.Wrapf(err, "send %s", request.Command)
	}

	var response mediator.Response
	if err := transport.conn.ReadJSON(&response); err != nil {
		return mediator.Response{}, errors.Wrapf(err, "receive %s", request.Command)
	}

	return response, nil
}

// Close closes the connection, which tells the server the player has left.
func (transport *Transport) Close() error {
	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = transport.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(time.Second))
	return transport.conn.Close()
}
