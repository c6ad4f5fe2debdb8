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

// Package remote serves games to players over websockets, and connects
// players to such a server.
package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/notnil/chess"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/recon/pkg/game"
	"laptudirm.com/x/recon/pkg/mediator"
	"laptudirm.com/x/recon/pkg/play"
	"laptudirm.com/x/recon/pkg/rbc"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// GameInfo describes a game hosted by a server.
type GameInfo struct {
	ID    string `json:"id"`
	White string `json:"white"`
	Black string `json:"black"`
	TC    string `json:"tc"`

	Created time.Time `json:"created"`

	Connected []string `json:"connected"` // colors with a player
	Finished  bool     `json:"finished"`
	Result    string   `json:"result,omitempty"`
	Reason    string   `json:"reason,omitempty"`
}

// ServerConfig configures a Server.
type ServerConfig struct {
	// PollInterval is the poll interval of the game mediators.
	PollInterval time.Duration

	// HistoryDir, if set, is where the histories of finished games are
	// written to, as <id>.yaml.
	HistoryDir string
}

// Server hosts games, each behind its own mediator. A player plays a
// game by connecting a websocket for its color and sending it requests.
type Server struct {
	ctx    context.Context
	config ServerConfig

	sessions map[string]*session
	mu       sync.RWMutex
}

type session struct {
	info     GameInfo
	mediator *mediator.Mediator
	mu       sync.Mutex
}

// NewServer creates a server whose games are stopped when ctx is done.
func NewServer(ctx context.Context, config ServerConfig) *Server {
	if config.PollInterval <= 0 {
		config.PollInterval = mediator.DefaultPollInterval
	}

	return &Server{
		ctx:      ctx,
		config:   config,
		sessions: make(map[string]*session),
	}
}

// Handler returns the HTTP handler of the server's api.
func (server *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/games", server.createGame)
	mux.HandleFunc("GET /api/games", server.listGames)
	mux.HandleFunc("GET /api/games/{id}/{color}", server.connect)
	return mux
}

// CreateGame creates a new game and starts its mediator. The game starts
// when both players have connected and declared themselves ready.
func (server *Server) CreateGame(config game.Config) (GameInfo, error) {
	if config.TimeControl == "" {
		config.TimeControl = game.DefaultTimeControl
	}

	g, err := game.NewLocalGame(config)
	if err != nil {
		return GameInfo{}, err
	}

	s := &session{
		info: GameInfo{
			ID:        uuid.NewString(),
			White:     config.WhiteName,
			Black:     config.BlackName,
			TC:        config.TimeControl,
			Created:   time.Now(),
			Connected: []string{},
		},
		mediator: mediator.New(g, mediator.WithPollInterval(server.config.PollInterval)),
	}

	server.mu.Lock()
	server.sessions[s.info.ID] = s
	server.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"id":    s.info.ID,
		"white": config.WhiteName,
		"black": config.BlackName,
		"tc":    config.TimeControl,
	}).Info("game created")

	go server.run(s, g)
	return s.snapshot(), nil
}

// Games lists the games of the server, oldest first.
func (server *Server) Games() []GameInfo {
	server.mu.RLock()
	defer server.mu.RUnlock()

	games := make([]GameInfo, 0, len(server.sessions))
	for _, s := range server.sessions {
		games = append(games, s.snapshot())
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].Created.Before(games[j].Created)
	})
	return games
}

func (server *Server) run(s *session, g *game.LocalGame) {
	log := logrus.WithField("id", s.info.ID)

	if err := s.mediator.Run(server.ctx); err != nil {
		log.WithError(err).Error("game stopped")
		return
	}

	// the mediator has returned, so the game can be read
	winner, _ := g.WinnerColor()
	reason, _ := g.WinReason()

	s.mu.Lock()
	s.info.Finished = true
	s.info.Result = play.Result{Winner: winner}.String()
	s.info.Reason = reason.String()
	s.mu.Unlock()

	log.WithFields(logrus.Fields{
		"result": s.info.Result,
		"reason": s.info.Reason,
	}).Info("game finished")

	if server.config.HistoryDir == "" {
		return
	}

	history, err := g.GameHistory()
	if err != nil {
		log.WithError(err).Error("game history")
		return
	}

	name := filepath.Join(server.config.HistoryDir, s.info.ID+".yaml")
	if err := history.SaveFile(name); err != nil {
		log.WithError(err).Error("saving game history")
	}
}

func (server *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var config game.Config
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		http.Error(w, "invalid game config: "+err.Error(), http.StatusBadRequest)
		return
	}

	info, err := server.CreateGame(config)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, info)
}

func (server *Server) listGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, server.Games())
}

func (server *Server) connect(w http.ResponseWriter, r *http.Request) {
	server.mu.RLock()
	s, found := server.sessions[r.PathValue("id")]
	server.mu.RUnlock()

	if !found {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	color, err := rbc.ParseColor(r.PathValue("color"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !s.claim(color) {
		http.Error(w, rbc.ColorName(color)+" is already connected", http.StatusConflict)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log := logrus.WithFields(logrus.Fields{
		"id":    s.info.ID,
		"color": rbc.ColorName(color),
	})
	log.Info("player connected")

	// a color's duplex is closed for good when its player leaves
	transport := mediator.NewChannelTransport(s.mediator.Duplex(color), s.mediator.Done())
	defer transport.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Error("player connection lost")
			}
			break
		}

		var request mediator.Request
		if err := json.Unmarshal(data, &request); err != nil {
			if err := conn.WriteJSON(mediator.Response{Error: "invalid request: " + err.Error()}); err != nil {
				break
			}
			continue
		}

		response, err := transport.RoundTrip(request)
		if err != nil {
			response = mediator.Response{Command: request.Command, Error: err.Error()}
		}

		if err := conn.WriteJSON(response); err != nil {
			log.WithError(err).Error("writing response")
			break
		}
	}

	log.Info("player disconnected")
}

// claim marks the color as connected, unless it already is.
func (s *session) claim(color chess.Color) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := rbc.ColorName(color)
	for _, connected := range s.info.Connected {
		if connected == name {
			return false
		}
	}

	s.info.Connected = append(s.info.Connected, name)
	return true
}

func (s *session) snapshot() GameInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := s.info
	info.Connected = append([]string{}, s.info.Connected...)
	return info
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("writing response")
	}
}
