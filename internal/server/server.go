// Package server exposes Wizard game sessions over HTTP and WebSocket. Each
// session wraps one engine environment: the client is the agent seat, the
// server advances the other seats through the engine's opponent policy.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	engine "github.com/jeriks31/wizard-online/engine"
)

// Server routes HTTP traffic to the session manager.
type Server struct {
	manager *Manager
	log     *logrus.Logger
	cfg     Config
}

// NewServer wires the manager into a Server.
func NewServer(cfg Config, log *logrus.Logger, manager *Manager) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{manager: manager, log: log, cfg: cfg}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleView)
			r.Post("/step", s.handleStep)
			r.Delete("/", s.handleDelete)
			r.Get("/ws", s.handleSocket)
		})
	})
	return r
}

// ---------------------------------------------------------------------------
// JSON shapes
// ---------------------------------------------------------------------------

type createRequest struct {
	Seed       uint64 `json:"seed"`
	NumPlayers uint8  `json:"num_players"`
	Shaping    *bool  `json:"shaping"` // default true
}

type actionRequest struct {
	Action int `json:"action"`
}

type obsJSON struct {
	Hand               []int `json:"hand"`
	TrumpCard          []int `json:"trump_card"`
	CardsPlayedInTrick []int `json:"cards_played_in_trick"`
	CardsPlayedInRound []int `json:"cards_played_in_round"`
	PlayerBids         []int `json:"player_bids"`
	PlayerTricks       []int `json:"player_tricks"`
	PlayerScores       []int `json:"player_scores"`
	RoundNumber        int   `json:"round_number"`
	Phase              int   `json:"phase"`
	LeadSuit           int   `json:"lead_suit"`
	PositionInTrick    int   `json:"position_in_trick"`
	ValidActions       []int `json:"valid_actions"`
}

type stepResponse struct {
	GameID      uuid.UUID      `json:"game_id"`
	Observation obsJSON        `json:"observation"`
	Reward      float32        `json:"reward"`
	Done        bool           `json:"done"`
	Info        map[string]any `json:"info"`
}

type viewResponse struct {
	GameID      uuid.UUID `json:"game_id"`
	Observation obsJSON   `json:"observation"`
	Done        bool      `json:"done"`
	Render      string    `json:"render"`
}

func boolVec(v []bool) []int {
	out := make([]int, len(v))
	for i, b := range v {
		if b {
			out[i] = 1
		}
	}
	return out
}

// toObsJSON converts an engine observation to the wire form, trimming the
// per-seat vectors to the table size.
func toObsJSON(obs *engine.Observation) obsJSON {
	n := int(obs.NumPlayers)
	bids := make([]int, n)
	tricks := make([]int, n)
	scores := make([]int, n)
	for p := 0; p < n; p++ {
		bids[p] = int(obs.PlayerBids[p])
		tricks[p] = int(obs.PlayerTricks[p])
		scores[p] = int(obs.PlayerScores[p])
	}
	return obsJSON{
		Hand:               boolVec(obs.Hand[:]),
		TrumpCard:          boolVec(obs.TrumpCard[:]),
		CardsPlayedInTrick: boolVec(obs.CardsPlayedInTrick[:]),
		CardsPlayedInRound: boolVec(obs.CardsPlayedInRound[:]),
		PlayerBids:         bids,
		PlayerTricks:       tricks,
		PlayerScores:       scores,
		RoundNumber:        int(obs.RoundNumber),
		Phase:              int(obs.Phase),
		LeadSuit:           int(obs.LeadSuit),
		PositionInTrick:    int(obs.PositionInTrick),
		ValidActions:       boolVec(obs.ValidActions[:]),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusForEngineError maps the engine failure taxonomy to HTTP codes.
func statusForEngineError(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidBid),
		errors.Is(err, engine.ErrInvalidPlay):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrInvalidPhase):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	shaping := true
	if req.Shaping != nil {
		shaping = *req.Shaping
	}
	session, obs, err := s.manager.CreateGame(req.Seed, req.NumPlayers, shaping)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, stepResponse{
		GameID:      session.ID,
		Observation: toObsJSON(&obs),
		Info:        map[string]any{},
	})
}

func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	session := s.manager.Get(id)
	if session == nil {
		writeError(w, http.StatusNotFound, errors.New("game not found"))
		return
	}
	obs, done, render := session.View()
	writeJSON(w, http.StatusOK, viewResponse{
		GameID:      session.ID,
		Observation: toObsJSON(&obs),
		Done:        done,
		Render:      render,
	})
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Action < 0 || req.Action >= engine.NumActions {
		writeError(w, http.StatusUnprocessableEntity, errors.New("action outside action space"))
		return
	}
	if s.manager.Get(id) == nil {
		writeError(w, http.StatusNotFound, errors.New("game not found"))
		return
	}
	out, err := s.manager.Step(id, uint8(req.Action))
	if err != nil {
		writeError(w, statusForEngineError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, stepResponse{
		GameID:      id,
		Observation: toObsJSON(&out.Obs),
		Reward:      out.Reward,
		Done:        out.Done,
		Info:        map[string]any{},
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	if !s.manager.Delete(id) {
		writeError(w, http.StatusNotFound, errors.New("game not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
