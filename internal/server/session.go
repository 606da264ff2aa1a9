package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	engine "github.com/jeriks31/wizard-online/engine"
)

// Session wraps one environment instance for one external client. All access
// goes through the session mutex; the engine itself is single-threaded.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu          sync.Mutex
	env         *engine.Env
	obs         engine.Observation
	done        bool
	steps       int
	agentReturn float32
}

// StepOutcome is the result of applying one action to a session.
type StepOutcome struct {
	Obs    engine.Observation
	Reward float32
	Done   bool
}

// Step applies an action under the session lock.
func (s *Session) Step(action uint8) (StepOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obs, reward, done, err := s.env.Step(action)
	if err != nil {
		return StepOutcome{}, err
	}
	s.obs = obs
	s.done = done
	s.steps++
	s.agentReturn += reward
	return StepOutcome{Obs: obs, Reward: reward, Done: done}, nil
}

// View returns the latest observation, the done flag, and the render text.
func (s *Session) View() (engine.Observation, bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.obs, s.done, s.env.Render()
}

// Manager owns all live sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	log   *logrus.Logger
	store *Store
}

// NewManager builds a session manager. store may be nil to disable recording.
func NewManager(log *logrus.Logger, store *Store) *Manager {
	if log == nil {
		log = logrus.New()
	}
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		log:      log,
		store:    store,
	}
}

// CreateGame starts a fresh session and returns it with the initial
// observation.
func (m *Manager) CreateGame(seed uint64, numPlayers uint8, shaping bool) (*Session, engine.Observation, error) {
	if numPlayers == 0 {
		numPlayers = 4
	}
	if numPlayers < engine.MinPlayers || numPlayers > engine.MaxPlayers {
		return nil, engine.Observation{}, fmt.Errorf("num_players %d outside [%d, %d]", numPlayers, engine.MinPlayers, engine.MaxPlayers)
	}
	rules := engine.Rules{NumPlayers: numPlayers, TrickShaping: shaping}
	env := engine.NewEnv(seed, rules, engine.RandomPolicy{})

	s := &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		env:       env,
		obs:       env.Reset(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.log.WithFields(logrus.Fields{
		"game_id":     s.ID,
		"seed":        seed,
		"num_players": numPlayers,
	}).Info("game created")
	return s, s.obs, nil
}

// Get returns the session for an ID, or nil.
func (m *Manager) Get(id uuid.UUID) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

// Delete removes a session.
func (m *Manager) Delete(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Step advances a session and records the game once it finishes.
func (m *Manager) Step(id uuid.UUID, action uint8) (StepOutcome, error) {
	s := m.Get(id)
	if s == nil {
		return StepOutcome{}, fmt.Errorf("unknown game %s", id)
	}
	out, err := s.Step(action)
	if err != nil {
		return StepOutcome{}, err
	}
	if out.Done {
		m.recordFinished(s)
	}
	return out, nil
}

// recordFinished writes the final result to the store, if one is configured.
func (m *Manager) recordFinished(s *Session) {
	s.mu.Lock()
	g := &s.env.Game
	n := g.NumActivePlayers()
	scores := make([]int16, n)
	for p := uint8(0); p < n; p++ {
		scores[p] = g.Players[p].Score
	}
	seed := s.env.Seed()
	rounds := g.RoundNumber - 1
	agentReturn := s.agentReturn
	s.mu.Unlock()

	m.log.WithFields(logrus.Fields{
		"game_id": s.ID,
		"rounds":  rounds,
		"scores":  scores,
	}).Info("game finished")

	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.store.RecordGame(ctx, s.ID, seed, n, rounds, scores, agentReturn); err != nil {
		m.log.WithError(err).WithField("game_id", s.ID).Warn("failed to record game")
	}
}
