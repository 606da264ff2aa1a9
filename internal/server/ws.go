package server

import (
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	engine "github.com/jeriks31/wizard-online/engine"
)

// wsStepFrame is what the socket client sends per decision.
type wsStepFrame struct {
	Action int `json:"action"`
}

// wsResultFrame is the server's reply to each action, or an error frame when
// the action was rejected (the session is untouched in that case).
type wsResultFrame struct {
	Observation *obsJSON `json:"observation,omitempty"`
	Reward      float32  `json:"reward"`
	Done        bool     `json:"done"`
	Error       string   `json:"error,omitempty"`
}

// handleSocket streams a game over one WebSocket: the client sends action
// frames, the server replies with step results, and the connection closes
// after the final round.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	if s.manager.Get(id) == nil {
		writeError(w, http.StatusNotFound, errors.New("game not found"))
		return
	}

	opts := &websocket.AcceptOptions{}
	if s.cfg.WSOrigin != "" {
		opts.OriginPatterns = []string{s.cfg.WSOrigin}
	}
	conn, err := websocket.Accept(w, r, opts)
	if err != nil {
		s.log.WithError(err).Warn("websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closing")

	ctx := r.Context()

	// Open with the current observation so the client can pick its first
	// action without a separate GET.
	if session := s.manager.Get(id); session != nil {
		obs, done, _ := session.View()
		o := toObsJSON(&obs)
		if err := wsjson.Write(ctx, conn, wsResultFrame{Observation: &o, Done: done}); err != nil {
			return
		}
	}

	for {
		var frame wsStepFrame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			return
		}
		if frame.Action < 0 || frame.Action >= engine.NumActions {
			if err := wsjson.Write(ctx, conn, wsResultFrame{Error: "action outside action space"}); err != nil {
				return
			}
			continue
		}
		out, err := s.manager.Step(id, uint8(frame.Action))
		if err != nil {
			if err := wsjson.Write(ctx, conn, wsResultFrame{Error: err.Error()}); err != nil {
				return
			}
			continue
		}
		o := toObsJSON(&out.Obs)
		if err := wsjson.Write(ctx, conn, wsResultFrame{Observation: &o, Reward: out.Reward, Done: out.Done}); err != nil {
			return
		}
		if out.Done {
			conn.Close(websocket.StatusNormalClosure, "game over")
			return
		}
	}
}
