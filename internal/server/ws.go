package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hnrobert/envportal/internal/flow"
	"github.com/hnrobert/envportal/internal/logger"
)

const wsIdleTimeout = 30 * time.Minute

// wsEvent is one presentation-layer event.
//
//	{"type":"edit","field":"email","value":"a@b.c"}
//	{"type":"activate"}
//	{"type":"key","keyCode":13,"which":13}
type wsEvent struct {
	Type    string `json:"type"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
	KeyCode int    `json:"keyCode,omitempty"`
	Which   int    `json:"which,omitempty"`
}

var errUnknownEvent = errors.New("unknown event type")

func applyWSEvent(c *flow.Controller, ev wsEvent) error {
	switch ev.Type {
	case "edit":
		if !c.SetField(ev.Field, ev.Value) {
			return errors.New("unknown field " + ev.Field)
		}
	case "activate":
		c.Activate()
	case "key":
		c.KeyPress(flow.KeyEvent{KeyCode: ev.KeyCode, Which: ev.Which})
	default:
		return errUnknownEvent
	}
	return nil
}

// handleFlowSocket binds one flow instance to one connection: it is mounted
// when the socket opens and discarded when it closes. Events are handled one
// at a time, each answered with the resulting snapshot.
func (a *App) handleFlowSocket(n flow.Name) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := a.upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("Websocket upgrade failed for %s from %s: %v", n, remoteIP(r), err)
			return
		}
		defer conn.Close()
		conn.SetReadLimit(maxEventBytes)

		ctrl, err := a.flows.Start(n, flow.WithObserver(a.observer("ws", remoteIP(r))))
		if err != nil {
			_ = conn.WriteJSON(map[string]string{"error": humanAPIError(err)})
			return
		}
		a.metrics.Mounted(n)
		defer a.metrics.Discarded(n)

		if err := conn.WriteJSON(ctrl.Snapshot()); err != nil {
			return
		}
		for {
			_ = conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
			var ev wsEvent
			if err := conn.ReadJSON(&ev); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Warn("Websocket for %s from %s closed: %v", n, remoteIP(r), err)
				}
				return
			}
			var reply any
			if err := applyWSEvent(ctrl, ev); err != nil {
				reply = map[string]string{"error": err.Error()}
			} else {
				reply = ctrl.Snapshot()
			}
			if err := conn.WriteJSON(reply); err != nil {
				return
			}
		}
	}
}
