package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/hnrobert/envportal/internal/auth"
	"github.com/hnrobert/envportal/internal/flow"
	"github.com/hnrobert/envportal/internal/flows"
	"github.com/hnrobert/envportal/internal/logger"
	"github.com/hnrobert/envportal/internal/session"
)

const maxEventBytes = 64 << 10

var errMethod = errors.New("method not allowed")

type mountResponse struct {
	Token    string        `json:"token"`
	Snapshot flow.Snapshot `json:"snapshot"`
}

type fieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apiStatus(err), map[string]string{"error": humanAPIError(err)})
}

func apiStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, flows.ErrUnknownFlow), errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrFlowMismatch):
		return http.StatusConflict
	case errors.Is(err, errMethod):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusBadRequest
	}
}

func humanAPIError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, auth.ErrInvalidToken):
		return "Missing or invalid instance token."
	case errors.Is(err, flows.ErrUnknownFlow):
		return "No such flow."
	case errors.Is(err, session.ErrNotFound):
		return "This form has expired. Mount the flow again."
	case errors.Is(err, session.ErrFlowMismatch):
		return "The token belongs to a different flow."
	case errors.Is(err, errMethod):
		return "Method not allowed."
	default:
		return "Bad request: " + err.Error()
	}
}

// handleAPIInstance mounts (POST), reads (GET) or discards (DELETE) the
// caller's instance of a flow.
func (a *App) handleAPIInstance(w http.ResponseWriter, r *http.Request) {
	n := flow.Name(r.PathValue("flow"))
	if _, err := a.flows.Get(n); err != nil {
		writeError(w, err)
		return
	}
	switch r.Method {
	case http.MethodPost:
		a.mountInstance(w, r, n)
	case http.MethodGet:
		cl := instanceFrom(r)
		if cl == nil {
			writeError(w, auth.ErrInvalidToken)
			return
		}
		a.applyEvent(w, r, n, nil)
	case http.MethodDelete:
		cl := instanceFrom(r)
		if cl == nil {
			writeError(w, auth.ErrInvalidToken)
			return
		}
		if cl.Flow != string(n) {
			writeError(w, session.ErrFlowMismatch)
			return
		}
		if a.instances.Discard(cl.InstanceID()) {
			logger.Info("Discarded %s instance from %s", n, remoteIP(r))
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, errMethod)
	}
}

// mountInstance starts a new instance. A previous instance named by the
// caller's token is discarded first: one presentation context shows one flow.
func (a *App) mountInstance(w http.ResponseWriter, r *http.Request, n flow.Name) {
	if prev := instanceFrom(r); prev != nil {
		if a.instances.Discard(prev.InstanceID()) {
			logger.Info("Discarded %s instance from %s on navigation to %s", prev.Flow, remoteIP(r), n)
		}
	}
	ctrl, err := a.flows.Start(n, flow.WithObserver(a.observer("api", remoteIP(r))))
	if err != nil {
		writeError(w, err)
		return
	}
	id := a.instances.Mount(ctrl)
	tok, err := auth.SignInstance(a.secret, id, string(n), a.siteConfig().InstanceTTL)
	if err != nil {
		a.instances.Discard(id)
		logger.Error("Failed to sign instance token: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	logger.Info("Mounted %s instance for %s", n, remoteIP(r))
	writeJSON(w, http.StatusCreated, mountResponse{Token: tok, Snapshot: ctrl.Snapshot()})
}

func (a *App) handleAPIField(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, errMethod)
		return
	}
	var req fieldRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, err)
		return
	}
	if req.Field == "" {
		writeError(w, errors.New("field is required"))
		return
	}
	var unknown error
	snap, ok := a.doEvent(w, r, flow.Name(r.PathValue("flow")), func(c *flow.Controller) {
		if !c.SetField(req.Field, req.Value) {
			unknown = fmt.Errorf("unknown field %q", req.Field)
		}
	})
	if !ok {
		return
	}
	if unknown != nil {
		writeError(w, unknown)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleAPISubmit treats an empty body as explicit activation and a body with
// key codes as a keyboard event.
func (a *App) handleAPISubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, errMethod)
		return
	}
	var ev *flow.KeyEvent
	if err := decodeBody(r, &ev, true); err != nil {
		writeError(w, err)
		return
	}
	a.applyEvent(w, r, flow.Name(r.PathValue("flow")), func(c *flow.Controller) {
		if ev == nil {
			c.Activate()
			return
		}
		c.KeyPress(*ev)
	})
}

func (a *App) applyEvent(w http.ResponseWriter, r *http.Request, n flow.Name, fn func(*flow.Controller)) {
	if snap, ok := a.doEvent(w, r, n, fn); ok {
		writeJSON(w, http.StatusOK, snap)
	}
}

// doEvent runs fn on the caller's instance. On failure the error response is
// already written and ok is false.
func (a *App) doEvent(w http.ResponseWriter, r *http.Request, n flow.Name, fn func(*flow.Controller)) (flow.Snapshot, bool) {
	cl := instanceFrom(r)
	if cl.Flow != string(n) {
		writeError(w, session.ErrFlowMismatch)
		return flow.Snapshot{}, false
	}
	snap, err := a.instances.Do(cl.InstanceID(), n, fn)
	if err != nil {
		writeError(w, err)
		return flow.Snapshot{}, false
	}
	return snap, true
}

func (a *App) handleAPISite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, errMethod)
		return
	}
	writeJSON(w, http.StatusOK, a.siteConfig().Navigation(isSignedIn(r)))
}

func decodeBody(r *http.Request, v any, allowEmpty bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxEventBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		return err
	}
	return nil
}
