package server

import (
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnrobert/envportal/internal/flow"
)

func dialFlow(t *testing.T, base, n string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(base, "http") + "/ws/" + n
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, ev wsEvent) flow.Snapshot {
	t.Helper()
	require.NoError(t, conn.WriteJSON(ev))
	var s flow.Snapshot
	require.NoError(t, conn.ReadJSON(&s))
	return s
}

func TestSocket_ForgotPassword(t *testing.T) {
	_, srv := newTestApp(t)
	conn := dialFlow(t, srv.URL, "forgotpassword")

	var initial flow.Snapshot
	require.NoError(t, conn.ReadJSON(&initial))
	assert.True(t, initial.SubmitDisabled)
	assert.Equal(t, flow.Name("forgotpassword"), initial.Flow)

	s := exchange(t, conn, wsEvent{Type: "key", KeyCode: 13, Which: 13})
	assert.Empty(t, s.Message)

	s = exchange(t, conn, wsEvent{Type: "edit", Field: "email", Value: "nobody@x.org"})
	assert.False(t, s.SubmitDisabled)

	s = exchange(t, conn, wsEvent{Type: "activate"})
	assert.True(t, s.IsError)
	assert.Equal(t, "Please enter a valid email address.", s.Message)

	exchange(t, conn, wsEvent{Type: "edit", Field: "email", Value: "john@smith.com"})
	s = exchange(t, conn, wsEvent{Type: "key", Which: 13})
	assert.False(t, s.IsError)
	assert.Equal(t, "An email will be sent to your email address.", s.Message)

	s = exchange(t, conn, wsEvent{Type: "edit", Field: "email", Value: ""})
	assert.True(t, s.SubmitDisabled)
	assert.Equal(t, "An email will be sent to your email address.", s.Message)
}

func TestSocket_BadEvents(t *testing.T) {
	_, srv := newTestApp(t)
	conn := dialFlow(t, srv.URL, "login")

	var initial flow.Snapshot
	require.NoError(t, conn.ReadJSON(&initial))

	for _, ev := range []wsEvent{{Type: "explode"}, {Type: "edit", Field: "ghost", Value: "x"}} {
		require.NoError(t, conn.WriteJSON(ev))
		var reply map[string]any
		require.NoError(t, conn.ReadJSON(&reply))
		assert.Contains(t, reply, "error")
	}

	s := exchange(t, conn, wsEvent{Type: "edit", Field: "username", Value: "a"})
	assert.Equal(t, "a", s.Fields.Get("username"))
}

func TestApplyWSEvent(t *testing.T) {
	app, _ := newTestApp(t)
	ctrl, err := app.flows.Start("passwordreset")
	require.NoError(t, err)

	require.NoError(t, applyWSEvent(ctrl, wsEvent{Type: "edit", Field: "password", Value: "admin"}))
	require.NoError(t, applyWSEvent(ctrl, wsEvent{Type: "edit", Field: "confirmPassword", Value: "admin"}))
	require.NoError(t, applyWSEvent(ctrl, wsEvent{Type: "activate"}))
	assert.Equal(t, "The password has been changed", ctrl.Snapshot().Message)

	assert.ErrorIs(t, applyWSEvent(ctrl, wsEvent{Type: ""}), errUnknownEvent)
}
