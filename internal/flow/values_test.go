package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReady(t *testing.T) {
	required := []string{"username", "password"}
	cases := []struct {
		name   string
		values Values
		want   bool
	}{
		{"all empty", Values{}, false},
		{"one missing", Values{"username": "a"}, false},
		{"whitespace only", Values{"username": "a", "password": " \t\n"}, false},
		{"both set", Values{"username": "a", "password": "b"}, true},
		{"padded text counts", Values{"username": "  a ", "password": " b"}, true},
		{"extra fields ignored", Values{"username": "a", "password": "b", "other": ""}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, IsReady(c.values, required))
		})
	}
}

func TestIsReady_NothingRequired(t *testing.T) {
	assert.True(t, IsReady(Values{"email": ""}, nil))
}

func TestKeyEvent_IsConfirm(t *testing.T) {
	cases := []struct {
		ev   KeyEvent
		want bool
	}{
		{KeyEvent{KeyCode: 13}, true},
		{KeyEvent{Which: 13}, true},
		{KeyEvent{KeyCode: 13, Which: 13}, true},
		{KeyEvent{KeyCode: 65, Which: 65}, false},
		{KeyEvent{}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.ev.IsConfirm(), "%+v", c.ev)
	}
}

func TestValuesClone(t *testing.T) {
	v := Values{"a": "1"}
	cp := v.Clone()
	cp["a"] = "2"
	assert.Equal(t, "1", v.Get("a"))
	assert.Equal(t, "", v.Get("missing"))
}

func TestStateText(t *testing.T) {
	for _, s := range []State{Editing, Ready, Resolved} {
		b, err := s.MarshalText()
		assert.NoError(t, err)
		var got State
		assert.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, s, got)
	}
	var s State
	assert.Error(t, s.UnmarshalText([]byte("locked")))
}
