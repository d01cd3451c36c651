package flow

// EnterKeyCode is the key code that confirms a form from the keyboard.
const EnterKeyCode = 13

// KeyEvent carries the key codes reported by a keyboard input event. Browsers
// have historically populated one or the other, so both are checked.
type KeyEvent struct {
	KeyCode int `json:"keyCode"`
	Which   int `json:"which"`
}

// IsConfirm reports whether the event is the Enter key.
func (e KeyEvent) IsConfirm() bool {
	return e.KeyCode == EnterKeyCode || e.Which == EnterKeyCode
}

// Signal names the kind of submission signal received.
type Signal string

const (
	SignalActivate Signal = "activate"
	SignalKey      Signal = "key"
)
