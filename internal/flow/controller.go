package flow

import "fmt"

// State is the submission state of a flow instance.
type State int

const (
	// Editing means at least one required field is blank.
	Editing State = iota
	// Ready means every required field has text and a signal will submit.
	Ready
	// Resolved means the last signal produced the current message.
	Resolved
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Ready:
		return "ready"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "editing":
		*s = Editing
	case "ready":
		*s = Ready
	case "resolved":
		*s = Resolved
	default:
		return fmt.Errorf("unknown flow state %q", b)
	}
	return nil
}

// Observer is notified of controller activity. It must not call back into the
// controller.
type Observer interface {
	FieldEdited(flow Name, field string)
	SignalIgnored(flow Name, sig Signal)
	Resolved(flow Name, sig Signal, d Decision)
}

type nopObserver struct{}

func (nopObserver) FieldEdited(Name, string)        {}
func (nopObserver) SignalIgnored(Name, Signal)      {}
func (nopObserver) Resolved(Name, Signal, Decision) {}

// Option customizes a Controller.
type Option func(*Controller)

// WithObserver attaches o to the controller.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.obs = o
		}
	}
}

// Snapshot is the read-only view handed to the presentation layer.
type Snapshot struct {
	Flow           Name   `json:"flow"`
	Fields         Values `json:"fieldValues"`
	SubmitDisabled bool   `json:"submitDisabled"`
	Message        string `json:"message"`
	IsError        bool   `json:"isError"`
	State          State  `json:"state"`
}

// Controller holds the state of one flow instance.
type Controller struct {
	def      Definition
	values   Values
	disabled bool
	message  string
	isError  bool
	state    State
	obs      Observer
}

// New returns a controller for def with every declared field empty.
// def is assumed valid; see Definition.Validate.
func New(def Definition, opts ...Option) *Controller {
	c := &Controller{
		def:    def,
		values: make(Values, len(def.Fields)),
		obs:    nopObserver{},
	}
	for _, f := range def.Fields {
		c.values[f.ID] = ""
	}
	for _, opt := range opts {
		opt(c)
	}
	c.recompute()
	return c
}

// Definition returns the definition the controller was built from.
func (c *Controller) Definition() Definition {
	return c.def
}

// SetField stores value for the field id and re-evaluates readiness. Any text
// is accepted. It reports false, without changing anything, when id is not a
// field of this flow.
func (c *Controller) SetField(id, value string) bool {
	if _, ok := c.values[id]; !ok {
		return false
	}
	c.values[id] = value
	c.recompute()
	c.obs.FieldEdited(c.def.Name, id)
	return true
}

// Activate is the explicit submit signal. It reports whether the flow was
// resolved.
func (c *Controller) Activate() bool {
	return c.submit(SignalActivate)
}

// KeyPress handles a keyboard event from any field. Only the Enter key is a
// submit signal. It reports whether the flow was resolved.
func (c *Controller) KeyPress(ev KeyEvent) bool {
	if !ev.IsConfirm() {
		return false
	}
	return c.submit(SignalKey)
}

// SubmitDisabled reports whether submission signals are currently dropped.
func (c *Controller) SubmitDisabled() bool {
	return c.disabled
}

// State returns the current submission state.
func (c *Controller) State() State {
	return c.state
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Flow:           c.def.Name,
		Fields:         c.values.Clone(),
		SubmitDisabled: c.disabled,
		Message:        c.message,
		IsError:        c.isError,
		State:          c.state,
	}
}

func (c *Controller) recompute() {
	if IsReady(c.values, c.def.Required) {
		c.disabled = false
		c.state = Ready
		return
	}
	c.disabled = true
	c.state = Editing
}

func (c *Controller) submit(sig Signal) bool {
	if c.disabled {
		c.obs.SignalIgnored(c.def.Name, sig)
		return false
	}
	d := c.def.Resolver.Resolve(c.values.Clone())
	c.message = d.Message
	c.isError = d.IsError
	c.state = Resolved
	c.obs.Resolved(c.def.Name, sig, d)
	return true
}
