package flow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnrobert/envportal/internal/flow"
)

type recordingObserver struct {
	edits    []string
	ignored  []flow.Signal
	resolved []flow.Decision
}

func (r *recordingObserver) FieldEdited(_ flow.Name, field string) { r.edits = append(r.edits, field) }
func (r *recordingObserver) SignalIgnored(_ flow.Name, sig flow.Signal) {
	r.ignored = append(r.ignored, sig)
}
func (r *recordingObserver) Resolved(_ flow.Name, _ flow.Signal, d flow.Decision) {
	r.resolved = append(r.resolved, d)
}

func testDefinition(calls *int) flow.Definition {
	return flow.Definition{
		Name: "test",
		Fields: []flow.Field{
			{ID: "user", Type: flow.InputText},
			{ID: "pass", Type: flow.InputPassword},
			{ID: "note", Type: flow.InputText},
		},
		Required: []string{"user", "pass"},
		Resolver: flow.ResolverFunc(func(v flow.Values) flow.Decision {
			*calls++
			if v.Get("pass") == "ok" {
				return flow.Success("welcome " + v.Get("user"))
			}
			return flow.Failure("nope")
		}),
	}
}

func TestNew_StartsDisabled(t *testing.T) {
	var calls int
	c := flow.New(testDefinition(&calls))
	snap := c.Snapshot()

	assert.True(t, snap.SubmitDisabled)
	assert.Equal(t, flow.Editing, snap.State)
	assert.Empty(t, snap.Message)
	assert.False(t, snap.IsError)
	assert.Equal(t, flow.Values{"user": "", "pass": "", "note": ""}, snap.Fields)
}

func TestSetField_RecomputesEachWrite(t *testing.T) {
	var calls int
	c := flow.New(testDefinition(&calls))

	require.True(t, c.SetField("user", "ann"))
	assert.True(t, c.SubmitDisabled())

	require.True(t, c.SetField("pass", "x"))
	assert.False(t, c.SubmitDisabled())
	assert.Equal(t, flow.Ready, c.State())

	require.True(t, c.SetField("pass", "   "))
	assert.True(t, c.SubmitDisabled())
	assert.Equal(t, flow.Editing, c.State())

	// Optional fields never gate.
	require.True(t, c.SetField("pass", "x"))
	require.True(t, c.SetField("note", ""))
	assert.False(t, c.SubmitDisabled())
}

func TestSetField_UnknownField(t *testing.T) {
	var calls int
	c := flow.New(testDefinition(&calls))
	assert.False(t, c.SetField("bogus", "v"))
	_, ok := c.Snapshot().Fields["bogus"]
	assert.False(t, ok)
}

func TestSubmit_DisabledIsNoop(t *testing.T) {
	var calls int
	obs := &recordingObserver{}
	c := flow.New(testDefinition(&calls), flow.WithObserver(obs))
	c.SetField("user", "ann")

	assert.False(t, c.Activate())
	assert.False(t, c.KeyPress(flow.KeyEvent{KeyCode: 13}))

	snap := c.Snapshot()
	assert.Zero(t, calls)
	assert.Empty(t, snap.Message)
	assert.False(t, snap.IsError)
	assert.Equal(t, []flow.Signal{flow.SignalActivate, flow.SignalKey}, obs.ignored)
}

func TestSubmit_DisabledKeepsPreviousMessage(t *testing.T) {
	var calls int
	c := flow.New(testDefinition(&calls))
	c.SetField("user", "ann")
	c.SetField("pass", "bad")
	require.True(t, c.Activate())

	c.SetField("pass", "")
	assert.Equal(t, flow.Editing, c.State())
	assert.False(t, c.Activate())

	snap := c.Snapshot()
	assert.Equal(t, "nope", snap.Message)
	assert.True(t, snap.IsError)
	assert.Equal(t, 1, calls)
}

func TestSubmit_ResolvesAndAllowsResubmission(t *testing.T) {
	var calls int
	c := flow.New(testDefinition(&calls))
	c.SetField("user", "ann")
	c.SetField("pass", "bad")

	require.True(t, c.Activate())
	snap := c.Snapshot()
	assert.Equal(t, flow.Resolved, snap.State)
	assert.True(t, snap.IsError)
	assert.Equal(t, "nope", snap.Message)

	c.SetField("pass", "ok")
	assert.Equal(t, flow.Ready, c.State())
	assert.Equal(t, "nope", c.Snapshot().Message)

	require.True(t, c.Activate())
	snap = c.Snapshot()
	assert.False(t, snap.IsError)
	assert.Equal(t, "welcome ann", snap.Message)

	// Not locked after success.
	require.True(t, c.Activate())
	assert.Equal(t, 3, calls)
}

func TestKeyPress_MatchesActivate(t *testing.T) {
	var calls int
	a := flow.New(testDefinition(&calls))
	b := flow.New(testDefinition(&calls))
	for _, c := range []*flow.Controller{a, b} {
		c.SetField("user", "ann")
		c.SetField("pass", "ok")
	}

	require.True(t, a.Activate())
	require.True(t, b.KeyPress(flow.KeyEvent{Which: 13}))
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestKeyPress_OtherKeysIgnored(t *testing.T) {
	var calls int
	obs := &recordingObserver{}
	c := flow.New(testDefinition(&calls), flow.WithObserver(obs))
	c.SetField("user", "ann")
	c.SetField("pass", "ok")

	assert.False(t, c.KeyPress(flow.KeyEvent{KeyCode: 9, Which: 9}))
	assert.Zero(t, calls)
	assert.Empty(t, obs.ignored)
	assert.Equal(t, flow.Ready, c.State())
}

func TestResolver_ReceivesCopy(t *testing.T) {
	def := flow.Definition{
		Name:     "mut",
		Fields:   []flow.Field{{ID: "a"}},
		Required: []string{"a"},
		Resolver: flow.ResolverFunc(func(v flow.Values) flow.Decision {
			v["a"] = "changed"
			return flow.Success("done")
		}),
	}
	c := flow.New(def)
	c.SetField("a", "orig")
	require.True(t, c.Activate())
	assert.Equal(t, "orig", c.Snapshot().Fields.Get("a"))
}

func TestSnapshot_IsCopy(t *testing.T) {
	var calls int
	c := flow.New(testDefinition(&calls))
	snap := c.Snapshot()
	snap.Fields["user"] = "tampered"
	assert.Equal(t, "", c.Snapshot().Fields.Get("user"))
}

func TestObserver_SeesEditsAndResolutions(t *testing.T) {
	var calls int
	obs := &recordingObserver{}
	c := flow.New(testDefinition(&calls), flow.WithObserver(obs))
	c.SetField("user", "ann")
	c.SetField("pass", "ok")
	c.SetField("nope", "x")
	c.Activate()

	assert.Equal(t, []string{"user", "pass"}, obs.edits)
	assert.Equal(t, []flow.Decision{flow.Success("welcome ann")}, obs.resolved)
}

func TestDefinitionValidate(t *testing.T) {
	var calls int
	good := testDefinition(&calls)
	require.NoError(t, good.Validate())

	cases := map[string]func(d *flow.Definition){
		"no name":        func(d *flow.Definition) { d.Name = "" },
		"no resolver":    func(d *flow.Definition) { d.Resolver = nil },
		"empty field id": func(d *flow.Definition) { d.Fields = append(d.Fields, flow.Field{}) },
		"duplicate":      func(d *flow.Definition) { d.Fields = append(d.Fields, flow.Field{ID: "user"}) },
		"undeclared":     func(d *flow.Definition) { d.Required = append(d.Required, "ghost") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := testDefinition(&calls)
			d.Fields = append([]flow.Field(nil), d.Fields...)
			d.Required = append([]string(nil), d.Required...)
			mutate(&d)
			assert.ErrorIs(t, d.Validate(), flow.ErrInvalidDefinition)
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "editing", flow.Editing.String())
	assert.Equal(t, "ready", flow.Ready.String())
	assert.Equal(t, "resolved", flow.Resolved.String())
	assert.Equal(t, "unknown", flow.State(42).String())
}
