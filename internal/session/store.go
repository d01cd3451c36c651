// Package session keeps the flow controllers mounted by API clients, one per
// presentation context, and discards them when the client leaves or goes idle.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hnrobert/envportal/internal/flow"
)

var (
	ErrNotFound     = errors.New("flow instance not found")
	ErrFlowMismatch = errors.New("flow instance belongs to another flow")
)

// Hooks are called after an instance is mounted or discarded.
type Hooks struct {
	Mounted   func(flow.Name)
	Discarded func(flow.Name)
}

type instance struct {
	flow     flow.Name
	mu       sync.Mutex // serializes events for one controller
	ctrl     *flow.Controller
	lastUsed time.Time
}

// Store is safe for concurrent use. Each controller still only sees one event
// at a time.
type Store struct {
	mu    sync.Mutex
	items map[string]*instance
	ttl   time.Duration
	hooks Hooks
	now   func() time.Time
}

// NewStore returns a store that forgets instances idle for longer than ttl.
// A zero ttl keeps instances until they are discarded.
func NewStore(ttl time.Duration, hooks Hooks) *Store {
	return &Store{
		items: make(map[string]*instance),
		ttl:   ttl,
		hooks: hooks,
		now:   time.Now,
	}
}

// Mount registers ctrl and returns its instance id.
func (s *Store) Mount(ctrl *flow.Controller) string {
	id := uuid.NewString()
	n := ctrl.Definition().Name

	s.mu.Lock()
	s.items[id] = &instance{flow: n, ctrl: ctrl, lastUsed: s.now()}
	s.mu.Unlock()

	if s.hooks.Mounted != nil {
		s.hooks.Mounted(n)
	}
	return id
}

// Do runs fn against the controller of instance id, which must belong to flow
// n, and returns the resulting snapshot. fn may be nil to only read.
func (s *Store) Do(id string, n flow.Name, fn func(*flow.Controller)) (flow.Snapshot, error) {
	s.mu.Lock()
	inst, ok := s.items[id]
	if ok && s.expiredLocked(inst) {
		delete(s.items, id)
		s.mu.Unlock()
		s.discarded(inst.flow)
		return flow.Snapshot{}, ErrNotFound
	}
	if ok {
		inst.lastUsed = s.now()
	}
	s.mu.Unlock()

	if !ok {
		return flow.Snapshot{}, ErrNotFound
	}
	if inst.flow != n {
		return flow.Snapshot{}, ErrFlowMismatch
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()
	if fn != nil {
		fn(inst.ctrl)
	}
	return inst.ctrl.Snapshot(), nil
}

// Discard drops instance id. It reports whether the instance existed.
func (s *Store) Discard(id string) bool {
	s.mu.Lock()
	inst, ok := s.items[id]
	delete(s.items, id)
	s.mu.Unlock()

	if ok {
		s.discarded(inst.flow)
	}
	return ok
}

// Sweep drops every idle instance and returns how many were removed.
func (s *Store) Sweep() int {
	var gone []flow.Name
	s.mu.Lock()
	for id, inst := range s.items {
		if s.expiredLocked(inst) {
			delete(s.items, id)
			gone = append(gone, inst.flow)
		}
	}
	s.mu.Unlock()

	for _, n := range gone {
		s.discarded(n)
	}
	return len(gone)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}

// Len returns the number of live instances.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) expiredLocked(inst *instance) bool {
	return s.ttl > 0 && s.now().Sub(inst.lastUsed) > s.ttl
}

func (s *Store) discarded(n flow.Name) {
	if s.hooks.Discarded != nil {
		s.hooks.Discarded(n)
	}
}
