package application

import (
	"slices"
	"sync"

	"github.com/ericfisherdev/maskpreview/internal/domain/model"
)

// Snapshot is a consistent view of the store taken under a single lock.
type Snapshot struct {
	CurrentExample model.MaskSettings
	MaskSettings   model.MaskSettings
	Version        uint64
}

// Modified reports whether the working copy differs from the selected example.
func (s Snapshot) Modified() bool {
	return !s.MaskSettings.Equal(s.CurrentExample)
}

// Listener receives the new snapshot after every write.
type Listener func(Snapshot)

// MaskStore is the process-wide holder of what the GUI currently shows: the
// selected example and the editable working copy derived from it. Every value
// going in or out is deep-copied, so callers never share memory with the store.
// Writes are visible to the next read; each write bumps Version.
type MaskStore struct {
	// writeMu serializes writers across mutate and notify so listeners see
	// versions in increasing order.
	writeMu sync.Mutex

	mu             sync.RWMutex
	currentExample model.MaskSettings
	maskSettings   model.MaskSettings
	version        uint64

	listenersMu sync.Mutex
	listeners   map[uint64]Listener
	nextID      uint64
}

// NewMaskStore creates a store with both fields set to the built-in default.
func NewMaskStore() *MaskStore {
	return &MaskStore{
		currentExample: model.DefaultMaskSettings(),
		maskSettings:   model.DefaultMaskSettings(),
		listeners:      make(map[uint64]Listener),
	}
}

// CurrentExample returns a copy of the selected example.
func (s *MaskStore) CurrentExample() model.MaskSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentExample.Clone()
}

// MaskSettings returns a copy of the working settings.
func (s *MaskStore) MaskSettings() model.MaskSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maskSettings.Clone()
}

// Version returns the write counter.
func (s *MaskStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns both fields and the version as one consistent view.
func (s *MaskStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// IsModified reports whether the working copy drifted from the selected example.
func (s *MaskStore) IsModified() bool {
	return s.Snapshot().Modified()
}

// SetExample selects example: the selected example and the working copy both
// become independent copies of it, discarding every edit made before.
func (s *MaskStore) SetExample(example model.MaskSettings) {
	s.update(func() {
		s.currentExample = example.Clone()
		s.maskSettings = example.Clone()
	})
}

// SetMaskProperties merges the present fields of props into the working copy.
// Variables, animation steps and absent CSS fields are left as they are.
func (s *MaskStore) SetMaskProperties(props model.MaskProperties) {
	s.update(func() {
		s.maskSettings = s.maskSettings.Apply(props)
	})
}

// SetVariables replaces the working copy's variables with a copy of vars.
func (s *MaskStore) SetVariables(vars []string) {
	s.update(func() {
		s.maskSettings.Variables = model.CloneVariables(vars)
	})
}

// SetAnimationSteps replaces the working copy's animation steps with a copy of steps.
func (s *MaskStore) SetAnimationSteps(steps []model.AnimationStep) {
	s.update(func() {
		s.maskSettings.AnimationSteps = model.CloneAnimationSteps(steps)
	})
}

// ResetToExample discards edits by copying the selected example back over
// the working copy.
func (s *MaskStore) ResetToExample() {
	s.update(func() {
		s.maskSettings = s.currentExample.Clone()
	})
}

// Subscribe registers fn to be called after every write, in version order.
// fn runs on the writer's goroutine after the state lock is released, so it
// may read the store, but it must not write to it (that deadlocks) and should
// not block for long since other writers wait. The returned function removes
// the listener.
func (s *MaskStore) Subscribe(fn Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

// update runs mutate under the state lock, bumps the version and notifies
// listeners with the resulting snapshot before the next writer may start.
func (s *MaskStore) update(mutate func()) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	mutate()
	s.version++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

func (s *MaskStore) snapshotLocked() Snapshot {
	return Snapshot{
		CurrentExample: s.currentExample.Clone(),
		MaskSettings:   s.maskSettings.Clone(),
		Version:        s.version,
	}
}

func (s *MaskStore) notify(snap Snapshot) {
	s.listenersMu.Lock()
	ids := make([]uint64, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(Snapshot{
			CurrentExample: snap.CurrentExample.Clone(),
			MaskSettings:   snap.MaskSettings.Clone(),
			Version:        snap.Version,
		})
	}
}
