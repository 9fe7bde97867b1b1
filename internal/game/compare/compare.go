// Package compare runs a baseline build and a test build side by side.
//
// A Comparator is idle until Enter snapshots the live profile's items and
// mount into three clones: original and test, which are edited independently,
// and baseline, which stays untouched for resets and diffs. Leaving the
// session through KeepOriginal, ApplyTest or Discard drops all three clones.
package compare

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/google/uuid"

	"github.com/udisondev/forgeplanner/internal/model"
)

var (
	// ErrNotComparing is returned by session operations while idle.
	ErrNotComparing = errors.New("compare: not comparing")
	// ErrAlreadyComparing is returned by Enter during an active session.
	ErrAlreadyComparing = errors.New("compare: already comparing")
)

// State of a Comparator.
type State int

const (
	StateIdle State = iota
	StateComparing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateComparing:
		return "comparing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Build is the part of a profile a comparison can change.
type Build struct {
	Items model.Items      `json:"items"`
	Mount model.MountState `json:"mount"`
}

// BuildOf snapshots the items and mount of a profile.
func BuildOf(p model.Profile) Build {
	return Build{Items: p.Items, Mount: p.Mount}.Clone()
}

// Clone returns a deep copy of the build.
func (b Build) Clone() Build {
	return Build{
		Items: b.Items.Clone(),
		Mount: model.MountState{Active: b.Mount.Active.Clone()},
	}
}

// Apply returns a copy of p wearing this build. p is not modified.
func (b Build) Apply(p model.Profile) model.Profile {
	out := p.Clone()
	c := b.Clone()
	out.Items = c.Items
	out.Mount = c.Mount
	return out
}

// Comparator holds one comparison session at a time. It is not safe for
// concurrent use; the owning planner serialises access.
type Comparator struct {
	state    State
	session  uuid.UUID
	original Build
	test     Build
	baseline Build
}

// New returns an idle comparator.
func New() *Comparator {
	return &Comparator{}
}

// State reports whether a session is active.
func (c *Comparator) State() State { return c.state }

// Comparing is shorthand for State() == StateComparing.
func (c *Comparator) Comparing() bool { return c.state == StateComparing }

// Session returns the id of the active session, uuid.Nil while idle.
func (c *Comparator) Session() uuid.UUID { return c.session }

// Enter starts a session from the live profile.
func (c *Comparator) Enter(p model.Profile) (uuid.UUID, error) {
	if c.Comparing() {
		return uuid.Nil, ErrAlreadyComparing
	}
	snap := BuildOf(p)
	c.original = snap.Clone()
	c.test = snap.Clone()
	c.baseline = snap
	c.session = uuid.New()
	c.state = StateComparing

	slog.Debug("comparison started", "session", c.session, "items", len(snap.Items))
	return c.session, nil
}

// Original returns a copy of the original snapshot.
func (c *Comparator) Original() (Build, error) {
	if !c.Comparing() {
		return Build{}, ErrNotComparing
	}
	return c.original.Clone(), nil
}

// Test returns a copy of the test snapshot.
func (c *Comparator) Test() (Build, error) {
	if !c.Comparing() {
		return Build{}, ErrNotComparing
	}
	return c.test.Clone(), nil
}

// Baseline returns a copy of the profile state at Enter.
func (c *Comparator) Baseline() (Build, error) {
	if !c.Comparing() {
		return Build{}, ErrNotComparing
	}
	return c.baseline.Clone(), nil
}

// SetOriginalItem replaces one slot of the original snapshot. A nil item empties the slot.
func (c *Comparator) SetOriginalItem(slot model.Slot, item *model.EquippedItem) error {
	if !c.Comparing() {
		return ErrNotComparing
	}
	setItem(&c.original, slot, item)
	return nil
}

// SetTestItem replaces one slot of the test snapshot. A nil item empties the slot.
func (c *Comparator) SetTestItem(slot model.Slot, item *model.EquippedItem) error {
	if !c.Comparing() {
		return ErrNotComparing
	}
	setItem(&c.test, slot, item)
	return nil
}

// SetOriginalMount replaces the mount of the original snapshot.
func (c *Comparator) SetOriginalMount(m *model.MountConfig) error {
	if !c.Comparing() {
		return ErrNotComparing
	}
	c.original.Mount.Active = m.Clone()
	return nil
}

// SetTestMount replaces the mount of the test snapshot.
func (c *Comparator) SetTestMount(m *model.MountConfig) error {
	if !c.Comparing() {
		return ErrNotComparing
	}
	c.test.Mount.Active = m.Clone()
	return nil
}

// ResetTest restores the test snapshot to the baseline.
func (c *Comparator) ResetTest() error {
	if !c.Comparing() {
		return ErrNotComparing
	}
	c.test = c.baseline.Clone()
	return nil
}

// ChangedSlots lists the slots whose test item differs from the baseline, in slot order.
func (c *Comparator) ChangedSlots() ([]model.Slot, error) {
	if !c.Comparing() {
		return nil, ErrNotComparing
	}
	var changed []model.Slot
	for _, slot := range model.Slots {
		if !reflect.DeepEqual(c.baseline.Items[slot], c.test.Items[slot]) {
			changed = append(changed, slot)
		}
	}
	return changed, nil
}

// KeepOriginal writes the original snapshot into p and ends the session.
func (c *Comparator) KeepOriginal(p *model.Profile) error {
	return c.commit(p, c.original, "original")
}

// ApplyTest writes the test snapshot into p and ends the session.
func (c *Comparator) ApplyTest(p *model.Profile) error {
	return c.commit(p, c.test, "test")
}

// Discard ends the session without touching the live profile.
func (c *Comparator) Discard() error {
	if !c.Comparing() {
		return ErrNotComparing
	}
	slog.Debug("comparison discarded", "session", c.session)
	c.reset()
	return nil
}

func (c *Comparator) commit(p *model.Profile, b Build, side string) error {
	if !c.Comparing() {
		return ErrNotComparing
	}
	if p == nil {
		return fmt.Errorf("commit %s build: nil profile", side)
	}
	snap := b.Clone()
	p.Items = snap.Items
	p.Mount = snap.Mount

	slog.Debug("comparison committed", "session", c.session, "side", side)
	c.reset()
	return nil
}

func (c *Comparator) reset() {
	c.state = StateIdle
	c.session = uuid.Nil
	c.original = Build{}
	c.test = Build{}
	c.baseline = Build{}
}

func setItem(b *Build, slot model.Slot, item *model.EquippedItem) {
	if b.Items == nil {
		b.Items = make(model.Items, len(model.Slots))
	}
	if item == nil {
		delete(b.Items, slot)
		return
	}
	b.Items[slot] = item.Clone()
}
