// Package planner owns one planning session: the live profile, the selected
// libraries, the tech-tree mode and an optional comparison.
//
// Calculation packages stay pure; every input change goes through a Planner
// method and the caller asks for a fresh View with Recompute.
package planner

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/udisondev/forgeplanner/internal/data"
	"github.com/udisondev/forgeplanner/internal/game/compare"
	"github.com/udisondev/forgeplanner/internal/game/techtree"
	"github.com/udisondev/forgeplanner/internal/model"
)

// ErrClosed is returned by every method after Close.
var ErrClosed = errors.New("planner: closed")

// Planner is a planning session. Methods are safe for concurrent use.
type Planner struct {
	mu sync.Mutex

	profile model.Profile
	libs    *data.Libraries
	mode    techtree.Mode
	cmp     *compare.Comparator
	closed  bool

	memo memo
}

// New starts a session over a copy of profile. Nil libraries mean nothing is loaded yet.
func New(profile model.Profile, libs *data.Libraries) *Planner {
	if libs == nil {
		libs = data.Empty()
	}
	return &Planner{
		profile: profile.Clone(),
		libs:    libs,
		mode:    techtree.ModeActual,
		cmp:     compare.New(),
	}
}

// Close ends the session, discarding any active comparison.
func (p *Planner) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if p.cmp.Comparing() {
		_ = p.cmp.Discard()
	}
	p.closed = true
	p.memo.reset()
	return nil
}

// Profile returns a copy of the live profile.
func (p *Planner) Profile() (model.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return model.Profile{}, ErrClosed
	}
	return p.profile.Clone(), nil
}

// SetProfile replaces the live profile with a copy of profile.
func (p *Planner) SetProfile(profile model.Profile) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.profile = profile.Clone()
	return nil
}

// Update applies fn to a copy of the live profile and commits the copy when fn succeeds.
func (p *Planner) Update(fn func(*model.Profile) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	next := p.profile.Clone()
	if err := fn(&next); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	p.profile = next
	return nil
}

// Libraries returns the libraries in use.
func (p *Planner) Libraries() *data.Libraries {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.libs
}

// SetLibraries switches to another library set. Nil means nothing loaded.
func (p *Planner) SetLibraries(libs *data.Libraries) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if libs == nil {
		libs = data.Empty()
	}
	p.libs = libs
	slog.Debug("planner libraries switched", "version", libs.Version)
	return nil
}

// Mode returns the tech-tree mode.
func (p *Planner) Mode() techtree.Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// SetMode selects the tech-tree mode used by Recompute and the simulators.
func (p *Planner) SetMode(mode techtree.Mode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.mode = mode
	return nil
}

// SetTechRank changes the stored rank of a node by delta and reports whether
// anything changed. Ranks are always edited in actual mode.
func (p *Planner) SetTechRank(tree model.TreeName, nodeID, delta int) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false, ErrClosed
	}
	next, changed := techtree.SetRank(p.libs, p.profile.TechTree, tree, nodeID, delta)
	if changed {
		p.profile.TechTree = next
	}
	return changed, nil
}

// EnterComparison snapshots the live profile into a new comparison session.
func (p *Planner) EnterComparison() (uuid.UUID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return uuid.Nil, ErrClosed
	}
	return p.cmp.Enter(p.profile)
}

// Compare runs fn against the comparison session, for example to edit a snapshot.
func (p *Planner) Compare(fn func(c *compare.Comparator) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	return fn(p.cmp)
}

// KeepOriginal commits the original snapshot to the live profile.
func (p *Planner) KeepOriginal() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	return p.cmp.KeepOriginal(&p.profile)
}

// ApplyTest commits the test snapshot to the live profile.
func (p *Planner) ApplyTest() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	return p.cmp.ApplyTest(&p.profile)
}

// DiscardComparison ends the comparison without changing the live profile.
func (p *Planner) DiscardComparison() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	return p.cmp.Discard()
}
