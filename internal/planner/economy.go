package planner

import (
	"github.com/udisondev/forgeplanner/internal/game/economy"
	"github.com/udisondev/forgeplanner/internal/game/techtree"
)

// Resolution resolves the live tech tree under the current mode.
func (p *Planner) Resolution() (techtree.Resolution, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return techtree.Resolution{}, ErrClosed
	}
	return p.resolve(), nil
}

func (p *Planner) resolve() techtree.Resolution {
	return techtree.Resolve(p.libs, p.profile.TechTree, p.mode)
}

// Forge returns a forge simulator. A non-positive level uses the profile's forge level.
func (p *Planner) Forge(level int) (economy.Forge, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return economy.Forge{}, ErrClosed
	}
	if level <= 0 {
		level = p.profile.Misc.ForgeLevel
	}
	return economy.NewForge(p.libs, level, economy.ForgeBonusesFrom(p.resolve())), nil
}

// ForgeWiki returns the forge reference table with the current tech bonuses.
func (p *Planner) ForgeWiki() ([]economy.WikiRow, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	return economy.Wiki(p.libs, economy.ForgeBonusesFrom(p.resolve())), nil
}

// Mount returns a mount summon simulator. A non-positive level uses the profile's mount level.
func (p *Planner) Mount(level int) (economy.Mount, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return economy.Mount{}, ErrClosed
	}
	if level <= 0 {
		level = p.profile.Misc.MountLevel
	}
	return economy.NewMount(p.libs, level, economy.MountBonuses(p.resolve())), nil
}

// Skill returns a skill summon simulator. A non-positive level uses the profile's calculator level.
func (p *Planner) Skill(level int) (economy.Skill, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return economy.Skill{}, ErrClosed
	}
	if level <= 0 {
		level = p.profile.Misc.SkillCalculatorLevel
	}
	return economy.NewSkill(p.libs, level, economy.SkillBonuses(p.resolve())), nil
}

// UpgradeCosts returns the research bill of every tree. Ranks and research
// modifiers both follow the current tree mode.
func (p *Planner) UpgradeCosts() ([]techtree.TreeCost, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	ranks := techtree.Project(p.libs, p.profile.TechTree, p.mode)
	mods := techtree.ModifiersFrom(p.resolve())
	return techtree.UpgradeCosts(p.libs, ranks, mods), nil
}
