package model

import (
	"maps"
	"slices"
)

// Slot is an equipment slot on the player profile.
type Slot string

const (
	SlotWeapon   Slot = "Weapon"
	SlotHelmet   Slot = "Helmet"
	SlotBody     Slot = "Body"
	SlotGloves   Slot = "Gloves"
	SlotBelt     Slot = "Belt"
	SlotNecklace Slot = "Necklace"
	SlotRing     Slot = "Ring"
	SlotShoe     Slot = "Shoe"
)

// Slots lists every equipment slot in display order.
// Aggregation walks slots in this order so floating sums stay reproducible.
var Slots = []Slot{
	SlotWeapon, SlotHelmet, SlotBody, SlotGloves,
	SlotBelt, SlotNecklace, SlotRing, SlotShoe,
}

// slotItemTypes maps profile slots to the item type names used by the game data.
var slotItemTypes = map[Slot]string{
	SlotWeapon:   "Weapon",
	SlotHelmet:   "Helmet",
	SlotBody:     "Armour",
	SlotGloves:   "Gloves",
	SlotBelt:     "Belt",
	SlotNecklace: "Necklace",
	SlotRing:     "Ring",
	SlotShoe:     "Shoes",
}

// ItemType returns the game-data type name for the slot ("" for unknown slots).
func (s Slot) ItemType() string {
	return slotItemTypes[s]
}

// TreeName identifies one of the three tech trees.
type TreeName string

const (
	TreeForge         TreeName = "Forge"
	TreePower         TreeName = "Power"
	TreeSkillsPetTech TreeName = "SkillsPetTech"
)

// Trees lists the tech trees in resolution order.
var Trees = []TreeName{TreeForge, TreePower, TreeSkillsPetTech}

// SkinRef references a skin library entry.
type SkinRef struct {
	Type string `json:"type"`
	Idx  int    `json:"idx"`
}

// SecondaryRoll is a rolled secondary stat on an item.
// Value is a percentage in [0, 100].
type SecondaryRoll struct {
	StatID string  `json:"statId"`
	Value  float64 `json:"value"`
}

// EquippedItem is an item sitting in one of the profile slots.
type EquippedItem struct {
	Age       int             `json:"age"`
	Idx       int             `json:"idx"`
	Level     int             `json:"level"`
	Skin      *SkinRef        `json:"skin,omitempty"`
	Secondary []SecondaryRoll `json:"secondary,omitempty"`
}

// Clone returns a deep copy of the item. Nil stays nil.
func (it *EquippedItem) Clone() *EquippedItem {
	if it == nil {
		return nil
	}
	c := *it
	if it.Skin != nil {
		skin := *it.Skin
		c.Skin = &skin
	}
	c.Secondary = slices.Clone(it.Secondary)
	return &c
}

// Items maps slots to equipped items. A nil entry means an empty slot.
type Items map[Slot]*EquippedItem

// Clone returns a deep copy of the item set.
func (items Items) Clone() Items {
	if items == nil {
		return nil
	}
	c := make(Items, len(items))
	for slot, it := range items {
		c[slot] = it.Clone()
	}
	return c
}

// TechTree holds node ranks per tree: tree -> node id -> rank.
type TechTree map[TreeName]map[int]int

// Rank returns the stored rank of a node, 0 when absent.
func (t TechTree) Rank(tree TreeName, nodeID int) int {
	return t[tree][nodeID]
}

// Clone returns a deep copy of the rank assignment.
func (t TechTree) Clone() TechTree {
	if t == nil {
		return nil
	}
	c := make(TechTree, len(t))
	for tree, ranks := range t {
		c[tree] = maps.Clone(ranks)
	}
	return c
}

// MountConfig is the active mount selection.
type MountConfig struct {
	Rarity string `json:"rarity"`
	Level  int    `json:"level"`
}

// Clone returns a copy of the mount config. Nil stays nil.
func (m *MountConfig) Clone() *MountConfig {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

// MountState wraps the optional active mount.
type MountState struct {
	Active *MountConfig `json:"active,omitempty"`
}

// PetConfig is an equipped pet.
type PetConfig struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
}

// SkillConfig is an equipped skill.
type SkillConfig struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
}

// Misc holds small persisted calculator inputs.
type Misc struct {
	ForgeLevel             int   `json:"forgeLevel,omitempty"`
	MountLevel             int   `json:"mountLevel,omitempty"`
	SkillCalculatorLevel   int   `json:"skillCalculatorLevel,omitempty"`
	SkillCalculatorTickets int64 `json:"skillCalculatorTickets,omitempty"`
}

// Profile is the persisted player state consumed by the calculators.
type Profile struct {
	Name     string        `json:"name,omitempty"`
	Items    Items         `json:"items"`
	TechTree TechTree      `json:"techTree"`
	Mount    MountState    `json:"mount"`
	Pets     []PetConfig   `json:"pets,omitempty"`
	Skills   []SkillConfig `json:"skills,omitempty"`
	Misc     Misc          `json:"misc"`
}

// NewProfile returns an empty profile with all trees initialised.
func NewProfile(name string) Profile {
	tt := make(TechTree, len(Trees))
	for _, tree := range Trees {
		tt[tree] = make(map[int]int)
	}
	return Profile{
		Name:     name,
		Items:    make(Items, len(Slots)),
		TechTree: tt,
	}
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	c := p
	c.Items = p.Items.Clone()
	c.TechTree = p.TechTree.Clone()
	c.Mount = MountState{Active: p.Mount.Active.Clone()}
	c.Pets = slices.Clone(p.Pets)
	c.Skills = slices.Clone(p.Skills)
	return c
}
