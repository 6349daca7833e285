package duel

import "fmt"

// Spell is one catalog entry. Instant fields apply when the spell is cast;
// Tick fields and Armor apply once per turn for Duration turns.
type Spell struct {
	ID   EffectID
	Name string
	Cost int

	Damage   int
	Heal     int
	ManaGain int

	Duration   int
	TickDamage int
	TickMana   int
	Armor      int
}

// Lasting reports whether the spell installs a timed effect.
func (s Spell) Lasting() bool { return s.Duration > 0 }

func (s Spell) validate() error {
	if s.ID >= NumEffects {
		return fmt.Errorf("%w: %s", ErrUnknownSpell, s.ID)
	}
	for _, v := range [...]int{s.Cost, s.Damage, s.Heal, s.ManaGain, s.Duration, s.TickDamage, s.TickMana, s.Armor} {
		if v < 0 {
			return fmt.Errorf("%w: %s has a negative field", ErrInvalidSpell, s.ID)
		}
	}
	if s.Duration == 0 && (s.TickDamage != 0 || s.TickMana != 0 || s.Armor != 0) {
		return fmt.Errorf("%w: %s has per-turn fields but no duration", ErrInvalidSpell, s.ID)
	}

	return nil
}

// Catalog is the ordered, validated table of castable spells.
// The zero value is an empty catalog.
type Catalog struct {
	spells []Spell
	index  [NumEffects]int // position+1 in spells; 0 = absent
}

// NewCatalog validates spells and returns a catalog that keeps their order.
func NewCatalog(spells ...Spell) (*Catalog, error) {
	c := &Catalog{spells: make([]Spell, 0, len(spells))}
	for _, s := range spells {
		if err := s.validate(); err != nil {
			return nil, err
		}
		if c.index[s.ID] != 0 {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSpell, s.ID)
		}
		if s.Name == "" {
			s.Name = s.ID.String()
		}
		c.spells = append(c.spells, s)
		c.index[s.ID] = len(c.spells)
	}

	return c, nil
}

// DefaultCatalog returns the five reference spells.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		Spell{ID: MagicMissile, Cost: 53, Damage: 4},
		Spell{ID: Drain, Cost: 73, Damage: 2, Heal: 2},
		Spell{ID: Shield, Cost: 113, Duration: 6, Armor: 7},
		Spell{ID: Poison, Cost: 173, Duration: 6, TickDamage: 3},
		Spell{ID: Recharge, Cost: 229, Duration: 5, TickMana: 101},
	)
	if err != nil {
		panic(err) // static table
	}

	return c
}

// Spells returns a copy of the entries in catalog order.
func (c *Catalog) Spells() []Spell {
	out := make([]Spell, len(c.spells))
	copy(out, c.spells)

	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.spells) }

// Lookup returns the entry for id.
func (c *Catalog) Lookup(id EffectID) (Spell, bool) {
	if id >= NumEffects || c.index[id] == 0 {
		return Spell{}, false
	}

	return c.spells[c.index[id]-1], true
}

// ByName returns the entry whose Name matches.
func (c *Catalog) ByName(name string) (Spell, bool) {
	for _, s := range c.spells {
		if s.Name == name {
			return s, true
		}
	}

	return Spell{}, false
}

// Subset returns a catalog restricted to ids, in the receiver's order.
func (c *Catalog) Subset(ids ...EffectID) (*Catalog, error) {
	var want [NumEffects]bool
	for _, id := range ids {
		if _, ok := c.Lookup(id); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSpell, id)
		}
		want[id] = true
	}
	picked := make([]Spell, 0, len(ids))
	for _, s := range c.spells {
		if want[s.ID] {
			picked = append(picked, s)
		}
	}

	return NewCatalog(picked...)
}
