package game

import "fmt"

const (
	DefaultMaxEnergy = 3
	DefaultHandSize  = 5
	DefaultMaxTurns  = 200
)

// Combatant holds one side's numeric battle state and its buffs.
// Every mutation clamps at zero.
type Combatant struct {
	Name   string
	MaxHP  int
	HP     int
	Block  int
	Energy int
	Buffs  *BuffStore
}

// NewCombatant creates a combatant at full health.
func NewCombatant(name string, maxHP int) *Combatant {
	if maxHP < 1 {
		maxHP = 1
	}
	return &Combatant{
		Name:  name,
		MaxHP: maxHP,
		HP:    maxHP,
		Buffs: NewBuffStore(),
	}
}

func (c *Combatant) String() string {
	return fmt.Sprintf("%s HP %d/%d | Block %d | Energy %d", c.Name, c.HP, c.MaxHP, c.Block, c.Energy)
}

// AbsorbDamage applies raw damage against block. It returns the damage
// that gets through and the block left over.
func AbsorbDamage(raw, block int) (dealt, remainingBlock int) {
	if raw < 0 {
		raw = 0
	}
	if block < 0 {
		block = 0
	}
	absorbed := min(block, raw)
	return raw - absorbed, block - absorbed
}

// Hit describes one application of damage.
type Hit struct {
	Raw      int
	Absorbed int
	Dealt    int
}

// TakeDamage runs raw damage through block and then health, returning the
// damage that actually reduced health.
func (c *Combatant) TakeDamage(raw int) int {
	return c.takeHit(raw).Dealt
}

func (c *Combatant) takeHit(raw int) Hit {
	if raw < 0 {
		raw = 0
	}
	dealt, remaining := AbsorbDamage(raw, c.Block)
	hit := Hit{Raw: raw, Absorbed: c.Block - remaining, Dealt: dealt}
	c.Block = remaining
	c.HP = max(0, c.HP-dealt)
	return hit
}

// GainBlock adds n block. Negative n is ignored.
func (c *Combatant) GainBlock(n int) {
	if n <= 0 {
		return
	}
	c.Block += n
}

// Spend deducts cost energy. It reports false and changes nothing when
// energy is short.
func (c *Combatant) Spend(cost int) bool {
	if cost < 0 {
		cost = 0
	}
	if c.Energy < cost {
		return false
	}
	c.Energy -= cost
	return true
}

// ResetTurn clears block (no carry-over) and refills energy.
func (c *Combatant) ResetTurn(maxEnergy int) {
	c.Block = 0
	c.Energy = max(0, maxEnergy)
}

// Alive reports whether the combatant still has health.
func (c *Combatant) Alive() bool {
	return c.HP > 0
}
