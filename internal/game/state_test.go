package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbsorbDamageLaw(t *testing.T) {
	tests := []struct {
		raw, block          int
		wantDealt, wantLeft int
	}{
		{raw: 6, block: 0, wantDealt: 6, wantLeft: 0},
		{raw: 8, block: 5, wantDealt: 3, wantLeft: 0},
		{raw: 4, block: 10, wantDealt: 0, wantLeft: 6},
		{raw: 7, block: 7, wantDealt: 0, wantLeft: 0},
		{raw: 0, block: 3, wantDealt: 0, wantLeft: 3},
		{raw: -2, block: 3, wantDealt: 0, wantLeft: 3},
	}
	for _, tt := range tests {
		dealt, left := AbsorbDamage(tt.raw, tt.block)
		assert.Equal(t, tt.wantDealt, dealt, "raw %d block %d", tt.raw, tt.block)
		assert.Equal(t, tt.wantLeft, left, "raw %d block %d", tt.raw, tt.block)
		assert.Equal(t, max(0, tt.raw), dealt+(tt.block-left), "absorbed + dealt = raw")
	}
}

func TestTakeDamageScenario(t *testing.T) {
	c := NewCombatant("Target", 10)

	assert.Equal(t, 6, c.TakeDamage(6))
	assert.Equal(t, 4, c.HP)
	assert.Equal(t, 0, c.Block)

	c.GainBlock(5)
	assert.Equal(t, 3, c.TakeDamage(8))
	assert.Equal(t, 1, c.HP)
	assert.Equal(t, 0, c.Block)

	assert.Equal(t, 20, c.TakeDamage(20), "dealt is not capped by remaining health")
	assert.Equal(t, 0, c.HP)
	assert.False(t, c.Alive())
}

func TestTakeHitReportsAbsorbed(t *testing.T) {
	c := NewCombatant("Target", 10)
	c.GainBlock(4)
	hit := c.takeHit(6)
	assert.Equal(t, Hit{Raw: 6, Absorbed: 4, Dealt: 2}, hit)
}

func TestCombatantClamps(t *testing.T) {
	c := NewCombatant("C", 0)
	assert.Equal(t, 1, c.MaxHP)

	c.GainBlock(-3)
	assert.Equal(t, 0, c.Block)

	c.ResetTurn(3)
	assert.False(t, c.Spend(4))
	assert.Equal(t, 3, c.Energy)
	assert.True(t, c.Spend(3))
	assert.Equal(t, 0, c.Energy)
	assert.True(t, c.Spend(0))

	c.GainBlock(5)
	c.ResetTurn(3)
	assert.Equal(t, 0, c.Block, "block does not carry over")
	assert.Equal(t, 3, c.Energy)
}
