package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/sengoku/internal/log"
)

func handOf(specs ...*CardSpec) []*CardInstance {
	hand := make([]*CardInstance, len(specs))
	for i, spec := range specs {
		hand[i] = NewCardInstance(spec, i+1)
	}
	return hand
}

func TestPriorityStrategy(t *testing.T) {
	tests := []struct {
		name string
		hand []*CardInstance
		want EnemyAction
	}{
		{"attack first", handOf(skillCard("Roar", 0), defenseCard("Brace", 0, 4), attackCard("Claw", 0, 5)), FromHand(2)},
		{"defense without attack", handOf(skillCard("Roar", 0), defenseCard("Brace", 0, 4)), FromHand(1)},
		{"skills only", handOf(skillCard("Roar", 0)), Wait()},
		{"empty hand", nil, Wait()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriorityStrategy{}.Choose(EnemyView{Hand: tt.hand})
			assert.Equal(t, tt.want, got)
		})
	}
	assert.True(t, Wait().IsWait())
	assert.False(t, FromHand(0).IsWait())
}

func TestRandomStrategy(t *testing.T) {
	s := NewRandomStrategy(rand.New(rand.NewSource(7)))
	seen := map[string]int{}
	for range 300 {
		action := s.Choose(EnemyView{Hand: handOf(attackCard("Claw", 0, 5))})
		require.NotNil(t, action.Card)
		assert.False(t, action.IsWait())
		assert.Equal(t, -1, action.Index, "random moves never use the hand")
		seen[action.Card.Spec.ID]++
	}
	assert.Len(t, seen, 3)
	for _, id := range []string{"EN_STRIKE", "EN_DOUBLE_HIT", "EN_GUARD"} {
		assert.Positive(t, seen[id], id)
	}
}

func TestRandomEnemyMoves(t *testing.T) {
	r, _ := newTestResolver(t)
	user := NewCombatant("Bandit", 30)
	target := NewCombatant("Player", 30)

	r.Resolve(NewCardInstance(enemyStrike, -1), user, target)
	assert.Equal(t, 22, target.HP)
	r.Resolve(NewCardInstance(enemyDoubleHit, -1), user, target)
	assert.Equal(t, 14, target.HP)
	r.Resolve(NewCardInstance(enemyGuard, -1), user, target)
	assert.Equal(t, 6, user.Block)
}

func TestNewStrategy(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	s, err := NewStrategy("", rng)
	require.NoError(t, err)
	assert.IsType(t, PriorityStrategy{}, s)

	s, err = NewStrategy(" Random ", rng)
	require.NoError(t, err)
	assert.IsType(t, &RandomStrategy{}, s)

	_, err = NewStrategy(PolicyRandom, nil)
	assert.Error(t, err)
	_, err = NewStrategy("berserk", rng)
	assert.Error(t, err)
}

func TestRandomPolicyBattle(t *testing.T) {
	tb := newTestBattle(t, 30, nil, nil, func(cfg *BattleConfig) {
		cfg.Strategy = NewRandomStrategy(rand.New(rand.NewSource(3)))
	})
	tb.toPlayerTurn(t)
	tb.nextRound(t)

	assert.Len(t, tb.events.EventsOfType(log.EventEnemyAction), 1)
	assert.Empty(t, tb.EnemyHand())
}
