package game

import (
	"fmt"
	"math/rand"
	"strings"
)

// EnemyView is what a strategy may look at when choosing the enemy's play.
type EnemyView struct {
	Turn     int
	Hand     []*CardInstance
	Self     CombatantView
	Opponent CombatantView
}

// EnemyAction is a strategy's decision. Index selects a hand card; Card, when
// set, is a card synthesized by the strategy that does not come from the
// hand. Neither set means the enemy waits.
type EnemyAction struct {
	Index int
	Card  *CardInstance
}

// Wait is the no-op action.
func Wait() EnemyAction {
	return EnemyAction{Index: -1}
}

// FromHand plays the hand card at index.
func FromHand(index int) EnemyAction {
	return EnemyAction{Index: index}
}

// IsWait reports whether the action does nothing.
func (a EnemyAction) IsWait() bool {
	return a.Card == nil && a.Index < 0
}

// Strategy picks the enemy's action for one turn.
type Strategy interface {
	Choose(view EnemyView) EnemyAction
}

// PriorityStrategy plays the first attack card in hand, else the first
// defense card, else waits.
type PriorityStrategy struct{}

func (PriorityStrategy) Choose(view EnemyView) EnemyAction {
	if i := firstOfCategory(view.Hand, CategoryAttack); i >= 0 {
		return FromHand(i)
	}
	if i := firstOfCategory(view.Hand, CategoryDefense); i >= 0 {
		return FromHand(i)
	}
	return Wait()
}

func firstOfCategory(hand []*CardInstance, cat Category) int {
	for i, c := range hand {
		if c.Category == cat {
			return i
		}
	}
	return -1
}

// Fixed moves of the randomized enemy. They never touch the enemy's hand.
var (
	enemyStrike = &CardSpec{
		ID: "EN_STRIKE", Name: "Strike", Category: CategoryAttack, Power: 8,
		Instructions: []Instruction{{Op: "deal_damage", Value: 8}},
	}
	enemyDoubleHit = &CardSpec{
		ID: "EN_DOUBLE_HIT", Name: "Double Hit", Category: CategoryAttack, Power: 4,
		Instructions: []Instruction{{Op: "deal_damage", Value: 4}, {Op: "deal_damage", Value: 4}},
	}
	enemyGuard = &CardSpec{
		ID: "EN_GUARD", Name: "Guard", Category: CategoryDefense, Power: 6,
		Instructions: []Instruction{{Op: "gain_block", Value: 6}},
	}
	randomMoves = []*CardSpec{enemyStrike, enemyDoubleHit, enemyGuard}
)

// RandomStrategy picks uniformly among strike 8, double hit 4x2 and guard 6.
type RandomStrategy struct {
	rng *rand.Rand
}

func NewRandomStrategy(rng *rand.Rand) *RandomStrategy {
	return &RandomStrategy{rng: rng}
}

func (s *RandomStrategy) Choose(view EnemyView) EnemyAction {
	spec := randomMoves[s.rng.Intn(len(randomMoves))]
	return EnemyAction{Index: -1, Card: NewCardInstance(spec, -1)}
}

// Strategy names accepted by NewStrategy.
const (
	PolicyPriority = "priority"
	PolicyRandom   = "random"
)

// NewStrategy returns the strategy for a policy name. An empty name selects
// the priority policy.
func NewStrategy(policy string, rng *rand.Rand) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case "", PolicyPriority:
		return PriorityStrategy{}, nil
	case PolicyRandom:
		if rng == nil {
			return nil, fmt.Errorf("random policy needs a random source")
		}
		return NewRandomStrategy(rng), nil
	default:
		return nil, fmt.Errorf("unknown enemy policy %q", policy)
	}
}
