package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/sengoku/internal/log"
)

// ScriptedController is a PlayerController that follows a predefined script
// of commands. Once the script runs out it ends every turn.
type ScriptedController struct {
	t        *testing.T
	commands []Command
	pos      int
	events   []log.GameEvent
}

func NewScriptedController(t *testing.T) *ScriptedController {
	return &ScriptedController{t: t}
}

// Play queues playing the hand card at index.
func (sc *ScriptedController) Play(index int) *ScriptedController {
	sc.commands = append(sc.commands, PlayCommand(index))
	return sc
}

func (sc *ScriptedController) EndTurn() *ScriptedController {
	sc.commands = append(sc.commands, EndTurnCommand())
	return sc
}

func (sc *ScriptedController) ChooseCommand(ctx context.Context, snap Snapshot) (Command, error) {
	if sc.pos >= len(sc.commands) {
		return EndTurnCommand(), nil
	}
	cmd := sc.commands[sc.pos]
	sc.pos++
	return cmd, nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.events = append(sc.events, event)
	return nil
}

// --- Card builders ---

func attackCard(id string, cost, power int, tags ...string) *CardSpec {
	return &CardSpec{ID: id, Name: id, Category: CategoryAttack, Cost: cost, Power: power, Tags: tags}
}

func defenseCard(id string, cost, power int, tags ...string) *CardSpec {
	return &CardSpec{ID: id, Name: id, Category: CategoryDefense, Cost: cost, Power: power, Tags: tags}
}

func skillCard(id string, cost int, tags ...string) *CardSpec {
	return &CardSpec{ID: id, Name: id, Category: CategorySkill, Cost: cost, Tags: tags}
}

func opsCard(id string, cat Category, cost int, ins ...Instruction) *CardSpec {
	return &CardSpec{ID: id, Name: id, Category: cat, Cost: cost, Instructions: ins}
}

func instance(spec *CardSpec) *CardInstance {
	return NewCardInstance(spec, 1)
}

// stackedPile builds an unshuffled pile whose first spec is drawn first.
func stackedPile(specs ...*CardSpec) *Pile {
	cards := make([]*CardInstance, len(specs))
	for i, spec := range specs {
		cards[len(specs)-1-i] = NewCardInstance(spec, i+1)
	}
	return NewPile(cards, nil)
}

// fakeDrawer counts draw requests per combatant.
type fakeDrawer struct {
	drawn map[*Combatant]int
}

func newFakeDrawer() *fakeDrawer {
	return &fakeDrawer{drawn: make(map[*Combatant]int)}
}

func (d *fakeDrawer) DrawFor(c *Combatant, n int) int {
	d.drawn[c] += n
	return n
}

type testBattle struct {
	*Battle
	events *log.MemoryLogger
}

// newTestBattle creates an unshuffled battle. Player and enemy both start
// at hp health.
func newTestBattle(t *testing.T, hp int, playerDeck, enemyDeck []*CardSpec, opts ...func(*BattleConfig)) *testBattle {
	t.Helper()
	events := log.NewMemoryLogger()
	cfg := BattleConfig{
		Player:     NewCombatant("Player", hp),
		Enemy:      NewCombatant("Enemy", hp),
		PlayerDeck: stackedPile(playerDeck...),
		EnemyDeck:  stackedPile(enemyDeck...),
		Events:     events,
		Logger:     zaptest.NewLogger(t),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	b, err := NewBattle(cfg)
	require.NoError(t, err)
	return &testBattle{Battle: b, events: events}
}

// toPlayerTurn starts the battle and the first player turn.
func (tb *testBattle) toPlayerTurn(t *testing.T) {
	t.Helper()
	turn, err := tb.StartBattle()
	require.NoError(t, err)
	require.Equal(t, 1, turn)
	require.NoError(t, tb.StartTurn())
}

// nextRound ends the player's turn, lets the enemy act and starts the next
// player turn.
func (tb *testBattle) nextRound(t *testing.T) {
	t.Helper()
	require.NoError(t, tb.EndTurn())
	_, err := tb.EnemyAct()
	require.NoError(t, err)
	if tb.Phase != PhaseOver {
		require.NoError(t, tb.StartTurn())
	}
}
