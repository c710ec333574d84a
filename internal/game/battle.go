package game

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/sengoku/internal/log"
)

var (
	ErrInvalidIndex       = errors.New("invalid card index")
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrWrongPhase         = errors.New("operation not allowed in this phase")
)

// BattleConfig holds everything needed to create a battle.
type BattleConfig struct {
	Player     *Combatant
	Enemy      *Combatant
	PlayerDeck Deck
	EnemyDeck  Deck
	Strategy   Strategy    // nil = PriorityStrategy
	Events     log.Sink    // extra event sink, may be nil
	Logger     *zap.Logger // diagnostics; nil = no-op
	MaxEnergy  int         // 0 = DefaultMaxEnergy
	HandSize   int         // 0 = DefaultHandSize
	MaxTurns   int         // 0 = DefaultMaxTurns
}

// Battle sequences one player-versus-enemy battle. All methods must be
// called from a single goroutine.
type Battle struct {
	ID     string
	Turn   int
	Phase  Phase
	Player *Combatant
	Enemy  *Combatant

	playerDeck Deck
	enemyDeck  Deck
	strategy   Strategy
	triggers   *Dispatcher
	resolver   *Resolver

	events     log.Sink
	memory     *log.MemoryLogger
	logger     *zap.Logger
	controller PlayerController
	ctx        context.Context
	seq        int

	maxEnergy int
	handSize  int
	maxTurns  int

	result  Result
	message string
}

// NewBattle creates a battle in the NotStarted phase.
func NewBattle(cfg BattleConfig) (*Battle, error) {
	if cfg.Player == nil || cfg.Enemy == nil {
		return nil, errors.New("battle needs both combatants")
	}
	if cfg.PlayerDeck == nil || cfg.EnemyDeck == nil {
		return nil, errors.New("battle needs both decks")
	}

	b := &Battle{
		ID:         uuid.NewString(),
		Phase:      PhaseNotStarted,
		Player:     cfg.Player,
		Enemy:      cfg.Enemy,
		playerDeck: cfg.PlayerDeck,
		enemyDeck:  cfg.EnemyDeck,
		strategy:   cfg.Strategy,
		events:     cfg.Events,
		memory:     log.NewMemoryLogger(),
		ctx:        context.Background(),
		maxEnergy:  cfg.MaxEnergy,
		handSize:   cfg.HandSize,
		maxTurns:   cfg.MaxTurns,
	}
	if b.strategy == nil {
		b.strategy = PriorityStrategy{}
	}
	if b.maxEnergy <= 0 {
		b.maxEnergy = DefaultMaxEnergy
	}
	if b.handSize <= 0 {
		b.handSize = DefaultHandSize
	}
	if b.maxTurns <= 0 {
		b.maxTurns = DefaultMaxTurns
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	b.logger = logger.With(zap.String("battle_id", b.ID))
	b.triggers = NewDispatcher(b)
	b.resolver = NewResolver(b.triggers, b, b.logger)
	return b, nil
}

// --- Phase operations ---

// StartBattle zeroes both blocks, fills the player's energy and draws both
// opening hands. It returns the first turn number.
func (b *Battle) StartBattle() (int, error) {
	if err := b.expect("start battle", PhaseNotStarted); err != nil {
		return 0, err
	}
	b.Turn = 1
	b.Player.Block = 0
	b.Enemy.Block = 0
	b.Player.Energy = b.maxEnergy

	b.log(log.NewBattleStartEvent(b.Player.Name, b.Enemy.Name))
	b.Phase = PhaseTurnStart
	b.drawToHandSize(b.Player)
	b.drawToHandSize(b.Enemy)
	return b.Turn, nil
}

// StartTurn begins the player's turn: block and energy reset, turn-start
// buffs fire, buffs age, and the hand refills.
func (b *Battle) StartTurn() error {
	if err := b.expect("start turn", PhaseTurnStart); err != nil {
		return err
	}
	b.log(log.NewTurnStartEvent(b.Turn, b.Phase.String(), b.Player.Name))
	b.beginTurn(b.Player, b.Enemy)
	b.drawToHandSize(b.Player)
	b.Phase = PhasePlayerActing
	return nil
}

// PlayCard plays the hand card at index for the player and returns the
// resolution text. On ErrInvalidIndex or ErrInsufficientEnergy nothing
// changes.
func (b *Battle) PlayCard(index int) (string, error) {
	if err := b.expect("play card", PhasePlayerActing); err != nil {
		return "", err
	}
	hand := b.playerDeck.Hand()
	if index < 0 || index >= len(hand) {
		err := fmt.Errorf("play card %d: %w (hand has %d cards)", index, ErrInvalidIndex, len(hand))
		b.log(log.NewInvalidPlayEvent(b.Turn, b.Phase.String(), b.Player.Name, err.Error()))
		return "", err
	}
	card := hand[index]
	if !b.Player.Spend(card.Cost) {
		err := fmt.Errorf("play %s: %w (cost %d, have %d)", card.Name(), ErrInsufficientEnergy, card.Cost, b.Player.Energy)
		b.log(log.NewInvalidPlayEvent(b.Turn, b.Phase.String(), b.Player.Name, err.Error()))
		return "", err
	}
	b.playerDeck.Take(index)
	b.log(log.NewPlayCardEvent(b.Turn, b.Phase.String(), b.Player.Name, card.Name(), card.Cost, b.Player.Energy))

	text := b.play(card, b.Player, b.Enemy)
	b.playerDeck.Discard(card)
	b.log(log.NewResolveEvent(b.Turn, b.Phase.String(), b.Player.Name, card.Name(), text))

	b.checkEnd()
	return text, nil
}

// EndTurn ends the player's turn and hands over to the enemy.
func (b *Battle) EndTurn() error {
	if err := b.expect("end turn", PhasePlayerActing); err != nil {
		return err
	}
	b.Phase = PhaseTurnEnd
	b.log(log.NewTurnEndEvent(b.Turn, b.Phase.String(), b.Player.Name))
	b.Phase = PhaseEnemyActing
	return nil
}

// EnemyAct runs the enemy's whole turn and then the end-of-round check.
// Enemy cards cost nothing. It returns the text of the enemy's action.
func (b *Battle) EnemyAct() (string, error) {
	if err := b.expect("enemy act", PhaseEnemyActing); err != nil {
		return "", err
	}
	b.log(log.NewTurnStartEvent(b.Turn, b.Phase.String(), b.Enemy.Name))
	b.beginTurn(b.Enemy, b.Player)
	b.drawToHandSize(b.Enemy)

	text := b.enemyPlay()
	b.log(log.NewTurnEndEvent(b.Turn, b.Phase.String(), b.Enemy.Name))

	b.Phase = PhaseCheckEnd
	if b.checkEnd() {
		return text, nil
	}
	if b.Turn >= b.maxTurns {
		b.finish(ResultDraw, fmt.Sprintf("Turn limit reached (%d turns)", b.maxTurns))
		b.log(log.NewTurnLimitEvent(b.Turn, b.maxTurns))
		return text, nil
	}
	b.Turn++
	b.Phase = PhaseTurnStart
	return text, nil
}

func (b *Battle) enemyPlay() string {
	action := b.strategy.Choose(EnemyView{
		Turn:     b.Turn,
		Hand:     b.enemyDeck.Hand(),
		Self:     viewOf(b.Enemy),
		Opponent: viewOf(b.Player),
	})

	card, fromHand := action.Card, false
	if card == nil && action.Index >= 0 {
		taken, ok := b.enemyDeck.Take(action.Index)
		if !ok {
			b.diag(fmt.Sprintf("enemy strategy chose hand index %d of %d", action.Index, len(b.enemyDeck.Hand())))
		}
		card, fromHand = taken, ok
	}
	if card == nil {
		b.log(log.NewEnemyWaitEvent(b.Turn, b.Phase.String(), b.Enemy.Name))
		return fmt.Sprintf("%s waits", b.Enemy.Name)
	}

	text := b.play(card, b.Enemy, b.Player)
	if fromHand {
		b.enemyDeck.Discard(card)
	}
	b.log(log.NewEnemyActionEvent(b.Turn, b.Phase.String(), b.Enemy.Name, card.Name(), text))
	return text
}

// beginTurn resets actor for its turn, fires its turn-start buffs and then
// ages every buff it holds.
func (b *Battle) beginTurn(actor, other *Combatant) {
	actor.ResetTurn(b.maxEnergy)
	for _, line := range b.triggers.OnTurnStart(actor, other) {
		b.logBuffLine(actor, line)
	}
	for _, expired := range actor.Buffs.Tick() {
		b.log(log.NewBuffExpiredEvent(b.Turn, b.Phase.String(), actor.Name, expired.Kind))
	}
}

// play fires card-played buffs and then resolves card. The returned text
// covers both.
func (b *Battle) play(card *CardInstance, user, target *Combatant) string {
	var parts []string
	for _, line := range b.triggers.OnCardPlayed(card, user, target) {
		b.logBuffLine(user, line)
		parts = append(parts, line)
	}
	parts = append(parts, b.resolver.Resolve(card, user, target))
	return strings.Join(parts, " / ")
}

func (b *Battle) logBuffLine(actor *Combatant, line string) {
	if strings.HasPrefix(line, "[diag] ") {
		b.diag(strings.TrimPrefix(line, "[diag] "))
		return
	}
	b.log(log.NewBuffFiredEvent(b.Turn, b.Phase.String(), actor.Name, line))
}

// --- End of battle ---

// IsOver reports whether the battle has ended and why. Simultaneous death
// is checked first.
func (b *Battle) IsOver() (bool, string) {
	over, _, msg := judge(b.Player, b.Enemy)
	if !over && b.Phase == PhaseOver {
		return true, b.message
	}
	return over, msg
}

func judge(player, enemy *Combatant) (bool, Result, string) {
	playerDead := player.HP <= 0
	enemyDead := enemy.HP <= 0
	switch {
	case playerDead && enemyDead:
		return true, ResultDraw, "Draw: both sides fell"
	case playerDead:
		return true, ResultLoss, fmt.Sprintf("Defeat: %s fell", player.Name)
	case enemyDead:
		return true, ResultWin, fmt.Sprintf("Victory: %s fell", enemy.Name)
	default:
		return false, ResultNone, ""
	}
}

// checkEnd moves the battle to Over if either side has fallen.
func (b *Battle) checkEnd() bool {
	if b.Phase == PhaseOver {
		return true
	}
	over, result, msg := judge(b.Player, b.Enemy)
	if !over {
		return false
	}
	b.finish(result, msg)
	switch result {
	case ResultWin:
		b.log(log.NewWinEvent(b.Turn, b.Phase.String(), b.Player.Name, b.Enemy.Name))
	case ResultLoss:
		b.log(log.NewLossEvent(b.Turn, b.Phase.String(), b.Player.Name, b.Enemy.Name))
	default:
		b.log(log.NewTieEvent(b.Turn, b.Phase.String()))
	}
	return true
}

func (b *Battle) finish(result Result, msg string) {
	b.result = result
	b.message = msg
	b.Phase = PhaseOver
}

// Outcome returns the result, or ResultNone while the battle is running.
func (b *Battle) Outcome() Result {
	return b.result
}

// --- Drawing ---

// DrawFor draws up to n cards for c from its own deck and returns how many
// were drawn.
func (b *Battle) DrawFor(c *Combatant, n int) int {
	deck := b.deckOf(c)
	if deck == nil || n <= 0 {
		return 0
	}
	before := deck.Shuffles()
	drawn := deck.Draw(n)
	if deck.Shuffles() > before {
		b.log(log.NewShuffleEvent(b.Turn, b.Phase.String(), c.Name))
	}
	if c == b.Player {
		for _, card := range drawn {
			b.log(log.NewDrawEvent(b.Turn, b.Phase.String(), c.Name, card.Name()))
		}
	}
	return len(drawn)
}

func (b *Battle) drawToHandSize(c *Combatant) {
	deck := b.deckOf(c)
	if need := b.handSize - len(deck.Hand()); need > 0 {
		b.DrawFor(c, need)
	}
}

func (b *Battle) deckOf(c *Combatant) Deck {
	switch c {
	case b.Player:
		return b.playerDeck
	case b.Enemy:
		return b.enemyDeck
	default:
		return nil
	}
}

// --- Read surface ---

// Hand returns the player's current hand.
func (b *Battle) Hand() []*CardInstance {
	return b.playerDeck.Hand()
}

// EnemyHand returns the enemy's current hand.
func (b *Battle) EnemyHand() []*CardInstance {
	return b.enemyDeck.Hand()
}

// Snapshot returns the display state of the battle.
func (b *Battle) Snapshot() Snapshot {
	return Snapshot{
		BattleID:      b.ID,
		Turn:          b.Turn,
		Phase:         b.Phase.String(),
		Player:        viewOf(b.Player),
		Enemy:         viewOf(b.Enemy),
		Hand:          handView(b.playerDeck.Hand(), b.Player.Energy, b.Phase == PhasePlayerActing),
		EnemyHandSize: len(b.enemyDeck.Hand()),
		Over:          b.Phase == PhaseOver,
		Result:        b.result,
		Message:       b.message,
	}
}

// Events returns every event logged so far.
func (b *Battle) Events() []log.GameEvent {
	return b.memory.Events()
}

// --- Logging ---

func (b *Battle) log(event log.GameEvent) {
	b.seq++
	event.Seq = b.seq
	b.memory.Log(event)
	if b.events != nil {
		b.events.Log(event)
	}
	if b.controller != nil {
		_ = b.controller.Notify(b.ctx, event)
	}
}

func (b *Battle) diag(details string) {
	b.logger.Warn("battle diagnostic",
		zap.Int("turn", b.Turn),
		zap.String("phase", b.Phase.String()),
		zap.String("details", details),
	)
	b.log(log.NewDiagnosticEvent(b.Turn, b.Phase.String(), details))
}

func (b *Battle) expect(op string, want Phase) error {
	if b.Phase == want {
		return nil
	}
	err := fmt.Errorf("%s during %s: %w", op, b.Phase, ErrWrongPhase)
	b.logger.Debug("rejected out-of-phase call", zap.String("op", op), zap.String("phase", b.Phase.String()))
	return err
}
