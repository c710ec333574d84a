package game

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/peterkuimelis/sengoku/internal/log"
)

// Setup describes a battle in terms of card ids, before any deck is built.
type Setup struct {
	PlayerName  string
	PlayerMaxHP int
	PlayerDeck  []string
	EnemyName   string
	EnemyMaxHP  int
	EnemyDeck   []string
	EnemyPolicy string
	Seed        int64 // 0 = time-based
	MaxEnergy   int
	HandSize    int
	MaxTurns    int
}

// NewBattleFromSetup builds both decks from table and creates the battle.
// Unknown card ids are logged and left out of the deck.
func NewBattleFromSetup(table *CardTable, s Setup, events log.Sink, logger *zap.Logger) (*Battle, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	strategy, err := NewStrategy(s.EnemyPolicy, rng)
	if err != nil {
		return nil, err
	}

	nextID := 0
	ids := func() int {
		nextID++
		return nextID
	}
	playerCards := instantiate(table, s.PlayerDeck, ids, logger.With(zap.String("side", "player")))
	enemyCards := instantiate(table, s.EnemyDeck, ids, logger.With(zap.String("side", "enemy")))

	return NewBattle(BattleConfig{
		Player:     NewCombatant(s.PlayerName, s.PlayerMaxHP),
		Enemy:      NewCombatant(s.EnemyName, s.EnemyMaxHP),
		PlayerDeck: NewPile(playerCards, rng),
		EnemyDeck:  NewPile(enemyCards, rng),
		Strategy:   strategy,
		Events:     events,
		Logger:     logger,
		MaxEnergy:  s.MaxEnergy,
		HandSize:   s.HandSize,
		MaxTurns:   s.MaxTurns,
	})
}

func instantiate(table *CardTable, ids []string, nextID func() int, logger *zap.Logger) []*CardInstance {
	cards, errs := table.Instantiate(ids, nextID)
	for _, err := range errs {
		logger.Warn("skipping card", zap.Error(err))
	}
	return cards
}
