package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/sengoku/internal/game"
	"github.com/peterkuimelis/sengoku/internal/log"
)

// Data is the loaded card table and deck list.
type Data struct {
	Cards *game.CardTable
	Decks *game.DeckFile
}

// LoadData loads the card and deck files named in cfg.
func LoadData(cfg DataConfig) (*Data, error) {
	cards, err := game.LoadCardTable(cfg.Cards)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	decks, err := game.LoadDeckFile(cfg.Decks)
	if err != nil {
		return nil, fmt.Errorf("load decks: %w", err)
	}
	return &Data{Cards: cards, Decks: decks}, nil
}

// Setup resolves deck names and maps the configuration onto a battle setup.
func (c *Config) Setup(data *Data) (game.Setup, error) {
	playerDeck, err := data.Decks.Deck(c.Player.Deck)
	if err != nil {
		return game.Setup{}, fmt.Errorf("player deck: %w", err)
	}
	enemyDeck, err := data.Decks.Deck(c.Enemy.Deck)
	if err != nil {
		return game.Setup{}, fmt.Errorf("enemy deck: %w", err)
	}
	return game.Setup{
		PlayerName:  c.Player.Name,
		PlayerMaxHP: c.Player.MaxHP,
		PlayerDeck:  playerDeck,
		EnemyName:   c.Enemy.Name,
		EnemyMaxHP:  c.Enemy.MaxHP,
		EnemyDeck:   enemyDeck,
		EnemyPolicy: c.Enemy.Policy,
		Seed:        c.Battle.Seed,
		MaxEnergy:   c.Battle.MaxEnergy,
		HandSize:    c.Battle.HandSize,
		MaxTurns:    c.Battle.MaxTurns,
	}, nil
}

// NewBattle builds a ready-to-start battle from the configuration.
func (c *Config) NewBattle(data *Data, events log.Sink, logger *zap.Logger) (*game.Battle, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	setup, err := c.Setup(data)
	if err != nil {
		return nil, err
	}
	b, err := game.NewBattleFromSetup(data.Cards, setup, events, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("battle created",
		zap.String("battle_id", b.ID),
		zap.String("player_deck", c.Player.Deck),
		zap.String("enemy_deck", c.Enemy.Deck),
		zap.String("policy", c.Enemy.Policy),
	)
	return b, nil
}
