package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/sengoku/internal/game"
	"github.com/peterkuimelis/sengoku/internal/log"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Battle.MaxEnergy)
	assert.Equal(t, 5, cfg.Battle.HandSize)
	assert.Equal(t, 200, cfg.Battle.MaxTurns)
	assert.Equal(t, "Hideyoshi", cfg.Player.Name)
	assert.Equal(t, 60, cfg.Player.MaxHP)
	assert.Equal(t, "BANDITS", cfg.Enemy.Deck)
	assert.Equal(t, "priority", cfg.Enemy.Policy)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SENGOKU_BATTLE_MAX_TURNS", "12")
	t.Setenv("SENGOKU_ENEMY_POLICY", "random")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Battle.MaxTurns)
	assert.Equal(t, "random", cfg.Enemy.Policy)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sengoku.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
battle:
  hand_size: 4
  seed: 99
player:
  name: Nobunaga
  deck: ODA
logging:
  format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Battle.HandSize)
	assert.Equal(t, int64(99), cfg.Battle.Seed)
	assert.Equal(t, "Nobunaga", cfg.Player.Name)
	assert.Equal(t, "ODA", cfg.Player.Deck)
	assert.Equal(t, 60, cfg.Player.MaxHP, "unset keys keep defaults")
	assert.Equal(t, "json", cfg.Logging.Format)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Battle.MaxEnergy = 0
	cfg.Enemy.MaxHP = -3
	cfg.Enemy.Policy = "berserk"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "battle.max_energy")
	assert.Contains(t, err.Error(), "enemy.max_hp")
	assert.Contains(t, err.Error(), "enemy.policy")

	t.Setenv("SENGOKU_BATTLE_HAND_SIZE", "0")
	_, err = Load("")
	assert.Error(t, err)
}

func TestNewBattle(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Battle.Seed = 11
	data, err := LoadData(DataConfig{})
	require.NoError(t, err)

	events := log.NewMemoryLogger()
	b, err := cfg.NewBattle(data, events, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "Hideyoshi", b.Player.Name)
	assert.Equal(t, 40, b.Enemy.MaxHP)
	assert.Equal(t, game.PhaseNotStarted, b.Phase)

	_, err = b.StartBattle()
	require.NoError(t, err)
	assert.Len(t, b.Hand(), 5)
	assert.Len(t, events.EventsOfType(log.EventBattleStart), 1)

	cfg.Player.Deck = "NOBODY"
	_, err = cfg.NewBattle(data, nil, nil)
	assert.ErrorContains(t, err, "player deck")
}

func TestNewLogger(t *testing.T) {
	for _, lc := range []LoggingConfig{
		{Level: "debug", Format: "console"},
		{Level: "warn", Format: "json"},
		{Level: "bogus"},
	} {
		logger, err := NewLogger(lc)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}

	logger, err := NewLogger(LoggingConfig{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))
}
