package game

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCardTable(t *testing.T) {
	table, err := DefaultCardTable()
	require.NoError(t, err)

	for i := 1; i <= 32; i++ {
		id := fmt.Sprintf("S%d", i)
		spec, err := table.Lookup(id)
		require.NoError(t, err, id)
		assert.NotEmpty(t, spec.Name, id)
		assert.NotNil(t, spec.Tags, id)
	}
	for _, id := range []string{"H2", "TC_ASHIGARU_COMMANDER", "TC_DEF_FORMATION", "E1", "E4"} {
		_, err := table.Lookup(id)
		assert.NoError(t, err, id)
	}
	assert.Equal(t, len(table.IDs()), table.Len())

	shield, err := table.Lookup("SAMURAI_SHIELD")
	require.NoError(t, err)
	assert.Equal(t, CategoryDefense, shield.Category, "block is read as defense")
}

func TestDefaultCardsHaveKnownOps(t *testing.T) {
	table, err := DefaultCardTable()
	require.NoError(t, err)

	for _, id := range table.IDs() {
		spec, _ := table.Lookup(id)
		for _, ins := range spec.Instructions {
			_, ok := opsTable[normalizeOp(ins.Op)]
			assert.True(t, ok, "%s uses op %q", id, ins.Op)
		}
	}
}

func TestDefaultDecksUseKnownCards(t *testing.T) {
	table, err := DefaultCardTable()
	require.NoError(t, err)
	df, err := LoadDeckFile("")
	require.NoError(t, err)
	require.NotEmpty(t, df.Decks)

	for _, deck := range df.Decks {
		ids := deck.IDs()
		assert.NotEmpty(t, ids, deck.Name)
		cards, errs := table.Instantiate(ids, func() int { return 1 })
		assert.Empty(t, errs, deck.Name)
		assert.Len(t, cards, len(ids), deck.Name)
	}
}

func TestLookupUnknownCard(t *testing.T) {
	table, err := DefaultCardTable()
	require.NoError(t, err)

	_, err = table.Lookup("S99")
	assert.ErrorIs(t, err, ErrUnknownCard)

	next := 0
	cards, errs := table.Instantiate([]string{"S1", "S99", "S2"}, func() int { next++; return next })
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrUnknownCard)
	require.Len(t, cards, 2)
	assert.Equal(t, []int{1, 2}, []int{cards[0].ID, cards[1].ID})
}

func TestParseCardTable(t *testing.T) {
	table, err := ParseCardTable([]byte(`
cards:
  - id: X1
    category: attack
    cost: 2
    power: 7
  - id: X2
    name: Guard
    category: defense
    ops:
      - { op: gain-block, value: 4 }
`))
	require.NoError(t, err)
	x1, err := table.Lookup("X1")
	require.NoError(t, err)
	assert.Equal(t, "X1", x1.Name, "name defaults to id")
	assert.Empty(t, x1.Tags)
	x2, _ := table.Lookup("X2")
	assert.Equal(t, []Instruction{{Op: "gain-block", Value: 4}}, x2.Instructions)
	assert.Equal(t, []string{"X1", "X2"}, table.IDs())
}

func TestParseCardTableErrors(t *testing.T) {
	tests := map[string]string{
		"duplicate id":     "cards:\n  - { id: A, category: attack }\n  - { id: A, category: skill }\n",
		"missing id":       "cards:\n  - { name: Nameless, category: attack }\n",
		"unknown category": "cards:\n  - { id: A, category: spell }\n",
		"bad yaml":         "cards: [",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCardTable([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadCardTableFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cards:\n  - { id: ONLY, category: skill }\n"), 0o644))

	table, err := LoadCardTable(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	_, err = LoadCardTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewBattleFromSetup(t *testing.T) {
	table, err := DefaultCardTable()
	require.NoError(t, err)

	b, err := NewBattleFromSetup(table, Setup{
		PlayerName:  "Hideyoshi",
		PlayerMaxHP: 60,
		PlayerDeck:  []string{"S1", "S1", "NOPE", "S2"},
		EnemyName:   "Bandit Chief",
		EnemyMaxHP:  40,
		EnemyDeck:   []string{"E1", "E2"},
		EnemyPolicy: PolicyPriority,
		Seed:        5,
	}, nil, nil)
	require.NoError(t, err)

	_, err = b.StartBattle()
	require.NoError(t, err)
	assert.Len(t, b.Hand(), 3, "unknown ids are skipped")
	assert.Len(t, b.EnemyHand(), 2)

	seen := map[int]bool{}
	for _, c := range slices.Concat(b.Hand(), b.EnemyHand()) {
		assert.False(t, seen[c.ID], "instance ids are unique across both decks")
		seen[c.ID] = true
	}

	_, err = NewBattleFromSetup(table, Setup{EnemyPolicy: "berserk"}, nil, nil)
	assert.Error(t, err)
}
