package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(cards []*CardInstance) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name()
	}
	return out
}

func TestPileDrawOrder(t *testing.T) {
	p := stackedPile(attackCard("A", 1, 1), attackCard("B", 1, 1), attackCard("C", 1, 1))

	drawn := p.Draw(2)
	assert.Equal(t, []string{"A", "B"}, names(drawn))
	assert.Equal(t, []string{"A", "B"}, names(p.Hand()))
	assert.Equal(t, 1, p.DrawCount())
}

func TestPileDrawIsBestEffort(t *testing.T) {
	p := stackedPile(attackCard("A", 1, 1))

	assert.Len(t, p.Draw(5), 1)
	assert.Empty(t, p.Draw(1))
	assert.Equal(t, 0, p.Shuffles())
}

func TestPileReshufflesDiscard(t *testing.T) {
	p := stackedPile(attackCard("A", 1, 1), attackCard("B", 1, 1))
	p.Draw(2)
	a, ok := p.Take(0)
	require.True(t, ok)
	p.Discard(a)
	p.Discard(nil)
	assert.Equal(t, 1, p.DiscardCount())

	drawn := p.Draw(2)
	assert.Equal(t, []string{"A"}, names(drawn))
	assert.Equal(t, 1, p.Shuffles())
	assert.Equal(t, 0, p.DiscardCount())
	assert.Equal(t, []string{"B", "A"}, names(p.Hand()))
}

func TestPileTake(t *testing.T) {
	p := stackedPile(attackCard("A", 1, 1), attackCard("B", 1, 1), attackCard("C", 1, 1))
	p.Draw(3)

	card, ok := p.Take(1)
	require.True(t, ok)
	assert.Equal(t, "B", card.Name())
	assert.Equal(t, []string{"A", "C"}, names(p.Hand()))

	_, ok = p.Take(2)
	assert.False(t, ok)
	_, ok = p.Take(-1)
	assert.False(t, ok)
}

func TestPileShuffleKeepsCards(t *testing.T) {
	specs := repeat(attackCard("A", 1, 1), 10)
	cards := make([]*CardInstance, len(specs))
	for i, spec := range specs {
		cards[i] = NewCardInstance(spec, i+1)
	}
	p := NewPile(cards, rand.New(rand.NewSource(42)))

	drawn := p.Draw(10)
	ids := map[int]bool{}
	for _, c := range drawn {
		ids[c.ID] = true
	}
	assert.Len(t, ids, 10)
}

func TestCardInstanceTagsNotShared(t *testing.T) {
	spec := attackCard("S1", 1, 6, TagAshigaru)
	a := NewCardInstance(spec, 1)
	b := NewCardInstance(spec, 2)

	a.Tags[0] = "changed"
	a.Power = 99
	assert.Equal(t, TagAshigaru, b.Tags[0])
	assert.Equal(t, TagAshigaru, spec.Tags[0])
	assert.Equal(t, 6, b.Power)
	assert.True(t, b.HasTag(TagAshigaru))
}

func TestDeckFile(t *testing.T) {
	df, err := ParseDeckFile([]byte(`
decks:
  - name: SMALL
    cards:
      - { id: S1, count: 2 }
      - { id: S2, count: 1 }
`))
	require.NoError(t, err)

	ids, err := df.Deck("SMALL")
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S1", "S2"}, ids)

	_, err = df.Deck("MISSING")
	assert.Error(t, err)

	name, ids, err := df.DeckByNumber(1)
	require.NoError(t, err)
	assert.Equal(t, "SMALL", name)
	assert.Len(t, ids, 3)
	_, _, err = df.DeckByNumber(2)
	assert.Error(t, err)

	_, err = ParseDeckFile([]byte("decks: [oops"))
	assert.Error(t, err)
}

func TestMasterDeck(t *testing.T) {
	table, err := DefaultCardTable()
	require.NoError(t, err)

	m := NewMasterDeck([]string{"S1", "S2"})
	m.Add("S23")
	assert.True(t, m.Remove("S2"))
	assert.False(t, m.Remove("S99"))
	assert.Equal(t, []string{"S1", "S23"}, m.IDs)

	next := 100
	cards, errs := m.Instantiate(table, func() int { next++; return next })
	assert.Empty(t, errs)
	require.Len(t, cards, 2)
	assert.Equal(t, 101, cards[0].ID)

	// battle changes stay in the battle
	cards[0].Power = 0
	again, _ := m.Instantiate(table, func() int { return 1 })
	assert.Equal(t, 6, again[0].Power)
}
