package game

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// Deck is the draw pile / hand / discard pile of one combatant.
type Deck interface {
	// Draw moves up to n cards into the hand, reshuffling the discard pile
	// when the draw pile runs out. It returns the cards drawn.
	Draw(n int) []*CardInstance
	// Discard puts a card on the discard pile.
	Discard(card *CardInstance)
	// Hand returns the hand in insertion order (index 0 = oldest).
	Hand() []*CardInstance
	// Take removes and returns the card at index from the hand.
	Take(index int) (*CardInstance, bool)
	// Shuffles returns how many times the discard pile has been
	// reshuffled into the draw pile.
	Shuffles() int
}

// Pile is the standard Deck. The top of the draw pile is the last element.
type Pile struct {
	drawPile    []*CardInstance
	hand        []*CardInstance
	discardPile []*CardInstance
	rng         *rand.Rand
	shuffles    int
}

// NewPile creates a deck over cards, shuffled with rng. A nil rng keeps the
// given order (cards[len-1] is drawn first), which tests rely on.
func NewPile(cards []*CardInstance, rng *rand.Rand) *Pile {
	p := &Pile{
		drawPile: append([]*CardInstance(nil), cards...),
		rng:      rng,
	}
	p.shuffle()
	return p
}

func (p *Pile) Draw(n int) []*CardInstance {
	var drawn []*CardInstance
	for i := 0; i < n; i++ {
		if len(p.drawPile) == 0 {
			if !p.reshuffle() {
				break
			}
		}
		card := p.drawPile[len(p.drawPile)-1]
		p.drawPile = p.drawPile[:len(p.drawPile)-1]
		p.hand = append(p.hand, card)
		drawn = append(drawn, card)
	}
	return drawn
}

func (p *Pile) Discard(card *CardInstance) {
	if card == nil {
		return
	}
	p.discardPile = append(p.discardPile, card)
}

func (p *Pile) Hand() []*CardInstance {
	return p.hand
}

func (p *Pile) Take(index int) (*CardInstance, bool) {
	if index < 0 || index >= len(p.hand) {
		return nil, false
	}
	card := p.hand[index]
	p.hand = append(p.hand[:index], p.hand[index+1:]...)
	return card, true
}

// DrawCount returns the number of cards left in the draw pile.
func (p *Pile) DrawCount() int {
	return len(p.drawPile)
}

// DiscardCount returns the number of cards in the discard pile.
func (p *Pile) DiscardCount() int {
	return len(p.discardPile)
}

func (p *Pile) Shuffles() int {
	return p.shuffles
}

func (p *Pile) reshuffle() bool {
	if len(p.discardPile) == 0 {
		return false
	}
	p.drawPile = p.discardPile
	p.discardPile = nil
	p.shuffle()
	p.shuffles++
	return true
}

func (p *Pile) shuffle() {
	if p.rng == nil {
		return
	}
	p.rng.Shuffle(len(p.drawPile), func(i, j int) {
		p.drawPile[i], p.drawPile[j] = p.drawPile[j], p.drawPile[i]
	})
}

// --- Deck files ---

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card id and its count in a deck.
type CardEntry struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// IDs expands the entry list into one card id per copy.
func (d DeckEntry) IDs() []string {
	var ids []string
	for _, entry := range d.Cards {
		for i := 0; i < entry.Count; i++ {
			ids = append(ids, entry.ID)
		}
	}
	return ids
}

// ParseDeckFile parses YAML deck data.
func ParseDeckFile(data []byte) (*DeckFile, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	return &df, nil
}

// LoadDeckFile reads and parses a YAML deck file. An empty path loads the
// built-in decks.
func LoadDeckFile(path string) (*DeckFile, error) {
	if path == "" {
		return ParseDeckFile(defaultDecksYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDeckFile(data)
}

// Deck returns the card ids of the named deck.
func (df *DeckFile) Deck(name string) ([]string, error) {
	for _, d := range df.Decks {
		if d.Name == name {
			return d.IDs(), nil
		}
	}
	return nil, fmt.Errorf("deck %q not found (have %d decks)", name, len(df.Decks))
}

// DeckByNumber returns the Nth deck (1-indexed).
func (df *DeckFile) DeckByNumber(n int) (string, []string, error) {
	if n < 1 || n > len(df.Decks) {
		return "", nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}
	d := df.Decks[n-1]
	return d.Name, d.IDs(), nil
}

// MasterDeck is the persistent list of card ids a side owns between
// battles. Battles instantiate it; changes to a battle's piles never flow
// back.
type MasterDeck struct {
	IDs []string
}

func NewMasterDeck(ids []string) *MasterDeck {
	return &MasterDeck{IDs: append([]string(nil), ids...)}
}

// Add appends a card id.
func (m *MasterDeck) Add(id string) {
	m.IDs = append(m.IDs, id)
}

// Remove deletes the first copy of id and reports whether one was found.
func (m *MasterDeck) Remove(id string) bool {
	for i, have := range m.IDs {
		if have == id {
			m.IDs = append(m.IDs[:i], m.IDs[i+1:]...)
			return true
		}
	}
	return false
}

// Instantiate builds fresh card instances for one battle.
func (m *MasterDeck) Instantiate(table *CardTable, nextID func() int) ([]*CardInstance, []error) {
	return table.Instantiate(m.IDs, nextID)
}
