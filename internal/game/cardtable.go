package game

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/cards.yaml
var defaultCardsYAML []byte

//go:embed data/decks.yaml
var defaultDecksYAML []byte

// ErrUnknownCard is returned when a card id is not in the table.
var ErrUnknownCard = errors.New("unknown card identifier")

type cardFile struct {
	Cards []*CardSpec `yaml:"cards"`
}

// CardTable maps card ids to their immutable specs.
type CardTable struct {
	specs map[string]*CardSpec
	order []string
}

// ParseCardTable parses YAML card data. Duplicate or empty ids are
// rejected.
func ParseCardTable(data []byte) (*CardTable, error) {
	var cf cardFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse card YAML: %w", err)
	}
	t := &CardTable{specs: make(map[string]*CardSpec, len(cf.Cards))}
	for i, spec := range cf.Cards {
		if spec == nil || spec.ID == "" {
			return nil, fmt.Errorf("card #%d has no id", i+1)
		}
		if _, dup := t.specs[spec.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", spec.ID)
		}
		if spec.Name == "" {
			spec.Name = spec.ID
		}
		if spec.Tags == nil {
			spec.Tags = []string{}
		}
		t.specs[spec.ID] = spec
		t.order = append(t.order, spec.ID)
	}
	return t, nil
}

// LoadCardTable reads a YAML card file. An empty path loads the built-in
// table.
func LoadCardTable(path string) (*CardTable, error) {
	if path == "" {
		return DefaultCardTable()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCardTable(data)
}

// DefaultCardTable returns the built-in card table.
func DefaultCardTable() (*CardTable, error) {
	return ParseCardTable(defaultCardsYAML)
}

// Lookup returns the spec for id.
func (t *CardTable) Lookup(id string) (*CardSpec, error) {
	spec, ok := t.specs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCard, id)
	}
	return spec, nil
}

// IDs returns every card id in file order.
func (t *CardTable) IDs() []string {
	return append([]string(nil), t.order...)
}

// Len returns the number of cards in the table.
func (t *CardTable) Len() int {
	return len(t.order)
}

// Instantiate creates one CardInstance per id. Unknown ids are skipped and
// reported in the returned error slice; the rest of the deck still builds.
func (t *CardTable) Instantiate(ids []string, nextID func() int) ([]*CardInstance, []error) {
	var cards []*CardInstance
	var errs []error
	for _, id := range ids {
		spec, err := t.Lookup(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cards = append(cards, NewCardInstance(spec, nextID()))
	}
	return cards, errs
}
