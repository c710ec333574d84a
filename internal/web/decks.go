package web

import (
	"github.com/peterkuimelis/sengoku/internal/game"
)

// deckInfos lists each deck with its unique card names in first-seen order.
func deckInfos(df *game.DeckFile, cards *game.CardTable) []DeckInfo {
	decks := make([]DeckInfo, 0, len(df.Decks))
	for i, d := range df.Decks {
		di := DeckInfo{Number: i + 1, Name: d.Name}
		seen := make(map[string]bool)
		for _, entry := range d.Cards {
			name := entry.ID
			if spec, err := cards.Lookup(entry.ID); err == nil {
				name = spec.Name
			}
			if !seen[name] {
				di.Cards = append(di.Cards, name)
				seen[name] = true
			}
		}
		decks = append(decks, di)
	}
	return decks
}

func cardInfos(cards *game.CardTable) []CardInfo {
	infos := make([]CardInfo, 0, cards.Len())
	for _, id := range cards.IDs() {
		spec, err := cards.Lookup(id)
		if err != nil {
			continue
		}
		infos = append(infos, CardInfo{
			ID:          spec.ID,
			Name:        spec.Name,
			Description: spec.Description,
			Category:    spec.Category.String(),
			Cost:        spec.Cost,
			Power:       spec.Power,
			Tags:        spec.Tags,
		})
	}
	return infos
}
