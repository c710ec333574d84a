package web

import (
	"github.com/peterkuimelis/sengoku/internal/game"
	"github.com/peterkuimelis/sengoku/internal/log"
)

// Message types for the JSON protocol over the websocket.

// --- Server → Browser messages ---

// ServerMessage is the envelope for all server-to-browser messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_command" and "battle_over"
	State *game.Snapshot `json:"state,omitempty"`

	// For "battle_over" and "error"
	Result  string `json:"result,omitempty"`
	Message string `json:"message,omitempty"`
}

// EventView is a simplified battle event for the browser.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Actor   string `json:"actor,omitempty"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
	Text    string `json:"text"`
}

func eventView(e log.GameEvent) *EventView {
	return &EventView{
		Seq:     e.Seq,
		Turn:    e.Turn,
		Phase:   e.Phase,
		Actor:   e.Actor,
		Type:    e.Type.String(),
		Card:    e.Card,
		Details: e.Details,
		Text:    log.FormatEvent(e),
	}
}

// --- Browser → Server messages ---

// ClientMessage is the envelope for all browser-to-server messages.
type ClientMessage struct {
	Type string `json:"type"` // "start", "play", "end_turn", "quit"

	// For "play"
	Index int `json:"index"`

	// For "start"; empty fields fall back to the server configuration
	PlayerDeck string `json:"player_deck,omitempty"`
	EnemyDeck  string `json:"enemy_deck,omitempty"`
	Policy     string `json:"policy,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
}

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Cost        int      `json:"cost"`
	Power       int      `json:"power"`
	Tags        []string `json:"tags,omitempty"`
}

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Cards  []string `json:"cards"`
}
