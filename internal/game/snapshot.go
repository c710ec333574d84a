package game

// CombatantView is the read-only display state of one combatant.
type CombatantView struct {
	Name   string `json:"name"`
	HP     int    `json:"hp"`
	MaxHP  int    `json:"max_hp"`
	Block  int    `json:"block"`
	Energy int    `json:"energy"`
	Buffs  []Buff `json:"buffs"`
}

// CardView is one hand card as shown to a player.
type CardView struct {
	Index       int      `json:"index"`
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Cost        int      `json:"cost"`
	Power       int      `json:"power"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	Playable    bool     `json:"playable"`
}

// Snapshot is everything a presentation layer needs to draw the battle.
type Snapshot struct {
	BattleID      string        `json:"battle_id"`
	Turn          int           `json:"turn"`
	Phase         string        `json:"phase"`
	Player        CombatantView `json:"player"`
	Enemy         CombatantView `json:"enemy"`
	Hand          []CardView    `json:"hand"`
	EnemyHandSize int           `json:"enemy_hand_size"`
	Over          bool          `json:"over"`
	Result        Result        `json:"result"`
	Message       string        `json:"message,omitempty"`
}

func viewOf(c *Combatant) CombatantView {
	return CombatantView{
		Name:   c.Name,
		HP:     c.HP,
		MaxHP:  c.MaxHP,
		Block:  c.Block,
		Energy: c.Energy,
		Buffs:  c.Buffs.All(),
	}
}

func handView(hand []*CardInstance, energy int, canPlay bool) []CardView {
	views := make([]CardView, 0, len(hand))
	for i, c := range hand {
		views = append(views, CardView{
			Index:       i,
			ID:          c.Spec.ID,
			Name:        c.Name(),
			Category:    c.Category,
			Cost:        c.Cost,
			Power:       c.Power,
			Tags:        c.Tags,
			Description: c.Spec.Description,
			Playable:    canPlay && c.Cost <= energy,
		})
	}
	return views
}
