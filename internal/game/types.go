package game

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// --- Enums ---

type Category int

const (
	CategoryAttack Category = iota
	CategoryDefense
	CategorySkill
)

func (c Category) String() string {
	switch c {
	case CategoryAttack:
		return "attack"
	case CategoryDefense:
		return "defense"
	case CategorySkill:
		return "skill"
	default:
		return "unknown"
	}
}

// ParseCategory accepts the three category names. "block" is the legacy
// spelling of defense.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attack":
		return CategoryAttack, nil
	case "defense", "block":
		return CategoryDefense, nil
	case "skill":
		return CategorySkill, nil
	default:
		return 0, fmt.Errorf("unknown card category %q", s)
	}
}

func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseCategory(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Trigger is the phase boundary at which a buff is evaluated.
type Trigger int

const (
	TriggerTurnStart Trigger = iota
	TriggerCardPlayed
	TriggerOnHit
	TriggerPassive // consulted by the resolver, never dispatched
)

func (t Trigger) String() string {
	switch t {
	case TriggerTurnStart:
		return "turn-start"
	case TriggerCardPlayed:
		return "card-played"
	case TriggerOnHit:
		return "on-hit"
	case TriggerPassive:
		return "passive"
	default:
		return "unknown"
	}
}

func (t Trigger) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Trigger) UnmarshalText(text []byte) error {
	for _, candidate := range []Trigger{TriggerTurnStart, TriggerCardPlayed, TriggerOnHit, TriggerPassive} {
		if candidate.String() == string(text) {
			*t = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown trigger %q", text)
}

// --- Card definition (static, from the card table) ---

// Instruction is one step of a card's declarative effect.
type Instruction struct {
	Op    string `yaml:"op" json:"op"`
	Value int    `yaml:"value" json:"value"`
}

// CardSpec is the immutable template of a card.
type CardSpec struct {
	ID           string        `yaml:"id"`
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description"`
	Category     Category      `yaml:"category"`
	Cost         int           `yaml:"cost"`
	Power        int           `yaml:"power"`
	Tags         []string      `yaml:"tags"`
	Instructions []Instruction `yaml:"ops"`
}

func (s *CardSpec) String() string {
	return s.Name
}

// HasTag reports whether the spec carries tag.
func (s *CardSpec) HasTag(tag string) bool {
	return slices.Contains(s.Tags, tag)
}

// --- CardInstance (runtime card in a draw pile, hand or discard pile) ---

type CardInstance struct {
	Spec     *CardSpec
	ID       int // unique instance ID within a battle
	Cost     int
	Power    int
	Category Category
	Tags     []string
}

// NewCardInstance copies the numeric fields of spec into a new instance.
// Tags always get their own backing array.
func NewCardInstance(spec *CardSpec, id int) *CardInstance {
	tags := make([]string, len(spec.Tags))
	copy(tags, spec.Tags)
	return &CardInstance{
		Spec:     spec,
		ID:       id,
		Cost:     spec.Cost,
		Power:    spec.Power,
		Category: spec.Category,
		Tags:     tags,
	}
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(empty)"
	}
	return fmt.Sprintf("%s (%s, cost %d, power %d)", ci.Spec.Name, ci.Category, ci.Cost, ci.Power)
}

// Name returns the display name of the card.
func (ci *CardInstance) Name() string {
	return ci.Spec.Name
}

// HasTag reports whether the instance carries tag.
func (ci *CardInstance) HasTag(tag string) bool {
	return slices.Contains(ci.Tags, tag)
}

// --- Phases and results ---

type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseTurnStart
	PhasePlayerActing
	PhaseTurnEnd
	PhaseEnemyActing
	PhaseCheckEnd
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "Not Started"
	case PhaseTurnStart:
		return "Turn Start"
	case PhasePlayerActing:
		return "Player Turn"
	case PhaseTurnEnd:
		return "Turn End"
	case PhaseEnemyActing:
		return "Enemy Turn"
	case PhaseCheckEnd:
		return "Check End"
	case PhaseOver:
		return "Over"
	default:
		return "None"
	}
}

type Result int

const (
	ResultNone Result = iota
	ResultWin
	ResultLoss
	ResultDraw
)

func (r Result) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultLoss:
		return "loss"
	case ResultDraw:
		return "draw"
	default:
		return "none"
	}
}

func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Result) UnmarshalText(text []byte) error {
	for _, candidate := range []Result{ResultNone, ResultWin, ResultLoss, ResultDraw} {
		if candidate.String() == string(text) {
			*r = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown result %q", text)
}

// --- Player commands ---

type CommandType int

const (
	CommandPlay CommandType = iota
	CommandEndTurn
)

func (c CommandType) String() string {
	switch c {
	case CommandPlay:
		return "Play"
	case CommandEndTurn:
		return "End Turn"
	default:
		return "Unknown"
	}
}

// Command is a player's choice: play the card at Index, or end the turn.
type Command struct {
	Type  CommandType
	Index int
}

func PlayCommand(index int) Command {
	return Command{Type: CommandPlay, Index: index}
}

func EndTurnCommand() Command {
	return Command{Type: CommandEndTurn}
}
