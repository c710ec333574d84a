package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDuration is returned when a buff is added with duration < 1.
var ErrInvalidDuration = errors.New("buff duration must be at least 1")

// Buff kinds understood by the dispatcher and the resolver.
const (
	KindWeak    = "weak"
	KindCounter = "counter"

	KindFormationWall         = "formation-wall"
	KindFormationWeakStack    = "formation-weak-stack"
	KindFormationDraw         = "formation-draw"
	KindFormationCounterStack = "formation-counter-stack"
	KindFormationDefBoost     = "formation-def-boost"

	KindTriggerAttackCounter  = "trigger-attack-counter"
	KindTriggerDefenseCounter = "trigger-defense-counter"
	KindTriggerSkillDraw      = "trigger-skill-draw"
	KindTriggerAnyCounter     = "trigger-any-counter"
	KindBlockRecover          = "block-recover"
)

// TempPrefix is the reserved kind namespace for one-off named values
// (e.g. a commander's power bonus for this turn).
const TempPrefix = "temp:"

// TempKind returns the buff kind used to store the named temp value.
func TempKind(name string) string {
	return TempPrefix + name
}

var (
	KindAshigaruBonus = TempKind("ashigaru_power_bonus")
	KindDefenseUp     = TempKind("defense_up_this_turn")
)

// Buff is a timed modifier attached to a combatant.
type Buff struct {
	Kind      string  `json:"kind"`
	Magnitude int     `json:"magnitude"`
	Remaining int     `json:"remaining"`
	Trigger   Trigger `json:"trigger"`
}

func (b Buff) String() string {
	return fmt.Sprintf("%s %+d (%dT, %s)", b.Kind, b.Magnitude, b.Remaining, b.Trigger)
}

// BuffStore is a combatant's ordered collection of active buffs. Entries of
// the same kind stack as independent entries; they are never merged.
type BuffStore struct {
	entries []Buff
}

func NewBuffStore() *BuffStore {
	return &BuffStore{}
}

// Add appends a new entry.
func (s *BuffStore) Add(kind string, magnitude, duration int, trigger Trigger) error {
	if duration < 1 {
		return fmt.Errorf("add %s: %w (got %d)", kind, ErrInvalidDuration, duration)
	}
	s.entries = append(s.entries, Buff{
		Kind:      kind,
		Magnitude: magnitude,
		Remaining: duration,
		Trigger:   trigger,
	})
	return nil
}

// SetTemp stores a named temp value as a single passive entry, replacing any
// previous value under the same name.
func (s *BuffStore) SetTemp(name string, value, duration int) error {
	kind := TempKind(name)
	if duration < 1 {
		return fmt.Errorf("set %s: %w (got %d)", kind, ErrInvalidDuration, duration)
	}
	s.Clear(kind)
	return s.Add(kind, value, duration, TriggerPassive)
}

// ValueOf returns the summed magnitude of every entry of kind, or 0.
func (s *BuffStore) ValueOf(kind string) int {
	total := 0
	for _, b := range s.entries {
		if b.Kind == kind {
			total += b.Magnitude
		}
	}
	return total
}

// First returns the magnitude of the first entry of kind, or 0.
func (s *BuffStore) First(kind string) int {
	for _, b := range s.entries {
		if b.Kind == kind {
			return b.Magnitude
		}
	}
	return 0
}

// Count returns the number of entries of kind.
func (s *BuffStore) Count(kind string) int {
	n := 0
	for _, b := range s.entries {
		if b.Kind == kind {
			n++
		}
	}
	return n
}

// Has reports whether any entry of kind exists.
func (s *BuffStore) Has(kind string) bool {
	return s.Count(kind) > 0
}

// Matching returns a copy of the entries with the given trigger, in
// insertion order.
func (s *BuffStore) Matching(trigger Trigger) []Buff {
	var result []Buff
	for _, b := range s.entries {
		if b.Trigger == trigger {
			result = append(result, b)
		}
	}
	return result
}

// Tick decrements every entry once and removes those at zero or below.
// The removed entries are returned in their original order.
func (s *BuffStore) Tick() []Buff {
	var expired []Buff
	alive := s.entries[:0]
	for _, b := range s.entries {
		b.Remaining--
		if b.Remaining > 0 {
			alive = append(alive, b)
		} else {
			expired = append(expired, b)
		}
	}
	clear(s.entries[len(alive):])
	s.entries = alive
	return expired
}

// Clear removes every entry of kind immediately and returns how many were
// removed.
func (s *BuffStore) Clear(kind string) int {
	kept := s.entries[:0]
	removed := 0
	for _, b := range s.entries {
		if b.Kind == kind {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	clear(s.entries[len(kept):])
	s.entries = kept
	return removed
}

// All returns a copy of every entry.
func (s *BuffStore) All() []Buff {
	out := make([]Buff, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *BuffStore) Len() int {
	return len(s.entries)
}

// IsTemp reports whether kind lives in the temp namespace.
func IsTemp(kind string) bool {
	return strings.HasPrefix(kind, TempPrefix)
}
