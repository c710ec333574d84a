package game

import "fmt"

// Drawer draws cards into a combatant's hand. The Battle implements it by
// mapping each combatant to its deck.
type Drawer interface {
	DrawFor(c *Combatant, n int) int
}

// Durations granted by triggered behaviors.
const (
	counterDuration = 1
	weakenDuration  = 2
)

// Dispatcher fires a combatant's buffs at the three trigger points. Each
// matched behavior yields one log line. A behavior never removes the buff
// that fired it; aging is Tick's job alone.
type Dispatcher struct {
	drawer Drawer
}

func NewDispatcher(drawer Drawer) *Dispatcher {
	return &Dispatcher{drawer: drawer}
}

// OnTurnStart fires every turn-start buff of actor.
func (d *Dispatcher) OnTurnStart(actor, other *Combatant) []string {
	var lines []string
	for _, b := range actor.Buffs.Matching(TriggerTurnStart) {
		switch b.Kind {
		case KindFormationWall:
			actor.GainBlock(b.Magnitude)
			lines = append(lines, fmt.Sprintf("%s's wall formation → Block+%d (total %d)", actor.Name, b.Magnitude, actor.Block))
		case KindFormationWeakStack:
			_ = other.Buffs.Add(KindWeak, 1, weakenDuration, TriggerPassive)
			lines = append(lines, fmt.Sprintf("%s's attrition formation → %s Weak+1", actor.Name, other.Name))
		case KindFormationDraw:
			n := d.draw(actor, b.Magnitude)
			lines = append(lines, fmt.Sprintf("%s's skirmisher formation → drew %d card(s)", actor.Name, n))
		case KindFormationCounterStack:
			// one extra turn: the actor's own Tick runs right after this pass
			_ = actor.Buffs.Add(KindCounter, b.Magnitude, counterDuration+1, TriggerOnHit)
			lines = append(lines, fmt.Sprintf("%s's counter formation → Counter+%d", actor.Name, b.Magnitude))
		default:
			lines = append(lines, fmt.Sprintf("[diag] %s has turn-start buff %q with no behavior", actor.Name, b.Kind))
		}
	}
	return lines
}

// OnCardPlayed fires every card-played buff of user whose category
// condition matches card.
func (d *Dispatcher) OnCardPlayed(card *CardInstance, user, target *Combatant) []string {
	var lines []string
	for _, b := range user.Buffs.Matching(TriggerCardPlayed) {
		switch b.Kind {
		case KindTriggerAttackCounter:
			if card.Category != CategoryAttack {
				continue
			}
			_ = user.Buffs.Add(KindCounter, b.Magnitude, counterDuration, TriggerOnHit)
			lines = append(lines, fmt.Sprintf("%s's counter stance → Counter+%d", user.Name, b.Magnitude))
		case KindTriggerDefenseCounter:
			if card.Category != CategoryDefense {
				continue
			}
			_ = user.Buffs.Add(KindCounter, b.Magnitude, counterDuration, TriggerOnHit)
			lines = append(lines, fmt.Sprintf("%s's guard-and-strike → Counter+%d", user.Name, b.Magnitude))
		case KindTriggerSkillDraw:
			if card.Category != CategorySkill {
				continue
			}
			n := d.draw(user, b.Magnitude)
			lines = append(lines, fmt.Sprintf("%s's rallying order → drew %d card(s)", user.Name, n))
		case KindTriggerAnyCounter:
			_ = user.Buffs.Add(KindCounter, b.Magnitude, counterDuration, TriggerOnHit)
			lines = append(lines, fmt.Sprintf("%s's high morale → Counter+%d", user.Name, b.Magnitude))
		default:
			lines = append(lines, fmt.Sprintf("[diag] %s has card-played buff %q with no behavior", user.Name, b.Kind))
		}
	}
	return lines
}

// OnHit fires every on-hit buff of defender after attacker's hit landed.
// Counter damage goes straight through the damage rule and does not start
// another on-hit pass.
func (d *Dispatcher) OnHit(defender, attacker *Combatant, hit Hit) []string {
	if hit.Raw <= 0 {
		return nil
	}
	var lines []string
	for _, b := range defender.Buffs.Matching(TriggerOnHit) {
		switch b.Kind {
		case KindCounter:
			if !defender.Alive() {
				continue
			}
			dealt := attacker.TakeDamage(b.Magnitude)
			lines = append(lines, fmt.Sprintf("%s counters → %s takes %d damage", defender.Name, attacker.Name, dealt))
		case KindBlockRecover:
			if hit.Absorbed <= 0 {
				continue
			}
			defender.GainBlock(b.Magnitude)
			lines = append(lines, fmt.Sprintf("%s's measured formation → Block+%d (total %d)", defender.Name, b.Magnitude, defender.Block))
		default:
			lines = append(lines, fmt.Sprintf("[diag] %s has on-hit buff %q with no behavior", defender.Name, b.Kind))
		}
	}
	return lines
}

func (d *Dispatcher) draw(c *Combatant, n int) int {
	if d.drawer == nil || n <= 0 {
		return 0
	}
	return d.drawer.DrawFor(c, n)
}
