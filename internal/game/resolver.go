package game

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Card tags that gate legacy secondary effects.
const (
	TagWeaken    = "weaken"
	TagCounter   = "counter"
	TagFormation = "formation"
	TagTrigger   = "trigger"
	TagAshigaru  = "ashigaru"
)

// Resolver turns a card's declared (or implied) effect into state changes
// and a log line. It never fails: anything it cannot resolve becomes a
// diagnostic line.
type Resolver struct {
	triggers *Dispatcher
	drawer   Drawer
	logger   *zap.Logger
}

func NewResolver(triggers *Dispatcher, drawer Drawer, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{triggers: triggers, drawer: drawer, logger: logger}
}

// resolution carries the working state of one Resolve call.
type resolution struct {
	card   *CardInstance
	user   *Combatant
	target *Combatant
	lines  []string

	// on-hit lines waiting for their damage line, see flushHit
	pending []string
}

func (res *resolution) logf(format string, args ...any) {
	res.lines = append(res.lines, fmt.Sprintf(format, args...))
}

// Resolve applies card as played by user against target and returns a
// non-empty description of what happened.
func (r *Resolver) Resolve(card *CardInstance, user, target *Combatant) string {
	if card == nil || card.Spec == nil {
		return fmt.Sprintf("%s used an unknown card", user.Name)
	}
	res := &resolution{card: card, user: user, target: target}

	if len(card.Spec.Instructions) > 0 {
		r.runInstructions(res)
	} else {
		r.resolveByCategory(res)
	}

	if len(res.lines) == 0 {
		return fmt.Sprintf("%s used %s", user.Name, card.Name())
	}
	return strings.Join(res.lines, " / ")
}

func (r *Resolver) runInstructions(res *resolution) {
	for _, ins := range res.card.Spec.Instructions {
		op := normalizeOp(ins.Op)
		if op == "" {
			continue
		}
		handler, ok := opsTable[op]
		if !ok {
			r.logger.Warn("unknown card op skipped",
				zap.String("card", res.card.Spec.ID),
				zap.String("op", ins.Op),
			)
			res.logf("[diag] unknown op %q skipped", ins.Op)
			continue
		}
		handler(r, res, ins.Value)
	}
}

// resolveByCategory is the fallback for cards without an instruction list:
// tactic ids first, then the card's category, then id/tag secondaries.
func (r *Resolver) resolveByCategory(res *resolution) {
	if t, ok := tactics[res.card.Spec.ID]; ok {
		t(r, res)
		return
	}

	card, user := res.card, res.user
	switch card.Category {
	case CategoryAttack:
		bonus := 0
		if card.HasTag(TagAshigaru) {
			bonus = user.Buffs.ValueOf(KindAshigaruBonus)
		}
		dealt := r.strike(res, card.Power+bonus)
		res.logf("%s's %s → %s takes %d damage (+%d)", user.Name, card.Name(), res.target.Name, dealt, bonus)
		r.flushHit(res)
	case CategoryDefense:
		bonus := user.Buffs.ValueOf(KindDefenseUp) + user.Buffs.ValueOf(KindFormationDefBoost)
		gain := max(0, card.Power+bonus)
		user.GainBlock(gain)
		res.logf("%s's %s → Block+%d (+%d, total %d)", user.Name, card.Name(), gain, bonus, user.Block)
	default:
		res.logf("%s used %s", user.Name, card.Name())
	}

	if se, ok := secondaryEffects[card.Spec.ID]; ok && card.HasTag(se.tag) {
		se.apply(r, res)
	}
}

// strike applies weakened damage from user to target and fires the
// target's on-hit buffs. The on-hit lines are queued on res and written by
// flushHit after the caller logs the damage line.
func (r *Resolver) strike(res *resolution, base int) int {
	raw := attackDamage(res.user, base)
	hit := res.target.takeHit(raw)
	if r.triggers != nil {
		res.pending = append(res.pending, r.triggers.OnHit(res.target, res.user, hit)...)
	}
	return hit.Dealt
}

func (r *Resolver) flushHit(res *resolution) {
	res.lines = append(res.lines, res.pending...)
	res.pending = nil
}

// attackDamage is base damage less the attacker's weaken stacks, clamped at
// zero.
func attackDamage(attacker *Combatant, base int) int {
	return max(0, base-attacker.Buffs.ValueOf(KindWeak))
}

func normalizeOp(op string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(op)), "-", "_")
}
