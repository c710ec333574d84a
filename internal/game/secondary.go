package game

import "fmt"

// tactics are legacy cards whose id alone decides the effect. They set a
// one-turn temp value instead of going through category dispatch.
var tactics = map[string]func(r *Resolver, res *resolution){
	"TC_ASHIGARU_COMMANDER": func(r *Resolver, res *resolution) {
		bonus := res.card.Power
		if bonus == 0 {
			bonus = 2
		}
		_ = res.user.Buffs.SetTemp("ashigaru_power_bonus", bonus, 1)
		res.logf("%s rallies the ashigaru with %s (+%d power this turn)", res.user.Name, res.card.Name(), bonus)
	},
	"TC_DEF_FORMATION": func(r *Resolver, res *resolution) {
		bonus := res.card.Power
		if bonus == 0 {
			bonus = 3
		}
		_ = res.user.Buffs.SetTemp("defense_up_this_turn", bonus, 1)
		res.logf("%s deploys %s (+%d defense this turn)", res.user.Name, res.card.Name(), bonus)
	},
}

// secondaryEffect is an extra effect keyed by card id, applied after
// category dispatch when the card also carries tag.
type secondaryEffect struct {
	tag   string
	apply func(r *Resolver, res *resolution)
}

// secondaryEffects maps card ids to their tag-gated extra effects.
var secondaryEffects = map[string]secondaryEffect{
	// weaken
	"S4":  {TagWeaken, weakenTarget(1)},
	"S9":  {TagWeaken, weakenTarget(1)},
	"S10": {TagWeaken, weakenTarget(2)},
	"S12": {TagWeaken, weakenTarget(2)},

	// counter
	"S16": {TagCounter, grantCounter(1)},
	"S18": {TagCounter, counterWithGuardBonus(2, 1)},
	"S22": {TagCounter, grantCounter(2)},

	// formations (turn-start unless noted)
	"S23": {TagFormation, deploy(KindFormationWall, 3, 3, TriggerTurnStart, "wall formation")},
	"S24": {TagFormation, deploy(KindFormationDefBoost, 3, 2, TriggerPassive, "efficient defense formation")},
	"S25": {TagFormation, deploy(KindFormationWeakStack, 1, 3, TriggerTurnStart, "attrition formation")},
	"S26": {TagFormation, deploy(KindFormationDraw, 1, 2, TriggerTurnStart, "skirmisher formation")},
	"S27": {TagFormation, deploy(KindFormationCounterStack, 1, 3, TriggerTurnStart, "counter formation")},

	// triggers, live for the rest of this round
	"S28": {TagTrigger, deploy(KindTriggerAttackCounter, 1, 1, TriggerCardPlayed, "counter stance (attacks grant Counter+1)")},
	"S29": {TagTrigger, deploy(KindTriggerDefenseCounter, 1, 1, TriggerCardPlayed, "guard-and-strike (defenses grant Counter+1)")},
	"S30": {TagTrigger, deploy(KindTriggerSkillDraw, 1, 1, TriggerCardPlayed, "rallying order (skills draw 1)")},
	"S31": {TagTrigger, deploy(KindTriggerAnyCounter, 1, 1, TriggerCardPlayed, "high morale (every card grants Counter+1)")},
	"S32": {TagTrigger, deploy(KindBlockRecover, 1, 1, TriggerOnHit, "measured formation (Block+1 whenever block absorbs a hit)")},
}

func weakenTarget(stacks int) func(r *Resolver, res *resolution) {
	return func(r *Resolver, res *resolution) {
		opApplyWeaken(r, res, stacks)
	}
}

func grantCounter(n int) func(r *Resolver, res *resolution) {
	return func(r *Resolver, res *resolution) {
		opGrantCounter(r, res, n)
	}
}

// counterWithGuardBonus grants base counter, plus bonus more when the user
// still has block up.
func counterWithGuardBonus(base, bonus int) func(r *Resolver, res *resolution) {
	return func(r *Resolver, res *resolution) {
		opGrantCounter(r, res, base)
		if res.user.Block > 0 {
			opGrantCounter(r, res, bonus)
		}
	}
}

func deploy(kind string, magnitude, duration int, trigger Trigger, label string) func(r *Resolver, res *resolution) {
	return func(r *Resolver, res *resolution) {
		if err := res.user.Buffs.Add(kind, magnitude, duration, trigger); err != nil {
			res.logf("[diag] %v", err)
			return
		}
		res.logf("%s deploys %s (%s)", res.user.Name, label, turnsLabel(duration))
	}
}

func turnsLabel(n int) string {
	return fmt.Sprintf("%dT", n)
}
