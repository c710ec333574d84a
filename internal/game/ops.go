package game

// opHandler executes one instruction with its value.
type opHandler func(r *Resolver, res *resolution, value int)

// opsTable maps normalized op names to their handlers. Hyphenated names in
// card data ("deal-damage") normalize to the underscore form.
var opsTable = map[string]opHandler{
	"deal_damage":     opDealDamage,
	"attack":          opDealDamage,
	"gain_block":      opGainBlock,
	"apply_weaken":    opApplyWeaken,
	"add_weak":        opApplyWeaken,
	"grant_counter":   opGrantCounter,
	"add_counter":     opGrantCounter,
	"draw":            opDraw,
	"release_counter": opReleaseCounter,
	"shield_bash":     opShieldBash,
}

func opDealDamage(r *Resolver, res *resolution, value int) {
	dealt := r.strike(res, value)
	res.logf("%s's %s → %s takes %d damage", res.user.Name, res.card.Name(), res.target.Name, dealt)
	r.flushHit(res)
}

func opGainBlock(r *Resolver, res *resolution, value int) {
	res.user.GainBlock(value)
	res.logf("%s's %s → Block+%d (total %d)", res.user.Name, res.card.Name(), max(0, value), res.user.Block)
}

func opApplyWeaken(r *Resolver, res *resolution, value int) {
	value = max(0, value)
	if err := res.target.Buffs.Add(KindWeak, value, weakenDuration, TriggerPassive); err != nil {
		res.logf("[diag] %v", err)
		return
	}
	res.logf("%s is weakened by %d (%dT)", res.target.Name, value, weakenDuration)
}

func opGrantCounter(r *Resolver, res *resolution, value int) {
	if err := res.user.Buffs.Add(KindCounter, value, counterDuration, TriggerOnHit); err != nil {
		res.logf("[diag] %v", err)
		return
	}
	res.logf("%s gains Counter+%d (%dT)", res.user.Name, value, counterDuration)
}

func opDraw(r *Resolver, res *resolution, value int) {
	n := 0
	if r.drawer != nil && value > 0 {
		n = r.drawer.DrawFor(res.user, value)
	}
	res.logf("%s draws %d card(s)", res.user.Name, n)
}

// opReleaseCounter spends every counter stack the user holds as extra
// damage. The counter entries are consumed.
func opReleaseCounter(r *Resolver, res *resolution, value int) {
	stored := res.user.Buffs.ValueOf(KindCounter)
	res.user.Buffs.Clear(KindCounter)
	dealt := r.strike(res, value+stored)
	res.logf("%s releases %d stored counter → %s takes %d damage", res.user.Name, stored, res.target.Name, dealt)
	r.flushHit(res)
}

// opShieldBash converts the user's whole block into damage. value is added
// on top.
func opShieldBash(r *Resolver, res *resolution, value int) {
	spent := res.user.Block
	res.user.Block = 0
	dealt := r.strike(res, spent+max(0, value))
	res.logf("%s bashes with %d block → %s takes %d damage", res.user.Name, spent, res.target.Name, dealt)
	r.flushHit(res)
}
