package log

// EventType enumerates all observable battle events.
type EventType int

const (
	EventBattleStart EventType = iota
	EventTurnStart
	EventTurnEnd
	EventDraw
	EventShuffle
	EventPlayCard
	EventResolve
	EventInvalidPlay
	EventBuffFired
	EventBuffExpired
	EventEnemyAction
	EventEnemyWait
	EventDiagnostic
	EventWin
	EventLoss
	EventDraw_Tie
	EventTurnLimit
)

func (e EventType) String() string {
	switch e {
	case EventBattleStart:
		return "BattleStart"
	case EventTurnStart:
		return "TurnStart"
	case EventTurnEnd:
		return "TurnEnd"
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventPlayCard:
		return "PlayCard"
	case EventResolve:
		return "Resolve"
	case EventInvalidPlay:
		return "InvalidPlay"
	case EventBuffFired:
		return "BuffFired"
	case EventBuffExpired:
		return "BuffExpired"
	case EventEnemyAction:
		return "EnemyAction"
	case EventEnemyWait:
		return "EnemyWait"
	case EventDiagnostic:
		return "Diagnostic"
	case EventWin:
		return "Win"
	case EventLoss:
		return "Loss"
	case EventDraw_Tie:
		return "Draw(tie)"
	case EventTurnLimit:
		return "TurnLimit"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a battle.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // battle turn (1-based)
	Phase   string    // controller phase name (e.g. "Player Turn")
	Actor   string    // name of the acting combatant, if any
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
