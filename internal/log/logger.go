package log

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Sink receives battle events. A battle is given exactly one sink at
// construction and never swaps it.
type Sink interface {
	Log(event GameEvent)
}

// EventLogger is a Sink that also keeps the ordered event stream.
type EventLogger interface {
	Sink
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Lines returns the Details of every event in order.
func (l *MemoryLogger) Lines() []string {
	lines := make([]string, 0, len(l.events))
	for _, e := range l.events {
		lines = append(lines, e.Details)
	}
	return lines
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- ZapLogger: mirrors events into a structured zap logger ---

type ZapLogger struct {
	MemoryLogger
	logger *zap.Logger
}

// NewZapLogger records events in memory and forwards each one to logger at
// debug level (diagnostics at warn).
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger}
}

func (l *ZapLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fields := []zap.Field{
		zap.Int("seq", l.seq),
		zap.Int("turn", event.Turn),
		zap.String("phase", event.Phase),
		zap.String("type", event.Type.String()),
	}
	if event.Actor != "" {
		fields = append(fields, zap.String("actor", event.Actor))
	}
	if event.Card != "" {
		fields = append(fields, zap.String("card", event.Card))
	}
	if event.Type == EventDiagnostic {
		l.logger.Warn(event.Details, fields...)
		return
	}
	l.logger.Debug(event.Details, fields...)
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 14 chars for alignment
	for len(phase) < 14 {
		phase += " "
	}

	return fmt.Sprintf("T%-3d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewBattleStartEvent(player, enemy string) GameEvent {
	return GameEvent{
		Turn:    1,
		Type:    EventBattleStart,
		Details: fmt.Sprintf("=== Battle start: %s vs %s ===", player, enemy),
	}
}

func NewTurnStartEvent(turn int, phase string, actor string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventTurnStart,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, actor),
	}
}

func NewTurnEndEvent(turn int, phase string, actor string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventTurnEnd,
		Details: fmt.Sprintf("%s ends turn %d", actor, turn),
	}
}

func NewDrawEvent(turn int, phase string, actor string, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", actor, cardName),
	}
}

func NewShuffleEvent(turn int, phase string, actor string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s shuffles the discard pile into the deck", actor),
	}
}

func NewPlayCardEvent(turn int, phase string, actor string, cardName string, cost, energyLeft int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventPlayCard,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s (cost %d, energy left %d)", actor, cardName, cost, energyLeft),
	}
}

func NewResolveEvent(turn int, phase string, actor string, cardName string, text string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventResolve,
		Card:    cardName,
		Details: text,
	}
}

func NewInvalidPlayEvent(turn int, phase string, actor string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventInvalidPlay,
		Details: reason,
	}
}

func NewBuffFiredEvent(turn int, phase string, actor string, text string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventBuffFired,
		Details: text,
	}
}

func NewBuffExpiredEvent(turn int, phase string, actor string, kind string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventBuffExpired,
		Details: fmt.Sprintf("%s's %s wore off", actor, kind),
	}
}

func NewEnemyActionEvent(turn int, phase string, actor string, cardName string, text string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventEnemyAction,
		Card:    cardName,
		Details: text,
	}
}

func NewEnemyWaitEvent(turn int, phase string, actor string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventEnemyWait,
		Details: fmt.Sprintf("%s watches and waits", actor),
	}
}

func NewDiagnosticEvent(turn int, phase string, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventDiagnostic,
		Details: "[diag] " + details,
	}
}

func NewWinEvent(turn int, phase string, winner string, loser string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s fell)", winner, loser),
	}
}

func NewLossEvent(turn int, phase string, loser string, winner string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   loser,
		Type:    EventLoss,
		Details: fmt.Sprintf("%s is defeated by %s", loser, winner),
	}
}

func NewTieEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventDraw_Tie,
		Details: "Both sides fall at once: draw",
	}
}

func NewTurnLimitEvent(turn int, limit int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventTurnLimit,
		Details: fmt.Sprintf("Turn limit reached (%d turns): draw", limit),
	}
}
