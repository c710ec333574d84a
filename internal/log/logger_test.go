package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMemoryLogger(t *testing.T) {
	l := NewMemoryLogger()
	assert.Equal(t, GameEvent{}, l.LastEvent())

	l.Log(NewBattleStartEvent("Hideyoshi", "Bandit Chief"))
	l.Log(NewDrawEvent(1, "Turn Start", "Hideyoshi", "Ashigaru Spear"))
	l.Log(NewDrawEvent(1, "Turn Start", "Hideyoshi", "Bamboo Palisade"))

	events := l.Events()
	require.Len(t, events, 3)
	for i, e := range events {
		assert.Equal(t, i+1, e.Seq)
	}
	draws := l.EventsOfType(EventDraw)
	require.Len(t, draws, 2)
	assert.Equal(t, "Ashigaru Spear", draws[0].Card)
	assert.Equal(t, "Bamboo Palisade", l.LastEvent().Card)
	assert.Equal(t, "Hideyoshi draws Ashigaru Spear", l.Lines()[1])
}

func TestFormatEvent(t *testing.T) {
	line := FormatEvent(NewTurnStartEvent(3, "Turn Start", "Hideyoshi"))
	assert.Equal(t, "T3   Turn Start    | === Turn 3 (Hideyoshi) ===", line)

	// three-digit turns and events without a phase keep the column aligned
	limit := FormatEvent(NewTurnLimitEvent(200, 200))
	assert.Equal(t, strings.Index(line, "|"), strings.Index(limit, "|"))
	late := FormatEvent(NewTurnStartEvent(100, "Turn Start", "Hideyoshi"))
	assert.Equal(t, strings.Index(line, "|"), strings.Index(late, "|"))

	all := FormatAll([]GameEvent{NewTieEvent(4, "Check End"), NewDiagnosticEvent(4, "Check End", "odd")})
	lines := strings.Split(strings.TrimSuffix(all, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], "[diag] odd"))
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewWinEvent(5, "Player Turn", "Hideyoshi", "Bandit Chief"))

	assert.Contains(t, buf.String(), "Hideyoshi wins! (Bandit Chief fell)")
	assert.Len(t, l.Events(), 1)
}

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))

	l.Log(NewPlayCardEvent(2, "Player Turn", "Hideyoshi", "Ashigaru Spear", 1, 2))
	l.Log(NewDiagnosticEvent(2, "Player Turn", "unknown op"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "Ashigaru Spear", entries[0].ContextMap()["card"])
	assert.Equal(t, "PlayCard", entries[0].ContextMap()["type"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "[diag] unknown op", entries[1].Message)
	assert.Len(t, l.EventsOfType(EventDiagnostic), 1)
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "Draw(tie)", EventDraw_Tie.String())
	assert.Equal(t, "TurnLimit", EventTurnLimit.String())
	assert.Equal(t, "Unknown", EventType(99).String())
}
