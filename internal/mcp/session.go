package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/sengoku/internal/config"
	"github.com/peterkuimelis/sengoku/internal/game"
	"github.com/peterkuimelis/sengoku/internal/log"
)

// DecisionType identifies what the battle is waiting for.
type DecisionType string

const (
	DecisionChooseCommand DecisionType = "choose_command"
	DecisionBattleOver    DecisionType = "battle_over"
)

// PendingDecision is a decision the battle is waiting for.
type PendingDecision struct {
	Type  DecisionType
	State game.Snapshot
}

// EventView is a simplified battle event for the agent.
type EventView struct {
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Actor   string `json:"actor,omitempty"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	SessionID  string         `json:"session_id"`
	Events     []EventView    `json:"events"`
	State      *game.Snapshot `json:"state,omitempty"`
	Pending    *PendingView   `json:"pending,omitempty"`
	BattleOver bool           `json:"battle_over"`
	Result     string         `json:"result,omitempty"`
	Message    string         `json:"message,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type     DecisionType `json:"type"`
	Playable []int        `json:"playable"`
	Hint     string       `json:"hint"`
}

// BattleSession holds one battle driven by MCP tool calls. The battle runs
// on its own goroutine and parks in the controller between tool calls.
type BattleSession struct {
	ID     string
	battle *game.Battle
	ctrl   *AgentController
	cancel context.CancelFunc
	done   chan struct{}

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu      sync.Mutex
	events  []EventView
	over    bool
	result  game.Result
	message string
}

// NewBattleSession creates the battle described by cfg and starts it.
func NewBattleSession(cfg *config.Config, data *config.Data, logger *zap.Logger) (*BattleSession, error) {
	b, err := cfg.NewBattle(data, log.NewZapLogger(logger), logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess := &BattleSession{
		ID:        uuid.NewString(),
		battle:    b,
		cancel:    cancel,
		done:      make(chan struct{}),
		pendingCh: make(chan *PendingDecision, 1),
	}
	sess.ctrl = NewAgentController(sess)

	go func() {
		defer close(sess.done)
		result, err := b.Run(ctx, sess.ctrl)
		snap := b.Snapshot()
		message := snap.Message
		if err != nil {
			message = fmt.Sprintf("error: %v", err)
			logger.Info("mcp battle stopped", zap.String("session_id", sess.ID), zap.Error(err))
		}

		sess.mu.Lock()
		sess.over = true
		sess.result = result
		sess.message = message
		sess.mu.Unlock()

		select {
		case sess.pendingCh <- &PendingDecision{Type: DecisionBattleOver, State: snap}:
		default:
			// closed while a decision was still unread
		}
	}()

	return sess, nil
}

// Close stops the battle goroutine and waits for it to exit.
func (s *BattleSession) Close() {
	s.cancel()
	<-s.done
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *BattleSession) appendEvent(ev EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *BattleSession) drainEvents() []EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []EventView{}
	}
	return events
}

// Over reports whether the battle has ended.
func (s *BattleSession) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.over
}

// waitForPending blocks until the next decision arrives from the battle,
// then builds a ToolResponse with accumulated events + the pending decision.
func (s *BattleSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	select {
	case pending := <-s.pendingCh:
		s.currentPending = pending
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.response(), nil
}

// response describes the current pending decision without waiting.
func (s *BattleSession) response() *ToolResponse {
	resp := &ToolResponse{
		SessionID: s.ID,
		Events:    s.drainEvents(),
	}
	pending := s.currentPending
	if pending == nil {
		return resp
	}
	state := pending.State
	resp.State = &state

	if pending.Type == DecisionBattleOver {
		s.mu.Lock()
		resp.BattleOver = true
		resp.Result = s.result.String()
		resp.Message = s.message
		s.mu.Unlock()
		return resp
	}

	pv := &PendingView{Type: pending.Type, Playable: []int{}}
	for _, cv := range state.Hand {
		if cv.Playable {
			pv.Playable = append(pv.Playable, cv.Index)
		}
	}
	if len(pv.Playable) == 0 {
		pv.Hint = "No card is affordable. Use end_turn."
	} else {
		pv.Hint = "Use play_card with a 0-based hand index, or end_turn."
	}
	resp.Pending = pv
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
