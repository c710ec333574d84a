package mcp

import (
	"context"

	"github.com/peterkuimelis/sengoku/internal/game"
	"github.com/peterkuimelis/sengoku/internal/log"
)

// AgentController implements game.PlayerController by sending decisions
// to the MCP session's pending channel and blocking on a response channel.
type AgentController struct {
	session    *BattleSession
	responseCh chan game.Command
}

// NewAgentController creates the player-side controller of a session.
func NewAgentController(session *BattleSession) *AgentController {
	return &AgentController{
		session:    session,
		responseCh: make(chan game.Command),
	}
}

// ChooseCommand implements game.PlayerController.
func (c *AgentController) ChooseCommand(ctx context.Context, snap game.Snapshot) (game.Command, error) {
	select {
	case c.session.pendingCh <- &PendingDecision{Type: DecisionChooseCommand, State: snap}:
	case <-ctx.Done():
		return game.Command{}, ctx.Err()
	}

	select {
	case cmd := <-c.responseCh:
		return cmd, nil
	case <-ctx.Done():
		return game.Command{}, ctx.Err()
	}
}

// Notify implements game.PlayerController.
func (c *AgentController) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(EventView{
		Turn:    event.Turn,
		Phase:   event.Phase,
		Actor:   event.Actor,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	})
	return nil
}
