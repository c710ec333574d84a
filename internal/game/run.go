package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/peterkuimelis/sengoku/internal/log"
)

// PlayerController is the interface that console, web and MCP players implement.
type PlayerController interface {
	// ChooseCommand shows the battle state and waits for the player's command.
	ChooseCommand(ctx context.Context, snap Snapshot) (Command, error)

	// Notify sends a battle event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// maxRejectedCommands bounds how many invalid commands in a row a
// controller may send before the turn is ended for it.
const maxRejectedCommands = 50

// Run drives the battle to its end with pc choosing the player's commands.
// It returns the result, or the controller's error.
func (b *Battle) Run(ctx context.Context, pc PlayerController) (Result, error) {
	b.ctx = ctx
	b.controller = pc
	defer func() {
		b.controller = nil
		b.ctx = context.Background()
	}()

	if b.Phase == PhaseNotStarted {
		if _, err := b.StartBattle(); err != nil {
			return ResultNone, err
		}
	}

	for b.Phase != PhaseOver {
		if err := ctx.Err(); err != nil {
			return ResultNone, err
		}
		switch b.Phase {
		case PhaseTurnStart:
			if err := b.StartTurn(); err != nil {
				return ResultNone, err
			}
		case PhasePlayerActing:
			if err := b.playerTurn(ctx, pc); err != nil {
				return ResultNone, err
			}
		case PhaseEnemyActing:
			if _, err := b.EnemyAct(); err != nil {
				return ResultNone, err
			}
		default:
			return ResultNone, fmt.Errorf("run: unexpected phase %s", b.Phase)
		}
	}

	return b.result, nil
}

// playerTurn asks the controller for commands until it ends the turn or
// the battle is over. Rejected plays are logged and the controller is asked
// again.
func (b *Battle) playerTurn(ctx context.Context, pc PlayerController) error {
	rejected := 0
	for b.Phase == PhasePlayerActing {
		cmd, err := pc.ChooseCommand(ctx, b.Snapshot())
		if err != nil {
			return err
		}
		switch cmd.Type {
		case CommandPlay:
			_, err := b.PlayCard(cmd.Index)
			if errors.Is(err, ErrInvalidIndex) || errors.Is(err, ErrInsufficientEnergy) {
				rejected++
				if rejected >= maxRejectedCommands {
					b.diag(fmt.Sprintf("%d rejected commands in a row, ending turn", rejected))
					return b.EndTurn()
				}
				continue
			}
			if err != nil {
				return err
			}
			rejected = 0
		case CommandEndTurn:
			return b.EndTurn()
		default:
			return fmt.Errorf("unknown command type %d", cmd.Type)
		}
	}
	return nil
}
