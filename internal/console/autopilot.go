package console

import (
	"context"

	"github.com/peterkuimelis/sengoku/internal/game"
	"github.com/peterkuimelis/sengoku/internal/log"
)

// Autopilot plays the first affordable card each time it is asked and ends
// the turn when nothing is affordable.
type Autopilot struct{}

func (Autopilot) ChooseCommand(ctx context.Context, snap game.Snapshot) (game.Command, error) {
	for _, cv := range snap.Hand {
		if cv.Playable {
			return game.PlayCommand(cv.Index), nil
		}
	}
	return game.EndTurnCommand(), nil
}

func (Autopilot) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}
