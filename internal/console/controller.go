package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterkuimelis/sengoku/internal/game"
	"github.com/peterkuimelis/sengoku/internal/log"
)

// ErrQuit is returned when the player quits the battle.
var ErrQuit = errors.New("player quit")

// Controller implements game.PlayerController as a terminal REPL.
type Controller struct {
	in  *bufio.Reader
	out io.Writer
}

// NewController reads commands from in and renders to out.
func NewController(in io.Reader, out io.Writer) *Controller {
	return &Controller{in: bufio.NewReader(in), out: out}
}

// ChooseCommand renders the battle and reads one command. Cards are
// numbered from 1; "e" ends the turn and "q" quits.
func (c *Controller) ChooseCommand(ctx context.Context, snap game.Snapshot) (game.Command, error) {
	c.renderState(snap)
	c.renderHand(snap.Hand)
	for {
		if err := ctx.Err(); err != nil {
			return game.Command{}, err
		}
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return game.Command{}, ErrQuit
			}
			return game.Command{}, fmt.Errorf("read command: %w", err)
		}
		cmd, ok, quit := parseCommand(line, len(snap.Hand))
		if quit {
			return game.Command{}, ErrQuit
		}
		if ok {
			return cmd, nil
		}
		fmt.Fprintf(c.out, "Enter a card number between 1 and %d, e to end the turn, or q to quit\n", len(snap.Hand))
	}
}

func parseCommand(line string, handSize int) (cmd game.Command, ok, quit bool) {
	line = strings.TrimSpace(strings.ToLower(line))
	switch line {
	case "e", "end", "end turn":
		return game.EndTurnCommand(), true, false
	case "q", "quit", "exit":
		return game.Command{}, false, true
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > handSize {
		return game.Command{}, false, false
	}
	return game.PlayCommand(n - 1), true, false
}

// Notify prints the event in the text log format.
func (c *Controller) Notify(ctx context.Context, event log.GameEvent) error {
	_, err := fmt.Fprintln(c.out, log.FormatEvent(event))
	return err
}

// RenderResult prints the closing banner.
func (c *Controller) RenderResult(snap game.Snapshot) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "═══════════════════════════════════")
	fmt.Fprintln(c.out, "          BATTLE OVER")
	fmt.Fprintln(c.out, "═══════════════════════════════════")
	fmt.Fprintf(c.out, "%s (%s)\n", snap.Message, snap.Result)
	fmt.Fprintln(c.out, "═══════════════════════════════════")
}

func (c *Controller) renderState(snap game.Snapshot) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")
	fmt.Fprintf(c.out, "║  %s  Hand: %d\n", formatCombatant(snap.Enemy), snap.EnemyHandSize)
	if buffs := formatBuffs(snap.Enemy.Buffs); buffs != "" {
		fmt.Fprintf(c.out, "║  %s\n", buffs)
	}
	fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")
	if buffs := formatBuffs(snap.Player.Buffs); buffs != "" {
		fmt.Fprintf(c.out, "║  %s\n", buffs)
	}
	fmt.Fprintf(c.out, "║  %s  Energy: %d\n", formatCombatant(snap.Player), snap.Player.Energy)
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")
	fmt.Fprintf(c.out, "Turn %d | %s\n", snap.Turn, snap.Phase)
}

func (c *Controller) renderHand(hand []game.CardView) {
	fmt.Fprintln(c.out, "\nHand:")
	for _, cv := range hand {
		mark := " "
		if !cv.Playable {
			mark = "x"
		}
		fmt.Fprintf(c.out, " %s%d) %s [%s] cost %d", mark, cv.Index+1, cv.Name, cv.Category, cv.Cost)
		if cv.Power > 0 {
			fmt.Fprintf(c.out, " power %d", cv.Power)
		}
		if cv.Description != "" {
			fmt.Fprintf(c.out, " - %s", cv.Description)
		}
		fmt.Fprintln(c.out)
	}
}

func formatCombatant(v game.CombatantView) string {
	return fmt.Sprintf("%s (HP: %d/%d)  Block: %d", strings.ToUpper(v.Name), v.HP, v.MaxHP, v.Block)
}

func formatBuffs(buffs []game.Buff) string {
	parts := make([]string, 0, len(buffs))
	for _, b := range buffs {
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ", ")
}
