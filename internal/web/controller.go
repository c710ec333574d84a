package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/coder/websocket"

	"github.com/peterkuimelis/sengoku/internal/game"
	"github.com/peterkuimelis/sengoku/internal/log"
)

// ErrClientQuit is returned when the browser asks to leave the battle.
var ErrClientQuit = errors.New("client quit")

// messageConn is the part of *websocket.Conn the controller uses.
type messageConn interface {
	Read(ctx context.Context) (websocket.MessageType, []byte, error)
	Write(ctx context.Context, typ websocket.MessageType, p []byte) error
}

// SocketController implements game.PlayerController over a websocket.
type SocketController struct {
	conn messageConn
	mu   sync.Mutex
}

// NewSocketController creates a controller for the given connection.
func NewSocketController(conn messageConn) *SocketController {
	return &SocketController{conn: conn}
}

// send writes a server message. Must be called with mu held.
func (sc *SocketController) send(ctx context.Context, msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return sc.conn.Write(ctx, websocket.MessageText, data)
}

// recv reads a client message. Must be called with mu held.
func (sc *SocketController) recv(ctx context.Context) (ClientMessage, error) {
	var msg ClientMessage
	_, data, err := sc.conn.Read(ctx)
	if err != nil {
		return msg, err
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("decode client message: %w", err)
	}
	return msg, nil
}

// ChooseCommand implements game.PlayerController.
func (sc *SocketController) ChooseCommand(ctx context.Context, snap game.Snapshot) (game.Command, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if err := sc.send(ctx, ServerMessage{Type: "choose_command", State: &snap}); err != nil {
		return game.Command{}, fmt.Errorf("send choose_command: %w", err)
	}

	for {
		resp, err := sc.recv(ctx)
		if err != nil {
			return game.Command{}, fmt.Errorf("recv command: %w", err)
		}
		switch resp.Type {
		case "play":
			return game.PlayCommand(resp.Index), nil
		case "end_turn":
			return game.EndTurnCommand(), nil
		case "quit":
			return game.Command{}, ErrClientQuit
		default:
			if err := sc.send(ctx, ServerMessage{Type: "error", Message: fmt.Sprintf("unexpected message %q", resp.Type)}); err != nil {
				return game.Command{}, err
			}
		}
	}
}

// Notify implements game.PlayerController.
func (sc *SocketController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.send(ctx, ServerMessage{Type: "notify", Event: eventView(event)})
}

// SendBattleOver sends the final state.
func (sc *SocketController) SendBattleOver(ctx context.Context, snap game.Snapshot) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.send(ctx, ServerMessage{
		Type:    "battle_over",
		State:   &snap,
		Result:  snap.Result.String(),
		Message: snap.Message,
	})
}

// SendError reports a setup failure to the browser.
func (sc *SocketController) SendError(ctx context.Context, msg string) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.send(ctx, ServerMessage{Type: "error", Message: msg})
}
