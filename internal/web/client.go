package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/coder/websocket"

	"github.com/peterkuimelis/sengoku/internal/console"
	"github.com/peterkuimelis/sengoku/internal/game"
)

// Client plays a battle hosted by a sengoku web server from the terminal.
type Client struct {
	conn *websocket.Conn
	term *console.Controller
	out  io.Writer
}

// Connect dials the server's websocket endpoint, sends start and runs the
// REPL until the battle ends. It returns the final state.
func Connect(ctx context.Context, url string, start ClientMessage, term *console.Controller, out io.Writer) (*game.Snapshot, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.CloseNow()

	c := &Client{conn: conn, term: term, out: out}
	start.Type = "start"
	if err := c.send(ctx, start); err != nil {
		return nil, fmt.Errorf("send start: %w", err)
	}
	return c.RunREPL(ctx)
}

// RunREPL reads server messages and answers command prompts.
func (c *Client) RunREPL(ctx context.Context) (*game.Snapshot, error) {
	for {
		msg, err := c.recv(ctx)
		if err != nil {
			return nil, fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case "notify":
			if msg.Event != nil {
				fmt.Fprintln(c.out, msg.Event.Text)
			}

		case "choose_command":
			if msg.State == nil {
				return nil, errors.New("choose_command without state")
			}
			reply, err := c.choose(ctx, *msg.State)
			if err != nil {
				return nil, err
			}
			if err := c.send(ctx, reply); err != nil {
				return nil, fmt.Errorf("send command: %w", err)
			}
			if reply.Type == "quit" {
				c.conn.Close(websocket.StatusNormalClosure, "player left")
				return msg.State, console.ErrQuit
			}

		case "error":
			fmt.Fprintf(c.out, "server: %s\n", msg.Message)

		case "battle_over":
			if msg.State == nil {
				return nil, fmt.Errorf("battle over: %s", msg.Message)
			}
			c.term.RenderResult(*msg.State)
			c.conn.Close(websocket.StatusNormalClosure, "")
			return msg.State, nil
		}
	}
}

func (c *Client) choose(ctx context.Context, snap game.Snapshot) (ClientMessage, error) {
	cmd, err := c.term.ChooseCommand(ctx, snap)
	if errors.Is(err, console.ErrQuit) {
		return ClientMessage{Type: "quit"}, nil
	}
	if err != nil {
		return ClientMessage{}, err
	}
	if cmd.Type == game.CommandEndTurn {
		return ClientMessage{Type: "end_turn"}, nil
	}
	return ClientMessage{Type: "play", Index: cmd.Index}, nil
}

func (c *Client) send(ctx context.Context, msg ClientMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.conn.Write(ctx, websocket.MessageText, data)
}

func (c *Client) recv(ctx context.Context) (ServerMessage, error) {
	var msg ServerMessage
	_, data, err := c.conn.Read(ctx)
	if err != nil {
		return msg, err
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("decode server message: %w", err)
	}
	return msg, nil
}
