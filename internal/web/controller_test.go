package web

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/sengoku/internal/game"
	"github.com/peterkuimelis/sengoku/internal/log"
)

// fakeConn replays queued client messages and records what the
// controller writes.
type fakeConn struct {
	in  [][]byte
	out []ServerMessage
}

func (c *fakeConn) queue(t *testing.T, msgs ...ClientMessage) {
	for _, m := range msgs {
		data, err := json.Marshal(m)
		require.NoError(t, err)
		c.in = append(c.in, data)
	}
}

func (c *fakeConn) Read(ctx context.Context) (websocket.MessageType, []byte, error) {
	if len(c.in) == 0 {
		return 0, nil, errors.New("connection closed")
	}
	data := c.in[0]
	c.in = c.in[1:]
	return websocket.MessageText, data, nil
}

func (c *fakeConn) Write(ctx context.Context, typ websocket.MessageType, p []byte) error {
	var msg ServerMessage
	if err := json.Unmarshal(p, &msg); err != nil {
		return err
	}
	c.out = append(c.out, msg)
	return nil
}

func TestSocketControllerChooseCommand(t *testing.T) {
	conn := &fakeConn{}
	conn.queue(t, ClientMessage{Type: "hello"}, ClientMessage{Type: "play", Index: 2})
	sc := NewSocketController(conn)

	cmd, err := sc.ChooseCommand(context.Background(), game.Snapshot{Turn: 3})
	require.NoError(t, err)
	assert.Equal(t, game.PlayCommand(2), cmd)

	require.Len(t, conn.out, 2)
	assert.Equal(t, "choose_command", conn.out[0].Type)
	assert.Equal(t, 3, conn.out[0].State.Turn)
	assert.Equal(t, "error", conn.out[1].Type)
}

func TestSocketControllerEndAndQuit(t *testing.T) {
	conn := &fakeConn{}
	conn.queue(t, ClientMessage{Type: "end_turn"}, ClientMessage{Type: "quit"})
	sc := NewSocketController(conn)

	cmd, err := sc.ChooseCommand(context.Background(), game.Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, game.EndTurnCommand(), cmd)

	_, err = sc.ChooseCommand(context.Background(), game.Snapshot{})
	assert.ErrorIs(t, err, ErrClientQuit)

	_, err = sc.ChooseCommand(context.Background(), game.Snapshot{})
	assert.Error(t, err)
}

func TestSocketControllerNotify(t *testing.T) {
	conn := &fakeConn{}
	sc := NewSocketController(conn)

	ev := log.NewPlayCardEvent(1, "Player Turn", "Hideyoshi", "Ashigaru Spear", 1, 2)
	ev.Seq = 7
	require.NoError(t, sc.Notify(context.Background(), ev))
	require.NoError(t, sc.SendBattleOver(context.Background(), game.Snapshot{Result: game.ResultLoss, Message: "Defeat"}))

	require.Len(t, conn.out, 2)
	assert.Equal(t, "notify", conn.out[0].Type)
	assert.Equal(t, 7, conn.out[0].Event.Seq)
	assert.Equal(t, "PlayCard", conn.out[0].Event.Type)
	assert.Equal(t, log.FormatEvent(ev), conn.out[0].Event.Text)
	assert.Equal(t, "battle_over", conn.out[1].Type)
	assert.Equal(t, "loss", conn.out[1].Result)
}
