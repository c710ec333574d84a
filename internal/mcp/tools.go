package mcp

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/sengoku/internal/config"
	"github.com/peterkuimelis/sengoku/internal/game"
)

// Tools holds the battle session behind the MCP tools (one per stdio
// process).
type Tools struct {
	cfg    *config.Config
	data   *config.Data
	logger *zap.Logger

	mu      sync.Mutex
	session *BattleSession
}

// NewTools creates the tool set. Battles start from cfg; start_battle
// arguments override the decks, policy and seed.
func NewTools(cfg *config.Config, data *config.Data, logger *zap.Logger) *Tools {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tools{cfg: cfg, data: data, logger: logger}
}

// Register adds all battle tools to the MCP server.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(startBattleTool(), t.handleStartBattle)
	s.AddTool(playCardTool(), t.handlePlayCard)
	s.AddTool(endTurnTool(), t.handleEndTurn)
	s.AddTool(getBattleStateTool(), t.handleGetBattleState)
	s.AddTool(listDecksTool(), t.handleListDecks)
}

// --- Tool definitions ---

func startBattleTool() mcp.Tool {
	return mcp.NewTool("start_battle",
		mcp.WithDescription("Start a new single-player card battle. You play the player side against a computer enemy. "+
			"Returns the opening state and the first pending decision. Starting a new battle abandons the current one."),
		mcp.WithString("player_deck", mcp.Description("Player deck name from list_decks (default from config)")),
		mcp.WithString("enemy_deck", mcp.Description("Enemy deck name from list_decks (default from config)")),
		mcp.WithString("policy", mcp.Description("Enemy policy: 'priority' or 'random'")),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed for a reproducible battle (0 = random)")),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from your hand. Costs the card's energy. Use this when the pending decision type is 'choose_command'."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the card in state.hand")),
	)
}

func endTurnTool() mcp.Tool {
	return mcp.NewTool("end_turn",
		mcp.WithDescription("End your turn. The enemy acts, then your next turn starts. Returns everything that happened."),
	)
}

func getBattleStateTool() mcp.Tool {
	return mcp.NewTool("get_battle_state",
		mcp.WithDescription("Get the current battle state, accumulated events, and pending decision without submitting a command. Read-only."),
	)
}

func listDecksTool() mcp.Tool {
	return mcp.NewTool("list_decks",
		mcp.WithDescription("List the available decks and their card ids."),
	)
}

// --- Tool handlers ---

func (t *Tools) handleStartBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cfg := *t.cfg
	if deck := request.GetString("player_deck", ""); deck != "" {
		cfg.Player.Deck = deck
	}
	if deck := request.GetString("enemy_deck", ""); deck != "" {
		cfg.Enemy.Deck = deck
	}
	if policy := request.GetString("policy", ""); policy != "" {
		cfg.Enemy.Policy = policy
	}
	if seed := request.GetInt("seed", 0); seed != 0 {
		cfg.Battle.Seed = int64(seed)
	}

	sess, err := NewBattleSession(&cfg, t.data, t.logger)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start battle: %v", err), nil
	}
	if t.session != nil {
		t.session.Close()
	}
	t.session = sess

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess, errResult := t.awaitingCommand()
	if errResult != nil {
		return errResult, nil
	}

	hand := sess.currentPending.State.Hand
	index := request.GetInt("index", -1)
	if index < 0 || index >= len(hand) {
		return mcp.NewToolResultErrorf("Invalid index %d. Hand has %d card(s) (0-%d).", index, len(hand), len(hand)-1), nil
	}

	return t.submit(ctx, sess, game.PlayCommand(index))
}

func (t *Tools) handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess, errResult := t.awaitingCommand()
	if errResult != nil {
		return errResult, nil
	}
	return t.submit(ctx, sess, game.EndTurnCommand())
}

func (t *Tools) handleGetBattleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil {
		return mcp.NewToolResultError("No battle is running. Use start_battle first."), nil
	}
	return mcp.NewToolResultText(respondJSON(t.session.response())), nil
}

func (t *Tools) handleListDecks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type deckView struct {
		Name  string   `json:"name"`
		Cards []string `json:"cards"`
	}
	decks := make([]deckView, 0, len(t.data.Decks.Decks))
	for _, d := range t.data.Decks.Decks {
		decks = append(decks, deckView{Name: d.Name, Cards: d.IDs()})
	}
	data, err := json.Marshal(decks)
	if err != nil {
		return mcp.NewToolResultErrorf("marshal decks: %v", err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// awaitingCommand returns the session if it is waiting for a player
// command, or the error result to send instead.
func (t *Tools) awaitingCommand() (*BattleSession, *mcp.CallToolResult) {
	sess := t.session
	if sess == nil {
		return nil, mcp.NewToolResultError("No battle is running. Use start_battle first.")
	}
	pending := sess.currentPending
	if pending == nil {
		return nil, mcp.NewToolResultError("No pending decision.")
	}
	if pending.Type != DecisionChooseCommand {
		return nil, mcp.NewToolResultError("The battle is over. Use start_battle to play again.")
	}
	return sess, nil
}

func (t *Tools) submit(ctx context.Context, sess *BattleSession, cmd game.Command) (*mcp.CallToolResult, error) {
	sess.currentPending = nil
	select {
	case sess.ctrl.responseCh <- cmd:
	case <-ctx.Done():
		return mcp.NewToolResultErrorf("Error submitting command: %v", ctx.Err()), nil
	}

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
