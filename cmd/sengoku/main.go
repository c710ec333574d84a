package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"go.uber.org/zap"

	"github.com/peterkuimelis/sengoku/internal/config"
	"github.com/peterkuimelis/sengoku/internal/console"
	"github.com/peterkuimelis/sengoku/internal/game"
	"github.com/peterkuimelis/sengoku/internal/log"
	"github.com/peterkuimelis/sengoku/internal/web"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "play":
		runBattle(os.Args[2:], false)
	case "sim":
		runBattle(os.Args[2:], true)
	case "cards":
		runCards(os.Args[2:])
	case "connect":
		runConnect(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  sengoku play  [--config FILE] [--deck NAME] [--enemy-deck NAME] [--policy priority|random] [--seed N]")
	fmt.Println("  sengoku sim   [same flags]")
	fmt.Println("  sengoku cards [--config FILE]")
	fmt.Println("  sengoku connect [--url ws://HOST:PORT/ws] [--deck NAME] [--enemy-deck NAME] [--policy NAME] [--seed N]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Fight a battle in the terminal")
	fmt.Println("  sim     Let the autopilot fight a battle and print the log")
	fmt.Println("  cards   List the card table and decks")
	fmt.Println("  connect Fight a battle hosted by sengoku-web")
}

type battleFlags struct {
	configPath string
	deck       string
	enemyDeck  string
	policy     string
	seed       int64
}

func (f *battleFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "path to configuration file")
	fs.StringVar(&f.deck, "deck", "", "player deck name (overrides config)")
	fs.StringVar(&f.enemyDeck, "enemy-deck", "", "enemy deck name (overrides config)")
	fs.StringVar(&f.policy, "policy", "", "enemy policy: priority or random (overrides config)")
	fs.Int64Var(&f.seed, "seed", 0, "shuffle seed (0 = config or random)")
}

func (f *battleFlags) apply(cfg *config.Config) {
	if f.deck != "" {
		cfg.Player.Deck = f.deck
	}
	if f.enemyDeck != "" {
		cfg.Enemy.Deck = f.enemyDeck
	}
	if f.policy != "" {
		cfg.Enemy.Policy = f.policy
	}
	if f.seed != 0 {
		cfg.Battle.Seed = f.seed
	}
}

func runBattle(args []string, auto bool) {
	name := "play"
	if auto {
		name = "sim"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var bf battleFlags
	bf.register(fs)
	fs.Parse(args)

	cfg, data, logger := setup(bf.configPath)
	defer logger.Sync()
	bf.apply(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		b   *game.Battle
		err error
	)
	if auto {
		b, err = cfg.NewBattle(data, log.NewTextLogger(os.Stdout), logger)
	} else {
		b, err = cfg.NewBattle(data, nil, logger)
	}
	if err != nil {
		fail(err)
	}

	var pc game.PlayerController
	repl := console.NewController(os.Stdin, os.Stdout)
	if auto {
		pc = console.Autopilot{}
	} else {
		pc = repl
	}

	result, err := b.Run(ctx, pc)
	if errors.Is(err, console.ErrQuit) || errors.Is(err, context.Canceled) {
		fmt.Println("\nBattle abandoned.")
		return
	}
	if err != nil {
		fail(err)
	}
	repl.RenderResult(b.Snapshot())
	logger.Debug("battle finished", zap.String("battle_id", b.ID), zap.Stringer("result", result))
}

func runConnect(args []string) {
	fs := flag.NewFlagSet("connect", flag.ExitOnError)
	url := fs.String("url", "ws://localhost:8080/ws", "websocket URL of a sengoku-web server")
	var bf battleFlags
	bf.register(fs)
	fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := web.ClientMessage{
		PlayerDeck: bf.deck,
		EnemyDeck:  bf.enemyDeck,
		Policy:     bf.policy,
		Seed:       bf.seed,
	}
	fmt.Printf("Connecting to %s...\n", *url)
	_, err := web.Connect(ctx, *url, start, console.NewController(os.Stdin, os.Stdout), os.Stdout)
	if errors.Is(err, console.ErrQuit) || errors.Is(err, context.Canceled) {
		fmt.Println("\nBattle abandoned.")
		return
	}
	if err != nil {
		fail(err)
	}
}

func runCards(args []string) {
	fs := flag.NewFlagSet("cards", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	fs.Parse(args)

	_, data, logger := setup(*configPath)
	defer logger.Sync()

	for _, id := range data.Cards.IDs() {
		spec, _ := data.Cards.Lookup(id)
		fmt.Printf("%-22s %-30s %-8s cost %d power %2d  %s\n", spec.ID, spec.Name, spec.Category, spec.Cost, spec.Power, spec.Description)
	}
	fmt.Println()
	for _, d := range data.Decks.Decks {
		counts := make(map[string]int)
		for _, id := range d.IDs() {
			counts[id]++
		}
		ids := make([]string, 0, len(counts))
		for id := range counts {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		fmt.Printf("%s:", d.Name)
		for _, id := range ids {
			fmt.Printf(" %s×%d", id, counts[id])
		}
		fmt.Println()
	}
}

func setup(configPath string) (*config.Config, *config.Data, *zap.Logger) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fail(err)
	}
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fail(err)
	}
	data, err := config.LoadData(cfg.Data)
	if err != nil {
		fail(err)
	}
	return cfg, data, logger
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
