// Command minishogi is a terminal client: play a game against one of
// the bot agents, or manage saved games (save/load/list/export/stats).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/stdr"

	"github.com/sagiri-no/minishogi/internal/config"
	"github.com/sagiri-no/minishogi/internal/engine"
	"github.com/sagiri-no/minishogi/internal/facade"
	"github.com/sagiri-no/minishogi/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Default()
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	config.RegisterFlags(fs, &cfg)

	switch os.Args[1] {
	case "play":
		fs.Parse(os.Args[2:])
		runPlay(cfg, fs.Args())
	case "store":
		fs.Parse(os.Args[2:])
		runStore(cfg, fs.Args())
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: minishogi <play|store> [args]")
	fmt.Fprintln(os.Stderr, "  play [bot-type]                 play a game against a bot (random, greedy, minimax, easy_minimax)")
	fmt.Fprintln(os.Stderr, "  store save <name>                not available here; use 'save <name>' inside play")
	fmt.Fprintln(os.Stderr, "  store load <name>                print the saved game named name")
	fmt.Fprintln(os.Stderr, "  store list                       list saved games")
	fmt.Fprintln(os.Stderr, "  store export <name> <path>       export a saved game to a file")
	fmt.Fprintln(os.Stderr, "  store import <path> <name>       import a saved game from a file")
	fmt.Fprintln(os.Stderr, "  store stats                      report the saved-game database footprint")
}

func openStore(cfg config.Config) *store.Store {
	dir := cfg.DataDir
	if dir == "" {
		var err error
		dir, err = store.DataDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "minishogi: cannot locate data directory:", err)
			os.Exit(1)
		}
	}
	st, err := store.Open(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "minishogi: cannot open saved-game store:", err)
		os.Exit(1)
	}
	return st
}

func runPlay(cfg config.Config, args []string) {
	botType := engine.BotType("minimax")
	if len(args) > 0 {
		botType = engine.BotType(args[0])
	}

	log := stdr.New(nil)
	st := openStore(cfg)
	defer st.Close()

	eng := facade.New(st, log)
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	fmt.Println(eng.State().Position.String())

	for eng.State().Result == "ONGOING" {
		if eng.State().SideToMove().String() == "black" {
			fmt.Print("your move (USI notation, or 'save <name>'/'quit'): ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimSpace(line)

			switch {
			case line == "quit":
				return
			case strings.HasPrefix(line, "save "):
				name := strings.TrimSpace(strings.TrimPrefix(line, "save "))
				if err := eng.SaveGame(ctx, name); err != nil {
					fmt.Fprintln(os.Stderr, "save failed:", err)
				} else {
					fmt.Println("saved as", name)
				}
				continue
			default:
				result := eng.MakeMove(ctx, line)
				if !result.Accepted {
					fmt.Println("illegal move:", result.Reason)
					continue
				}
			}
		} else {
			notation, _, ok := eng.GetBotMove(ctx, botType, 1)
			if !ok {
				break
			}
			fmt.Println("bot plays", notation)
		}
		fmt.Println(eng.State().Position.String())
	}

	fmt.Println("result:", eng.State().Result)
}

func runStore(cfg config.Config, args []string) {
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	st := openStore(cfg)
	defer st.Close()

	switch args[0] {
	case "save":
		fmt.Fprintln(os.Stderr, "minishogi: 'store save' only makes sense from within 'play'; use its 'save <name>' command")
	case "load":
		if len(args) < 2 {
			printUsage()
			os.Exit(1)
		}
		game, err := st.Load(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "minishogi:", err)
			os.Exit(1)
		}
		fmt.Println("sfen:", game.SFEN)
		fmt.Println("moves:", strings.Join(game.Moves, " "))
		fmt.Println("saved at:", game.SavedAt)
	case "list":
		names, err := st.List()
		if err != nil {
			fmt.Fprintln(os.Stderr, "minishogi:", err)
			os.Exit(1)
		}
		for _, n := range names {
			fmt.Println(n)
		}
	case "export":
		if len(args) < 3 {
			printUsage()
			os.Exit(1)
		}
		if err := st.ExportToFile(args[1], args[2]); err != nil {
			fmt.Fprintln(os.Stderr, "minishogi:", err)
			os.Exit(1)
		}
	case "import":
		if len(args) < 3 {
			printUsage()
			os.Exit(1)
		}
		if err := st.ImportFromFile(args[1], args[2]); err != nil {
			fmt.Fprintln(os.Stderr, "minishogi:", err)
			os.Exit(1)
		}
	case "stats":
		stats, err := st.CollectStats(cfg.DataDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, "minishogi:", err)
			os.Exit(1)
		}
		fmt.Printf("%d saved games, %s on disk\n", stats.GameCount, stats.HumanSize)
	default:
		printUsage()
		os.Exit(1)
	}
}
