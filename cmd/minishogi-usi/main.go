// Command minishogi-usi runs a USI-style (Universal Shogi Interface)
// console protocol loop over stdin/stdout, the same command-line shape
// the original desktop client's UCI front end used for chess.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/sagiri-no/minishogi/internal/config"
	"github.com/sagiri-no/minishogi/internal/engine"
	"github.com/sagiri-no/minishogi/internal/facade"
	"github.com/sagiri-no/minishogi/internal/store"
)

func main() {
	cfg := config.Default()
	config.RegisterFlags(flag.CommandLine, &cfg)
	flag.Parse()

	log := stdr.New(nil).V(0)
	stdr.SetVerbosity(cfg.Verbosity)

	var st *store.Store
	if cfg.DataDir != "" {
		opened, err := store.Open(cfg.DataDir)
		if err != nil {
			log.Error(err, "failed to open saved-game store, continuing without it")
		} else {
			st = opened
			defer st.Close()
		}
	}

	handler := &usiHandler{eng: facade.New(st, log), log: log, cfg: cfg}
	handler.run()
}

// usiHandler dispatches USI commands read from stdin to the engine
// facade, printing USI-formatted responses to stdout.
type usiHandler struct {
	eng *facade.Engine
	log logr.Logger
	cfg config.Config
}

func (h *usiHandler) run() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "usi":
			h.handleUSI()
		case "isready":
			fmt.Println("readyok")
		case "usinewgame":
			h.eng.NewGame(context.Background())
		case "position":
			h.handlePosition(args)
		case "go":
			h.handleGo(args)
		case "d":
			fmt.Println(h.eng.State().Position.String())
		case "quit":
			return
		}
	}
}

func (h *usiHandler) handleUSI() {
	fmt.Println("id name Minishogi")
	fmt.Println("id author Minishogi Team")
	fmt.Println("option name MinimaxDepth type spin default", engine.MinimaxDepth, "min 1 max 10")
	fmt.Println("option name EasyMinimaxDepth type spin default", engine.EasyMinimaxDepth, "min 1 max 10")
	fmt.Println("usiok")
}

// handlePosition accepts:
//
//	position startpos
//	position startpos moves 1d1c 5b5c
//	position sfen <sfen>
//	position sfen <sfen> moves 1d1c
func (h *usiHandler) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	ctx := context.Background()
	moveStart := len(args)

	switch args[0] {
	case "startpos":
		h.eng.NewGame(ctx)
		moveStart = 1
	case "sfen":
		fenEnd := len(args)
		for i, a := range args[1:] {
			if a == "moves" {
				fenEnd = i + 1
				break
			}
		}
		sfen := strings.Join(args[1:fenEnd], " ")
		if err := h.eng.LoadPosition(ctx, sfen); err != nil {
			fmt.Fprintf(os.Stderr, "info string %v\n", err)
			return
		}
		moveStart = fenEnd + 1
	default:
		return
	}

	for i, a := range args {
		if a == "moves" {
			moveStart = i + 1
			break
		}
	}
	if moveStart >= len(args) {
		return
	}

	for _, notation := range args[moveStart:] {
		result := h.eng.MakeMove(ctx, notation)
		if !result.Accepted {
			fmt.Fprintf(os.Stderr, "info string illegal move %s: %s\n", notation, result.Reason)
			return
		}
	}
}

// handleGo selects a bot by name (defaulting to minimax) and plays its
// chosen move, printing it in USI's "bestmove" form.
func (h *usiHandler) handleGo(args []string) {
	botType := engine.BotType("minimax")
	for i, a := range args {
		if a == "bot" && i+1 < len(args) {
			botType = engine.BotType(args[i+1])
		}
	}

	notation, _, ok := h.eng.GetBotMove(context.Background(), botType, 1)
	if !ok {
		fmt.Println("bestmove resign")
		return
	}
	fmt.Println("bestmove " + notation)
}
