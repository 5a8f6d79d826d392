// Package config gathers the flags the minishogi binaries parse: bot
// search depths, where saved games live, a tracing toggle, and log
// verbosity. The binaries read DataDir and Verbosity. The depth fields
// and Tracing are parsed but read nowhere: bots always search to
// engine.MinimaxDepth and engine.EasyMinimaxDepth, and no OpenTelemetry
// exporter is installed.
package config

import (
	"flag"

	"github.com/sagiri-no/minishogi/internal/engine"
	"github.com/sagiri-no/minishogi/internal/store"
)

// Config holds the resolved settings for a minishogi binary.
type Config struct {
	MinimaxDepth     int
	EasyMinimaxDepth int
	DataDir          string
	Tracing          bool
	Verbosity        int
}

// Default returns the configuration specification §4.10 assumes: the
// fixed minimax/easy_minimax depths, the platform's default save
// location, and tracing off.
func Default() Config {
	dataDir, err := store.DataDir()
	if err != nil {
		dataDir = ""
	}
	return Config{
		MinimaxDepth:     engine.MinimaxDepth,
		EasyMinimaxDepth: engine.EasyMinimaxDepth,
		DataDir:          dataDir,
		Tracing:          false,
		Verbosity:        0,
	}
}

// RegisterFlags binds fs to cfg's fields, letting a binary's main
// override the defaults from the command line.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.MinimaxDepth, "minimax-depth", cfg.MinimaxDepth, "search depth for the minimax bot (parsed; bots use the built-in depth)")
	fs.IntVar(&cfg.EasyMinimaxDepth, "easy-minimax-depth", cfg.EasyMinimaxDepth, "search depth for the easy_minimax bot (parsed; bots use the built-in depth)")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for saved games")
	fs.BoolVar(&cfg.Tracing, "tracing", cfg.Tracing, "tracing toggle (parsed; no exporter is installed)")
	fs.IntVar(&cfg.Verbosity, "v", cfg.Verbosity, "log verbosity (logr V-level)")
}
