package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/mbalaz/dennyzen/internal/cli"
	"github.com/mbalaz/dennyzen/internal/constants"
	"github.com/mbalaz/dennyzen/internal/logger"
	"github.com/mbalaz/dennyzen/internal/provider"
	"github.com/mbalaz/dennyzen/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/dennyzen/dennyzen.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init    cli.InitCmd    `cmd:"" help:"Initialize dennyzen storage."`
	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Today   cli.TodayCmd   `cmd:"" help:"Show today's inspiration."`
	Next    cli.NextCmd    `cmd:"" help:"Advance to the next queued inspiration."`
	Refresh cli.RefreshCmd `cmd:"" help:"Fetch a fresh batch, replacing today's."`
	Share   cli.ShareCmd   `cmd:"" help:"Copy today's inspiration to the clipboard."`
	History cli.HistoryCmd `cmd:"" help:"List previously displayed inspirations."`
	Prune   cli.PruneCmd   `cmd:"" help:"Delete cached day states beyond the retention window."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run health checks."`
	Notify  struct {
		Watch cli.NotifyWatchCmd `cmd:"" help:"Watch for the daily reminder in the foreground."`
		Check cli.NotifyCheckCmd `cmd:"" help:"Evaluate the reminder conditions once."`
		Test  cli.NotifyTestCmd  `cmd:"" help:"Send a test notification."`
	} `cmd:"" help:"Daily reminder notifications."`
	Key struct {
		Set    cli.KeySetCmd    `cmd:"" help:"Store the Gemini API key in the OS keyring."`
		Clear  cli.KeyClearCmd  `cmd:"" help:"Remove the stored API key."`
		Status cli.KeyStatusCmd `cmd:"" help:"Show whether an API key is configured."`
	} `cmd:"" help:"Manage the Gemini API key."`
}

func main() {
	// A .env next to the binary may carry GEMINI_API_KEY; absence is fine.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily AI-generated inspiration companion"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:    store,
		Provider: provider.NewGemini(cli.ResolveAPIKey),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
