package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/profile/internal/cli"
	"github.com/idilsaglam/profile/internal/config"
	"github.com/idilsaglam/profile/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(1)
	}

	// Root flags (apply to every subcommand)
	apiURL := flag.String("api", cfg.APIURL, "user API base URL")
	theme := flag.String("theme", cfg.Theme, "color theme: classic, neon or mono")
	flag.Parse()
	cfg.APIURL = *apiURL
	cfg.Theme = *theme
	ui.SetTheme(cfg.Theme)

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		ui.Fail("log: " + err.Error())
		os.Exit(1)
	}

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		closeLog()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{Config: cfg, Logger: logger})
	closeLog()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}

// newLogger writes to path when set. The TUI owns the terminal, so there is
// no stderr fallback.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := tea.LogToFile(path, "profile")
	if err != nil {
		return nil, nil, err
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), func() { f.Close() }, nil
}
