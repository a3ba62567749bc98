// Gideon TUI - a terminal chat client for the Gideon backend.
//
// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gideon-chat/gideon-tui/internal/api"
	"github.com/gideon-chat/gideon-tui/internal/auth"
	"github.com/gideon-chat/gideon-tui/internal/config"
	"github.com/gideon-chat/gideon-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	serverFlag := flag.String("server", "", "backend base URL (overrides config)")
	configFlag := flag.String("config", "", "config file path (default ~/.gideon/config.toml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("gideon-tui %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if err := run(*serverFlag, *configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "gideon-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(serverOverride, configPath string) error {
	if err := config.EnsureDir(); err != nil {
		return fmt.Errorf("prepare config directory: %w", err)
	}

	if configPath == "" {
		path, err := config.Path()
		if err != nil {
			return err
		}
		configPath = path
	}

	cfg, err := config.LoadFromPath(configPath)
	if err != nil {
		return err
	}
	if serverOverride != "" {
		cfg.Server.BaseURL = serverOverride
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	// The log would corrupt the alternate screen, so it goes to a file.
	closeLog := setupLogging()
	defer closeLog()

	credPath, err := config.CredentialsPath()
	if err != nil {
		return err
	}
	creds := auth.NewFileStore(credPath)

	client := api.NewClient(cfg.Server.BaseURL, creds).
		WithTimeout(time.Duration(cfg.Server.TimeoutSecs) * time.Second)

	app := ui.NewApp(cfg, client, creds)
	program := tea.NewProgram(app, tea.WithAltScreen())

	// Token rejection anywhere in the transport surfaces here, once,
	// and drops the app back to the login screen.
	client.OnUnauthorized(func() {
		program.Send(ui.LoggedOutMsg{})
	})

	watcher, err := config.NewWatcher(configPath, func(fresh *config.Config) {
		program.Send(ui.ConfigReloadedMsg{Config: fresh})
	})
	if err != nil {
		log.Printf("config: watching disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// setupLogging redirects the standard logger to ~/.gideon/gideon.log.
func setupLogging() func() {
	dir, err := config.Dir()
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "gideon.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() { f.Close() }
}
