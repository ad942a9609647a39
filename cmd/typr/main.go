// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the typr composition server and its interactive CLI.

Note: This is a BETA release. APIs and functionality may rapidly change.

typr is the predictive-text brain of a soft keyboard. It tracks the word being
composed in a text field, offers completions and corrections, auto-corrects on
separators, reverts a correction on the next delete and learns words the user
keeps typing. The host keyboard forwards key events and renders the text,
selection and suggestions typr sends back.

# Usage

Start the server with default settings:

	typr

Use a custom data directory and enable debug mode:

	typr -data /path/to/chunks -d

Type into a field interactively:

	typr -c -limit 8

Build dictionary chunks from a "word rank" text list:

	typr -gen words.txt -data ./data -chunk 10000

The data directory holds chunked binary files named dict_0001.bin,
dict_0002.bin, etc. Plain text lists are loaded when no chunks exist.

# Configuration

Runtime configuration is a TOML file created with defaults on first start:

	[prediction]
	show_suggestions = true
	auto_complete = true
	double_space_to_period = true

	[dict]
	max_words = 50000
	user_dict_path = "userdict.db"

	[server]
	manual_flush = false

Server mode watches the file and applies changes without a restart.

# IPC Protocol

The server speaks MessagePack over stdin/stdout. It first writes

	{"status": "ready"}

then answers every event with the field state:

	{"id": "k1", "t": "char", "c": 104}
	{"id": "k1", "text": "h", "sel_start": 1, "sel_end": 1, "comp_start": 0, "comp_end": 1, "suggestions": ["h", "hello"]}

State changes caused by timers are pushed with an empty id.

# Command Line Flags

	-version
	    Show current version
	-data string
	    Directory containing the binary files (default "data/")
	-config string
	    Config file path (default: platform config dir)
	-d  Enable debug mode with detailed logging
	-c  Run the interactive CLI instead of the server
	-limit int
	    Suggestions shown in CLI mode
	-words int
	    Maximum words to load (0 for all)
	-chunk int
	    Words per chunk written by -gen
	-gen string
	    Text word list to split into chunks, then exit
	-reset-config
	    Overwrite the config file with defaults
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bastiangx/typr/internal/cli"
	"github.com/bastiangx/typr/internal/logger"
	"github.com/bastiangx/typr/internal/utils"
	"github.com/bastiangx/typr/pkg/config"
	"github.com/bastiangx/typr/pkg/dictionary"
	"github.com/bastiangx/typr/pkg/server"
	"github.com/bastiangx/typr/pkg/suggest"
	"github.com/bastiangx/typr/pkg/userdict"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version    = "0.1.0-beta"
	AppName    = "typr"
	configFile = "typr.toml"
	gh         = "https://github.com/bastiangx/typr"
)

// userStore is the user dictionary backend, sqlite or in memory.
type userStore interface {
	suggest.UserWords
	Close() error
}

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only manages the flow; the server and CLI live in their packages.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	binaryDir := flag.String("data", "data/", "Directory containing the binary files")
	configPath := flag.String("config", "", "Config file path (default: platform config dir)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", 0, "Number of suggestions shown in CLI mode (default from config)")
	wordLimit := flag.Int("words", -1, "Maximum number of words to load (use 0 for all words, default from config)")
	chunkSize := flag.Int("chunk", defaultConfig.Dict.ChunkSize, "Number of words per chunk written by -gen")
	genList := flag.String("gen", "", "Split a text word list into chunk files in the data dir and exit")
	resetConfig := flag.Bool("reset-config", false, "Overwrite the config file with defaults")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	if *genList != "" {
		n, err := dictionary.BuildChunks(*genList, *binaryDir, *chunkSize)
		if err != nil {
			log.Fatalf("Failed to build chunks: %v", err)
		}
		log.Infof("Built %d chunks in %s", n, *binaryDir)
		return
	}

	if *configPath == "" {
		*configPath, err = pathResolver.GetConfigPath(configFile)
		if err != nil {
			log.Fatalf("Failed to determine config path: (%v)", err)
		}
	}
	log.Debugf("Using config file: (%s)", *configPath)

	if *resetConfig {
		if err := config.ResetConfig(*configPath); err != nil {
			log.Fatalf("Failed to reset config: %v", err)
		}
		log.Infof("Config reset to defaults at %s", *configPath)
	}

	appConfig, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *limit > 0 {
		appConfig.CLI.DefaultLimit = *limit
	}
	if *wordLimit >= 0 {
		appConfig.Dict.MaxWords = *wordLimit
	}

	resolvedDataDir, err := pathResolver.GetDataDir(*binaryDir)
	if err != nil {
		log.Fatalf("Failed to resolve data dir:(%v)", err)
	}
	log.Debugf("Using data dir at: %s", resolvedDataDir)

	completer := suggest.NewCompleterWithOptions(appConfig.Dict.MinFreqThreshold, suggest.DefaultMaxHotWords)
	sizer := loadDictionary(resolvedDataDir, appConfig.Dict.MaxWords, completer)

	user, err := openUserDictionary(pathResolver.ResolveRelativePath(appConfig.Dict.UserDictPath))
	if err != nil {
		log.Fatalf("Failed to open user dictionary: %v", err)
	}
	defer user.Close()

	provider, err := suggest.NewProvider(completer, user, suggest.OptionsFromConfig(appConfig))
	if err != nil {
		log.Fatalf("Failed to init suggestions: %v", err)
	}

	ctx := context.Background()

	if *cliMode {
		log.Debug("Input info:", "limit", appConfig.CLI.DefaultLimit, "editor", appConfig.CLI.ShowEditor)
		inputHandler := cli.NewInputHandler(provider, appConfig, os.Stdin, os.Stdout, cli.Options{})
		if err := inputHandler.Start(ctx); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.New(provider, os.Stdin, os.Stdout, server.Options{Config: appConfig, Sizer: sizer})

	watcher, err := config.NewWatcher(*configPath)
	if err != nil {
		log.Warnf("Config reloading disabled: %v", err)
	} else {
		watcher.OnChange(srv.ApplyConfig)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.Warnf("Config watcher stopped: %v", err)
			}
		}()
	}

	showStartupInfo(resolvedDataDir, *configPath)

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// loadDictionary fills completer from chunk files, falling back to text word
// lists. The returned sizer is nil when there are no chunks to resize.
func loadDictionary(dataDir string, maxWords int, completer *suggest.Completer) server.DictionarySizer {
	loader := dictionary.NewLoader(dataDir, maxWords, completer)
	err := loader.LoadInitial()
	if err == nil {
		log.Debug("Completer init done", "words", completer.Stats()["totalWords"])
		return dictionary.NewRuntimeLoader(loader)
	}
	if !errors.Is(err, dictionary.ErrNoChunks) {
		log.Fatalf("Failed to init completer: %v", err)
	}

	lists, _ := filepath.Glob(filepath.Join(dataDir, "*.txt"))
	if len(lists) == 0 {
		log.Warn("No dictionary found, running with empty dict...")
		return nil
	}
	for _, path := range lists {
		n, err := dictionary.LoadFile(path, completer)
		if err != nil {
			log.Errorf("Failed to load %s: %v", path, err)
			continue
		}
		log.Debugf("Loaded %d words from %s", n, path)
	}
	return nil
}

func openUserDictionary(path string) (userStore, error) {
	if path == "" {
		log.Debug("No user dictionary path, learned words are kept in memory")
		return userdict.NewMemory(), nil
	}
	if utils.FileExists(path) {
		if format, err := dictionary.DetectFileFormat(path); err != nil || format != dictionary.FormatUserDB {
			return nil, fmt.Errorf("%s is not a user dictionary (%v, %v)", path, format, err)
		}
	}
	log.Debugf("Using user dictionary at: %s", path)
	return userdict.Open(path)
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ typr ] Predictive text for soft keyboards")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(dataDir, configPath string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println("   typr    ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("data dir: ( %s )", dataDir)
	log.Infof("config: ( %s )", utils.GetAbsolutePath(configPath))
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
