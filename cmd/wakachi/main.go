// Package main is the wakachi CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kotoba/wakachi/internal/cli"
	"github.com/kotoba/wakachi/internal/config"
	"github.com/kotoba/wakachi/internal/lexicon"
	"github.com/kotoba/wakachi/internal/models"
	"github.com/kotoba/wakachi/internal/scoring"
	"github.com/kotoba/wakachi/internal/segment"
	"github.com/kotoba/wakachi/internal/server"
	"github.com/kotoba/wakachi/internal/suffix"
	"github.com/kotoba/wakachi/internal/watcher"
	"github.com/kotoba/wakachi/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/wakachi/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "segment":
		runSegment()
	case "status":
		runStatus()
	case "warmup":
		runWarmup()
	case "version", "--version", "-v":
		fmt.Printf("wakachi version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// components holds the analysis pipeline built from a config.
type components struct {
	Store     *lexicon.Store
	Segmenter *segment.Segmenter
}

func (c *components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*components, error) {
	store, err := lexicon.Open(cfg.Lexicon.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon: %w", err)
	}
	scorer := scoring.NewScorer(store, cfg.Scoring)
	table := suffix.NewTable(store, logger)
	seg := segment.New(store, scorer, table, logger)
	return &components{Store: store, Segmenter: seg}, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer comps.Close()

	warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := comps.Segmenter.Warm(warmCtx); err != nil {
		warmCancel()
		logger.Fatal("Failed to warm suffix cache", zap.Error(err))
	}
	warmCancel()

	srv := server.NewServer(comps.Segmenter, comps.Store, cfg, logger)

	watchOpts := []watcher.Option{}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	watch := watcher.New(resolvedConfigPath, func(path string) {
		reloaded, err := config.Load(path)
		if err != nil {
			logger.Warn("config reload failed", zap.Error(err))
			return
		}
		srv.SetConfig(reloaded)
		logger.Info("config reloaded", zap.String("path", path))
	}, watchOpts...)
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if err := watch.Start(watchCtx); err != nil {
		logger.Warn("config watcher disabled", zap.Error(err))
	}
	defer watch.Stop()

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// segmentArgsReorder moves flags that appear after the text to the front so
// flag.Parse() sees them.
func segmentArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runSegment() {
	args := segmentArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("segment", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = analyze locally)")
	limit := fs.Int("limit", 0, "number of segmentations (0 = config default)")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Println("Usage: wakachi segment [flags] <text>")
		os.Exit(1)
	}
	text := strings.Join(fs.Args(), "")

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "compact":
		format = cli.OutputCompact
	case "text":
		format = cli.OutputText
	default:
		fmt.Printf("Unknown output format %q; use text, compact, or json\n", *outputFormat)
		os.Exit(1)
	}

	var segs []models.Segmentation
	if *serverURL != "" {
		resp, err := segmentViaHTTP(*serverURL, text, *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Segmentation failed: %v\n", err)
			os.Exit(1)
		}
		segs = resp
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()

		comps, err := initializeComponents(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer comps.Close()

		segs, err = comps.Segmenter.Segment(context.Background(), text, *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Segmentation failed: %v\n", err)
			os.Exit(1)
		}
	}

	if err := cli.WriteSegmentations(os.Stdout, segs, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func segmentViaHTTP(serverURL, text string, limit int) ([]models.Segmentation, error) {
	body, err := json.Marshal(map[string]interface{}{"text": text, "limit": limit})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/segment", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response struct {
		Segmentations []models.Segmentation `json:"segmentations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return response.Segmentations, nil
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Get(*serverURL + "/api/v1/status")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Status failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	fmt.Println(strings.TrimSpace(string(b)))
}

func runWarmup() {
	fs := flag.NewFlagSet("warmup", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer comps.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	start := time.Now()
	if err := comps.Segmenter.Warm(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warmup failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Caches warm in %s\n", time.Since(start).Round(time.Millisecond))
}

func printUsage() {
	fmt.Println(`wakachi - Japanese dictionary-based segmentation

Usage:
  wakachi server [flags]            Start the HTTP server
  wakachi segment [flags] <text>    Segment a Japanese text
  wakachi status [flags]            Show server status
  wakachi warmup [flags]            Pre-build the suffix and counter caches
  wakachi version                   Show version
  wakachi help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/wakachi/config.yaml)
  --debug            Enable debug logging

Segment Flags:
  --config string    Config file path (for local analysis)
  --server string    Server URL (empty = analyze locally using the config)
  --limit int        Number of ranked segmentations (0 = config default)
  --output string    Output format: text, compact, or json

Examples:
  wakachi server
  wakachi segment 一匹の猫がいる
  wakachi segment --output compact 一匹の猫がいる
  wakachi segment --server http://localhost:8080 --limit 3 食べている
  wakachi status`)
}
