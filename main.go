// worktravel is a personal task list with two categories, work and travel.
//
// Usage:
//
//	worktravel [-store PATH] [-memory] [-log PATH]   terminal UI
//	worktravel mcp [-store PATH]                     MCP server on stdio
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const version = "v0.1.0"

// shutdownTimeout bounds how long exit waits for queued writes.
const shutdownTimeout = 5 * time.Second

func main() {
	args := os.Args[1:]
	mode := "tui"
	if len(args) > 0 && args[0] == "mcp" {
		mode = "mcp"
		args = args[1:]
	}

	fs := flag.NewFlagSet("worktravel", flag.ExitOnError)
	storePath := fs.String("store", "", "Path of the task store file (overrides config)")
	logPath := fs.String("log", "", "Log file for the terminal UI (overrides config)")
	memory := fs.Bool("memory", false, "Keep tasks in memory only; nothing is written to disk")
	configPath := fs.String("config", "", "Config file (default ~/.config/worktravel/config.json)")
	fs.Parse(args)

	// Priority: flag > config file > default
	if *configPath == "" {
		p, err := GetConfigPath()
		if err != nil {
			log.Fatalf("could not find config directory: %v", err)
		}
		*configPath = p
	}
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *storePath != "" {
		cfg.StorePath = *storePath
	}
	if *logPath != "" {
		cfg.LogPath = *logPath
	}

	var kv KV = NewFileKV(cfg.StorePath)
	if *memory {
		kv = NewMemoryKV()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch mode {
	case "mcp":
		err = runMCP(ctx, kv)
	default:
		err = runTUI(ctx, kv, cfg.LogPath)
	}
	if err != nil {
		log.Fatalf("%s: %v", mode, err)
	}
}

// openStore builds the store and loads persisted state. A load failure is
// fatal to the caller: there is no reset path for malformed data.
func openStore(ctx context.Context, kv KV) (*TaskStore, error) {
	store := NewTaskStore(kv)
	if err := store.Load(ctx); err != nil {
		closeStore(store)
		return nil, err
	}
	return store, nil
}

func closeStore(store *TaskStore) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		log.Printf("Warning: pending writes not drained: %v", err)
	}
}

func runTUI(ctx context.Context, kv KV, logPath string) error {
	// Load before redirecting the log so a startup fault still reaches stderr.
	store, err := openStore(ctx, kv)
	if err != nil {
		return err
	}
	defer closeStore(store)

	// stdout belongs to the UI; send log output to a file.
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		f, err := tea.LogToFile(logPath, appName)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer func() {
			log.SetOutput(os.Stderr)
			f.Close()
		}()
	}

	p := tea.NewProgram(newModel(ctx, store), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func runMCP(ctx context.Context, kv KV) error {
	// stdout carries the protocol.
	log.SetOutput(os.Stderr)

	store, err := openStore(ctx, kv)
	if err != nil {
		return err
	}
	defer closeStore(store)

	server := newMCPServer(store, version)
	log.Printf("worktravel %s: serving MCP on stdio (%d tasks)", version, store.Len())
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
