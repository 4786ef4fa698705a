package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunTUIMalformedStoreReportsToStderr(t *testing.T) {
	prev := log.Writer()
	log.SetOutput(os.Stderr)
	t.Cleanup(func() { log.SetOutput(prev) })

	kv := NewMemoryKV()
	kv.Set(context.Background(), tasksKey, "not json")
	logPath := filepath.Join(t.TempDir(), "logs", logFile)

	err := runTUI(context.Background(), kv, logPath)
	if err == nil {
		t.Fatal("expected a load error")
	}
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) || !strings.Contains(err.Error(), "decode "+tasksKey) {
		t.Fatalf("expected wrapped decode error, got %v", err)
	}
	// The caller's log.Fatalf must still reach the terminal.
	if log.Writer() != os.Stderr {
		t.Fatal("log output should stay on stderr when loading fails")
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Fatalf("log file should not be opened before the store loads: %v", err)
	}
}
