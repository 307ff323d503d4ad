package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLoggerMirrorsToConsoleAndFile(t *testing.T) {
	oldLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(oldLogger) })

	logFile := filepath.Join(t.TempDir(), "logs", "tv_indicators.log")
	var console bytes.Buffer

	if err := setupLogger("info", logFile, &console); err != nil {
		t.Fatalf("setupLogger() = %v; want nil", err)
	}
	slog.Info("listening", "addr", "127.0.0.1:8098")

	if !strings.Contains(console.String(), "listening") {
		t.Errorf("console output missing log line: %q", console.String())
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("os.ReadFile() failed: %v", err)
	}
	if !strings.Contains(string(data), "listening") {
		t.Errorf("log file missing log line: %q", data)
	}
}

func TestSetupLoggerNilConsoleWritesFileOnly(t *testing.T) {
	oldLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(oldLogger) })

	logFile := filepath.Join(t.TempDir(), "logs", "tv_indicators.log")
	if err := setupLogger("debug", logFile, nil); err != nil {
		t.Fatalf("setupLogger() = %v; want nil", err)
	}
	slog.Info("prompt open")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("os.ReadFile() failed: %v", err)
	}
	if !strings.Contains(string(data), "prompt open") {
		t.Errorf("log file missing log line: %q", data)
	}
}

func TestSetupLoggerLevelFiltering(t *testing.T) {
	oldLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(oldLogger) })

	logFile := filepath.Join(t.TempDir(), "logs", "tv_indicators.log")
	var console bytes.Buffer

	if err := setupLogger("warn", logFile, &console); err != nil {
		t.Fatalf("setupLogger() = %v; want nil", err)
	}
	slog.Info("below threshold")
	slog.Warn("above threshold")

	if strings.Contains(console.String(), "below threshold") {
		t.Error("info line logged despite warn level")
	}
	if !strings.Contains(console.String(), "above threshold") {
		t.Error("warn line missing")
	}
}
