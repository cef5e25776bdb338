// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStderrOnly(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Stderr: &buf})
	t.Cleanup(func() { _ = logger.Close() })

	logger.Info("store opened", slog.String("store_id", "s1"))
	assert.Contains(t, buf.String(), "store opened")
	assert.Contains(t, buf.String(), "store_id=s1")
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Stderr: &buf})
	t.Cleanup(func() { _ = logger.Close() })

	logger.Info("ignored")
	logger.Warn("kept")
	assert.NotContains(t, buf.String(), "ignored")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewFileLogging(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger := New(Config{LogDir: dir, Service: "testsvc", Stderr: &buf})

	logger.Info("product listed", slog.String("product_id", "p1"))
	require.NoError(t, logger.Close())

	name := fmt.Sprintf("testsvc_%s.log", time.Now().Format("2006-01-02"))
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	// File output is one JSON object per line.
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "product listed", entry["msg"])
	assert.Equal(t, "p1", entry["product_id"])

	// Stderr got the same record in text form.
	assert.Contains(t, buf.String(), "product listed")
}

func TestNewBadLogDirFallsBackToStderr(t *testing.T) {
	// A file where the directory should be makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0640))

	var buf bytes.Buffer
	logger := New(Config{LogDir: filepath.Join(blocker, "logs"), Stderr: &buf})
	t.Cleanup(func() { _ = logger.Close() })

	assert.Contains(t, buf.String(), "file logging disabled")
	logger.Info("still works")
	assert.Contains(t, buf.String(), "still works")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "logs"), expandPath("~/logs"))
	assert.Equal(t, home, expandPath("~"))
	assert.Equal(t, "/var/log/mercado", expandPath("/var/log/mercado"))
}

func TestCloseWithoutFile(t *testing.T) {
	assert.NoError(t, Default().Close())
}
