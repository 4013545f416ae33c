package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dfryer1193/qrstore/shared/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	return &config.Config{
		Addr:            "127.0.0.1:0",
		ContentRoot:     root,
		StoreDir:        filepath.Join(root, "static", "qr_images"),
		IndexFile:       "index.html",
		MaxUploadBytes:  1 << 20,
		WatchStore:      true,
		ShutdownTimeout: time.Second,
		LogLevel:        "error",
		LogFormat:       "json",
	}
}

func TestRootCmd_FlagsOverrideConfig(t *testing.T) {
	cfg := testConfig(t)
	cmd := newRootCmd(cfg)

	err := cmd.Flags().Parse([]string{
		"--addr", ":8081",
		"--store", "/tmp/qr",
		"--max-upload-bytes", "42",
		"--watch=false",
		"--log-format", "console",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Addr != ":8081" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":8081")
	}
	if cfg.StoreDir != "/tmp/qr" {
		t.Errorf("StoreDir = %q, want %q", cfg.StoreDir, "/tmp/qr")
	}
	if cfg.MaxUploadBytes != 42 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, 42)
	}
	if cfg.WatchStore {
		t.Error("WatchStore = true, want false")
	}
	if cfg.LogFormat != "console" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "console")
	}
}

func TestRootCmd_FlagFixesInvalidEnv(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Failed to chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	for _, key := range []string{"QRSTORE_MAX_UPLOAD_BYTES", "QRSTORE_WATCH_STORE", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	t.Setenv("QRSTORE_SHUTDOWN_TIMEOUT", "0s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil before flags are applied", err)
	}

	cmd := newRootCmd(cfg)
	if err := cmd.Flags().Parse([]string{"--shutdown-timeout", "3s"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("ShutdownTimeout = %s, want %s", cfg.ShutdownTimeout, 3*time.Second)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd(testConfig(t))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != version {
		t.Errorf("version output = %q, want %q", got, version)
	}
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cmd := newRootCmd(cfg)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--log-format", "xml"})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for unknown log format, got nil")
	}
}

func TestRun_CreatesStoreAndShutsDown(t *testing.T) {
	cfg := testConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg) }()

	deadline := time.Now().Add(5 * time.Second)
	for {
		if info, err := os.Stat(cfg.StoreDir); err == nil && info.IsDir() {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("store directory was not created")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run() error = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
