package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_SaveLoadKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WIKITREE_CONFIG_DIR", dir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load missing config: %v", err)
	}
	if cfg.CurrentWorkspace != "" || cfg.TUI != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}

	cfg.CurrentWorkspace = "first"
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	cfg.CurrentWorkspace = "second"
	cfg.TUI = &TUIConfig{Glyphs: "ascii", DefaultOpenRoot: "Policies"}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CurrentWorkspace != "second" || got.TUI == nil || got.TUI.DefaultOpenRoot != "Policies" {
		t.Fatalf("unexpected config: %+v", got)
	}
	bak, err := os.ReadFile(filepath.Join(dir, "config.json.bak"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !strings.Contains(string(bak), `"first"`) {
		t.Fatalf("backup should hold previous config, got %s", bak)
	}
}

func TestResolveWorkspace(t *testing.T) {
	t.Setenv("WIKITREE_CONFIG_DIR", t.TempDir())

	got, err := ResolveWorkspace("")
	if err != nil || got != DefaultWorkspace {
		t.Fatalf("default: got %q err=%v", got, err)
	}
	if err := SaveConfig(&GlobalConfig{CurrentWorkspace: "clinic"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = ResolveWorkspace("")
	if err != nil || got != "clinic" {
		t.Fatalf("configured: got %q err=%v", got, err)
	}
	got, err = ResolveWorkspace("explicit")
	if err != nil || got != "explicit" {
		t.Fatalf("explicit: got %q err=%v", got, err)
	}
}

func TestWriteFileAtomic_RefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nav.md")
	if err := WriteFileAtomic(path, []byte("one"), false); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := WriteFileAtomic(path, []byte("two"), false)
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("expected ErrExist, got %v", err)
	}
	if err := WriteFileAtomic(path, []byte("two"), true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, _ := os.ReadFile(path)
	if string(b) != "two" {
		t.Fatalf("content: got %q want %q", b, "two")
	}
}
