package tui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPrefs(t *testing.T) {
	prefs := DefaultPrefs()
	if prefs.DoubleActivationMS != 400 {
		t.Errorf("DefaultPrefs().DoubleActivationMS = %d, want 400", prefs.DoubleActivationMS)
	}
	if prefs.ShowEditorOnOpen {
		t.Error("DefaultPrefs().ShowEditorOnOpen should be false")
	}
}

func TestPrefs_SaveLoadRoundtrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefs := Prefs{DoubleActivationMS: 250, ShowEditorOnOpen: true}
	if err := SavePrefs(prefs); err != nil {
		t.Fatalf("SavePrefs: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".jabref", "dialog_prefs.json")); err != nil {
		t.Fatalf("prefs file not written: %v", err)
	}

	got := LoadPrefs()
	if got.DoubleActivationMS != 250 {
		t.Errorf("DoubleActivationMS = %d, want 250", got.DoubleActivationMS)
	}
	if !got.ShowEditorOnOpen {
		t.Error("ShowEditorOnOpen should survive the roundtrip")
	}
}

func TestLoadPrefs_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	got := LoadPrefs()
	if got.DoubleActivationMS != 400 {
		t.Errorf("expected defaults, got %+v", got)
	}
}

func TestLoadPrefs_NonPositiveWindowFallsBack(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".jabref")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	body := []byte(`{"double_activation_ms": 0, "show_editor_on_open": false}`)
	if err := os.WriteFile(filepath.Join(dir, "dialog_prefs.json"), body, 0600); err != nil {
		t.Fatal(err)
	}
	got := LoadPrefs()
	if got.DoubleActivationMS != 400 {
		t.Errorf("non-positive window must fall back to default, got %d", got.DoubleActivationMS)
	}
}
