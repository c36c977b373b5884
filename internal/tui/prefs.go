package tui

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Prefs holds user preferences for the dialog that persist across sessions.
type Prefs struct {
	// DoubleActivationMS is the window, in milliseconds, within which a
	// second activation of the same row closes the dialog.
	DoubleActivationMS int `json:"double_activation_ms"`
	// ShowEditorOnOpen opens the entry editor pane as soon as the dialog
	// appears instead of waiting for the first row activation.
	ShowEditorOnOpen bool `json:"show_editor_on_open"`
}

// DefaultPrefs returns the default preferences.
func DefaultPrefs() Prefs {
	return Prefs{
		DoubleActivationMS: int(DefaultDoubleActivation.Milliseconds()),
	}
}

func prefsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".jabref", "dialog_prefs.json"), nil
}

// LoadPrefs loads user preferences from disk, returning defaults if not found.
func LoadPrefs() Prefs {
	prefs := DefaultPrefs()

	path, err := prefsPath()
	if err != nil {
		return prefs
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return prefs
	}
	// Ignore unmarshal errors, just use defaults
	_ = json.Unmarshal(data, &prefs)
	if prefs.DoubleActivationMS <= 0 {
		prefs.DoubleActivationMS = int(DefaultDoubleActivation.Milliseconds())
	}
	return prefs
}

// SavePrefs persists user preferences to disk.
func SavePrefs(prefs Prefs) error {
	path, err := prefsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
