package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diegomarinho/jabref/internal/integrity"
)

// Run opens the integrity results dialog for the given messages and blocks
// until it is dismissed. thresholdMS overrides the stored double-activation
// window when positive.
func Run(messages []integrity.Message, libraryPath string, thresholdMS int) error {
	prefs := LoadPrefs()
	if thresholdMS <= 0 {
		thresholdMS = prefs.DoubleActivationMS
	}
	m := NewModelWithView(messages, libraryPath, nil, time.Duration(thresholdMS)*time.Millisecond)
	if prefs.ShowEditorOnOpen {
		m.ShowEditor()
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return fmt.Errorf("error running dialog: %w", err)
	}
	return nil
}
