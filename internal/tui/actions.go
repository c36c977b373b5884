package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/diegomarinho/jabref/internal/integrity"
	"github.com/diegomarinho/jabref/internal/model"
	"github.com/diegomarinho/jabref/internal/report"
)

func (m Model) copyKeyToClipboard(msg integrity.Message) tea.Cmd {
	return func() tea.Msg {
		key := msg.Key()
		if key == "" {
			return statusMsg("Entry has no citation key")
		}
		if err := clipboard.WriteAll(key); err != nil {
			return statusMsg(fmt.Sprintf("Clipboard error: %v", err))
		}
		return statusMsg(fmt.Sprintf("Copied %s", key))
	}
}

func (m Model) copyMessageToClipboard(msg integrity.Message) tea.Cmd {
	return func() tea.Msg {
		text := fmt.Sprintf("%s\t%s\t%s", msg.Key(), msg.FieldName(), msg.Text)
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg(fmt.Sprintf("Clipboard error: %v", err))
		}
		return statusMsg("Copied message")
	}
}

// visibleMessages returns the messages currently passing the filters, in
// view-model order.
func (m Model) visibleMessages() []integrity.Message {
	out := make([]integrity.Message, 0, len(m.visibleRows))
	for _, i := range m.visibleRows {
		out = append(out, m.vm.At(i))
	}
	return out
}

func (m *Model) exportMessages(format string) tea.Cmd {
	msgs := m.visibleMessages()
	return func() tea.Msg {
		filename := fmt.Sprintf("integrity-%s.%s", time.Now().Format("20060102-150405"), format)
		f, err := os.Create(filename)
		if err != nil {
			return statusMsg(fmt.Sprintf("Export failed: %v", err))
		}
		defer func() { _ = f.Close() }()

		switch format {
		case "json":
			err = report.WriteJSON(f, msgs)
		case "csv":
			err = report.WriteCSV(f, msgs)
		default:
			err = fmt.Errorf("unknown format %q", format)
		}
		if err != nil {
			return statusMsg(fmt.Sprintf("Export failed: %v", err))
		}
		return statusMsg(fmt.Sprintf("Exported %d messages to %s", len(msgs), filename))
	}
}

// openEditor opens the library file in $EDITOR, positioned at the entry's
// source line when known.
func (m Model) openEditor(e *model.Entry) tea.Cmd {
	if m.libraryPath == "" || e == nil {
		return nil
	}
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	line := e.Line
	if line < 1 {
		line = 1
	}

	var args []string
	editorBase := editor
	if idx := strings.LastIndex(editor, "/"); idx != -1 {
		editorBase = editor[idx+1:]
	}
	switch editorBase {
	case "code", "code-insiders":
		args = []string{"-g", fmt.Sprintf("%s:%d", m.libraryPath, line)}
	case "subl", "sublime", "sublime_text":
		args = []string{fmt.Sprintf("%s:%d", m.libraryPath, line)}
	case "emacs", "emacsclient", "nano":
		args = []string{fmt.Sprintf("+%d", line), m.libraryPath}
	default:
		// vim-style fallback
		args = []string{fmt.Sprintf("+%d", line), m.libraryPath}
	}

	c := exec.Command(editor, args...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			return statusMsg(fmt.Sprintf("Error opening editor: %v", err))
		}
		return statusMsg("Editor closed")
	})
}
